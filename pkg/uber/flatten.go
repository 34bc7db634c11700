package uber

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/conduit-lang/hypermedia/pkg/hypermedia"
)

// ErrCycle is returned when a value contains itself
var ErrCycle = errors.New("cyclic object graph")

// FlattenError reports a failure while converting an object graph.
// Path locates the property or entry that failed.
type FlattenError struct {
	Path string
	Err  error
}

func (e *FlattenError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("flatten: %v", e.Err)
	}
	return fmt.Sprintf("flatten %s: %v", e.Path, e.Err)
}

func (e *FlattenError) Unwrap() error {
	return e.Err
}

// Flattener converts arbitrary values into UBER nodes. It is safe for
// concurrent use as long as its Schema is not modified.
type Flattener struct {
	schema *Schema
}

// NewFlattener creates a flattener using the declared record properties
// of schema. A nil schema derives all properties from struct fields.
func NewFlattener(schema *Schema) *Flattener {
	return &Flattener{schema: schema}
}

var defaultFlattener = NewFlattener(nil)

// Flatten converts v into dest using derived record properties
func Flatten(dest *Node, v any) error {
	return defaultFlattener.Flatten(dest, v)
}

// Flatten appends the structure of v to dest's data. On failure dest is
// left untouched.
func (f *Flattener) Flatten(dest *Node, v any) error {
	scratch := &Node{}
	w := &walker{
		schema: f.schema,
		active: make(map[identity]bool),
	}
	if err := w.walk(scratch, v); err != nil {
		return err
	}

	if scratch.Value != nil {
		dest.Value = scratch.Value
	}
	dest.Data = append(dest.Data, scratch.Data...)
	return nil
}

type identity struct {
	t   reflect.Type
	ptr uintptr
	len int
}

type walker struct {
	schema *Schema
	path   []string
	active map[identity]bool
}

func (w *walker) walk(dest *Node, v any) error {
	shape := Classify(v)
	if shape == ShapeNull {
		return nil
	}
	if shape == ShapeScalar {
		value, _ := ScalarValue(v)
		dest.Value = value
		return nil
	}

	id, tracked := identify(v)
	if tracked {
		if w.active[id] {
			return w.fail(ErrCycle)
		}
		w.active[id] = true
		defer delete(w.active, id)
	}

	switch shape {
	case ShapeWrapper:
		wrapper := v.(hypermedia.Wrapper)
		if err := w.addLinks(dest, wrapper.Links()); err != nil {
			return err
		}
		return w.walk(dest, wrapper.WrappedContent())

	case ShapeCollectionWrapper:
		wrapper := v.(hypermedia.CollectionWrapper)
		if err := w.addLinks(dest, wrapper.Links()); err != nil {
			return err
		}
		return w.walkItems(dest, wrapper.WrappedItems())

	case ShapeLinkBearing:
		if err := w.addLinks(dest, v.(hypermedia.LinkBearer).Links()); err != nil {
			return err
		}
		return w.walkRecord(dest, v)

	case ShapeIterable:
		rv, _ := indirect(reflect.ValueOf(v))
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return w.walkItems(dest, items)

	case ShapeMapping:
		return w.walkMap(dest, v)

	default:
		return w.walkRecord(dest, v)
	}
}

func (w *walker) walkItems(dest *Node, items []any) error {
	for i, item := range items {
		child := &Node{}
		dest.AddData(child)
		w.push(fmt.Sprintf("[%d]", i))
		err := w.walk(child, item)
		w.pop()
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) walkMap(dest *Node, v any) error {
	rv, _ := indirect(reflect.ValueOf(v))

	type entry struct {
		key   string
		value reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{
			key:   fmt.Sprint(iter.Key().Interface()),
			value: iter.Value(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})

	for _, e := range entries {
		if err := w.named(dest, e.key, func() (any, error) {
			return e.value.Interface(), nil
		}); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) walkRecord(dest *Node, v any) error {
	for _, prop := range w.schema.Properties(v) {
		get := prop.Get
		if err := w.named(dest, prop.Name, func() (any, error) {
			return get(v)
		}); err != nil {
			return err
		}
	}
	return nil
}

// named appends a child called name holding the value read by get
func (w *walker) named(dest *Node, name string, get func() (any, error)) error {
	w.push(name)
	defer w.pop()

	content, err := safeGet(get)
	if errors.Is(err, errAbsent) {
		return nil
	}
	if err != nil {
		return w.fail(err)
	}

	child := &Node{Name: name}
	dest.AddData(child)
	if value, ok := ScalarValue(content); ok {
		child.Value = value
		return nil
	}
	return w.walk(child, content)
}

func (w *walker) addLinks(dest *Node, links []hypermedia.Link) error {
	if err := dest.AddLinks(links); err != nil {
		return w.fail(err)
	}
	return nil
}

func (w *walker) push(segment string) {
	w.path = append(w.path, segment)
}

func (w *walker) pop() {
	w.path = w.path[:len(w.path)-1]
}

func (w *walker) fail(err error) error {
	var fe *FlattenError
	if errors.As(err, &fe) {
		return err
	}
	return &FlattenError{
		Path: strings.ReplaceAll(strings.Join(w.path, "."), ".[", "["),
		Err:  err,
	}
}

// safeGet turns a panicking accessor into an error
func safeGet(get func() (any, error)) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("property read panicked: %w", e)
			} else {
				err = fmt.Errorf("property read panicked: %v", r)
			}
		}
	}()
	return get()
}

// identify returns the identity of values that can take part in a cycle
func identify(v any) (identity, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		if rv.IsNil() {
			return identity{}, false
		}
		return identity{t: rv.Type(), ptr: rv.Pointer()}, true
	case reflect.Slice:
		if rv.Len() == 0 {
			return identity{}, false
		}
		return identity{t: rv.Type(), ptr: rv.Pointer(), len: rv.Len()}, true
	default:
		return identity{}, false
	}
}
