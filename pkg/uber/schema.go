package uber

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/conduit-lang/hypermedia/pkg/hypermedia"
)

// Property is a named, readable property of a record
type Property struct {
	Name string
	Get  func(record any) (any, error)
}

// Field creates a property reading from a record of type T
func Field[T any](name string, get func(T) any) Property {
	return Property{
		Name: name,
		Get: func(record any) (any, error) {
			r, ok := record.(T)
			if !ok {
				return nil, fmt.Errorf("property %s: expected %T, got %T", name, *new(T), record)
			}
			return get(r), nil
		},
	}
}

// FieldE creates a property whose accessor may fail
func FieldE[T any](name string, get func(T) (any, error)) Property {
	return Property{
		Name: name,
		Get: func(record any) (any, error) {
			r, ok := record.(T)
			if !ok {
				return nil, fmt.Errorf("property %s: expected %T, got %T", name, *new(T), record)
			}
			return get(r)
		},
	}
}

// metaProperties are never surfaced as data on link-bearing records: the
// links become link nodes and the identity is carried by the self link.
var metaProperties = map[string]bool{
	"links": true,
	"id":    true,
}

var resourceSupportType = reflect.TypeOf(hypermedia.ResourceSupport{})

// Schema holds the declared properties of record types. Register all
// types before flattening starts; a Schema must not be modified while
// flatteners use it.
type Schema struct {
	records map[reflect.Type][]Property
}

// NewSchema creates an empty schema
func NewSchema() *Schema {
	return &Schema{
		records: make(map[reflect.Type][]Property),
	}
}

// Register declares the properties of record type T in the given order
func Register[T any](s *Schema, props ...Property) *Schema {
	s.records[reflect.TypeOf((*T)(nil)).Elem()] = props
	return s
}

// RegisterStruct derives the properties of struct type T from its
// exported fields once and registers them.
func RegisterStruct[T any](s *Schema) *Schema {
	t := reflect.TypeOf((*T)(nil)).Elem()
	s.records[t] = deriveProperties(t)
	return s
}

// Properties returns the properties of a record. Declared properties are
// used when the record's type (or the type it points to) was registered;
// otherwise they are derived from the struct fields.
func (s *Schema) Properties(record any) []Property {
	t := reflect.TypeOf(record)
	if t == nil {
		return nil
	}

	if s != nil {
		if props, ok := s.records[t]; ok {
			return props
		}
		if t.Kind() == reflect.Pointer {
			if props, ok := s.records[t.Elem()]; ok {
				return derefProperties(props)
			}
		}
	}

	return deriveProperties(t)
}

// derefProperties adapts properties declared on T to records of type *T
func derefProperties(props []Property) []Property {
	adapted := make([]Property, len(props))
	for i, p := range props {
		get := p.Get
		adapted[i] = Property{
			Name: p.Name,
			Get: func(record any) (any, error) {
				rv := reflect.ValueOf(record)
				if rv.Kind() == reflect.Pointer {
					if rv.IsNil() {
						return nil, fmt.Errorf("property %s: nil record", p.Name)
					}
					record = rv.Elem().Interface()
				}
				return get(record)
			},
		}
	}
	return adapted
}

func deriveProperties(t reflect.Type) []Property {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	linkBearing := reflect.PointerTo(t).Implements(reflect.TypeOf((*hypermedia.LinkBearer)(nil)).Elem())

	var props []Property
	collectFields(t, nil, linkBearing, &props)
	return props
}

func collectFields(t reflect.Type, index []int, linkBearing bool, props *[]Property) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fieldIndex := append(append([]int(nil), index...), i)

		if f.Type == resourceSupportType {
			continue
		}

		name, skip := propertyName(f)
		if skip {
			continue
		}

		if f.Anonymous && name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if f.IsExported() {
					collectFields(ft, fieldIndex, linkBearing, props)
				}
				continue
			}
		}

		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = lowerCamel(f.Name)
		}
		if linkBearing && metaProperties[name] {
			continue
		}

		*props = append(*props, Property{
			Name: name,
			Get:  fieldGetter(fieldIndex),
		})
	}
}

// propertyName reads the json tag. It reports skip for `json:"-"`.
func propertyName(f reflect.StructField) (string, bool) {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return "", true
	}
	return name, false
}

// errAbsent marks a promoted field reached through a nil embedded
// pointer. Such properties are left out, as encoding/json does.
var errAbsent = errors.New("absent property")

func fieldGetter(index []int) func(any) (any, error) {
	return func(record any) (any, error) {
		rv := reflect.ValueOf(record)
		for rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return nil, fmt.Errorf("nil record")
			}
			rv = rv.Elem()
		}
		for i, x := range index {
			if i > 0 && rv.Kind() == reflect.Pointer {
				if rv.IsNil() {
					return nil, errAbsent
				}
				rv = rv.Elem()
			}
			rv = rv.Field(x)
		}
		return rv.Interface(), nil
	}
}

// lowerCamel turns a Go field name into a property name: Name -> name,
// ID -> id, URLPath -> urlPath.
func lowerCamel(s string) string {
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if !unicode.IsUpper(runes[i]) {
			break
		}
		if i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
