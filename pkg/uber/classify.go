package uber

import (
	"encoding"
	"reflect"

	"github.com/conduit-lang/hypermedia/pkg/hypermedia"
)

// Shape is the structural category a value is flattened as.
// The constants are listed in match precedence order.
type Shape int

const (
	// ShapeNull is nil, a nil pointer, a nil map or a nil slice
	ShapeNull Shape = iota
	// ShapeScalar is a string, bool or number (or a text marshaler without exported fields)
	ShapeScalar
	// ShapeWrapper bundles one payload with links
	ShapeWrapper
	// ShapeCollectionWrapper bundles an iterable payload with links
	ShapeCollectionWrapper
	// ShapeLinkBearing is a record decorated with its own links
	ShapeLinkBearing
	// ShapeIterable is a slice or array
	ShapeIterable
	// ShapeMapping is a map
	ShapeMapping
	// ShapeRecord is anything else, expanded through its named properties
	ShapeRecord
)

func (s Shape) String() string {
	switch s {
	case ShapeNull:
		return "null"
	case ShapeScalar:
		return "scalar"
	case ShapeWrapper:
		return "wrapper"
	case ShapeCollectionWrapper:
		return "collection-wrapper"
	case ShapeLinkBearing:
		return "link-bearing"
	case ShapeIterable:
		return "iterable"
	case ShapeMapping:
		return "mapping"
	case ShapeRecord:
		return "record"
	default:
		return "unknown"
	}
}

var textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()

// Classify returns the shape of v. The first matching shape wins.
func Classify(v any) Shape {
	rv, ok := indirect(reflect.ValueOf(v))
	if !ok {
		return ShapeNull
	}
	if isScalar(rv) {
		return ShapeScalar
	}

	switch v.(type) {
	case hypermedia.Wrapper:
		return ShapeWrapper
	case hypermedia.CollectionWrapper:
		return ShapeCollectionWrapper
	case hypermedia.LinkBearer:
		return ShapeLinkBearing
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return ShapeIterable
	case reflect.Map:
		return ShapeMapping
	default:
		return ShapeRecord
	}
}

// ScalarValue decides whether v is a tree leaf. It returns Null for null
// values, the value itself for scalars, and false for composites that
// must be expanded further.
func ScalarValue(v any) (any, bool) {
	rv, ok := indirect(reflect.ValueOf(v))
	if !ok {
		return Null, true
	}
	if isScalar(rv) {
		return rv.Interface(), true
	}
	return nil, false
}

// indirect follows pointers and interfaces. It returns false if the
// value is nil at any level, or is a nil map or slice.
func indirect(rv reflect.Value) (reflect.Value, bool) {
	for {
		if !rv.IsValid() {
			return rv, false
		}
		switch rv.Kind() {
		case reflect.Pointer, reflect.Interface:
			if rv.IsNil() {
				return rv, false
			}
			if rv.Kind() == reflect.Pointer && rv.Type().Implements(textMarshalerType) && isOpaque(rv.Elem()) {
				return rv, true
			}
			rv = rv.Elem()
		case reflect.Map, reflect.Slice:
			return rv, !rv.IsNil()
		default:
			return rv, true
		}
	}
}

func isScalar(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Pointer:
		return isOpaque(rv.Elem())
	case reflect.Struct:
		return rv.Type().Implements(textMarshalerType) && isOpaque(rv)
	default:
		return false
	}
}

// isOpaque reports whether a struct exposes no exported fields, so its
// text form is all there is to render (time.Time for example).
func isOpaque(rv reflect.Value) bool {
	if rv.Kind() != reflect.Struct {
		return false
	}
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			return false
		}
	}
	return true
}
