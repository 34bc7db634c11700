package action

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// ErrUnsupportedOperation is returned by CallValues for parameters that
// are not arrays or collections
var ErrUnsupportedOperation = errors.New("unsupported operation")

// Source tells where a parameter is bound from
type Source int

const (
	// RequestParam is a query or form parameter
	RequestParam Source = iota
	// PathVariable is a variable of the URL path
	PathVariable
)

func (s Source) String() string {
	switch s {
	case RequestParam:
		return "request"
	case PathVariable:
		return "path"
	default:
		return "unknown"
	}
}

// Parameter is the declared metadata and current value of one action
// parameter, as supplied by whoever discovered the action.
type Parameter struct {
	Name   string
	Source Source
	// Type is the declared type. When nil it is taken from Value, and
	// string is assumed if Value is nil as well.
	Type      reflect.Type
	Value     any
	Formatted string
	Input     *Input
	Select    *Select
}

var (
	stringType = reflect.TypeOf("")
	enumType   = reflect.TypeOf((*Enum)(nil)).Elem()
)

// ParameterValue holds a parameter's current value together with its
// input characteristics. It is read-only once created.
type ParameterValue struct {
	name       string
	source     Source
	typ        reflect.Type
	value      any
	formatted  string
	input      Input
	declared   bool
	conditions []Condition
	sel        *Select
	resolver   Resolver
}

// NewParameterValue creates the parameter value for p. The resolver of a
// Select is looked up in registry; unknown ids fail here rather than at
// render time.
func NewParameterValue(p Parameter, registry *Registry) (*ParameterValue, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("parameter name cannot be empty")
	}

	typ := p.Type
	if typ == nil {
		typ = reflect.TypeOf(p.Value)
	}
	if typ == nil {
		typ = stringType
	}

	formatted := p.Formatted
	if formatted == "" && p.Value != nil {
		formatted = formatValue(p.Value)
	}

	pv := &ParameterValue{
		name:      p.Name,
		source:    p.Source,
		typ:       typ,
		value:     p.Value,
		formatted: formatted,
	}

	if p.Input != nil {
		pv.input = *p.Input
		pv.declared = true
		pv.conditions = pv.input.conditions()
	}

	if p.Select != nil {
		resolver, err := registry.Lookup(p.Select.Resolver)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		sel := *p.Select
		pv.sel = &sel
		pv.resolver = resolver
	}

	return pv, nil
}

// Name returns the parameter name
func (pv *ParameterValue) Name() string {
	return pv.name
}

// Source returns where the parameter is bound from
func (pv *ParameterValue) Source() Source {
	return pv.source
}

// Type returns the declared parameter type
func (pv *ParameterValue) Type() reflect.Type {
	return pv.typ
}

// CallValue returns the current value, which may be nil
func (pv *ParameterValue) CallValue() any {
	return pv.value
}

// CallValueFormatted returns the current value in its string form
func (pv *ParameterValue) CallValueFormatted() string {
	return pv.formatted
}

// UpTo returns the number of collection items to render, or Any
func (pv *ParameterValue) UpTo() int {
	return pv.input.upTo()
}

// InputType returns the declared input type, or NUMBER for numeric
// parameters and TEXT for everything else when no type was declared.
func (pv *ParameterValue) InputType() InputType {
	if pv.declared && pv.input.Type != InputAuto {
		return pv.input.Type
	}
	if isNumeric(pv.typ) {
		return InputNumber
	}
	return InputText
}

// HasInputConditions reports whether any numeric constraint was set
func (pv *ParameterValue) HasInputConditions() bool {
	return len(pv.conditions) > 0
}

// InputConditions returns the constraints that were set, in min, max,
// step order
func (pv *ParameterValue) InputConditions() []Condition {
	return pv.conditions
}

// IsArrayOrCollection reports whether the parameter accepts several values
func (pv *ParameterValue) IsArrayOrCollection() bool {
	t := deref(pv.typ)
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Array
}

// CallValues returns the items of a collection parameter. A nil value
// yields an empty slice.
func (pv *ParameterValue) CallValues() ([]any, error) {
	if !pv.IsArrayOrCollection() {
		return nil, fmt.Errorf("parameter %s is not an array or collection: %w", pv.name, ErrUnsupportedOperation)
	}

	rv := reflect.ValueOf(pv.value)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return []any{}, nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || (rv.Kind() == reflect.Slice && rv.IsNil()) {
		return []any{}, nil
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("parameter %s: value of type %s is not a collection", pv.name, rv.Type())
	}

	values := make([]any, rv.Len())
	for i := range values {
		values[i] = rv.Index(i).Interface()
	}
	return values, nil
}

// Slots returns the values of the input slots a renderer shows for a
// collection parameter: max(UpTo, number of call values) slots, filled
// with the call values first and nil after. With UpTo set to Any, the
// call values are rendered without padding and an empty collection gets
// a single empty slot.
func (pv *ParameterValue) Slots() ([]any, error) {
	values, err := pv.CallValues()
	if err != nil {
		return nil, err
	}

	n := pv.input.upTo()
	if n == Any {
		n = 1
	}
	if len(values) > n {
		n = len(values)
	}

	slots := make([]any, n)
	copy(slots, values)
	return slots, nil
}

// PossibleValues returns the values the parameter may take. Enum typed
// parameters always yield every enum value. Otherwise the configured
// resolver is called with the call values of its argument parameters,
// looked up in d; names that d does not know are skipped. Without a
// Select there are no possible values. Resolver errors are returned
// unchanged.
func (pv *ParameterValue) PossibleValues(ctx context.Context, d *Descriptor) ([]any, error) {
	if values, ok := enumValues(pv.typ); ok {
		return values, nil
	}
	if pv.sel == nil {
		return []any{}, nil
	}

	args := make([]any, 0, len(pv.sel.Args))
	for _, name := range pv.sel.Args {
		if d == nil {
			break
		}
		if dep := d.ParameterValue(name); dep != nil {
			args = append(args, dep.CallValue())
		}
	}

	return pv.resolver.Resolve(ctx, pv.sel.Values, args)
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func isNumeric(t reflect.Type) bool {
	t = deref(t)
	if isEnum(t) {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func isEnum(t reflect.Type) bool {
	if t.Kind() == reflect.Interface {
		return false
	}
	return t.Implements(enumType) || reflect.PointerTo(t).Implements(enumType)
}

// enumValues returns the values of an enum type, an array or slice of
// an enum type. Interface types are never enums since they have no
// zero value to ask.
func enumValues(t reflect.Type) ([]any, bool) {
	t = deref(t)
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = deref(t.Elem())
	}
	if !isEnum(t) {
		return nil, false
	}
	if t.Implements(enumType) {
		return reflect.Zero(t).Interface().(Enum).EnumValues(), true
	}
	return reflect.New(t).Interface().(Enum).EnumValues(), true
}

func formatValue(v any) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	return fmt.Sprint(rv.Interface())
}
