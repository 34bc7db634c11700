// Package action describes invocable HTTP actions: their target, method
// and ordered parameters together with the input characteristics and
// possible values a form or hypermedia renderer needs.
package action

// InputType is an HTML5 input type
type InputType string

// Input types. InputAuto resolves to InputNumber or InputText depending
// on the parameter's type.
const (
	InputAuto          InputType = ""
	InputText          InputType = "text"
	InputHidden        InputType = "hidden"
	InputPassword      InputType = "password"
	InputColor         InputType = "color"
	InputDate          InputType = "date"
	InputDateTime      InputType = "datetime"
	InputDateTimeLocal InputType = "datetime-local"
	InputEmail         InputType = "email"
	InputMonth         InputType = "month"
	InputNumber        InputType = "number"
	InputRange         InputType = "range"
	InputSearch        InputType = "search"
	InputTel           InputType = "tel"
	InputTime          InputType = "time"
	InputURL           InputType = "url"
	InputWeek          InputType = "week"
)

func (t InputType) String() string {
	return string(t)
}

const (
	// Any allows an unbounded number of collection items
	Any = -1

	// DefaultUpTo is the number of input slots rendered for collections
	DefaultUpTo = 3
)

// Input declares the input characteristics of a parameter. The zero
// value has no constraints and accepts DefaultUpTo collection items.
type Input struct {
	Type InputType
	Min  *int
	Max  *int
	Step *int
	// UpTo is the number of items accepted by a collection parameter,
	// or Any. Zero means DefaultUpTo.
	UpTo int
}

// Int returns a pointer to n, for the bounds of an Input
func Int(n int) *int {
	return &n
}

func (in Input) upTo() int {
	if in.UpTo == 0 {
		return DefaultUpTo
	}
	return in.UpTo
}

// Condition is a numeric input constraint such as min=0
type Condition struct {
	Name  string
	Value int
}

// conditions lists the constraints that were set
func (in Input) conditions() []Condition {
	var conds []Condition
	if in.Min != nil {
		conds = append(conds, Condition{Name: "min", Value: *in.Min})
	}
	if in.Max != nil {
		conds = append(conds, Condition{Name: "max", Value: *in.Max})
	}
	if in.Step != nil {
		conds = append(conds, Condition{Name: "step", Value: *in.Step})
	}
	return conds
}

// Select declares where the possible values of a parameter come from.
type Select struct {
	// Values are passed to the resolver as fixed values
	Values []string
	// Resolver is the registry id of the resolver. Empty means StringOptions.
	Resolver string
	// Args names the parameters of the same action whose call values are
	// passed to the resolver, in order.
	Args []string
}

// Enum is implemented by enumeration types. EnumValues is called on the
// zero value, or on a pointer to it for pointer receivers, and must
// return every value of the enumeration.
type Enum interface {
	EnumValues() []any
}
