package action

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/conduit-lang/hypermedia/pkg/hypermedia"
)

// Descriptor describes one HTTP action: where it is submitted, with which
// method, and which parameters it takes. Request parameters and path
// variables live in separate namespaces; lookups prefer request
// parameters.
type Descriptor struct {
	resourceName string
	actionLink   string
	method       string

	requestParams map[string]*ParameterValue
	requestOrder  []string
	pathVariables map[string]*ParameterValue
	pathOrder     []string
}

// NewDescriptor creates a descriptor. resourceName identifies the action
// in its representation, e.g. as form name.
func NewDescriptor(resourceName, actionLink, method string) *Descriptor {
	if method == "" {
		method = http.MethodGet
	}
	return &Descriptor{
		resourceName:  resourceName,
		actionLink:    actionLink,
		method:        strings.ToUpper(method),
		requestParams: make(map[string]*ParameterValue),
		pathVariables: make(map[string]*ParameterValue),
	}
}

// ResourceName returns the display name of the action
func (d *Descriptor) ResourceName() string {
	return d.resourceName
}

// HTTPMethod returns the method used to submit the action
func (d *Descriptor) HTTPMethod() string {
	return d.method
}

// ActionLink returns the target of the action
func (d *Descriptor) ActionLink() string {
	return d.actionLink
}

// RelativeActionLink returns the path of the action target
func (d *Descriptor) RelativeActionLink() string {
	link := hypermedia.Link{Href: d.actionLink}
	base := link.BaseURI()
	u, err := url.Parse(base)
	if err != nil {
		path, _, _ := strings.Cut(base, "?")
		return path
	}
	return u.Path
}

// AddRequestParam adds a request parameter. Parameters keep the order
// in which they were added.
func (d *Descriptor) AddRequestParam(name string, pv *ParameterValue) {
	if _, ok := d.requestParams[name]; !ok {
		d.requestOrder = append(d.requestOrder, name)
	}
	d.requestParams[name] = pv
}

// AddPathVariable adds a path variable
func (d *Descriptor) AddPathVariable(name string, pv *ParameterValue) {
	if _, ok := d.pathVariables[name]; !ok {
		d.pathOrder = append(d.pathOrder, name)
	}
	d.pathVariables[name] = pv
}

// RequestParamNames returns the request parameter names in order
func (d *Descriptor) RequestParamNames() []string {
	return append([]string(nil), d.requestOrder...)
}

// PathVariableNames returns the path variable names in order
func (d *Descriptor) PathVariableNames() []string {
	return append([]string(nil), d.pathOrder...)
}

// ParameterValue looks up a request parameter, then a path variable.
// It returns nil if neither exists.
func (d *Descriptor) ParameterValue(name string) *ParameterValue {
	if pv, ok := d.requestParams[name]; ok {
		return pv
	}
	return d.pathVariables[name]
}

// Spec is the already resolved metadata of an action
type Spec struct {
	ResourceName string
	// URLTemplate is the target, with path variables as {name}
	URLTemplate string
	Method      string
	Parameters  []Parameter
}

// Build creates the descriptor for spec. Path variables are expanded
// into the URL template using their formatted values.
func Build(spec Spec, registry *Registry) (*Descriptor, error) {
	values := make(map[string]string)
	pvs := make([]*ParameterValue, 0, len(spec.Parameters))
	for _, p := range spec.Parameters {
		pv, err := NewParameterValue(p, registry)
		if err != nil {
			return nil, fmt.Errorf("action %s: %w", spec.ResourceName, err)
		}
		if pv.source == PathVariable && pv.value != nil {
			values[pv.name] = pv.formatted
		}
		pvs = append(pvs, pv)
	}

	link := hypermedia.Link{Href: spec.URLTemplate}
	actionLink, err := link.Expand(values)
	if err != nil {
		return nil, fmt.Errorf("action %s: %w", spec.ResourceName, err)
	}

	d := NewDescriptor(spec.ResourceName, actionLink, spec.Method)
	for _, pv := range pvs {
		if pv.source == PathVariable {
			d.AddPathVariable(pv.name, pv)
		} else {
			d.AddRequestParam(pv.name, pv)
		}
	}
	return d, nil
}
