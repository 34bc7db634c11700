package hypermedia

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/yosida95/uritemplate/v3"
)

// Common link relations
const (
	RelSelf     = "self"
	RelNext     = "next"
	RelPrevious = "previous"
	RelFirst    = "first"
	RelLast     = "last"
)

// Link is a hypermedia link to a target resource.
//
// Href may carry RFC 6570 template expressions such as "/people{?name,mood}".
// Method is the HTTP method the link is meant to be followed with; an empty
// Method means GET.
type Link struct {
	Rels   []string
	Href   string
	Method string

	// Vars overrides the variables found in the Href template. It lets a
	// caller describe body parameters of a POST link without putting them
	// into the URI.
	Vars []string
}

// NewLink creates a GET link with the given relations
func NewLink(href string, rels ...string) Link {
	return Link{
		Rels: rels,
		Href: href,
	}
}

// WithMethod returns a copy of the link using the given HTTP method
func (l Link) WithMethod(method string) Link {
	l.Method = strings.ToUpper(method)
	return l
}

// WithVars returns a copy of the link with explicit template variables
func (l Link) WithVars(vars ...string) Link {
	l.Vars = vars
	return l
}

// Rel returns the first relation of the link, or "" when it has none
func (l Link) Rel() string {
	if len(l.Rels) == 0 {
		return ""
	}
	return l.Rels[0]
}

// HasRel reports whether the link carries the given relation
func (l Link) HasRel(rel string) bool {
	for _, r := range l.Rels {
		if r == rel {
			return true
		}
	}
	return false
}

// RequestMethod returns the link's HTTP method, defaulting to GET
func (l Link) RequestMethod() string {
	if l.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(l.Method)
}

// IsTemplated reports whether the href contains template expressions
func (l Link) IsTemplated() bool {
	return strings.Contains(l.Href, "{")
}

// BaseURI returns the href with all template expressions removed.
// Everything from the first expression on is considered template.
func (l Link) BaseURI() string {
	if i := strings.Index(l.Href, "{"); i >= 0 {
		return l.Href[:i]
	}
	return l.Href
}

// Variables returns the template variable names in order of appearance.
// Explicit Vars take precedence over the ones parsed from Href.
func (l Link) Variables() ([]string, error) {
	if len(l.Vars) > 0 {
		return append([]string(nil), l.Vars...), nil
	}
	if !l.IsTemplated() {
		return nil, nil
	}

	tmpl, err := uritemplate.New(l.Href)
	if err != nil {
		return nil, fmt.Errorf("invalid uri template %q: %w", l.Href, err)
	}
	return tmpl.Varnames(), nil
}

// Expand expands the href template with the given values. Variables
// without a value are dropped from the result.
func (l Link) Expand(values map[string]string) (string, error) {
	if !l.IsTemplated() {
		return l.Href, nil
	}

	tmpl, err := uritemplate.New(l.Href)
	if err != nil {
		return "", fmt.Errorf("invalid uri template %q: %w", l.Href, err)
	}

	vars := uritemplate.Values{}
	for name, value := range values {
		vars.Set(name, uritemplate.String(value))
	}

	expanded, err := tmpl.Expand(vars)
	if err != nil {
		return "", fmt.Errorf("failed to expand uri template %q: %w", l.Href, err)
	}
	return expanded, nil
}

func (l Link) String() string {
	return fmt.Sprintf("<%s>;rel=%q;method=%s", l.Href, strings.Join(l.Rels, " "), l.RequestMethod())
}
