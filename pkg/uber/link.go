package uber

import (
	"net/http"
	"strings"

	"github.com/conduit-lang/hypermedia/pkg/hypermedia"
)

// LinkNode converts a link into an UBER link node.
//
// The node's url is the link's base URI without template expressions,
// its model describes the template variables in a method dependent shape
// (see Model), and its action is derived from the link's method.
func LinkNode(link hypermedia.Link) (*Node, error) {
	method := link.RequestMethod()

	action, err := ForRequestMethod(method)
	if err != nil {
		return nil, err
	}

	vars, err := link.Variables()
	if err != nil {
		return nil, err
	}

	return &Node{
		Rel:    append([]string(nil), link.Rels...),
		URL:    link.BaseURI(),
		Action: action,
		Model:  Model(method, vars),
	}, nil
}

// Model builds the model template for the given variables.
//
//	GET, DELETE       {?foo,bar}
//	POST, PUT, PATCH  foo={foo}&bar={bar}
//
// Other methods and an empty variable list yield "".
func Model(method string, vars []string) string {
	if len(vars) == 0 {
		return ""
	}

	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodDelete:
		return "{?" + strings.Join(vars, ",") + "}"
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		pairs := make([]string, len(vars))
		for i, v := range vars {
			pairs[i] = v + "={" + v + "}"
		}
		return strings.Join(pairs, "&")
	default:
		return ""
	}
}
