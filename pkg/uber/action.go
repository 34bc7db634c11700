package uber

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnsupportedMethod is returned when an HTTP method has no UBER action
var ErrUnsupportedMethod = errors.New("unsupported method")

// Action is the UBER action tag of a node
type Action string

const (
	// ActionAppend is POST
	ActionAppend Action = "append"
	// ActionPartial is PATCH
	ActionPartial Action = "partial"
	// ActionRead is GET. It is the implicit default and never set by ForRequestMethod.
	ActionRead Action = "read"
	// ActionRemove is DELETE
	ActionRemove Action = "remove"
	// ActionReplace is PUT
	ActionReplace Action = "replace"
)

// ForRequestMethod maps an HTTP method to its action. GET maps to the
// empty action since read is the default.
func ForRequestMethod(method string) (Action, error) {
	switch strings.ToUpper(method) {
	case http.MethodGet:
		return "", nil
	case http.MethodPost:
		return ActionAppend, nil
	case http.MethodPatch:
		return ActionPartial, nil
	case http.MethodDelete:
		return ActionRemove, nil
	case http.MethodPut:
		return ActionReplace, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
}

// Method returns the HTTP method for the action
func (a Action) Method() string {
	switch a {
	case ActionAppend:
		return http.MethodPost
	case ActionPartial:
		return http.MethodPatch
	case ActionRemove:
		return http.MethodDelete
	case ActionReplace:
		return http.MethodPut
	default:
		return http.MethodGet
	}
}
