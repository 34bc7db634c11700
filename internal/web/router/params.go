package router

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ParamExtractor reads path variables and request parameters. Request
// parameters come from the query string and, for POST, PUT and PATCH,
// from a form encoded body.
type ParamExtractor struct {
	req    *http.Request
	parsed error
}

// NewParamExtractor creates a new parameter extractor for the given request
func NewParamExtractor(req *http.Request) *ParamExtractor {
	return &ParamExtractor{
		req:    req,
		parsed: req.ParseForm(),
	}
}

// Err returns the error of parsing the request parameters, if any
func (p *ParamExtractor) Err() error {
	return p.parsed
}

// PathParam extracts a path parameter by name
func (p *ParamExtractor) PathParam(name string) string {
	return chi.URLParam(p.req, name)
}

// PathParamInt extracts a path parameter and converts it to int
func (p *ParamExtractor) PathParamInt(name string) (int, error) {
	value := chi.URLParam(p.req, name)
	if value == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for parameter %s: %w", name, err)
	}

	return i, nil
}

// Has reports whether the request parameter was sent
func (p *ParamExtractor) Has(name string) bool {
	_, ok := p.req.Form[name]
	return ok
}

// Param returns the first value of a request parameter
func (p *ParamExtractor) Param(name string) string {
	return p.req.Form.Get(name)
}

// Params returns all values of a request parameter, skipping empty ones
func (p *ParamExtractor) Params(name string) []string {
	var values []string
	for _, v := range p.req.Form[name] {
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

// ParamInt returns a request parameter converted to int. ok is false
// when the parameter was not sent or is empty.
func (p *ParamExtractor) ParamInt(name string) (value int, ok bool, err error) {
	raw := p.Param(name)
	if raw == "" {
		return 0, false, nil
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("invalid integer for parameter %s: %w", name, err)
	}
	return i, true, nil
}

// ParamInts returns all values of a request parameter converted to int
func (p *ParamExtractor) ParamInts(name string) ([]int, error) {
	raw := p.Params(name)
	values := make([]int, 0, len(raw))
	for _, v := range raw {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid integer for parameter %s: %w", name, err)
		}
		values = append(values, i)
	}
	return values, nil
}
