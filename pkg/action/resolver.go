package action

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownResolver is returned when a resolver id is not registered
var ErrUnknownResolver = errors.New("unknown resolver")

// StringOptionsID is the registry id of StringOptions
const StringOptionsID = "string"

// Resolver computes the possible values of a parameter. fixed holds the
// values declared with the parameter, args the call values of the
// parameters it depends on.
type Resolver interface {
	Resolve(ctx context.Context, fixed []string, args []any) ([]any, error)
}

// ResolverFunc adapts a function to the Resolver interface
type ResolverFunc func(ctx context.Context, fixed []string, args []any) ([]any, error)

// Resolve calls f
func (f ResolverFunc) Resolve(ctx context.Context, fixed []string, args []any) ([]any, error) {
	return f(ctx, fixed, args)
}

// StringOptions returns the fixed values verbatim
type StringOptions struct{}

// Resolve returns fixed
func (StringOptions) Resolve(_ context.Context, fixed []string, _ []any) ([]any, error) {
	values := make([]any, len(fixed))
	for i, v := range fixed {
		values[i] = v
	}
	return values, nil
}

// Registry maps resolver ids to resolver instances. Register everything
// at startup; lookups are safe for concurrent use afterwards.
type Registry struct {
	resolvers map[string]Resolver
}

// NewRegistry creates a registry that knows StringOptions
func NewRegistry() *Registry {
	return &Registry{
		resolvers: map[string]Resolver{
			StringOptionsID: StringOptions{},
		},
	}
}

// Register adds a resolver under id, replacing any previous one
func (r *Registry) Register(id string, resolver Resolver) *Registry {
	r.resolvers[id] = resolver
	return r
}

// Lookup returns the resolver registered under id. The empty id is
// StringOptions.
func (r *Registry) Lookup(id string) (Resolver, error) {
	if id == "" {
		id = StringOptionsID
	}
	if r != nil {
		if resolver, ok := r.resolvers[id]; ok {
			return resolver, nil
		}
	} else if id == StringOptionsID {
		return StringOptions{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownResolver, id)
}
