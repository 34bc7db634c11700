package sample

import (
	"context"
	"fmt"
	"strconv"

	"github.com/conduit-lang/hypermedia/pkg/action"
)

// DetailsResolverID is the registry id of DetailOptions
const DetailsResolverID = "details"

// DetailOptions resolves the details that can be shown for a person.
// Its single argument is the person id.
type DetailOptions struct {
	access PersonAccess
}

// NewDetailOptions creates the resolver on top of access
func NewDetailOptions(access PersonAccess) *DetailOptions {
	return &DetailOptions{access: access}
}

// Resolve implements action.Resolver
func (o *DetailOptions) Resolve(ctx context.Context, _ []string, args []any) ([]any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("details: person id argument is required")
	}
	id, err := toInt64(args[0])
	if err != nil {
		return nil, fmt.Errorf("details: %w", err)
	}

	p, err := o.access.Person(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := o.access.PossibleDetails(ctx, p.Gender)
	if err != nil {
		return nil, err
	}

	values := make([]any, len(details))
	for i, d := range details {
		values[i] = d
	}
	return values, nil
}

// NewRegistry returns a resolver registry knowing DetailOptions
func NewRegistry(access PersonAccess) *action.Registry {
	return action.NewRegistry().Register(DetailsResolverID, NewDetailOptions(access))
}

func toInt64(v any) (int64, error) {
	switch id := v.(type) {
	case int64:
		return id, nil
	case int:
		return int64(id), nil
	case string:
		return strconv.ParseInt(id, 10, 64)
	default:
		return 0, fmt.Errorf("person id of type %T", v)
	}
}
