package form

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/conduit-lang/hypermedia/pkg/action"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gadget string

func (gadget) EnumValues() []any {
	return []any{gadget("watch"), gadget("phone")}
}

func TestRenderInputs(t *testing.T) {
	in := action.Input{Min: action.Int(0), Max: action.Int(9999)}

	d, err := action.Build(action.Spec{
		ResourceName: "customer",
		URLTemplate:  "/people/customer",
		Method:       http.MethodGet,
		Parameters: []action.Parameter{
			{Name: "personId", Value: 1234, Input: &in},
			{Name: "name", Value: "Bilbo"},
			{Name: "age", Value: 3, Input: &action.Input{Type: action.InputNumber}},
			{Name: "token", Value: "t", Input: &action.Input{Type: action.InputHidden}},
		},
	}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer("").Render(context.Background(), &buf, d))

	html := buf.String()
	assert.Contains(t, html, "<title>Input Data</title>")
	assert.Contains(t, html, `<form action="/people/customer" name="customer" method="GET">`)
	assert.Contains(t, html, `<input type="number" name="personId" min="0" max="9999" value="1234" />`)
	assert.Contains(t, html, `<input type="text" name="name" value="Bilbo" />`)
	assert.Contains(t, html, `<input type="number" name="age" value="3" />`)
	assert.Contains(t, html, `<input type="hidden" name="token" value="t" />`)
}

func TestRenderSelect(t *testing.T) {
	d, err := action.Build(action.Spec{
		ResourceName: "gadgets",
		URLTemplate:  "/gadgets",
		Method:       http.MethodPost,
		Parameters: []action.Parameter{
			{Name: "gadget", Value: gadget("phone")},
			{Name: "owned", Type: reflect.TypeOf([]gadget{}), Value: []gadget{gadget("watch")}},
			{Name: "color", Value: "red", Select: &action.Select{Values: []string{"red", "blue"}}},
		},
	}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer("Gadgets").Render(context.Background(), &buf, d))

	html := buf.String()
	assert.Contains(t, html, `<select name="gadget" id="gadget" size="2">`)
	assert.Contains(t, html, `<option selected="selected">phone</option>`)
	assert.Contains(t, html, `<option>watch</option>`)
	assert.Contains(t, html, `<select name="owned" id="owned" size="2" multiple="multiple">`)
	assert.Contains(t, html, `<option selected="selected">red</option>`)
	assert.Contains(t, html, `<option>blue</option>`)
}

func TestRenderCollectionSlots(t *testing.T) {
	d, err := action.Build(action.Spec{
		ResourceName: "numbers",
		URLTemplate:  "/numbers",
		Method:       http.MethodPost,
		Parameters: []action.Parameter{
			{Name: "number", Value: []int{7}},
		},
	}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer("").Render(context.Background(), &buf, d))

	html := buf.String()
	assert.Equal(t, 3, bytes.Count(buf.Bytes(), []byte(`name="number"`)))
	assert.Contains(t, html, `<input type="text" name="number" value="7" />`)
	assert.Contains(t, html, `<input type="text" name="number" value="" />`)
}

func TestRenderWritesNothingOnError(t *testing.T) {
	registry := action.NewRegistry().Register("failing", action.ResolverFunc(
		func(context.Context, []string, []any) ([]any, error) {
			return nil, errors.New("unavailable")
		}))

	d, err := action.Build(action.Spec{
		ResourceName: "broken",
		URLTemplate:  "/broken",
		Parameters: []action.Parameter{
			{Name: "p", Select: &action.Select{Resolver: "failing"}},
		},
	}, registry)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = NewRenderer("").Render(context.Background(), &buf, d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unavailable")
	assert.Zero(t, buf.Len())
}
