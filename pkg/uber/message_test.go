package uber

import (
	"errors"
	"strings"
	"testing"

	"github.com/conduit-lang/hypermedia/pkg/hypermedia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	res := hypermedia.NewResource(bean{Foo: "foo", Bar: "bar"},
		hypermedia.NewLink("/bean", hypermedia.RelSelf))

	msg, err := NewMessage(res)
	require.NoError(t, err)

	b, err := msg.MarshalIndent(false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"uber":{"version":"1.0","data":[
		{"rel":["self"],"url":"/bean"},
		{"name":"foo","value":"foo"},
		{"name":"bar","value":"bar"}
	]}}`, string(b))
}

func TestNewMessageScalar(t *testing.T) {
	msg, err := NewMessage(42)
	require.NoError(t, err)
	require.Len(t, msg.Data, 1)
	assert.Equal(t, 42, msg.Data[0].Value)
}

func TestNewMessageEmpty(t *testing.T) {
	msg, err := NewMessage(nil)
	require.NoError(t, err)

	b, err := msg.MarshalIndent(false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"uber":{"version":"1.0"}}`, string(b))
}

func TestNewMessageError(t *testing.T) {
	n := &node{}
	n.Next = n
	_, err := NewMessage(n)
	assert.ErrorIs(t, err, ErrCycle)
}

func TestErrorMessage(t *testing.T) {
	msg := ErrorMessage(
		ErrorField{Name: "status", Value: 404},
		ErrorField{Name: "message", Value: "not found"},
		ErrorField{Name: "cause", Value: errors.New("gone")},
	)

	b, err := msg.MarshalIndent(false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"uber":{"version":"1.0","error":[{"data":[
		{"name":"status","value":404},
		{"name":"message","value":"not found"},
		{"name":"cause","value":"gone"}
	]}]}}`, string(b))
}

func TestMarshalIndentPretty(t *testing.T) {
	msg := &Message{Version: Version}
	b, err := msg.MarshalIndent(true)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), "\n  "))
}

func TestNewMessageScalarResource(t *testing.T) {
	msg, err := NewMessage(hypermedia.NewResource("hello", hypermedia.NewLink("/greeting", hypermedia.RelSelf)))
	require.NoError(t, err)

	require.Len(t, msg.Data, 2)
	assert.Equal(t, []string{"self"}, msg.Data[0].Rel)
	assert.Equal(t, "hello", msg.Data[1].Value)
}

func TestMarshalIndentKeepsModel(t *testing.T) {
	msg := &Message{Version: Version}
	msg.AddData(&Node{Rel: []string{"search"}, URL: "/people", Model: "foo={foo}&bar={bar}"})

	for _, pretty := range []bool{false, true} {
		b, err := msg.MarshalIndent(pretty)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"foo={foo}&bar={bar}"`)
		assert.False(t, strings.HasSuffix(string(b), "\n"))
	}
}
