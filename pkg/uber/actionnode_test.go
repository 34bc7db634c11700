package uber

import (
	"net/http"
	"testing"

	"github.com/conduit-lang/hypermedia/pkg/action"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionNode(t *testing.T) {
	d, err := action.Build(action.Spec{
		ResourceName: "changePerson",
		URLTemplate:  "/people/{personId}",
		Method:       http.MethodPut,
		Parameters: []action.Parameter{
			{Name: "personId", Source: action.PathVariable, Value: 1234},
			{Name: "firstname", Value: "Bilbo"},
			{Name: "lastname", Value: "Baggins"},
		},
	}, nil)
	require.NoError(t, err)

	n, err := ActionNode(d)
	require.NoError(t, err)
	assert.Equal(t, &Node{
		Rel:    []string{"changePerson"},
		URL:    "/people/1234",
		Action: ActionReplace,
		Model:  "firstname={firstname}&lastname={lastname}",
	}, n)
}

func TestActionMessage(t *testing.T) {
	search := action.NewDescriptor("search", "/people", http.MethodGet)
	pv, err := action.NewParameterValue(action.Parameter{Name: "name"}, nil)
	require.NoError(t, err)
	search.AddRequestParam("name", pv)

	msg, err := ActionMessage(search)
	require.NoError(t, err)
	require.Len(t, msg.Data, 1)
	assert.Equal(t, "{?name}", msg.Data[0].Model)
	assert.Empty(t, msg.Data[0].Action)

	_, err = ActionMessage(action.NewDescriptor("x", "/x", http.MethodOptions))
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}
