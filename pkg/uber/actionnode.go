package uber

import (
	"github.com/conduit-lang/hypermedia/pkg/action"
)

// ActionNode converts an action descriptor into an UBER link node. The
// node's rel is the action's resource name and its model lists the
// request parameters in the method dependent shape of Model.
func ActionNode(d *action.Descriptor) (*Node, error) {
	act, err := ForRequestMethod(d.HTTPMethod())
	if err != nil {
		return nil, err
	}

	return &Node{
		Rel:    []string{d.ResourceName()},
		URL:    d.ActionLink(),
		Action: act,
		Model:  Model(d.HTTPMethod(), d.RequestParamNames()),
	}, nil
}

// ActionMessage creates a message holding one action node per descriptor
func ActionMessage(descriptors ...*action.Descriptor) (*Message, error) {
	msg := &Message{Version: Version}
	for _, d := range descriptors {
		n, err := ActionNode(d)
		if err != nil {
			return nil, err
		}
		msg.AddData(n)
	}
	return msg, nil
}
