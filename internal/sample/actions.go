package sample

import (
	"net/http"
	"reflect"

	"github.com/conduit-lang/hypermedia/pkg/action"
)

var (
	attributes = []string{"hungry", "thirsty", "tired"}
	moods      = []string{"angry", "happy", "grumpy", "bored", "ecstatic"}
)

const (
	defaultName = "Bombur"
	defaultMood = "angry"
)

var defaultAttributes = []string{"hungry", "tired"}

func personIDInput() *action.Input {
	return &action.Input{Min: action.Int(0), Max: action.Int(9999)}
}

func hiddenInput() *action.Input {
	return &action.Input{Type: action.InputHidden}
}

func (c *Controller) build(resourceName, route, method string, params ...action.Parameter) (*action.Descriptor, error) {
	pattern, err := c.router.Pattern(route)
	if err != nil {
		return nil, err
	}
	return action.Build(action.Spec{
		ResourceName: resourceName,
		URLTemplate:  c.baseURL + pattern,
		Method:       method,
		Parameters:   params,
	}, c.registry)
}

func (c *Controller) searchByIDAction(id int64) (*action.Descriptor, error) {
	return c.build("searchPerson", routeCustomer, http.MethodGet,
		action.Parameter{Name: "personId", Value: id, Input: personIDInput()},
	)
}

func (c *Controller) searchByNameAction(name string) (*action.Descriptor, error) {
	return c.build("searchPerson", routeCustomer, http.MethodPost,
		action.Parameter{Name: "name", Value: name},
	)
}

func (c *Controller) searchByAttributesAction(attrs []string) (*action.Descriptor, error) {
	return c.build("searchPerson", routeCustomer, http.MethodGet,
		action.Parameter{Name: "attr", Value: attrs, Select: &action.Select{Values: attributes}},
	)
}

func (c *Controller) searchByMoodAction(mood string) (*action.Descriptor, error) {
	return c.build("searchPerson", routeCustomer, http.MethodGet,
		action.Parameter{Name: "mood", Value: mood, Select: &action.Select{Values: moods}},
	)
}

func (c *Controller) showDetailsAction(id int64) (*action.Descriptor, error) {
	return c.build("showDetails", routeDetails, http.MethodGet,
		action.Parameter{Name: "personId", Source: action.PathVariable, Value: id, Input: hiddenInput()},
		action.Parameter{
			Name:   "detail",
			Type:   reflect.TypeOf([]string(nil)),
			Select: &action.Select{Resolver: DetailsResolverID, Args: []string{"personId"}},
		},
	)
}

func (c *Controller) showNumbersAction(id int64, numbers []int) (*action.Descriptor, error) {
	return c.build("showNumbers", routeNumbers, http.MethodGet,
		action.Parameter{Name: "personId", Source: action.PathVariable, Value: id, Input: hiddenInput()},
		action.Parameter{Name: "number", Value: numbers},
	)
}

func (c *Controller) updatePersonAction(p Person) (*action.Descriptor, error) {
	return c.build("updatePerson", routeCustomer, http.MethodPut,
		action.Parameter{Name: "personId", Value: p.ID, Input: hiddenInput()},
		action.Parameter{Name: "firstname", Value: p.Firstname},
		action.Parameter{Name: "lastname", Value: p.Lastname},
		action.Parameter{Name: "gender", Value: p.Gender},
		action.Parameter{Name: "sports", Type: reflect.TypeOf([]Sport(nil)), Value: p.Sports},
		action.Parameter{Name: "gadgets", Type: reflect.TypeOf([]Gadget(nil)), Value: p.Gadgets},
	)
}
