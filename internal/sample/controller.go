package sample

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/conduit-lang/hypermedia/internal/web/response"
	"github.com/conduit-lang/hypermedia/internal/web/router"
	"github.com/conduit-lang/hypermedia/pkg/action"
	"github.com/conduit-lang/hypermedia/pkg/hypermedia"
)

// Route names
const (
	routePeople              = "people"
	routeCustomer            = "customer"
	routeCustomerByID        = "customerById"
	routeCustomerByName      = "customerByName"
	routeCustomerByAttribute = "customerByAttribute"
	routeCustomerByMood      = "customerByMood"
	routeDetails             = "details"
	routeNumbers             = "numbers"
	routeEditor              = "editor"
)

// Controller serves people as UBER resources and the operations on
// them as action descriptors
type Controller struct {
	access   PersonAccess
	registry *action.Registry
	render   *response.Renderer
	router   *router.Router
	baseURL  string
}

// NewController creates a controller. baseURL prefixes every link it
// produces and may be empty for relative links.
func NewController(access PersonAccess, render *response.Renderer, baseURL string) *Controller {
	return &Controller{
		access:   access,
		registry: NewRegistry(access),
		render:   render,
		baseURL:  baseURL,
	}
}

// Register adds the controller's routes to r
func (c *Controller) Register(r *router.Router) {
	c.router = r
	h := c.render.Handler

	r.Get("/people", h(c.listPeople)).Named(routePeople)
	r.Get("/people/customer", h(c.showPerson)).Named(routeCustomer)
	r.Post("/people/customer", h(c.showPersonByName))
	r.Put("/people/customer", h(c.updatePerson))
	r.Get("/people/customerById", h(c.showPersonAction)).Named(routeCustomerByID)
	r.Get("/people/customerByName", h(c.showPersonByNameAction)).Named(routeCustomerByName)
	r.Get("/people/customerByAttribute", h(c.showPersonByAttributesAction)).Named(routeCustomerByAttribute)
	r.Get("/people/customerByMood", h(c.showPersonByMoodAction)).Named(routeCustomerByMood)
	r.Get("/people/customer/{personId}/details", h(c.showPersonDetails)).Named(routeDetails)
	r.Get("/people/customer/{personId}/numbers", h(c.showNumbers)).Named(routeNumbers)
	r.Get("/people/customer/{personId}/editor", h(c.editPersonAction)).Named(routeEditor)
}

func (c *Controller) url(route string, params map[string]string) (string, error) {
	u, err := c.router.URL(route, params)
	if err != nil {
		return "", err
	}
	return c.baseURL + u, nil
}

func (c *Controller) listPeople(w http.ResponseWriter, r *http.Request) error {
	people, err := c.access.People(r.Context())
	if err != nil {
		return err
	}

	items := make([]*hypermedia.Resource[Person], 0, len(people))
	for _, p := range people {
		res, err := c.personResource(p)
		if err != nil {
			return err
		}
		items = append(items, res)
	}

	links := []hypermedia.Link{}
	for _, l := range []struct{ route, rel string }{
		{routePeople, hypermedia.RelSelf},
		{routeCustomerByID, "searchById"},
		{routeCustomerByName, "searchByName"},
		{routeCustomerByAttribute, "searchByAttribute"},
		{routeCustomerByMood, "searchByMood"},
	} {
		u, err := c.url(l.route, nil)
		if err != nil {
			return err
		}
		links = append(links, hypermedia.NewLink(u, l.rel))
	}

	return c.render.Resource(w, r, http.StatusOK, hypermedia.NewResources(items, links...))
}

// personResource wraps p with links to itself and its actions
func (c *Controller) personResource(p Person) (*hypermedia.Resource[Person], error) {
	id := strconv.FormatInt(p.ID, 10)
	self, err := c.url(routeCustomer, nil)
	if err != nil {
		return nil, err
	}

	res := hypermedia.NewResource(p, hypermedia.NewLink(self+"?personId="+id, hypermedia.RelSelf))
	for _, route := range []string{routeEditor, routeDetails, routeNumbers} {
		u, err := c.url(route, map[string]string{"personId": id})
		if err != nil {
			return nil, err
		}
		res.Add(hypermedia.NewLink(u, route))
	}
	return res, nil
}

func (c *Controller) renderPerson(w http.ResponseWriter, r *http.Request, p Person, err error) error {
	if err != nil {
		return lookupError(err)
	}
	res, err := c.personResource(p)
	if err != nil {
		return err
	}
	return c.render.Resource(w, r, http.StatusOK, res)
}

// showPerson looks a person up by id, attributes or mood, whichever
// parameter was sent
func (c *Controller) showPerson(w http.ResponseWriter, r *http.Request) error {
	params := router.NewParamExtractor(r)
	if err := params.Err(); err != nil {
		return response.BadRequest(err)
	}
	ctx := r.Context()

	switch {
	case params.Has("personId"):
		id, ok, err := params.ParamInt("personId")
		if err != nil {
			return response.BadRequest(err)
		}
		if !ok {
			return response.BadRequest(errors.New("personId must not be empty"))
		}
		p, err := c.access.Person(ctx, int64(id))
		return c.renderPerson(w, r, p, err)

	case params.Has("attr"):
		attrs := params.Params("attr")
		if err := oneOf("attr", attrs, attributes); err != nil {
			return response.BadRequest(err)
		}
		p, err := c.access.PersonByAttributes(ctx, attrs)
		return c.renderPerson(w, r, p, err)

	case params.Has("mood"):
		mood := params.Param("mood")
		if err := oneOf("mood", []string{mood}, moods); err != nil {
			return response.BadRequest(err)
		}
		p, err := c.access.PersonInMood(ctx, mood)
		return c.renderPerson(w, r, p, err)

	default:
		return response.BadRequest(errors.New("one of personId, attr or mood is required"))
	}
}

func (c *Controller) showPersonByName(w http.ResponseWriter, r *http.Request) error {
	params := router.NewParamExtractor(r)
	if err := params.Err(); err != nil {
		return response.BadRequest(err)
	}
	name := params.Param("name")
	if name == "" {
		return response.BadRequest(errors.New("name is required"))
	}

	p, err := c.access.PersonByName(r.Context(), name)
	return c.renderPerson(w, r, p, err)
}

func (c *Controller) updatePerson(w http.ResponseWriter, r *http.Request) error {
	params := router.NewParamExtractor(r)
	if err := params.Err(); err != nil {
		return response.BadRequest(err)
	}

	id, ok, err := params.ParamInt("personId")
	if err != nil {
		return response.BadRequest(err)
	}
	if !ok {
		return response.BadRequest(errors.New("personId is required"))
	}
	gender, err := ParseGender(params.Param("gender"))
	if err != nil {
		return response.BadRequest(err)
	}
	sports, err := ParseSports(params.Params("sports"))
	if err != nil {
		return response.BadRequest(err)
	}
	gadgets, err := ParseGadgets(params.Params("gadgets"))
	if err != nil {
		return response.BadRequest(err)
	}

	current, err := c.access.Person(r.Context(), int64(id))
	if err != nil {
		return lookupError(err)
	}
	current.Firstname = params.Param("firstname")
	current.Lastname = params.Param("lastname")
	current.Gender = gender
	current.Sports = sports
	current.Gadgets = gadgets

	p, err := c.access.Update(r.Context(), current)
	return c.renderPerson(w, r, p, err)
}

func (c *Controller) showPersonAction(w http.ResponseWriter, r *http.Request) error {
	d, err := c.searchByIDAction(DefaultPersonID)
	if err != nil {
		return err
	}
	return c.render.Actions(w, r, d)
}

func (c *Controller) showPersonByNameAction(w http.ResponseWriter, r *http.Request) error {
	d, err := c.searchByNameAction(defaultName)
	if err != nil {
		return err
	}
	return c.render.Actions(w, r, d)
}

func (c *Controller) showPersonByAttributesAction(w http.ResponseWriter, r *http.Request) error {
	d, err := c.searchByAttributesAction(defaultAttributes)
	if err != nil {
		return err
	}
	return c.render.Actions(w, r, d)
}

func (c *Controller) showPersonByMoodAction(w http.ResponseWriter, r *http.Request) error {
	d, err := c.searchByMoodAction(defaultMood)
	if err != nil {
		return err
	}
	return c.render.Actions(w, r, d)
}

// showPersonDetails serves the details action, or the selected details
// once the action was submitted
func (c *Controller) showPersonDetails(w http.ResponseWriter, r *http.Request) error {
	params := router.NewParamExtractor(r)
	if err := params.Err(); err != nil {
		return response.BadRequest(err)
	}
	id, err := params.PathParamInt("personId")
	if err != nil {
		return response.BadRequest(err)
	}
	if _, err := c.access.Person(r.Context(), int64(id)); err != nil {
		return lookupError(err)
	}

	if !params.Has("detail") {
		d, err := c.showDetailsAction(int64(id))
		if err != nil {
			return err
		}
		return lookupError(c.render.Actions(w, r, d))
	}

	resolver, err := c.registry.Lookup(DetailsResolverID)
	if err != nil {
		return err
	}
	possible, err := resolver.Resolve(r.Context(), nil, []any{int64(id)})
	if err != nil {
		return lookupError(err)
	}
	details := params.Params("detail")
	allowed := make([]string, len(possible))
	for i, v := range possible {
		allowed[i] = fmt.Sprint(v)
	}
	if err := oneOf("detail", details, allowed); err != nil {
		return response.BadRequest(err)
	}

	self, err := c.url(routeDetails, map[string]string{"personId": strconv.Itoa(id)})
	if err != nil {
		return err
	}
	res := hypermedia.NewResource(map[string]any{
		"personId": id,
		"detail":   details,
	}, hypermedia.NewLink(self, hypermedia.RelSelf))
	return c.render.Resource(w, r, http.StatusOK, res)
}

// showNumbers serves the numbers action, or the submitted numbers
func (c *Controller) showNumbers(w http.ResponseWriter, r *http.Request) error {
	params := router.NewParamExtractor(r)
	if err := params.Err(); err != nil {
		return response.BadRequest(err)
	}
	id, err := params.PathParamInt("personId")
	if err != nil {
		return response.BadRequest(err)
	}

	if !params.Has("number") {
		d, err := c.showNumbersAction(int64(id), []int{42})
		if err != nil {
			return err
		}
		return c.render.Actions(w, r, d)
	}

	numbers, err := params.ParamInts("number")
	if err != nil {
		return response.BadRequest(err)
	}
	self, err := c.url(routeNumbers, map[string]string{"personId": strconv.Itoa(id)})
	if err != nil {
		return err
	}
	return c.render.Resource(w, r, http.StatusOK,
		hypermedia.NewResource(numbers, hypermedia.NewLink(self, hypermedia.RelSelf)))
}

func (c *Controller) editPersonAction(w http.ResponseWriter, r *http.Request) error {
	params := router.NewParamExtractor(r)
	id, err := params.PathParamInt("personId")
	if err != nil {
		return response.BadRequest(err)
	}

	p, err := c.access.Person(r.Context(), int64(id))
	if err != nil {
		return lookupError(err)
	}
	d, err := c.updatePersonAction(p)
	if err != nil {
		return err
	}
	return c.render.Actions(w, r, d)
}

// lookupError reports a missing person as 404
func lookupError(err error) error {
	if errors.Is(err, ErrPersonNotFound) {
		return response.NotFound(err.Error())
	}
	return err
}

func oneOf(name string, values, allowed []string) error {
	for _, v := range values {
		if !slices.Contains(allowed, v) {
			return fmt.Errorf("invalid value %q for parameter %s", v, name)
		}
	}
	return nil
}
