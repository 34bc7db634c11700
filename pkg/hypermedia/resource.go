package hypermedia

// LinkBearer is implemented by values that carry their own links.
type LinkBearer interface {
	Links() []Link
}

// Wrapper bundles exactly one payload with a set of links.
type Wrapper interface {
	LinkBearer
	WrappedContent() any
}

// CollectionWrapper bundles an iterable payload with a set of links.
type CollectionWrapper interface {
	LinkBearer
	WrappedItems() []any
}

// ResourceSupport holds links and is meant to be embedded into records
// that should be decorated with navigation links.
//
//	type PersonResource struct {
//		hypermedia.ResourceSupport
//		Name string `json:"name"`
//	}
type ResourceSupport struct {
	links []Link
}

// Add appends links
func (s *ResourceSupport) Add(links ...Link) {
	s.links = append(s.links, links...)
}

// Links returns the attached links in the order they were added
func (s ResourceSupport) Links() []Link {
	return s.links
}

// LinkByRel returns the first link with the given relation
func (s ResourceSupport) LinkByRel(rel string) (Link, bool) {
	for _, l := range s.links {
		if l.HasRel(rel) {
			return l, true
		}
	}
	return Link{}, false
}

// Resource wraps a single payload together with its links.
type Resource[T any] struct {
	ResourceSupport
	Content T
}

// NewResource creates a resource for content
func NewResource[T any](content T, links ...Link) *Resource[T] {
	r := &Resource[T]{Content: content}
	r.Add(links...)
	return r
}

// WrappedContent returns the payload
func (r Resource[T]) WrappedContent() any {
	return r.Content
}

// Resources wraps a collection of payloads together with links that
// apply to the collection as a whole.
type Resources[T any] struct {
	ResourceSupport
	Content []T
}

// NewResources creates a collection resource
func NewResources[T any](content []T, links ...Link) *Resources[T] {
	r := &Resources[T]{Content: content}
	r.Add(links...)
	return r
}

// WrappedItems returns the payload items
func (r Resources[T]) WrappedItems() []any {
	items := make([]any, len(r.Content))
	for i, item := range r.Content {
		items[i] = item
	}
	return items
}
