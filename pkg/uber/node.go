// Package uber converts domain objects and links into the UBER hypermedia
// representation: an ordered tree of nodes where links sit among data
// nodes at the position they were added.
package uber

import (
	"github.com/conduit-lang/hypermedia/pkg/hypermedia"
)

// nullValue marshals as JSON null. It is distinct from an absent value.
type nullValue struct{}

func (nullValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func (nullValue) String() string {
	return "null"
}

// Null is the explicit null sentinel for Node.Value
var Null any = nullValue{}

// Node is an element of an UBER document tree.
// Field order matches the order of properties in the UBER JSON format.
type Node struct {
	ID         string   `json:"id,omitempty"`
	Name       string   `json:"name,omitempty"`
	Rel        []string `json:"rel,omitempty"`
	URL        string   `json:"url,omitempty"`
	Action     Action   `json:"action,omitempty"`
	Transclude bool     `json:"transclude,omitempty"`
	Model      string   `json:"model,omitempty"`
	Sending    []string `json:"sending,omitempty"`
	Accepting  []string `json:"accepting,omitempty"`
	// Value is a string, number, bool or Null. nil means absent.
	Value any     `json:"value,omitempty"`
	Data  []*Node `json:"data,omitempty"`
}

// IsLink reports whether the node represents a link rather than data
func (n *Node) IsLink() bool {
	return (len(n.Rel) > 0 || n.URL != "") && n.Name == "" && n.Value == nil
}

// IsNull reports whether the node's value is the explicit null sentinel
func (n *Node) IsNull() bool {
	_, ok := n.Value.(nullValue)
	return ok
}

// AddData appends a child node
func (n *Node) AddData(child *Node) {
	n.Data = append(n.Data, child)
}

// AddLink converts the link and appends it to the data sequence
func (n *Node) AddLink(link hypermedia.Link) error {
	linkNode, err := LinkNode(link)
	if err != nil {
		return err
	}
	n.Data = append(n.Data, linkNode)
	return nil
}

// AddLinks appends all links in order. Nothing is appended if any of
// them cannot be converted.
func (n *Node) AddLinks(links []hypermedia.Link) error {
	nodes := make([]*Node, 0, len(links))
	for _, link := range links {
		linkNode, err := LinkNode(link)
		if err != nil {
			return err
		}
		nodes = append(nodes, linkNode)
	}
	n.Data = append(n.Data, nodes...)
	return nil
}

// Items returns the data children that are not links, in order
func (n *Node) Items() []*Node {
	items := make([]*Node, 0, len(n.Data))
	for _, child := range n.Data {
		if !child.IsLink() {
			items = append(items, child)
		}
	}
	return items
}

// Links returns the link children, in order
func (n *Node) Links() []*Node {
	var links []*Node
	for _, child := range n.Data {
		if child.IsLink() {
			links = append(links, child)
		}
	}
	return links
}

// FirstByRel returns the first direct child carrying rel
func (n *Node) FirstByRel(rel string) *Node {
	for _, child := range n.Data {
		for _, r := range child.Rel {
			if r == rel {
				return child
			}
		}
	}
	return nil
}

// FirstByName returns the first direct child with the given name
func (n *Node) FirstByName(name string) *Node {
	for _, child := range n.Data {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Walk visits the node and its descendants depth-first in document order.
// Returning false from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Data {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}
