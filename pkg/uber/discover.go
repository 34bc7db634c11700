package uber

import (
	"encoding/json"
	"fmt"
	"io"
)

// Discoverer finds link targets by relation in UBER JSON documents
type Discoverer struct{}

// FindLinksWithRel returns the urls of all link nodes carrying rel, in
// document order
func (Discoverer) FindLinksWithRel(rel string, r io.Reader) ([]string, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode uber document: %w", err)
	}
	if doc.Uber == nil {
		return nil, fmt.Errorf("not an uber document: missing uber root")
	}

	var urls []string
	visit := func(n *Node) bool {
		for _, r := range n.Rel {
			if r == rel {
				urls = append(urls, n.URL)
				break
			}
		}
		return true
	}
	for _, n := range doc.Uber.Data {
		n.Walk(visit)
	}
	return urls, nil
}

// FindLinkWithRel returns the url of the first link carrying rel
func (d Discoverer) FindLinkWithRel(rel string, r io.Reader) (string, bool, error) {
	urls, err := d.FindLinksWithRel(rel, r)
	if err != nil {
		return "", false, err
	}
	if len(urls) == 0 {
		return "", false, nil
	}
	return urls[0], true, nil
}
