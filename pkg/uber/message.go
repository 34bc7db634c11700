package uber

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	// MediaType is the UBER JSON media type
	MediaType = "application/vnd.uber+json"

	// Version is the UBER format version written into messages
	Version = "1.0"
)

// Message is the root of an UBER document
type Message struct {
	Version string  `json:"version"`
	Data    []*Node `json:"data,omitempty"`
	Error   []*Node `json:"error,omitempty"`
}

// Document is the JSON envelope of a message: {"uber": {...}}
type Document struct {
	Uber *Message `json:"uber"`
}

// NewMessage flattens v into a new message
func NewMessage(v any) (*Message, error) {
	return defaultFlattener.Message(v)
}

// Message flattens v into a new message. A scalar v becomes a data node
// carrying the value, after the links of a wrapper around it.
func (f *Flattener) Message(v any) (*Message, error) {
	root := &Node{}
	if err := f.Flatten(root, v); err != nil {
		return nil, err
	}

	data := root.Data
	if root.Value != nil {
		data = append(data, &Node{Value: root.Value})
	}

	return &Message{
		Version: Version,
		Data:    data,
	}, nil
}

// ErrorMessage creates a message describing a failure. Each entry of
// fields becomes a named leaf of one error node, in order.
func ErrorMessage(fields ...ErrorField) *Message {
	errNode := &Node{}
	for _, f := range fields {
		value, ok := ScalarValue(f.Value)
		if !ok {
			value = fmt.Sprint(f.Value)
		}
		errNode.AddData(&Node{Name: f.Name, Value: value})
	}
	return &Message{
		Version: Version,
		Error:   []*Node{errNode},
	}
}

// ErrorField is a named value of an error node
type ErrorField struct {
	Name  string
	Value any
}

// AddData appends a node to the message data
func (m *Message) AddData(n *Node) {
	m.Data = append(m.Data, n)
}

// Document wraps the message into its JSON envelope
func (m *Message) Document() *Document {
	return &Document{Uber: m}
}

// MarshalIndent encodes the document form of the message. HTML
// characters are written as is so models such as a={a}&b={b} stay
// readable.
func (m *Message) MarshalIndent(pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(m.Document()); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
