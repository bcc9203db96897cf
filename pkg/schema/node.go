/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: node.go
Description: Schema node model for inferred draft-04 documents. A Node describes the shape
of one sample value; the root node additionally carries the $schema envelope and an
optional title.
*/

package schema

import "strconv"

// Draft04 is the $schema URI stamped on every root document
const Draft04 = "http://json-schema.org/draft-04/schema#"

// Node is one fragment of an inferred schema document
type Node struct {
	Schema     string      `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	Title      *string     `json:"title,omitempty" yaml:"title,omitempty"`
	Type       string      `json:"type,omitempty" yaml:"type,omitempty"`
	Properties *Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items      *Node       `json:"items,omitempty" yaml:"items,omitempty"`
	Required   []string    `json:"required,omitempty" yaml:"required,omitempty"`
	OneOf      []*Node     `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
}

// NewEnvelope creates the root node of a schema document without a title
func NewEnvelope() *Node {
	return &Node{Schema: Draft04}
}

// SetTitle sets the title. An empty title is still written out.
func (n *Node) SetTitle(title string) {
	n.Title = &title
}

// LookupTitle returns the title and whether one is set
func (n *Node) LookupTitle() (string, bool) {
	if n == nil || n.Title == nil {
		return "", false
	}
	return *n.Title, true
}

// NewTyped creates a leaf node carrying only a type tag
func NewTyped(tag string) *Node {
	return &Node{Type: tag}
}

// IsRoot reports whether the node carries the $schema envelope
func (n *Node) IsRoot() bool {
	return n != nil && n.Schema != ""
}

// Walk visits the node and every node below it in document order.
// Returning false from fn stops descent into that node's children.
func (n *Node) Walk(fn func(path string, node *Node) bool) {
	n.walk("", fn)
}

func (n *Node) walk(path string, fn func(path string, node *Node) bool) {
	if n == nil || !fn(path, n) {
		return
	}
	if n.Properties != nil {
		for _, key := range n.Properties.Keys() {
			child, _ := n.Properties.Get(key)
			child.walk(path+"/properties/"+key, fn)
		}
	}
	if n.Items != nil {
		n.Items.walk(path+"/items", fn)
	}
	for i, branch := range n.OneOf {
		branch.walk(path+"/oneOf/"+strconv.Itoa(i), fn)
	}
}
