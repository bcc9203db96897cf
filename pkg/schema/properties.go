/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: properties.go
Description: Insertion-ordered property mapping for object schemas. Field schemas are kept
in the order the sample document presented them and are emitted in that order in both
JSON and YAML output.
*/

package schema

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Properties maps field names to schemas, preserving insertion order
type Properties struct {
	keys  []string
	nodes map[string]*Node
}

// NewProperties creates an empty property mapping
func NewProperties() *Properties {
	return &Properties{
		nodes: make(map[string]*Node),
	}
}

// Set stores the schema for key. A new key is appended; an existing key keeps its
// position and has its schema replaced.
func (p *Properties) Set(key string, node *Node) {
	if p.nodes == nil {
		p.nodes = make(map[string]*Node)
	}
	if _, exists := p.nodes[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.nodes[key] = node
}

// Get returns the schema stored for key
func (p *Properties) Get(key string) (*Node, bool) {
	if p == nil {
		return nil, false
	}
	node, ok := p.nodes[key]
	return node, ok
}

// Has reports whether key is present
func (p *Properties) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Keys returns the field names in insertion order
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// Len returns the number of fields
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// MarshalJSON writes the fields as a JSON object in insertion order
func (p *Properties) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyData, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal property name %q: %w", key, err)
		}
		buf.Write(keyData)
		buf.WriteByte(':')

		nodeData, err := json.Marshal(p.nodes[key])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal property %q: %w", key, err)
		}
		buf.Write(nodeData)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML builds a mapping node so field order survives YAML encoding
func (p *Properties) MarshalYAML() (interface{}, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if p == nil {
		return mapping, nil
	}

	for _, key := range p.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(p.nodes[key]); err != nil {
			return nil, fmt.Errorf("failed to encode property %q: %w", key, err)
		}
		mapping.Content = append(mapping.Content, keyNode, valueNode)
	}
	return mapping, nil
}
