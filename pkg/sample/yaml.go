/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: yaml.go
Description: YAML sample decoding. Converts the yaml.v3 node tree into ordered documents
and resolves scalar tags (!!int, !!float, !!timestamp, !!binary, ...) to typed values.
*/

package sample

import (
	"encoding/base64"
	"fmt"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes the first document of a YAML stream
func DecodeYAML(data []byte) (interface{}, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		return nil, ErrEmptySample
	}
	return yamlValue(&root)
}

func yamlValue(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return yamlValue(node.Content[0])

	case yaml.AliasNode:
		if node.Alias == nil {
			return nil, fmt.Errorf("line %d: unresolved alias", node.Line)
		}
		return yamlValue(node.Alias)

	case yaml.MappingNode:
		doc := make(bson.D, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: only scalar mapping keys are supported", keyNode.Line)
			}
			value, err := yamlValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			doc = append(doc, bson.E{Key: keyNode.Value, Value: value})
		}
		return doc, nil

	case yaml.SequenceNode:
		arr := make(bson.A, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := yamlValue(child)
			if err != nil {
				return nil, err
			}
			arr = append(arr, value)
		}
		return arr, nil

	case yaml.ScalarNode:
		return yamlScalar(node)

	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
	}
}

func yamlScalar(node *yaml.Node) (interface{}, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil

	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return b, nil

	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			// out of int64 range, keep it as a double
			var f float64
			if ferr := node.Decode(&f); ferr != nil {
				return nil, fmt.Errorf("line %d: %w", node.Line, err)
			}
			return f, nil
		}
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return int32(i), nil
		}
		return i, nil

	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return f, nil

	case "!!timestamp":
		var t time.Time
		if err := node.Decode(&t); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return t, nil

	case "!!binary":
		data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(node.Value), ""))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binary scalar: %w", node.Line, err)
		}
		return primitive.Binary{Subtype: 0x00, Data: data}, nil

	default:
		return node.Value, nil
	}
}
