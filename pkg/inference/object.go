/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: object.go
Description: Object processor. Builds "object" schemas from documents and merges the fields
of successive documents into a running property mapping for arrays of objects.
*/

package inference

import (
	"github.com/kleascm/bsonschema/pkg/schema"
)

// buildObjectSchema creates a standalone object schema for a document
func (e *Engine) buildObjectSchema(value interface{}, path string) (*schema.Node, error) {
	props, err := e.mergeObjectProperties(value, schema.NewProperties(), path)
	if err != nil {
		return nil, err
	}
	return &schema.Node{
		Type:       string(TagObject),
		Properties: props,
	}, nil
}

// mergeObjectProperties adds the document's fields to props and returns the result.
// Fields already present are replaced by this document's schema for them.
func (e *Engine) mergeObjectProperties(value interface{}, props *schema.Properties, path string) (*schema.Properties, error) {
	if props == nil {
		props = schema.NewProperties()
	}

	fields, err := documentFields(value)
	if err != nil {
		return nil, err
	}

	for _, f := range fields {
		fieldPath := childPath(path, f.Key)

		tag, err := e.classify(f.Value, fieldPath)
		if err != nil {
			return nil, err
		}
		// undefined fields are described as nullable rather than dropped
		if tag == TagUndefined {
			tag = TagNull
		}

		var node *schema.Node
		switch tag {
		case TagObject:
			node, err = e.buildObjectSchema(f.Value, fieldPath)
		case TagArray:
			node, err = e.buildArraySchema(f.Value, fieldPath)
		default:
			node = schema.NewTyped(string(tag))
		}
		if err != nil {
			return nil, err
		}

		props.Set(f.Key, node)
	}

	return props, nil
}
