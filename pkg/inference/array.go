/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: array.go
Description: Array processor. Decides whether an array is homogeneous, emits a single item
type or oneOf branches, and accumulates properties and required keys across arrays of
objects.
*/

package inference

import (
	"slices"
	"strconv"

	"github.com/kleascm/bsonschema/pkg/schema"
)

// buildArraySchema creates a standalone array schema
func (e *Engine) buildArraySchema(value interface{}, path string) (*schema.Node, error) {
	items, err := e.mergeArrayItems(value, &schema.Node{}, path)
	if err != nil {
		return nil, err
	}
	return &schema.Node{
		Type:  string(TagArray),
		Items: items,
	}, nil
}

// mergeArrayItems describes the array's elements into items and returns the items fragment
func (e *Engine) mergeArrayItems(value interface{}, items *schema.Node, path string) (*schema.Node, error) {
	if items == nil {
		items = &schema.Node{}
	}

	elems, err := arrayElements(value)
	if err != nil {
		return nil, err
	}

	// The scan stops at the first element whose tag differs from the first one
	var shared Tag
	heterogeneous := false
	for i, elem := range elems {
		tag, err := e.classify(elem, childPath(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		if i > 0 && tag != shared {
			heterogeneous = true
			break
		}
		shared = tag
	}

	if heterogeneous {
		items.OneOf = make([]*schema.Node, 0, len(elems))
	} else {
		items.Type = string(outputTag(shared))
	}

	if !heterogeneous && shared != TagObject {
		return items, nil
	}

	for i, elem := range elems {
		elemPath := childPath(path, strconv.Itoa(i))

		tag, err := e.classify(elem, elemPath)
		if err != nil {
			return nil, err
		}

		var branch *schema.Node
		switch tag {
		case TagObject:
			if items.Properties != nil {
				keys, err := fieldNames(elem)
				if err != nil {
					return nil, err
				}
				items.Required = uniqueKeys(items.Properties, keys, items.Required)
			}

			var props *schema.Properties
			if !heterogeneous {
				props = items.Properties
			}
			props, err = e.mergeObjectProperties(elem, props, elemPath)
			if err != nil {
				return nil, err
			}

			if !heterogeneous {
				items.Properties = props
				continue
			}
			// the branch is the merged mapping alone, without a type
			branch = &schema.Node{Properties: props}

		case TagArray:
			// the branch is the nested items fragment itself
			branch, err = e.mergeArrayItems(elem, &schema.Node{}, elemPath)
			if err != nil {
				return nil, err
			}

		default:
			branch = schema.NewTyped(string(outputTag(tag)))
		}

		items.OneOf = append(items.OneOf, branch)
	}

	return items, nil
}

// uniqueKeys recomputes the required list before the next object element is merged.
// known holds the keys merged so far, keys those of the incoming element and required
// the running list. A key of the element that is unknown is dropped from the list; a
// known key not yet listed is appended.
func uniqueKeys(known *schema.Properties, keys []string, required []string) []string {
	result := make([]string, len(required), len(required)+len(keys))
	copy(result, required)

	for _, key := range keys {
		idx := slices.Index(result, key)
		if !known.Has(key) {
			if idx != -1 {
				result = slices.Delete(result, idx, idx+1)
			}
		} else if idx == -1 {
			result = append(result, key)
		}
	}

	return result
}

// outputTag maps undefined onto null; undefined never appears in a schema
func outputTag(tag Tag) Tag {
	if tag == TagUndefined {
		return TagNull
	}
	return tag
}
