/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: values.go
Description: Uniform access to the fields of document values and the elements of array
values, whatever Go or BSON driver representation the sample uses.
*/

package inference

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// field is one key/value pair of a document in iteration order
type field struct {
	Key   string
	Value interface{}
}

// documentFields lists a document's fields. Ordered documents keep their own order;
// unordered maps are iterated by sorted key so output stays deterministic.
func documentFields(value interface{}) ([]field, error) {
	switch doc := value.(type) {
	case primitive.D:
		fields := make([]field, 0, len(doc))
		for _, elem := range doc {
			fields = append(fields, field{Key: elem.Key, Value: elem.Value})
		}
		return fields, nil

	case primitive.M:
		return sortedFields(doc), nil

	case map[string]interface{}:
		return sortedFields(doc), nil

	case bson.Raw:
		elems, err := doc.Elements()
		if err != nil {
			return nil, fmt.Errorf("malformed BSON document: %w", err)
		}
		fields := make([]field, 0, len(elems))
		for _, elem := range elems {
			fields = append(fields, field{Key: elem.Key(), Value: elem.Value()})
		}
		return fields, nil

	case bson.RawValue:
		raw, ok := doc.DocumentOK()
		if !ok {
			return nil, fmt.Errorf("BSON value of type %s is not a document", doc.Type)
		}
		return documentFields(raw)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("value of type %T is not a document", value)
	}
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	fields := make([]field, 0, len(keys))
	for _, key := range keys {
		fields = append(fields, field{Key: key.String(), Value: rv.MapIndex(key).Interface()})
	}
	return fields, nil
}

func sortedFields(m map[string]interface{}) []field {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fields := make([]field, 0, len(keys))
	for _, key := range keys {
		fields = append(fields, field{Key: key, Value: m[key]})
	}
	return fields
}

// fieldNames lists a document's keys in iteration order
func fieldNames(value interface{}) ([]string, error) {
	fields, err := documentFields(value)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Key
	}
	return names, nil
}

// arrayElements lists the elements of an array value
func arrayElements(value interface{}) ([]interface{}, error) {
	switch arr := value.(type) {
	case primitive.A:
		return arr, nil

	case []interface{}:
		return arr, nil

	case bson.RawValue:
		raw, ok := arr.ArrayOK()
		if !ok {
			return nil, fmt.Errorf("BSON value of type %s is not an array", arr.Type)
		}
		values, err := raw.Values()
		if err != nil {
			return nil, fmt.Errorf("malformed BSON array: %w", err)
		}
		elems := make([]interface{}, len(values))
		for i, v := range values {
			elems[i] = v
		}
		return elems, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("value of type %T is not an array", value)
	}
	elems := make([]interface{}, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}
	return elems, nil
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// childPath appends one JSON pointer segment
func childPath(parent, segment string) string {
	return parent + "/" + pointerEscaper.Replace(segment)
}
