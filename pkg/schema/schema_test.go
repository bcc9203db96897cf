/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: schema_test.go
Description: Tests for the schema node model, ordered properties and document encoding.
*/

package schema_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kleascm/bsonschema/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// sampleDocument builds a small document with out-of-alphabet key order
func sampleDocument() *schema.Node {
	inner := schema.NewProperties()
	inner.Set("y", schema.NewTyped("double"))

	props := schema.NewProperties()
	props.Set("b", schema.NewTyped("string"))
	props.Set("a", &schema.Node{Type: "object", Properties: inner})
	props.Set("list", &schema.Node{
		Type:  "array",
		Items: &schema.Node{OneOf: []*schema.Node{schema.NewTyped("int"), schema.NewTyped("null")}},
	})

	root := schema.NewEnvelope()
	root.SetTitle("Thing")
	root.Type = "object"
	root.Properties = props
	return root
}

// TestPropertiesOrder tests insertion order and in-place replacement
func TestPropertiesOrder(t *testing.T) {
	props := schema.NewProperties()
	props.Set("z", schema.NewTyped("int"))
	props.Set("a", schema.NewTyped("int"))
	props.Set("z", schema.NewTyped("string"))

	assert.Equal(t, []string{"z", "a"}, props.Keys())
	assert.Equal(t, 2, props.Len())

	node, ok := props.Get("z")
	require.True(t, ok)
	assert.Equal(t, "string", node.Type)

	assert.True(t, props.Has("a"))
	assert.False(t, props.Has("missing"))

	keys := props.Keys()
	keys[0] = "changed"
	assert.Equal(t, []string{"z", "a"}, props.Keys())
}

// TestPropertiesNilSafe tests read access on a nil mapping
func TestPropertiesNilSafe(t *testing.T) {
	var props *schema.Properties
	assert.Equal(t, 0, props.Len())
	assert.Nil(t, props.Keys())
	assert.False(t, props.Has("a"))
}

// TestMarshalJSONOrder tests that JSON output keeps property order
func TestMarshalJSONOrder(t *testing.T) {
	data, err := schema.Marshal(sampleDocument(), schema.FormatJSON, 0)
	require.NoError(t, err)

	output := string(data)
	assert.JSONEq(t, `{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"title": "Thing",
		"type": "object",
		"properties": {
			"b": {"type": "string"},
			"a": {"type": "object", "properties": {"y": {"type": "double"}}},
			"list": {"type": "array", "items": {"oneOf": [{"type": "int"}, {"type": "null"}]}}
		}
	}`, output)

	assert.Less(t, strings.Index(output, `"b"`), strings.Index(output, `"a"`))
	assert.Less(t, strings.Index(output, `"$schema"`), strings.Index(output, `"title"`))
}

// TestMarshalJSONIndent tests indented JSON output
func TestMarshalJSONIndent(t *testing.T) {
	data, err := schema.Marshal(schema.NewTyped("int"), schema.FormatJSON, 4)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"type\": \"int\"\n}\n", string(data))
}

// TestMarshalYAMLOrder tests that YAML output keeps property order
func TestMarshalYAMLOrder(t *testing.T) {
	data, err := schema.Marshal(sampleDocument(), schema.FormatYAML, 2)
	require.NoError(t, err)

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Len(t, doc.Content, 1)

	root := doc.Content[0]
	require.Equal(t, yaml.MappingNode, root.Kind)
	assert.Equal(t, []string{"$schema", "title", "type", "properties"}, mappingKeys(root))

	props := root.Content[7]
	assert.Equal(t, []string{"b", "a", "list"}, mappingKeys(props))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, schema.Draft04, decoded["$schema"])
}

func mappingKeys(node *yaml.Node) []string {
	var keys []string
	for i := 0; i < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

// TestEmptyProperties tests that an empty mapping is written as an empty object
func TestEmptyProperties(t *testing.T) {
	node := &schema.Node{Type: "object", Properties: schema.NewProperties()}

	data, err := schema.Marshal(node, schema.FormatJSON, 0)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object","properties":{}}`, string(data))

	data, err = schema.Marshal(node, schema.FormatYAML, 2)
	require.NoError(t, err)
	assert.Contains(t, string(data), "properties: {}")
}

// TestEncodeErrors tests rejected encoder input
func TestEncodeErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, schema.Encode(&buf, nil, schema.FormatJSON, 0))
	assert.Error(t, schema.Encode(&buf, schema.NewTyped("int"), schema.FormatJSON, -1))
	assert.Error(t, schema.Encode(&buf, schema.NewTyped("int"), schema.Format("xml"), 0))
	assert.Zero(t, buf.Len())
}

// TestParseFormat tests output format names
func TestParseFormat(t *testing.T) {
	cases := map[string]schema.Format{
		"":      schema.FormatJSON,
		"json":  schema.FormatJSON,
		"JSON":  schema.FormatJSON,
		"yaml":  schema.FormatYAML,
		" yml ": schema.FormatYAML,
	}
	for name, expected := range cases {
		format, err := schema.ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, format, name)
	}

	_, err := schema.ParseFormat("toml")
	assert.Error(t, err)
}

// TestWalk tests traversal order and paths
func TestWalk(t *testing.T) {
	var paths []string
	sampleDocument().Walk(func(path string, node *schema.Node) bool {
		paths = append(paths, path)
		return true
	})

	assert.Equal(t, []string{
		"",
		"/properties/b",
		"/properties/a",
		"/properties/a/properties/y",
		"/properties/list",
		"/properties/list/items",
		"/properties/list/items/oneOf/0",
		"/properties/list/items/oneOf/1",
	}, paths)
}

// TestWalkPrune tests that returning false skips children
func TestWalkPrune(t *testing.T) {
	count := 0
	sampleDocument().Walk(func(path string, node *schema.Node) bool {
		count++
		return node.Type != "object" || node.IsRoot()
	})
	// y under a is skipped
	assert.Equal(t, 7, count)
}

// TestEnvelope tests root node construction and titles
func TestEnvelope(t *testing.T) {
	root := schema.NewEnvelope()
	assert.True(t, root.IsRoot())
	_, ok := root.LookupTitle()
	assert.False(t, ok)
	assert.False(t, schema.NewTyped("int").IsRoot())

	var missing *schema.Node
	assert.False(t, missing.IsRoot())
	_, ok = missing.LookupTitle()
	assert.False(t, ok)
}

// TestEmptyTitleIsWritten tests that a set but empty title survives encoding
func TestEmptyTitleIsWritten(t *testing.T) {
	root := schema.NewEnvelope()
	root.SetTitle("")
	root.Type = "int"

	title, ok := root.LookupTitle()
	assert.True(t, ok)
	assert.Empty(t, title)

	data, err := schema.Marshal(root, schema.FormatJSON, 0)
	require.NoError(t, err)
	assert.JSONEq(t, `{"$schema":"http://json-schema.org/draft-04/schema#","title":"","type":"int"}`, string(data))

	data, err = schema.Marshal(root, schema.FormatYAML, 2)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "title")
	assert.Equal(t, "", decoded["title"])
}
