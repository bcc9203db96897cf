/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: decode_test.go
Description: Tests for sample decoders and format detection.
*/

package sample_test

import (
	"errors"
	"testing"
	"time"

	"github.com/kleascm/bsonschema/pkg/inference"
	"github.com/kleascm/bsonschema/pkg/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestDecodeJSON tests ordered documents and numeric narrowing
func TestDecodeJSON(t *testing.T) {
	value, err := sample.DecodeJSON([]byte(`{
		"b": 1,
		"a": {"y": 1.5, "x": "s"},
		"c": [1, 3000000000, null, true, 2.0]
	}`))
	require.NoError(t, err)

	expected := bson.D{
		{Key: "b", Value: int32(1)},
		{Key: "a", Value: bson.D{{Key: "y", Value: 1.5}, {Key: "x", Value: "s"}}},
		{Key: "c", Value: bson.A{int32(1), int64(3000000000), nil, true, 2.0}},
	}
	assert.Equal(t, expected, value)
}

// TestDecodeJSONScalars tests top-level scalar values
func TestDecodeJSONScalars(t *testing.T) {
	cases := map[string]interface{}{
		`"text"`: "text",
		`42`:     int32(42),
		`-1e2`:   -100.0,
		`false`:  false,
		`null`:   nil,
		`[]`:     bson.A{},
		`{}`:     bson.D{},
	}
	for input, expected := range cases {
		value, err := sample.DecodeJSON([]byte(input))
		require.NoError(t, err, input)
		assert.Equal(t, expected, value, input)
	}
}

// TestDecodeJSONErrors tests malformed input
func TestDecodeJSONErrors(t *testing.T) {
	_, err := sample.DecodeJSON([]byte("   "))
	assert.True(t, errors.Is(err, sample.ErrEmptySample))

	for _, input := range []string{`{"a":}`, `{"a":1`, `[1,`, `{"a":1} {"b":2}`, `nope`} {
		_, err := sample.DecodeJSON([]byte(input))
		assert.Error(t, err, input)
	}
}

// TestDecodeExtJSON tests Extended JSON wrappers
func TestDecodeExtJSON(t *testing.T) {
	value, err := sample.DecodeExtJSON([]byte(`{
		"_id": {"$oid": "5f1b2c3d4e5f6a7b8c9d0e1f"},
		"n": {"$numberLong": "5"},
		"d": {"$date": "2020-01-01T00:00:00Z"},
		"i": 1,
		"f": 1.5,
		"tags": ["a"]
	}`))
	require.NoError(t, err)

	doc, ok := value.(bson.D)
	require.True(t, ok)
	require.Len(t, doc, 6)

	oid, _ := primitive.ObjectIDFromHex("5f1b2c3d4e5f6a7b8c9d0e1f")
	assert.Equal(t, oid, doc[0].Value)
	assert.Equal(t, int64(5), doc[1].Value)
	assert.Equal(t, primitive.NewDateTimeFromTime(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)), doc[2].Value)
	assert.Equal(t, int32(1), doc[3].Value)
	assert.Equal(t, 1.5, doc[4].Value)
	assert.Equal(t, bson.A{"a"}, doc[5].Value)

	node, err := inference.Infer(value)
	require.NoError(t, err)
	id, _ := node.Properties.Get("_id")
	assert.Equal(t, "objectId", id.Type)
	d, _ := node.Properties.Get("d")
	assert.Equal(t, "date", d.Type)
}

// TestDecodeExtJSONRootArray tests non-document roots
func TestDecodeExtJSONRootArray(t *testing.T) {
	value, err := sample.DecodeExtJSON([]byte(`[{"$numberLong": "7"}, "x"]`))
	require.NoError(t, err)
	assert.Equal(t, bson.A{int64(7), "x"}, value)

	_, err = sample.DecodeExtJSON([]byte(`{"$oid": "bad"}`))
	assert.Error(t, err)
}

// TestDecodeBSON tests reading the first document of a dump
func TestDecodeBSON(t *testing.T) {
	first := bson.D{{Key: "a", Value: int32(1)}, {Key: "s", Value: "x"}}
	data, err := bson.Marshal(first)
	require.NoError(t, err)
	second, err := bson.Marshal(bson.D{{Key: "other", Value: true}})
	require.NoError(t, err)

	value, err := sample.DecodeBSON(append(data, second...))
	require.NoError(t, err)
	assert.Equal(t, first, value)
}

// TestDecodeBSONErrors tests truncated and corrupt data
func TestDecodeBSONErrors(t *testing.T) {
	_, err := sample.DecodeBSON(nil)
	assert.True(t, errors.Is(err, sample.ErrEmptySample))

	_, err = sample.DecodeBSON([]byte{1, 2})
	assert.Error(t, err)

	_, err = sample.DecodeBSON([]byte{0xff, 0, 0, 0, 0, 0})
	assert.Error(t, err)
}

// TestDecodeYAML tests scalar tag resolution and ordering
func TestDecodeYAML(t *testing.T) {
	value, err := sample.DecodeYAML([]byte(`
name: widget
count: 3
big: 3000000000
ratio: 0.5
active: true
created: 2001-12-14T21:59:43Z
blob: !!binary aGVsbG8=
tags: [a, b]
nothing: null
`))
	require.NoError(t, err)

	doc, ok := value.(bson.D)
	require.True(t, ok)
	require.Len(t, doc, 9)

	assert.Equal(t, bson.E{Key: "name", Value: "widget"}, doc[0])
	assert.Equal(t, int32(3), doc[1].Value)
	assert.Equal(t, int64(3000000000), doc[2].Value)
	assert.Equal(t, 0.5, doc[3].Value)
	assert.Equal(t, true, doc[4].Value)
	assert.Equal(t, time.Date(2001, 12, 14, 21, 59, 43, 0, time.UTC), doc[5].Value)
	assert.Equal(t, primitive.Binary{Data: []byte("hello")}, doc[6].Value)
	assert.Equal(t, bson.A{"a", "b"}, doc[7].Value)
	assert.Nil(t, doc[8].Value)
}

// TestDecodeYAMLAliases tests anchors and aliases
func TestDecodeYAMLAliases(t *testing.T) {
	value, err := sample.DecodeYAML([]byte("base: &b {x: 1}\ncopy: *b\n"))
	require.NoError(t, err)

	inner := bson.D{{Key: "x", Value: int32(1)}}
	assert.Equal(t, bson.D{{Key: "base", Value: inner}, {Key: "copy", Value: inner}}, value)
}

// TestDecodeYAMLErrors tests empty and malformed YAML
func TestDecodeYAMLErrors(t *testing.T) {
	_, err := sample.DecodeYAML([]byte(""))
	assert.True(t, errors.Is(err, sample.ErrEmptySample))

	_, err = sample.DecodeYAML([]byte("a: [1, 2"))
	assert.Error(t, err)
}

// TestDecodeHTML tests extraction of embedded JSON documents
func TestDecodeHTML(t *testing.T) {
	page := []byte(`<html><head>
		<script type="application/ld+json">{"@type": "Product", "name": "x"}</script>
		<script id="state" type="text/plain">[1, 2]</script>
	</head><body></body></html>`)

	value, err := sample.DecodeHTML(page, "")
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "@type", Value: "Product"}, {Key: "name", Value: "x"}}, value)

	value, err = sample.DecodeHTML(page, "#state")
	require.NoError(t, err)
	assert.Equal(t, bson.A{int32(1), int32(2)}, value)

	_, err = sample.DecodeHTML(page, "#missing")
	assert.Error(t, err)

	_, err = sample.DecodeHTML([]byte("<html><body><p>no data</p></body></html>"), "")
	assert.Error(t, err)
}

// TestDecodeDispatch tests format dispatch and auto detection
func TestDecodeDispatch(t *testing.T) {
	value, err := sample.Decode([]byte("a: 1\n"), sample.FormatAuto, sample.DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "a", Value: int32(1)}}, value)

	value, err = sample.Decode([]byte(`{"a": 1}`), sample.FormatJSON, sample.DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "a", Value: int32(1)}}, value)

	_, err = sample.Decode([]byte(`{}`), sample.Format("csv"), sample.DecodeOptions{})
	assert.Error(t, err)
}

// TestDetectFormat tests detection by name, content type and content
func TestDetectFormat(t *testing.T) {
	bsonData, err := bson.Marshal(bson.D{{Key: "a", Value: int32(1)}})
	require.NoError(t, err)

	cases := []struct {
		name        string
		file        string
		contentType string
		data        []byte
		expected    sample.Format
	}{
		{"json file", "a.json", "", []byte(`{"a":1}`), sample.FormatJSON},
		{"extjson in json file", "a.json", "", []byte(`{"_id":{"$oid":"5f1b2c3d4e5f6a7b8c9d0e1f"}}`), sample.FormatExtJSON},
		{"yml file", "conf.YML", "", []byte("a: 1"), sample.FormatYAML},
		{"bson file", "dump/users.bson", "", bsonData, sample.FormatBSON},
		{"html file", "page.htm", "", []byte("<p>"), sample.FormatHTML},
		{"json content type", "", "application/json; charset=utf-8", []byte(`{}`), sample.FormatJSON},
		{"ld+json content type", "", "application/ld+json", []byte(`{}`), sample.FormatJSON},
		{"html content type", "", "text/html", []byte("<html></html>"), sample.FormatHTML},
		{"yaml content type", "", "application/x-yaml", []byte("a: 1"), sample.FormatYAML},
		{"sniff html", "", "", []byte("  <!doctype html>"), sample.FormatHTML},
		{"sniff json", "", "", []byte(`[1, 2]`), sample.FormatJSON},
		{"sniff extjson", "", "", []byte(`{"d":{"$date":"2020-01-01T00:00:00Z"}}`), sample.FormatExtJSON},
		{"sniff yaml", "", "", []byte("a: 1\nb: 2\n"), sample.FormatYAML},
		{"sniff bson", "", "", bsonData, sample.FormatBSON},
		{"empty", "", "", nil, sample.FormatJSON},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, sample.DetectFormat(tc.file, tc.contentType, tc.data))
		})
	}
}

// TestParseFormat tests sample format names
func TestParseFormat(t *testing.T) {
	for _, name := range []string{"", "auto", "AUTO"} {
		format, err := sample.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, sample.FormatAuto, format)
	}

	format, err := sample.ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, sample.FormatYAML, format)

	for _, f := range sample.Formats {
		parsed, err := sample.ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}

	_, err = sample.ParseFormat("xml")
	assert.Error(t, err)
}
