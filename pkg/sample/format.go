/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: format.go
Description: Sample formats and format detection from file names, content types and
content sniffing.
*/

package sample

import (
	"bytes"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// Format names a sample encoding
type Format string

const (
	FormatAuto    Format = "auto"
	FormatJSON    Format = "json"
	FormatExtJSON Format = "extjson"
	FormatYAML    Format = "yaml"
	FormatBSON    Format = "bson"
	FormatHTML    Format = "html"
)

// Formats lists the concrete formats in detection priority order
var Formats = []Format{FormatJSON, FormatExtJSON, FormatYAML, FormatBSON, FormatHTML}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case "yml":
		return FormatYAML, nil
	case FormatJSON, FormatExtJSON, FormatYAML, FormatBSON, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported sample format: %s", name)
	}
}

// extJSONMarkers are the type wrapper keys of MongoDB Extended JSON
var extJSONMarkers = [][]byte{
	[]byte(`"$oid"`), []byte(`"$date"`), []byte(`"$numberInt"`), []byte(`"$numberLong"`),
	[]byte(`"$numberDouble"`), []byte(`"$binary"`), []byte(`"$regularExpression"`),
	[]byte(`"$timestamp"`), []byte(`"$symbol"`), []byte(`"$dbPointer"`), []byte(`"$undefined"`),
}

// DetectFormat picks a sample format from the file name extension, then the content
// type, then the content itself. JSON is the fallback.
func DetectFormat(name, contentType string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return sniffJSON(data)
	case ".extjson", ".ejson":
		return FormatExtJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".bson":
		return FormatBSON
	case ".html", ".htm":
		return FormatHTML
	}

	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
			switch {
			case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
				return sniffJSON(data)
			case mediaType == "application/bson":
				return FormatBSON
			case strings.Contains(mediaType, "yaml"):
				return FormatYAML
			case mediaType == "text/html" || mediaType == "application/xhtml+xml":
				return FormatHTML
			}
		}
	}

	return sniffContent(data)
}

// sniffJSON separates Extended JSON from plain JSON
func sniffJSON(data []byte) Format {
	for _, marker := range extJSONMarkers {
		if bytes.Contains(data, marker) {
			return FormatExtJSON
		}
	}
	return FormatJSON
}

// sniffContent classifies raw content. Mostly non-printable content is taken to be
// BSON, markup to be HTML, bracketed content to be JSON and the rest YAML.
func sniffContent(data []byte) Format {
	if len(data) == 0 {
		return FormatJSON
	}

	binaryCount := 0
	for _, b := range data {
		if b < 32 && b != 9 && b != 10 && b != 13 {
			binaryCount++
		}
	}
	if float64(binaryCount)/float64(len(data)) > 0.1 {
		return FormatBSON
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return FormatJSON
	case trimmed[0] == '<':
		return FormatHTML
	case trimmed[0] == '{' || trimmed[0] == '[' || trimmed[0] == '"':
		return sniffJSON(trimmed)
	default:
		return FormatYAML
	}
}
