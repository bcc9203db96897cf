/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: encode.go
Description: Serialization of schema documents to JSON and YAML.
*/

package schema

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format selects the document encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an output format name
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", name)
	}
}

// Marshal encodes a node in the given format. An indent of zero produces compact
// JSON; YAML always indents by at least two spaces.
func Marshal(node *Node, format Format, indent int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, node, format, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes a node to w in the given format
func Encode(w io.Writer, node *Node, format Format, indent int) error {
	if node == nil {
		return fmt.Errorf("cannot encode nil schema")
	}
	if indent < 0 {
		return fmt.Errorf("indent must not be negative")
	}

	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if indent > 0 {
			enc.SetIndent("", strings.Repeat(" ", indent))
		}
		if err := enc.Encode(node); err != nil {
			return fmt.Errorf("failed to encode schema as JSON: %w", err)
		}
		return nil

	case FormatYAML:
		if indent < 2 {
			indent = 2
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(indent)
		if err := enc.Encode(node); err != nil {
			return fmt.Errorf("failed to encode schema as YAML: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
