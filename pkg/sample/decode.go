/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: decode.go
Description: Decoding of raw samples into Go values. Documents decode to ordered bson.D
values and arrays to bson.A so that field order survives into the inferred schema.
*/

package sample

import (
	"fmt"
)

// DecodeOptions tunes format-specific decoding
type DecodeOptions struct {
	// Selector picks the element holding the JSON document in HTML samples
	Selector string
}

// Decode turns raw sample data into a value ready for inference
func Decode(data []byte, format Format, opts DecodeOptions) (interface{}, error) {
	if format == "" || format == FormatAuto {
		format = DetectFormat("", "", data)
	}

	switch format {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatExtJSON:
		return DecodeExtJSON(data)
	case FormatYAML:
		return DecodeYAML(data)
	case FormatBSON:
		return DecodeBSON(data)
	case FormatHTML:
		return DecodeHTML(data, opts.Selector)
	default:
		return nil, fmt.Errorf("unsupported sample format: %s", format)
	}
}
