/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: json.go
Description: Plain JSON sample decoding. Walks the go-json token stream so object keys
keep their document order; numbers are narrowed to int32, int64 or float64 by their
literal form.
*/

package sample

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
)

// DecodeJSON decodes a single JSON value
func DecodeJSON(data []byte) (interface{}, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptySample
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := readJSONValue(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level JSON value")
	}
	return value, nil
}

func readJSONValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return readJSONObject(dec)
		case '[':
			return readJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case json.Number:
		return narrowNumber(t)
	case string, bool, nil:
		return t, nil
	case float64:
		return t, nil
	default:
		return nil, fmt.Errorf("unexpected JSON token %v", tok)
	}
}

func readJSONObject(dec *json.Decoder) (interface{}, error) {
	doc := bson.D{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid JSON object: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("invalid JSON object key %v", keyTok)
		}

		value, err := readJSONValue(dec)
		if err != nil {
			return nil, err
		}
		doc = append(doc, bson.E{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("unterminated JSON object: %w", err)
	}
	return doc, nil
}

func readJSONArray(dec *json.Decoder) (interface{}, error) {
	arr := bson.A{}
	for dec.More() {
		value, err := readJSONValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("unterminated JSON array: %w", err)
	}
	return arr, nil
}

// narrowNumber maps a JSON number onto the BSON numeric type it would be stored as
func narrowNumber(n json.Number) (interface{}, error) {
	if i, err := n.Int64(); err == nil {
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return int32(i), nil
		}
		return i, nil
	}

	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid JSON number %q: %w", n.String(), err)
	}
	return f, nil
}
