/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: extjson.go
Description: MongoDB Extended JSON sample decoding through the BSON driver, yielding
driver values ($oid as ObjectID, $date as DateTime, ...) for the classifier.
*/

package sample

import (
	"bytes"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// DecodeExtJSON decodes a canonical or relaxed Extended JSON value. The driver only
// decodes documents, so the value is wrapped in a single-field document first.
func DecodeExtJSON(data []byte) (interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptySample
	}

	wrapped := make([]byte, 0, len(trimmed)+6)
	wrapped = append(wrapped, `{"v":`...)
	wrapped = append(wrapped, trimmed...)
	wrapped = append(wrapped, '}')

	var doc bson.D
	if err := bson.UnmarshalExtJSON(wrapped, false, &doc); err != nil {
		return nil, fmt.Errorf("invalid Extended JSON: %w", err)
	}
	if len(doc) != 1 {
		return nil, fmt.Errorf("invalid Extended JSON: expected a single value")
	}
	return doc[0].Value, nil
}
