/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: bson.go
Description: Binary BSON sample decoding. Reads the first document of the input, so a
mongodump collection file can be used directly as a sample.
*/

package sample

import (
	"encoding/binary"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// minDocumentSize is the length prefix plus the trailing NUL of an empty document
const minDocumentSize = 5

// DecodeBSON decodes the first BSON document in data
func DecodeBSON(data []byte) (interface{}, error) {
	if len(data) == 0 {
		return nil, ErrEmptySample
	}
	if len(data) < minDocumentSize {
		return nil, fmt.Errorf("BSON data too short: %d bytes", len(data))
	}

	size := int(int32(binary.LittleEndian.Uint32(data[:4])))
	if size < minDocumentSize || size > len(data) {
		return nil, fmt.Errorf("invalid BSON document length %d for %d bytes of data", size, len(data))
	}

	var doc bson.D
	if err := bson.Unmarshal(data[:size], &doc); err != nil {
		return nil, fmt.Errorf("invalid BSON document: %w", err)
	}
	return doc, nil
}
