/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: classifier.go
Description: Type classification for sample values. Maps Go and BSON driver values onto the
BSON type alias vocabulary (double, string, objectId, ...) using an ordered rule table where
the first matching rule wins and plain objects are matched last.
*/

package inference

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tag is a BSON type alias as emitted in the schema "type" field
type Tag string

const (
	TagDouble    Tag = "double"
	TagString    Tag = "string"
	TagArray     Tag = "array"
	TagBinData   Tag = "binData"
	TagObjectID  Tag = "objectId"
	TagBool      Tag = "bool"
	TagDate      Tag = "date"
	TagRegex     Tag = "regex"
	TagDBPointer Tag = "dbPointer"
	TagSymbol    Tag = "symbol"
	TagInt       Tag = "int"
	TagTimestamp Tag = "timestamp"
	TagLong      Tag = "long"
	TagObject    Tag = "object"
	TagNull      Tag = "null"
	TagUndefined Tag = "undefined"
)

// ErrUnrecognizedType is matched by every UnrecognizedTypeError
var ErrUnrecognizedType = errors.New("unrecognized value type")

// UnrecognizedTypeError reports a value outside the supported domain.
// Path is the JSON pointer of the value inside the sample, empty for the root.
type UnrecognizedTypeError struct {
	Value interface{}
	Path  string
}

func (e *UnrecognizedTypeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("this value has a type we do not recognize: %T", e.Value)
	}
	return fmt.Sprintf("value at %s has a type we do not recognize: %T", e.Path, e.Value)
}

// Unwrap lets errors.Is match ErrUnrecognizedType
func (e *UnrecognizedTypeError) Unwrap() error {
	return ErrUnrecognizedType
}

// Classifier maps a sample value to its type tag
type Classifier interface {
	Classify(value interface{}) (Tag, error)
}

// TypeRule is one entry of the classification table
type TypeRule struct {
	Tag         Tag
	Description string
	check       func(v interface{}) bool
}

// typeRules is evaluated in order. object must stay last: every BSON wrapper is
// itself a composite Go value and would otherwise be taken for a document.
var typeRules = []TypeRule{
	{Tag: TagDouble, Description: "float32, float64, fractional json.Number", check: isDouble},
	{Tag: TagString, Description: "string", check: isString},
	{Tag: TagArray, Description: "bson.A, []interface{}, any non-byte slice or array", check: isArray},
	{Tag: TagBinData, Description: "primitive.Binary, []byte, byte arrays", check: isBinData},
	{Tag: TagObjectID, Description: "primitive.ObjectID", check: isObjectID},
	{Tag: TagBool, Description: "bool", check: isBool},
	{Tag: TagDate, Description: "time.Time, primitive.DateTime", check: isDate},
	{Tag: TagRegex, Description: "primitive.Regex, *regexp.Regexp", check: isRegex},
	{Tag: TagDBPointer, Description: "primitive.DBPointer", check: isDBPointer},
	{Tag: TagSymbol, Description: "primitive.Symbol", check: isSymbol},
	{Tag: TagInt, Description: "int8, int16, int32, uint8, uint16, int and json.Number within int32", check: isInt},
	{Tag: TagTimestamp, Description: "primitive.Timestamp", check: isTimestamp},
	{Tag: TagLong, Description: "int64, uint32, uint64, int and json.Number outside int32", check: isLong},
	{Tag: TagObject, Description: "bson.D, bson.M, bson.Raw, string-keyed maps", check: isObject},
}

// Rules returns the classification table in evaluation order
func Rules() []TypeRule {
	rules := make([]TypeRule, len(typeRules))
	copy(rules, typeRules)
	return rules
}

// BSONClassifier classifies Go values and MongoDB driver values
type BSONClassifier struct{}

// NewBSONClassifier creates a new BSON-aware classifier
func NewBSONClassifier() *BSONClassifier {
	return &BSONClassifier{}
}

// Classify returns the type tag of value
func (c *BSONClassifier) Classify(value interface{}) (Tag, error) {
	switch v := value.(type) {
	case nil, primitive.Null:
		return TagNull, nil
	case primitive.Undefined:
		return TagUndefined, nil
	case bson.RawValue:
		return classifyRawValue(v)
	}

	for _, rule := range typeRules {
		if rule.check(value) {
			return rule.Tag, nil
		}
	}
	return "", &UnrecognizedTypeError{Value: value}
}

// classifyRawValue maps an undecoded BSON element onto the vocabulary
func classifyRawValue(v bson.RawValue) (Tag, error) {
	switch v.Type {
	case bsontype.Double:
		return TagDouble, nil
	case bsontype.String:
		return TagString, nil
	case bsontype.EmbeddedDocument:
		return TagObject, nil
	case bsontype.Array:
		return TagArray, nil
	case bsontype.Binary:
		return TagBinData, nil
	case bsontype.Undefined:
		return TagUndefined, nil
	case bsontype.ObjectID:
		return TagObjectID, nil
	case bsontype.Boolean:
		return TagBool, nil
	case bsontype.DateTime:
		return TagDate, nil
	case bsontype.Null:
		return TagNull, nil
	case bsontype.Regex:
		return TagRegex, nil
	case bsontype.DBPointer:
		return TagDBPointer, nil
	case bsontype.Symbol:
		return TagSymbol, nil
	case bsontype.Int32:
		return TagInt, nil
	case bsontype.Timestamp:
		return TagTimestamp, nil
	case bsontype.Int64:
		return TagLong, nil
	default:
		return "", &UnrecognizedTypeError{Value: v}
	}
}

func isDouble(v interface{}) bool {
	switch n := v.(type) {
	case float32, float64:
		return true
	case json.Number:
		if _, err := n.Int64(); err == nil {
			return false
		}
		_, err := n.Float64()
		return err == nil
	}
	return false
}

func isString(v interface{}) bool {
	_, ok := v.(string)
	return ok
}

func isArray(v interface{}) bool {
	switch v.(type) {
	case primitive.A, []interface{}:
		return true
	case primitive.D, primitive.ObjectID, bson.Raw:
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Type().Elem().Kind() != reflect.Uint8
	}
	return false
}

func isBinData(v interface{}) bool {
	switch v.(type) {
	case primitive.Binary, []byte:
		return true
	case primitive.ObjectID, bson.Raw:
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Type().Elem().Kind() == reflect.Uint8
	}
	return false
}

func isObjectID(v interface{}) bool {
	_, ok := v.(primitive.ObjectID)
	return ok
}

func isBool(v interface{}) bool {
	_, ok := v.(bool)
	return ok
}

func isDate(v interface{}) bool {
	switch v.(type) {
	case time.Time, primitive.DateTime:
		return true
	}
	return false
}

func isRegex(v interface{}) bool {
	switch v.(type) {
	case primitive.Regex, *regexp.Regexp:
		return true
	}
	return false
}

func isDBPointer(v interface{}) bool {
	_, ok := v.(primitive.DBPointer)
	return ok
}

func isSymbol(v interface{}) bool {
	_, ok := v.(primitive.Symbol)
	return ok
}

func isInt(v interface{}) bool {
	switch n := v.(type) {
	case int8, int16, int32, uint8, uint16:
		return true
	case int:
		return fitsInt32(int64(n))
	case json.Number:
		i, err := n.Int64()
		return err == nil && fitsInt32(i)
	}
	return false
}

func isTimestamp(v interface{}) bool {
	_, ok := v.(primitive.Timestamp)
	return ok
}

// isLong follows the driver's marshalling: int32-sized values were already taken by isInt
func isLong(v interface{}) bool {
	switch n := v.(type) {
	case int64, uint32:
		return true
	case int:
		return !fitsInt32(int64(n))
	case uint:
		return uint64(n) <= math.MaxInt64
	case uint64:
		return n <= math.MaxInt64
	case json.Number:
		i, err := n.Int64()
		return err == nil && !fitsInt32(i)
	}
	return false
}

func isObject(v interface{}) bool {
	switch v.(type) {
	case primitive.D, primitive.M, map[string]interface{}, bson.Raw:
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

func fitsInt32(i int64) bool {
	return i >= math.MinInt32 && i <= math.MaxInt32
}
