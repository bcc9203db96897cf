/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inference.go
Description: Main entry point for schema inference. The Engine classifies a sample value,
dispatches to the object or array processor and wraps the result in the draft-04 envelope.
*/

package inference

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/bsonschema/pkg/schema"
	"github.com/sirupsen/logrus"
)

// Engine infers schemas from single sample values.
// An Engine holds no per-run state and is safe for concurrent use.
type Engine struct {
	classifier Classifier
	logger     *logrus.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithClassifier replaces the default BSON classifier
func WithClassifier(classifier Classifier) Option {
	return func(e *Engine) {
		if classifier != nil {
			e.classifier = classifier
		}
	}
}

// WithLogger sets the logger used for run diagnostics
func WithLogger(logger *logrus.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a new inference engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		classifier: NewBSONClassifier(),
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Infer builds an untitled schema for value using the default engine
func Infer(value interface{}) (*schema.Node, error) {
	return defaultEngine.Infer(value)
}

// InferTitled builds a titled schema for value using the default engine
func InferTitled(title string, value interface{}) (*schema.Node, error) {
	return defaultEngine.InferTitled(title, value)
}

// Infer builds a schema document without a title
func (e *Engine) Infer(value interface{}) (*schema.Node, error) {
	return e.infer(nil, value)
}

// InferTitled builds a schema document carrying title, even an empty one. For array
// samples a non-empty title names each item and the root becomes "<title> Set".
func (e *Engine) InferTitled(title string, value interface{}) (*schema.Node, error) {
	return e.infer(&title, value)
}

func (e *Engine) infer(title *string, value interface{}) (*schema.Node, error) {
	start := time.Now()
	fields := logrus.Fields{"run_id": uuid.New().String()}
	if title != nil {
		fields["title"] = *title
	}
	log := e.logger.WithFields(fields)
	log.Debug("Schema inference started")

	root, err := e.buildDocument(title, value)
	if err != nil {
		fields := logrus.Fields{"duration": time.Since(start)}
		var unrecognized *UnrecognizedTypeError
		if errors.As(err, &unrecognized) {
			fields["path"] = unrecognized.Path
			fields["value_type"] = fmt.Sprintf("%T", unrecognized.Value)
		}
		log.WithFields(fields).WithError(err).Debug("Schema inference failed")
		return nil, fmt.Errorf("schema inference failed: %w", err)
	}

	log.WithFields(logrus.Fields{
		"type":     root.Type,
		"duration": time.Since(start),
	}).Debug("Schema inference completed")

	return root, nil
}

// buildDocument assembles the envelope around the root value's schema.
// A nil title leaves the document untitled.
func (e *Engine) buildDocument(title *string, value interface{}) (*schema.Node, error) {
	root := schema.NewEnvelope()
	if title != nil {
		root.SetTitle(*title)
	}

	tag, err := e.classify(value, "")
	if err != nil {
		return nil, err
	}
	root.Type = string(outputTag(tag))

	switch tag {
	case TagObject:
		node, err := e.buildObjectSchema(value, "")
		if err != nil {
			return nil, err
		}
		root.Type = node.Type
		root.Properties = node.Properties

	case TagArray:
		node, err := e.buildArraySchema(value, "")
		if err != nil {
			return nil, err
		}
		root.Type = node.Type
		root.Items = node.Items

		if title != nil && *title != "" {
			root.Items.SetTitle(*title)
			root.SetTitle(*title + " Set")
		}
	}

	return root, nil
}

// classify runs the classifier and records where an unrecognized value sits
func (e *Engine) classify(value interface{}, path string) (Tag, error) {
	tag, err := e.classifier.Classify(value)
	if err == nil {
		return tag, nil
	}

	// the classifier's error may be shared, so the path goes on a copy
	var unrecognized *UnrecognizedTypeError
	if errors.As(err, &unrecognized) && unrecognized.Path == "" {
		located := *unrecognized
		located.Path = path
		return "", &located
	}
	return "", err
}
