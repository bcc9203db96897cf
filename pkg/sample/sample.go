/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sample.go
Description: Sample acquisition for schema inference. Defines the Source interface, the
payload it yields and the options shared by every source, plus Load, which fetches and
decodes a sample in one step.
*/

package sample

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ErrEmptySample is returned when a sample holds no document
var ErrEmptySample = errors.New("sample is empty")

// ErrSampleTooLarge is returned when a sample exceeds the configured size limit
var ErrSampleTooLarge = errors.New("sample exceeds size limit")

// DefaultMaxSize caps how many bytes a source reads
const DefaultMaxSize int64 = 64 << 20

// Source defines an interface for sample document locations
// Example sources: local files, stdin, HTTP endpoints
type Source interface {
	Name() string
	Description() string
	Fetch(ctx context.Context) (*Payload, error)
}

// Payload is the raw content fetched from a source
type Payload struct {
	Data        []byte
	Format      Format
	Origin      string
	ContentType string
}

// Decode decodes the payload in its detected format
func (p *Payload) Decode(opts DecodeOptions) (interface{}, error) {
	return Decode(p.Data, p.Format, opts)
}

// Options holds configuration for locating and decoding a sample
type Options struct {
	Format   Format        `json:"format"`   // auto, json, extjson, yaml, bson, html
	Method   string        `json:"method"`   // GET or POST, HTTP sources only
	Headers  []string      `json:"headers"`  // "Key: Value"
	Body     string        `json:"body"`     // POST body
	Timeout  time.Duration `json:"timeout"`  // HTTP request timeout
	Selector string        `json:"selector"` // CSS selector for HTML samples
	MaxSize  int64         `json:"max_size"` // bytes read from any source
	Stdin    io.Reader     `json:"-"`
}

// DefaultOptions returns sensible defaults
func DefaultOptions() *Options {
	return &Options{
		Format:  FormatAuto,
		Method:  "GET",
		Headers: []string{},
		Timeout: 10 * time.Second,
		MaxSize: DefaultMaxSize,
	}
}

// ParseHeaders splits "Key: Value" entries into a header map
func (o *Options) ParseHeaders() (map[string]string, error) {
	headers := make(map[string]string, len(o.Headers))
	for _, h := range o.Headers {
		key, value, ok := strings.Cut(h, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid header %q, expected \"Key: Value\"", h)
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers, nil
}

// NewSource returns the source for a location: HTTP(S) URLs are fetched over the
// network, "-" reads stdin and anything else is a local file path
func NewSource(location string, opts *Options) (Source, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		headers, err := opts.ParseHeaders()
		if err != nil {
			return nil, err
		}
		src := NewHTTPSource(location, opts.Method, headers, []byte(opts.Body), opts.Timeout)
		src.MaxSize = opts.MaxSize
		return src, nil
	}

	if location == "" {
		location = StdinPath
	}
	src := NewFileSource(location)
	src.MaxSize = opts.MaxSize
	if opts.Stdin != nil {
		src.Stdin = opts.Stdin
	}
	return src, nil
}

// Load fetches a sample from location and decodes it
func Load(ctx context.Context, location string, opts *Options) (interface{}, *Payload, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	src, err := NewSource(location, opts)
	if err != nil {
		return nil, nil, err
	}

	payload, err := src.Fetch(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch sample from %s: %w", src.Name(), err)
	}
	if opts.Format != "" && opts.Format != FormatAuto {
		payload.Format = opts.Format
	}

	value, err := payload.Decode(DecodeOptions{Selector: opts.Selector})
	if err != nil {
		return nil, payload, fmt.Errorf("failed to decode %s sample from %s: %w", payload.Format, src.Name(), err)
	}
	return value, payload, nil
}

// readAll drains r up to limit bytes, treating whitespace-only input as empty.
// A limit of zero or less means DefaultMaxSize.
func readAll(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w of %d bytes", ErrSampleTooLarge, limit)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptySample
	}
	return data, nil
}

var stdin io.Reader = os.Stdin
