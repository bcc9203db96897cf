/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: http_source.go
Description: Source implementation for HTTP endpoints. Supports GET/POST, custom headers
and request timeouts; the response Content-Type feeds format detection.
*/

package sample

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTPSource fetches a sample from a web endpoint
type HTTPSource struct {
	URL     string
	Method  string // "GET" or "POST"
	Headers map[string]string
	Body    []byte
	Timeout time.Duration
	MaxSize int64 // DefaultMaxSize when zero
	Client  *http.Client
}

// NewHTTPSource creates a new HTTPSource
func NewHTTPSource(rawURL, method string, headers map[string]string, body []byte, timeout time.Duration) *HTTPSource {
	if method == "" {
		method = http.MethodGet
	}
	return &HTTPSource{
		URL:     rawURL,
		Method:  method,
		Headers: headers,
		Body:    body,
		Timeout: timeout,
		MaxSize: DefaultMaxSize,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (hs *HTTPSource) Name() string { return hs.URL }
func (hs *HTTPSource) Description() string {
	return fmt.Sprintf("%s %s", hs.Method, hs.URL)
}

// Fetch performs the request and returns the response body
func (hs *HTTPSource) Fetch(ctx context.Context) (*Payload, error) {
	var req *http.Request
	var err error

	switch hs.Method {
	case http.MethodPost:
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, hs.URL, bytes.NewReader(hs.Body))
	case http.MethodGet:
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, hs.URL, nil)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", hs.Method)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range hs.Headers {
		req.Header.Set(k, v)
	}

	client := hs.Client
	if client == nil {
		client = &http.Client{Timeout: hs.Timeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call endpoint: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}

	data, err := readAll(resp.Body, hs.MaxSize)
	if err != nil {
		return nil, err
	}

	name := ""
	if parsed, err := url.Parse(hs.URL); err == nil {
		name = parsed.Path
	}
	contentType := resp.Header.Get("Content-Type")
	return &Payload{
		Data:        data,
		Format:      DetectFormat(name, contentType, data),
		Origin:      hs.URL,
		ContentType: contentType,
	}, nil
}
