/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: html.go
Description: HTML sample extraction. Pulls the JSON document embedded in a page, by
default the first JSON-LD or application/json script block.
*/

package sample

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultSelector matches embedded JSON script blocks
const DefaultSelector = `script[type="application/ld+json"], script[type="application/json"]`

// DecodeHTML finds the first element matching selector and decodes its text as JSON
func DecodeHTML(data []byte, selector string) (interface{}, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptySample
	}
	if selector == "" {
		selector = DefaultSelector
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid HTML: %w", err)
	}

	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("no element matches selector %q", selector)
	}

	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return nil, fmt.Errorf("element matching %q is empty: %w", selector, ErrEmptySample)
	}
	return DecodeJSON([]byte(text))
}
