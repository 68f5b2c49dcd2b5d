// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips unsafe markup from user-supplied rich text
// (descriptions, notes, contact info) before it is stored.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc   = bluemonday.UGCPolicy()
	plain = bluemonday.StrictPolicy()
)

// Sanitize keeps common user-generated-content markup (paragraphs, links,
// emphasis) and removes scripts, event handlers and javascript: URLs.
func Sanitize(s string) string {
	return strings.TrimSpace(ugc.Sanitize(s))
}

// Plain strips all markup, leaving text only. Use for fields that are
// rendered verbatim (titles, names, categories).
func Plain(s string) string {
	return strings.TrimSpace(plain.Sanitize(s))
}
