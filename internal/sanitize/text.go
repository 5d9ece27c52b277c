// Package sanitize strips markup from user supplied text before it is stored
// as a field description or echoed into rendered HTML.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy

	inlineOnce   sync.Once
	inlinePolicy *bluemonday.Policy
)

// PlainText removes every tag from raw and returns unescaped text, so
// "User's <b>bio</b>" becomes "User's bio".
func PlainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := strictSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// InlineHTML keeps a small set of inline formatting elements and drops the
// rest. The result is safe to embed in an HTML page.
func InlineHTML(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(inlineSanitizer().Sanitize(trimmed))
}

func strictSanitizer() *bluemonday.Policy {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

func inlineSanitizer() *bluemonday.Policy {
	inlineOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "br", "small")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowElements("a")
		policy.AllowURLSchemes("http", "https", "mailto")
		policy.RequireNoFollowOnLinks(true)
		inlinePolicy = policy
	})
	return inlinePolicy
}
