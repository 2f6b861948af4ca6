// Package sanitizer provides the XSS-safety check applied to comment content
// before it is accepted.
package sanitizer

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

type Sanitizer struct {
	policy *bluemonday.Policy
}

func New() *Sanitizer {
	return &Sanitizer{policy: bluemonday.UGCPolicy()}
}

// IsSafe reports whether text survives sanitization unchanged. Plain text and
// benign user-generated markup pass; anything the policy would strip or
// rewrite (script tags, event handlers, javascript: URLs) fails.
func (s *Sanitizer) IsSafe(text string) bool {
	sanitized := s.policy.Sanitize(text)
	return html.UnescapeString(sanitized) == text
}
