package render

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// SanitizeMessage strips markup from a validation message. Server messages
// are untrusted; the result is escaped text safe to emit verbatim.
func SanitizeMessage(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(messageSanitizer().Sanitize(trimmed))
}

func sanitizeMessages(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, msg := range raw {
		if clean := SanitizeMessage(msg); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func messageSanitizer() *bluemonday.Policy {
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.StrictPolicy()
	})
	return messagePolicy
}
