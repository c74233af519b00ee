package validator

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	errorTextPolicyOnce sync.Once
	errorTextPolicy     *bluemonday.Policy
)

// SanitizeErrorText strips markup from custom error text. The result is
// plain text meant for a text node, so entities are decoded again.
func SanitizeErrorText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := errorTextSanitizer().Sanitize(trimmed)
	return strings.Join(strings.Fields(html.UnescapeString(cleaned)), " ")
}

func errorTextSanitizer() *bluemonday.Policy {
	errorTextPolicyOnce.Do(func() {
		errorTextPolicy = bluemonday.StrictPolicy()
	})
	return errorTextPolicy
}
