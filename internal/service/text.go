package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// plainText removes markup from user or model supplied text. Responses are JSON, so
// the entities the policy writes for quotes, ampersands and angle brackets are decoded
// back to the characters they stand for.
func plainText(policy *bluemonday.Policy, v string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(v)))
}
