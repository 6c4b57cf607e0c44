// Package sanitize cleans user supplied HTML before it is stored.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// RichText keeps safe formatting markup and drops scripts, event handlers
// and unsafe links.
func RichText(s string) string {
	return strings.TrimSpace(ugc.Sanitize(s))
}

// StripTags removes every tag.
func StripTags(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
