// Package sanitize strips markup, links and noise from extracted
// message text before summarization.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	tagPattern    = regexp.MustCompile(`<[^>]*>`)
	urlPattern    = regexp.MustCompile(`(?:http|www\.)\S+`)
	entityPattern = regexp.MustCompile(`&\w+;`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// Clean removes tag-like spans, URL tokens and HTML entity references,
// then collapses whitespace runs to single spaces. Removing a span can
// splice a new tag or entity together out of the surrounding text
// (e.g. "&&amp;euro;" leaves "&euro;" after one pass), so tag and
// entity stripping iterate to a fixed point. URL matches always run to
// a whitespace boundary and cannot splice, so one pass suffices. Clean
// is pure and idempotent.
func Clean(text string) string {
	for {
		next := tagPattern.ReplaceAllString(text, "")
		next = entityPattern.ReplaceAllString(next, "")
		if next == text {
			break
		}
		text = next
	}
	text = urlPattern.ReplaceAllString(text, "")
	text = spacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
