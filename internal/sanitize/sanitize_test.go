package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean_RemovesTagsLinksAndEntities(t *testing.T) {
	got := Clean("<b>Hi</b> http://x &amp; more")
	assert.Equal(t, "Hi more", got)
}

func TestClean_EntityStrippingPrecedesWhitespaceCollapse(t *testing.T) {
	// The entity sits between two spaces; stripping it leaves a
	// three-space run that must collapse to one. If the collapse ran
	// first, the output would keep a double space.
	got := Clean("left &nbsp; right")
	assert.Equal(t, "left right", got)
}

func TestClean_TagGapsAreCollapsed(t *testing.T) {
	got := Clean("start <div class=\"x\"> middle </div> end")
	assert.Equal(t, "start middle end", got)
}

func TestClean_StripsURLTokens(t *testing.T) {
	assert.Equal(t, "visit now", Clean("visit https://example.com/a?b=c now"))
	assert.Equal(t, "visit now", Clean("visit www.example.com now"))
}

func TestClean_CollapsesWhitespaceRuns(t *testing.T) {
	got := Clean("one\t\ttwo\n\nthree    four")
	assert.Equal(t, "one two three four", got)
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"<b>Hi</b> http://x &amp; more",
		"plain text already",
		"  spaced\nout\ttext  ",
		"dangling < bracket and lone & ampersand",
		// Removing the inner span splices a fresh entity or tag out of
		// the surrounding text; a single stripping pass would leave it
		// for the next Clean to find.
		"pay 5 &&amp;euro; now",
		"&a&amp;mp;b",
		"<<i>b>nested</<i>b>",
		"",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "Clean should be idempotent for %q", in)
	}
}

func TestClean_EmptyAndWhitespaceOnly(t *testing.T) {
	assert.Equal(t, "", Clean(""))
	assert.Equal(t, "", Clean("  \n\t "))
	assert.Equal(t, "", Clean("<html><body></body></html>"))
}
