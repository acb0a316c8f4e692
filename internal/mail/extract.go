package mail

import (
	"strings"

	"github.com/jhillyerd/enmime"
)

// ExtractBody isolates the plain-text body of a parsed message.
//
// Multipart messages are walked depth-first and the first text/plain
// part whose disposition is not attachment wins; messages with several
// plain-text alternatives are not disambiguated further. A multipart
// message without such a part (e.g. HTML-only) yields "". Single-part
// messages return their decoded payload directly, whatever the
// declared content type.
func ExtractBody(env *enmime.Envelope) string {
	root := env.Root
	if root == nil {
		return ""
	}

	if root.FirstChild == nil {
		return string(root.Content)
	}

	if part := firstPlainPart(root); part != nil {
		return string(part.Content)
	}
	return ""
}

// firstPlainPart walks the part tree depth-first for the first
// text/plain non-attachment part.
func firstPlainPart(p *enmime.Part) *enmime.Part {
	if p == nil {
		return nil
	}

	if strings.HasPrefix(p.ContentType, "text/plain") && p.Disposition != "attachment" {
		return p
	}

	if found := firstPlainPart(p.FirstChild); found != nil {
		return found
	}
	return firstPlainPart(p.NextSibling)
}
