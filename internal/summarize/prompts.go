package summarize

import "strings"

// Prompts holds the two templates driving the refine fold. Each
// template uses {text} as the insertion point; the refine template
// additionally uses {summary} for the running summary so far. The
// bullet-point output format is a prompt-level contract with the
// completion service, not something this package parses.
type Prompts struct {
	Initial string
	Refine  string
}

// DefaultPrompts returns the stock newsletter-digest templates.
func DefaultPrompts() Prompts {
	return Prompts{
		Initial: strings.TrimSpace(`
Imagine you are the CEO of a company and you need to read through the newsletters in your inbox to stay updated about market trends and businesses.
Please provide an intelligent summary of the following text with key points that can be used to make informed decisions. Write in bullet points:
TEXT: {text}
SUMMARY:
`),
		Refine: strings.TrimSpace(`
You have produced the following bullet-point summary so far:
{summary}
Refine it with the additional text delimited by triple backquotes, keeping it concise.
Return your response in bullet points which covers the key points of all the text seen so far.
` + "```{text}```" + `
BULLET POINT SUMMARY:
`),
	}
}

// renderInitial fills the initial template with the first chunk.
func (p Prompts) renderInitial(chunk string) string {
	return strings.ReplaceAll(p.Initial, "{text}", chunk)
}

// renderRefine fills the refine template with the running summary and
// the next chunk.
func (p Prompts) renderRefine(summary, chunk string) string {
	out := strings.ReplaceAll(p.Refine, "{summary}", summary)
	return strings.ReplaceAll(out, "{text}", chunk)
}
