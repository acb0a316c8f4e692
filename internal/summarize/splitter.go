package summarize

import "strings"

// Split breaks text into ordered chunks of at most size tokens, where
// consecutive chunks share overlap trailing tokens so context crossing
// a chunk boundary is not lost. A token is a whitespace-delimited word,
// the same scheme used for the size bound. Empty or whitespace-only
// text yields no chunks.
func Split(text string, size, overlap int) []string {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}
	if size < 1 {
		size = 1
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}

	var chunks []string
	step := size - overlap
	for start := 0; start < len(tokens); start += step {
		end := start + size
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, strings.Join(tokens[start:end], " "))
		if end == len(tokens) {
			break
		}
	}
	return chunks
}
