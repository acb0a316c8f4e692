// Package summarize condenses message bodies with an incremental
// chunk-then-refine strategy: the body is split into bounded
// overlapping chunks and a running summary is folded left to right
// across them.
package summarize

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nehabalamurugan/Email-Summarizer/internal/llm"
	"github.com/nehabalamurugan/Email-Summarizer/pkg/types"
)

// Summarizer folds a running summary across the chunks of one message
// body. Construct one per run; it carries no package-level state.
type Summarizer struct {
	completer llm.Completer
	prompts   Prompts
	chunkSize int
	overlap   int
	logger    *logrus.Logger
}

// New creates a Summarizer. Non-positive size or negative overlap fall
// back to the 2048/200 defaults.
func New(completer llm.Completer, prompts Prompts, chunkSize, overlap int, logger *logrus.Logger) *Summarizer {
	if chunkSize < 1 {
		chunkSize = 2048
	}
	if overlap < 0 {
		overlap = 200
	}
	return &Summarizer{
		completer: completer,
		prompts:   prompts,
		chunkSize: chunkSize,
		overlap:   overlap,
		logger:    logger,
	}
}

// Summarize produces the final summary for one message body. The first
// chunk goes through the initial prompt; every later chunk goes
// through the refine prompt together with the summary so far, strictly
// in order, so each refinement observes the previous one's output. A
// body yielding K chunks costs exactly one initial completion and K-1
// refine completions. An empty body yields an empty summary with no
// completions at all.
func (s *Summarizer) Summarize(ctx context.Context, body string) (string, error) {
	chunks := Split(body, s.chunkSize, s.overlap)
	if len(chunks) == 0 {
		return "", nil
	}

	s.logger.WithField("chunks", len(chunks)).Debug("Summarizing body")

	summary, err := s.completer.Complete(ctx, s.prompts.renderInitial(chunks[0]))
	if err != nil {
		return "", fmt.Errorf("%w: initial chunk: %v", types.ErrSummarize, err)
	}

	for i, chunk := range chunks[1:] {
		summary, err = s.completer.Complete(ctx, s.prompts.renderRefine(summary, chunk))
		if err != nil {
			return "", fmt.Errorf("%w: refining chunk %d: %v", types.ErrSummarize, i+2, err)
		}
	}

	return summary, nil
}
