// Package report writes the dated plain-text summary report.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nehabalamurugan/Email-Summarizer/pkg/types"
)

// Writer accumulates one From / Subject / Summary block per message
// and flushes them to a dated text file. Messages that failed fetch or
// summarization appear as explicitly skipped blocks rather than being
// silently omitted.
type Writer struct {
	dir    string
	date   time.Time
	blocks []string
	logger *logrus.Logger
}

// NewWriter creates a Writer for a run dated at the given time.
func NewWriter(dir string, date time.Time, logger *logrus.Logger) *Writer {
	return &Writer{
		dir:    dir,
		date:   date,
		logger: logger,
	}
}

// AddSummary records a successfully summarized message.
func (w *Writer) AddSummary(msg *types.Message, summary string) string {
	block := fmt.Sprintf("From: %s\nSubject: %s\nSummary:\n%s\n\n", msg.From, msg.Subject, summary)
	w.blocks = append(w.blocks, block)
	return block
}

// AddSkipped records a message that could not be summarized.
func (w *Writer) AddSkipped(msg *types.Message, reason string) {
	w.blocks = append(w.blocks, fmt.Sprintf(
		"From: %s\nSubject: %s\nSummary:\n[skipped: %s]\n\n", msg.From, msg.Subject, reason))
}

// AddFetchFailure records a message identifier that never materialized.
func (w *Writer) AddFetchFailure(f types.FetchFailure) {
	w.blocks = append(w.blocks, fmt.Sprintf(
		"Message %d\nSummary:\n[skipped: %v]\n\n", f.UID, f.Err))
}

// Path returns the output file path for this run's date.
func (w *Writer) Path() string {
	return filepath.Join(w.dir, fmt.Sprintf("email_summaries_%s.txt", w.date.Format("2006-01-02")))
}

// Content returns the report text accumulated so far.
func (w *Writer) Content() string {
	return strings.Join(w.blocks, "")
}

// Flush writes the accumulated blocks to the dated report file.
func (w *Writer) Flush() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	path := w.Path()
	if err := os.WriteFile(path, []byte(w.Content()), 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}

	w.logger.WithFields(logrus.Fields{
		"path":   path,
		"blocks": len(w.blocks),
	}).Info("Wrote summary report")

	return nil
}
