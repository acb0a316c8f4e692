// Package pipeline orchestrates one retrieval-and-summarization run:
// open the mail session, locate the last day's messages, materialize
// and sanitize them, fold each through the refine summarizer, and emit
// the report and optional narration. Setup failures abort the run;
// per-message failures are logged and skipped.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nehabalamurugan/Email-Summarizer/internal/audio"
	"github.com/nehabalamurugan/Email-Summarizer/internal/cache"
	"github.com/nehabalamurugan/Email-Summarizer/internal/config"
	"github.com/nehabalamurugan/Email-Summarizer/internal/mail"
	"github.com/nehabalamurugan/Email-Summarizer/internal/report"
	"github.com/nehabalamurugan/Email-Summarizer/internal/sanitize"
	"github.com/nehabalamurugan/Email-Summarizer/internal/summarize"
	"github.com/nehabalamurugan/Email-Summarizer/pkg/types"
)

// SessionOpener opens a mail session and returns it together with its
// cleanup. Cleanup must be safe to call on every exit path and run its
// work at most once.
type SessionOpener func() (mail.Session, func(), error)

// Pipeline wires the run's collaborators. Accumulator, store and
// digest are optional; a nil value disables that stage.
type Pipeline struct {
	cfg         *config.Config
	logger      *logrus.Logger
	openSession SessionOpener
	summarizer  *summarize.Summarizer
	accumulator *audio.Accumulator
	store       *cache.Store
	digest      *mail.DigestSender

	// now is stubbed in tests.
	now func() time.Time
}

// New creates a Pipeline.
func New(
	cfg *config.Config,
	logger *logrus.Logger,
	openSession SessionOpener,
	summarizer *summarize.Summarizer,
	accumulator *audio.Accumulator,
	store *cache.Store,
	digest *mail.DigestSender,
) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		logger:      logger,
		openSession: openSession,
		summarizer:  summarizer,
		accumulator: accumulator,
		store:       store,
		digest:      digest,
		now:         time.Now,
	}
}

// Run executes one complete run. The session is cleaned up on every
// exit path after it has been opened, including search failures.
func (p *Pipeline) Run(ctx context.Context) error {
	sess, cleanup, err := p.openSession()
	if err != nil {
		return err
	}
	defer cleanup()

	now := p.now()

	ids, err := mail.FindRecent(sess, now, p.logger)
	if err != nil {
		return err
	}

	msgs, failures := mail.FetchMessages(sess, ids, p.logger)
	if p.cfg.StrictWindow {
		before := len(msgs)
		msgs = mail.FilterWindow(msgs, now)
		p.logger.WithFields(logrus.Fields{
			"before": before,
			"after":  len(msgs),
		}).Info("Applied strict 24h window")
	}

	writer := report.NewWriter(p.cfg.OutputDir, now, p.logger)
	for _, f := range failures {
		writer.AddFetchFailure(f)
	}

	for _, msg := range msgs {
		if err := p.processMessage(ctx, msg, writer); err != nil {
			p.logger.WithError(err).WithFields(logrus.Fields{
				"uid":     msg.UID,
				"subject": msg.Subject,
			}).Warn("Skipping message")
			writer.AddSkipped(msg, err.Error())
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flushing report: %w", err)
	}

	if p.store != nil {
		if stored, err := p.store.Count(); err != nil {
			p.logger.WithError(err).Warn("Failed to count stored summaries")
		} else {
			p.logger.WithField("stored", stored).Info("Summary store size")
		}
	}

	if p.digest != nil {
		subject := fmt.Sprintf("Email summaries for %s", now.Format("2006-01-02"))
		if err := p.digest.Send(subject, writer.Content()); err != nil {
			p.logger.WithError(err).Warn("Failed to send digest")
		}
	}

	return nil
}

// processMessage summarizes one message and emits its report block and
// optional narration. Narration failures do not fail the message; the
// summary is already in the report.
func (p *Pipeline) processMessage(ctx context.Context, msg *types.Message, writer *report.Writer) error {
	body := sanitize.Clean(msg.Body)

	summary, err := p.summaryFor(ctx, msg, body)
	if err != nil {
		return err
	}

	block := writer.AddSummary(msg, summary)

	if p.accumulator != nil {
		if err := p.accumulator.Append(ctx, block); err != nil {
			p.logger.WithError(err).WithField("uid", msg.UID).Warn("Failed to narrate summary")
		}
	}

	return nil
}

// summaryFor returns the summary for a message, reusing a stored one
// when the Message-ID has been summarized before. Store failures fall
// back to summarizing; a failed save is logged and the fresh summary
// used anyway.
func (p *Pipeline) summaryFor(ctx context.Context, msg *types.Message, body string) (string, error) {
	if p.store != nil {
		rec, err := p.store.Get(msg.MessageID)
		if err != nil {
			p.logger.WithError(err).Warn("Summary store lookup failed")
		} else if rec != nil {
			p.logger.WithField("message_id", msg.MessageID).Debug("Reusing stored summary")
			return rec.Summary, nil
		}
	}

	summary, err := p.summarizer.Summarize(ctx, body)
	if err != nil {
		return "", err
	}

	if p.store != nil && msg.MessageID != "" {
		rec := &types.SummaryRecord{
			MessageID: msg.MessageID,
			UID:       msg.UID,
			Sender:    msg.From,
			Subject:   msg.Subject,
			Date:      msg.Date,
			Summary:   summary,
		}
		if err := p.store.Save(rec); err != nil {
			p.logger.WithError(err).Warn("Failed to store summary")
		}
	}

	return summary, nil
}
