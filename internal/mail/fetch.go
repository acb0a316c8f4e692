package mail

import (
	"bytes"
	"fmt"
	"io"
	netmail "net/mail"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/jhillyerd/enmime"
	"github.com/sirupsen/logrus"

	"github.com/nehabalamurugan/Email-Summarizer/pkg/types"
)

// fetchRaw fetches the full RFC 822 content of one message without
// setting the \Seen flag.
func fetchRaw(cl *client.Client, id uint32) ([]byte, error) {
	seqSet := new(imap.SeqSet)
	seqSet.AddNum(id)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem()}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)

	go func() {
		done <- cl.Fetch(seqSet, items, messages)
	}()

	var raw []byte
	for msg := range messages {
		literal := msg.GetBody(section)
		if literal == nil {
			continue
		}
		body, err := io.ReadAll(literal)
		if err != nil {
			<-done
			return nil, fmt.Errorf("reading message body: %w", err)
		}
		raw = body
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("fetch command: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("server returned no body for message %d", id)
	}
	return raw, nil
}

// Materialize parses raw RFC 822 bytes into a structured Message.
func Materialize(id uint32, raw []byte) (*types.Message, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing MIME envelope: %w", err)
	}

	msg := &types.Message{
		UID:       id,
		MessageID: env.GetHeader("Message-Id"),
		From:      env.GetHeader("From"),
		To:        env.GetHeader("To"),
		Subject:   env.GetHeader("Subject"),
		Date:      env.GetHeader("Date"),
		Body:      ExtractBody(env),
	}

	if t, err := netmail.ParseDate(msg.Date); err == nil {
		msg.Received = t
	}

	return msg, nil
}

// FetchMessages materializes each identifier in order. A failed fetch
// or parse is logged and recorded as a FetchFailure; the remaining
// identifiers are still processed.
func FetchMessages(s Session, ids []uint32, logger *logrus.Logger) ([]*types.Message, []types.FetchFailure) {
	var msgs []*types.Message
	var failures []types.FetchFailure

	for _, id := range ids {
		raw, err := s.FetchRaw(id)
		if err != nil {
			err = fmt.Errorf("%w: message %d: %v", types.ErrFetch, id, err)
			logger.WithError(err).WithField("id", id).Warn("Failed to fetch message")
			failures = append(failures, types.FetchFailure{UID: id, Err: err})
			continue
		}

		msg, err := Materialize(id, raw)
		if err != nil {
			err = fmt.Errorf("%w: message %d: %v", types.ErrFetch, id, err)
			logger.WithError(err).WithField("id", id).Warn("Failed to parse message")
			failures = append(failures, types.FetchFailure{UID: id, Err: err})
			continue
		}

		msgs = append(msgs, msg)
	}

	logger.WithFields(logrus.Fields{
		"fetched": len(msgs),
		"failed":  len(failures),
	}).Info("Materialized messages")

	return msgs, failures
}

// FilterWindow drops messages whose Date header falls outside
// [now-24h, now]. Used when the strict rolling window is enabled;
// messages without a parseable Date header are kept.
func FilterWindow(msgs []*types.Message, now time.Time) []*types.Message {
	start := now.Add(-24 * time.Hour)

	var kept []*types.Message
	for _, m := range msgs {
		if m.Received.IsZero() {
			kept = append(kept, m)
			continue
		}
		if m.Received.Before(start) || m.Received.After(now) {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}
