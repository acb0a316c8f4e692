package cache

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nehabalamurugan/Email-Summarizer/pkg/types"
)

// Store persists one summary per message, keyed by Message-ID, so a
// rerun within the same day can reuse completed summaries instead of
// paying for the completion calls again.
type Store struct {
	cache  *Cache
	logger *logrus.Logger
}

// NewStore creates a new store instance.
func NewStore(cache *Cache, logger *logrus.Logger) *Store {
	return &Store{
		cache:  cache,
		logger: logger,
	}
}

// Save upserts the summary for a message.
func (s *Store) Save(rec *types.SummaryRecord) error {
	query := `
		INSERT INTO summaries (message_id, uid, sender, subject, date, summary)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(message_id) DO UPDATE SET
			uid = excluded.uid,
			sender = excluded.sender,
			subject = excluded.subject,
			date = excluded.date,
			summary = excluded.summary,
			created_at = CURRENT_TIMESTAMP
	`
	_, err := s.cache.DB().Exec(query,
		rec.MessageID,
		rec.UID,
		rec.Sender,
		rec.Subject,
		rec.Date,
		rec.Summary,
	)
	if err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	return nil
}

// Get retrieves the stored summary for a Message-ID, or nil when the
// message has not been summarized yet.
func (s *Store) Get(messageID string) (*types.SummaryRecord, error) {
	if messageID == "" {
		return nil, nil
	}

	query := `
		SELECT id, message_id, uid, sender, subject, date, summary, created_at
		FROM summaries
		WHERE message_id = ?
	`
	var rec types.SummaryRecord
	err := s.cache.DB().QueryRow(query, messageID).Scan(
		&rec.ID,
		&rec.MessageID,
		&rec.UID,
		&rec.Sender,
		&rec.Subject,
		&rec.Date,
		&rec.Summary,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	return &rec, nil
}

// Count returns the number of stored summaries.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.cache.DB().QueryRow("SELECT COUNT(*) FROM summaries").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count summaries: %w", err)
	}
	return count, nil
}
