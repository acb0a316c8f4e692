package mail

import (
	"fmt"
	"time"

	"github.com/emersion/go-imap"
	"github.com/sirupsen/logrus"

	"github.com/nehabalamurugan/Email-Summarizer/pkg/types"
)

// DayWindow computes the search bounds for the last 24 hours, each
// truncated to midnight. IMAP SINCE/BEFORE compare internal dates at
// day granularity only, so the effective window is a calendar-day
// window: it may cover up to ~47h or as little as ~1h of actual mail
// age depending on the time of day.
func DayWindow(now time.Time) (since, before time.Time) {
	since = now.AddDate(0, 0, -1)
	since = time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, since.Location())
	before = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return since, before
}

// Search runs a date-bounded search against the selected folder.
func (s *IMAPSession) Search(since, before time.Time) ([]uint32, error) {
	criteria := imap.NewSearchCriteria()
	criteria.Since = since
	criteria.Before = before

	ids, err := s.client.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("%w: searching %s: %v", types.ErrSearch, s.folder, err)
	}
	return ids, nil
}

// FindRecent resolves the last-day window to a set of message
// identifiers. An empty mailbox yields an empty result, not an error.
func FindRecent(s Session, now time.Time, logger *logrus.Logger) ([]uint32, error) {
	since, before := DayWindow(now)

	logger.WithFields(logrus.Fields{
		"since":  since.Format("02-Jan-2006"),
		"before": before.Format("02-Jan-2006"),
	}).Info("Searching for recent messages")

	ids, err := s.Search(since, before)
	if err != nil {
		return nil, err
	}

	logger.WithField("count", len(ids)).Info("Search complete")
	return ids, nil
}
