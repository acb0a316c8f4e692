package types

import "time"

// Message represents one fetched and parsed mailbox message.
type Message struct {
	UID       uint32    `json:"uid"`
	MessageID string    `json:"message_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Date      string    `json:"date"`
	Body      string    `json:"body"`
	Received  time.Time `json:"received,omitempty"`
}

// FetchFailure records a message that could not be fetched or parsed.
// Failed messages are kept so the report can show them instead of
// silently dropping them.
type FetchFailure struct {
	UID uint32
	Err error
}

// SummaryRecord is a persisted summary for one message, keyed by its
// Message-ID so reruns can skip completed work.
type SummaryRecord struct {
	ID        int64     `json:"id"`
	MessageID string    `json:"message_id"`
	UID       uint32    `json:"uid"`
	Sender    string    `json:"sender"`
	Subject   string    `json:"subject"`
	Date      string    `json:"date"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}
