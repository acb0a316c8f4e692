package types

import "errors"

// Error kinds for the run. Callers classify failures with errors.Is:
// the first four abort the run, the rest skip the affected message and
// continue.
var (
	// ErrConfig covers missing or malformed configuration and
	// credentials. Raised before any mail operation.
	ErrConfig = errors.New("config error")

	// ErrConnection covers transport-level failures talking to the
	// mail server.
	ErrConnection = errors.New("connection error")

	// ErrAuth covers rejected credentials.
	ErrAuth = errors.New("auth error")

	// ErrSearch covers a rejected mailbox search. Fatal, but session
	// cleanup still runs.
	ErrSearch = errors.New("search error")

	// ErrFetch covers a failed fetch or parse of a single message.
	ErrFetch = errors.New("fetch error")

	// ErrSummarize covers a summarization failure for a single message
	// after retries are exhausted.
	ErrSummarize = errors.New("summarization error")

	// ErrNarrate covers a narration failure for a single summary.
	ErrNarrate = errors.New("narration error")
)

// Fatal reports whether err should abort the whole run rather than
// skip a single message.
func Fatal(err error) bool {
	return errors.Is(err, ErrConfig) ||
		errors.Is(err, ErrConnection) ||
		errors.Is(err, ErrAuth) ||
		errors.Is(err, ErrSearch)
}
