package mail

import (
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	"github.com/emersion/go-imap/client"
	"github.com/sirupsen/logrus"

	"github.com/nehabalamurugan/Email-Summarizer/internal/config"
	"github.com/nehabalamurugan/Email-Summarizer/pkg/types"
)

// Session is the capability set the pipeline needs from a mail
// transport. Alternate transports can be substituted without touching
// pipeline logic.
type Session interface {
	// Search returns the identifiers of messages received between
	// since and before. IMAP compares internal dates at day
	// granularity.
	Search(since, before time.Time) ([]uint32, error)

	// FetchRaw returns the raw RFC 822 bytes of one message.
	FetchRaw(id uint32) ([]byte, error)

	// Expunge, CloseMailbox and Logout make up session cleanup.
	Expunge() error
	CloseMailbox() error
	Logout() error
}

// IMAPSession is an authenticated IMAP connection with one selected
// folder. Created by Open, released by Cleanup.
type IMAPSession struct {
	client    *client.Client
	folder    string
	logger    *logrus.Logger
	closeOnce sync.Once
}

// Open establishes a TLS connection to the IMAP server, authenticates,
// and selects the configured folder. The caller must arrange for
// Cleanup to run once the session is no longer needed.
func Open(cfg *config.Config, creds *config.Credentials, logger *logrus.Logger) (*IMAPSession, error) {
	addr := fmt.Sprintf("%s:%d", cfg.IMAPHost, cfg.IMAPPort)

	cl, err := client.DialTLS(addr, &tls.Config{
		ServerName: cfg.IMAPHost,
		MinVersion: tls.VersionTLS12,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: dialing %s: %v", types.ErrConnection, addr, err)
	}
	cl.Timeout = cfg.IMAPTimeout

	if err := cl.Login(creds.User, creds.Password); err != nil {
		cl.Logout() //nolint:errcheck
		return nil, fmt.Errorf("%w: login rejected for %s: %v", types.ErrAuth, creds.User, err)
	}

	if _, err := cl.Select(cfg.Folder, false); err != nil {
		cl.Logout() //nolint:errcheck
		return nil, fmt.Errorf("%w: selecting folder %s: %v", types.ErrConnection, cfg.Folder, err)
	}

	logger.WithFields(logrus.Fields{
		"host":   cfg.IMAPHost,
		"folder": cfg.Folder,
		"user":   creds.User,
	}).Info("Connected to IMAP server")

	return &IMAPSession{
		client: cl,
		folder: cfg.Folder,
		logger: logger,
	}, nil
}

// FetchRaw fetches the raw RFC 822 bytes for one message by sequence
// number.
func (s *IMAPSession) FetchRaw(id uint32) ([]byte, error) {
	return fetchRaw(s.client, id)
}

// Expunge permanently removes messages marked for deletion.
func (s *IMAPSession) Expunge() error {
	return s.client.Expunge(nil)
}

// CloseMailbox closes the selected folder, committing its state.
func (s *IMAPSession) CloseMailbox() error {
	return s.client.Close()
}

// Logout ends the session.
func (s *IMAPSession) Logout() error {
	return s.client.Logout()
}

// Cleanup releases the session: expunge, close the folder, log out.
// Each step is attempted even if a prior one fails; failures are
// logged, never returned, so an earlier error's cause is not masked.
// Guarded so cleanup runs exactly once no matter how many exit paths
// reach it.
func (s *IMAPSession) Cleanup() {
	s.closeOnce.Do(func() {
		cleanup(s, s.logger)
	})
}

// cleanup runs the three cleanup steps against any Session.
func cleanup(s Session, logger *logrus.Logger) {
	if err := s.Expunge(); err != nil {
		logger.WithError(err).Warn("Failed to expunge mailbox")
	}
	if err := s.CloseMailbox(); err != nil {
		logger.WithError(err).Warn("Failed to close mailbox")
	}
	if err := s.Logout(); err != nil {
		logger.WithError(err).Warn("Failed to log out of IMAP session")
	}
	logger.Info("IMAP session cleaned up")
}
