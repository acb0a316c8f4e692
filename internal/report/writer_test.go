package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nehabalamurugan/Email-Summarizer/pkg/types"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testDate() time.Time {
	return time.Date(2026, time.August, 25, 9, 0, 0, 0, time.UTC)
}

func TestWriter_PathCarriesRunDate(t *testing.T) {
	w := NewWriter("/tmp/out", testDate(), quietLogger())
	assert.Equal(t, filepath.Join("/tmp/out", "email_summaries_2026-08-25.txt"), w.Path())
}

func TestWriter_SummaryBlockFormat(t *testing.T) {
	w := NewWriter(t.TempDir(), testDate(), quietLogger())
	msg := &types.Message{From: "alice@example.com", Subject: "Q3 update"}

	block := w.AddSummary(msg, "- revenue up\n- costs flat")

	assert.Equal(t, "From: alice@example.com\nSubject: Q3 update\nSummary:\n- revenue up\n- costs flat\n\n", block)
}

func TestWriter_SkippedAndFailedBlocks(t *testing.T) {
	w := NewWriter(t.TempDir(), testDate(), quietLogger())

	w.AddSkipped(&types.Message{From: "a@x", Subject: "s"}, "summarization error")
	w.AddFetchFailure(types.FetchFailure{UID: 7, Err: errors.New("boom")})

	content := w.Content()
	assert.Contains(t, content, "[skipped: summarization error]")
	assert.Contains(t, content, "Message 7")
	assert.Contains(t, content, "boom")
}

func TestWriter_FlushWritesBlocksInOrder(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, testDate(), quietLogger())

	w.AddSummary(&types.Message{From: "first@x", Subject: "one"}, "s1")
	w.AddSummary(&types.Message{From: "second@x", Subject: "two"}, "s2")
	require.NoError(t, w.Flush())

	content, err := os.ReadFile(w.Path())
	require.NoError(t, err)

	first := string(content)
	assert.Less(t, strings.Index(first, "first@x"), strings.Index(first, "second@x"))
}
