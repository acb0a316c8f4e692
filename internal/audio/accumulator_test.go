package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nehabalamurugan/Email-Summarizer/pkg/types"
)

// fakeNarrator echoes the text back as the "audio" bytes so ordering
// is visible in the combined file.
type fakeNarrator struct {
	err error
}

func (f *fakeNarrator) Synthesize(_ context.Context, text string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("[" + text + "]"), nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestAppend_ConcatenatesInOrder(t *testing.T) {
	dir := t.TempDir()
	combined := filepath.Join(dir, "combined_audio.mp3")
	acc := NewAccumulator(&fakeNarrator{}, dir, combined, quietLogger())

	require.NoError(t, acc.Append(context.Background(), "summary A"))
	require.NoError(t, acc.Append(context.Background(), "summary B"))

	content, err := os.ReadFile(combined)
	require.NoError(t, err)
	assert.Equal(t, "[summary A][summary B]", string(content))
}

func TestAppend_RemovesTempFiles(t *testing.T) {
	dir := t.TempDir()
	combined := filepath.Join(dir, "combined_audio.mp3")
	acc := NewAccumulator(&fakeNarrator{}, dir, combined, quietLogger())

	require.NoError(t, acc.Append(context.Background(), "summary"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "combined_audio.mp3", entries[0].Name())
}

func TestAppend_CreatesCombinedFileIfAbsent(t *testing.T) {
	dir := t.TempDir()
	combined := filepath.Join(dir, "nested", "combined_audio.mp3")
	acc := NewAccumulator(&fakeNarrator{}, dir, combined, quietLogger())

	require.NoError(t, acc.Append(context.Background(), "first"))

	content, err := os.ReadFile(combined)
	require.NoError(t, err)
	assert.Equal(t, "[first]", string(content))
}

func TestAppend_NarrationFailure(t *testing.T) {
	dir := t.TempDir()
	combined := filepath.Join(dir, "combined_audio.mp3")
	acc := NewAccumulator(&fakeNarrator{err: errors.New("synthesis down")}, dir, combined, quietLogger())

	err := acc.Append(context.Background(), "summary")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNarrate))
	assert.False(t, types.Fatal(err))

	// Nothing written, nothing left behind.
	_, statErr := os.Stat(combined)
	assert.True(t, os.IsNotExist(statErr))
}
