// Package audio accumulates narrated summaries into one cumulative
// audio artifact.
package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/nehabalamurugan/Email-Summarizer/internal/tts"
	"github.com/nehabalamurugan/Email-Summarizer/pkg/types"
)

// Accumulator renders text to speech and appends each rendering to a
// persistent combined MP3. Appends happen in call order; the caller
// invokes Append synchronously once per message, so the combined file
// plays the summaries in the order they were produced. MP3 frame
// streams concatenate at the byte level.
type Accumulator struct {
	narrator     tts.Narrator
	dir          string
	combinedPath string
	logger       *logrus.Logger
}

// NewAccumulator creates an Accumulator writing temporary renderings
// into dir and accumulating into combinedPath.
func NewAccumulator(narrator tts.Narrator, dir, combinedPath string, logger *logrus.Logger) *Accumulator {
	return &Accumulator{
		narrator:     narrator,
		dir:          dir,
		combinedPath: combinedPath,
		logger:       logger,
	}
}

// Append narrates text and appends the audio to the combined file,
// creating it if absent. The temporary rendering is removed whether or
// not the append succeeds.
func (a *Accumulator) Append(ctx context.Context, text string) error {
	audio, err := a.narrator.Synthesize(ctx, text)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrNarrate, err)
	}

	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating audio directory: %v", types.ErrNarrate, err)
	}

	tmp, err := os.CreateTemp(a.dir, "narration-*.mp3")
	if err != nil {
		return fmt.Errorf("%w: creating temp audio file: %v", types.ErrNarrate, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			a.logger.WithError(err).Warn("Failed to remove temp audio file")
		}
	}()

	if _, err := tmp.Write(audio); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing temp audio file: %v", types.ErrNarrate, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing temp audio file: %v", types.ErrNarrate, err)
	}

	if err := a.appendFile(tmpPath); err != nil {
		return fmt.Errorf("%w: %v", types.ErrNarrate, err)
	}

	a.logger.WithFields(logrus.Fields{
		"bytes":    len(audio),
		"combined": a.combinedPath,
	}).Debug("Appended narration")

	return nil
}

// appendFile appends the temp rendering to the combined artifact.
func (a *Accumulator) appendFile(tmpPath string) error {
	if dir := filepath.Dir(a.combinedPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating combined audio directory: %w", err)
		}
	}

	src, err := os.Open(tmpPath)
	if err != nil {
		return fmt.Errorf("opening temp audio file: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(a.combinedPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening combined audio file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("appending audio: %w", err)
	}
	return nil
}
