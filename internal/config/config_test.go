package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nehabalamurugan/Email-Summarizer/pkg/types"
)

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCredentials_OK(t *testing.T) {
	path := writeCredentials(t, "user: alice@example.com\npassword: s3cret\n")

	creds, err := LoadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", creds.User)
	assert.Equal(t, "s3cret", creds.Password)
}

func TestLoadCredentials_MissingFile(t *testing.T) {
	_, err := LoadCredentials(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrConfig))
	assert.True(t, types.Fatal(err))
}

func TestLoadCredentials_MissingFields(t *testing.T) {
	for _, content := range []string{
		"user: alice@example.com\n",
		"password: s3cret\n",
		"{}\n",
	} {
		path := writeCredentials(t, content)
		_, err := LoadCredentials(path)
		require.Error(t, err, "content %q should fail", content)
		assert.True(t, errors.Is(err, types.ErrConfig))
	}
}

func TestLoadCredentials_MalformedYAML(t *testing.T) {
	path := writeCredentials(t, "user: [unclosed\n")
	_, err := LoadCredentials(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrConfig))
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"IMAP_HOST", "IMAP_PORT", "IMAP_FOLDER", "CHUNK_SIZE", "CHUNK_OVERLAP", "STRICT_WINDOW", "AUDIO_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "imap.gmail.com", cfg.IMAPHost)
	assert.Equal(t, 993, cfg.IMAPPort)
	assert.Equal(t, "INBOX", cfg.Folder)
	assert.Equal(t, 2048, cfg.ChunkSize)
	assert.Equal(t, 200, cfg.ChunkOverlap)
	assert.False(t, cfg.StrictWindow)
	assert.False(t, cfg.AudioEnabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("IMAP_HOST", "mail.example.com")
	t.Setenv("CHUNK_SIZE", "512")
	t.Setenv("STRICT_WINDOW", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "mail.example.com", cfg.IMAPHost)
	assert.Equal(t, 512, cfg.ChunkSize)
	assert.True(t, cfg.StrictWindow)
}

func TestValidate_RequiresAPIKey(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	cfg.OpenAIAPIKey = ""

	err = cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrConfig))
}

func TestValidate_RejectsBadOverlap(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	cfg.OpenAIAPIKey = "k"
	cfg.ChunkSize = 100
	cfg.ChunkOverlap = 100

	err = cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrConfig))
}
