package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nehabalamurugan/Email-Summarizer/pkg/types"
)

// Config holds the application configuration.
type Config struct {
	// IMAP settings
	IMAPHost        string
	IMAPPort        int
	Folder          string
	CredentialsPath string

	// Window semantics: the IMAP search is day-granular. When
	// StrictWindow is set, fetched messages are additionally filtered
	// by their Date header to a true rolling 24-hour window.
	StrictWindow bool

	// OpenAI settings
	OpenAIAPIKey  string
	OpenAIBaseURL string
	ChatModel     string
	TTSModel      string
	TTSVoice      string

	// Summarization settings
	ChunkSize    int
	ChunkOverlap int
	MaxRetries   int
	RetryBackoff time.Duration

	// Timeouts
	IMAPTimeout    time.Duration
	RequestTimeout time.Duration

	// Output artifacts
	OutputDir         string
	AudioDir          string
	CombinedAudioPath string
	AudioEnabled      bool
	DigestEnabled     bool

	// SMTP settings (digest delivery)
	SMTPHost string
	SMTPPort int

	// Summary store
	StorePath string

	LogLevel string
}

// Credentials holds the mailbox login loaded from the credentials file.
type Credentials struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		IMAPHost:        getEnv("IMAP_HOST", "imap.gmail.com"),
		IMAPPort:        getEnvInt("IMAP_PORT", 993),
		Folder:          getEnv("IMAP_FOLDER", "INBOX"),
		CredentialsPath: getEnv("CREDENTIALS_PATH", "credentials.yaml"),
		StrictWindow:    getEnvBool("STRICT_WINDOW", false),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		ChatModel:     getEnv("CHAT_MODEL", "gpt-3.5-turbo"),
		TTSModel:      getEnv("TTS_MODEL", "tts-1"),
		TTSVoice:      getEnv("TTS_VOICE", "alloy"),

		ChunkSize:    getEnvInt("CHUNK_SIZE", 2048),
		ChunkOverlap: getEnvInt("CHUNK_OVERLAP", 200),
		MaxRetries:   getEnvInt("MAX_RETRIES", 3),
		RetryBackoff: getEnvDuration("RETRY_BACKOFF", 2*time.Second),

		IMAPTimeout:    getEnvDuration("IMAP_TIMEOUT", 30*time.Second),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),

		OutputDir:         getEnv("OUTPUT_DIR", "."),
		AudioDir:          getEnv("AUDIO_DIR", "audios"),
		CombinedAudioPath: getEnv("COMBINED_AUDIO_PATH", "audios/combined_audio.mp3"),
		AudioEnabled:      getEnvBool("AUDIO_ENABLED", false),
		DigestEnabled:     getEnvBool("DIGEST_ENABLED", false),

		SMTPHost: getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getEnvInt("SMTP_PORT", 587),

		StorePath: getEnv("STORE_PATH", "summaries.db"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.IMAPHost == "" {
		return fmt.Errorf("%w: IMAP_HOST is required", types.ErrConfig)
	}
	if c.IMAPPort < 1 || c.IMAPPort > 65535 {
		return fmt.Errorf("%w: invalid IMAP_PORT %d", types.ErrConfig, c.IMAPPort)
	}
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY is required", types.ErrConfig)
	}
	if c.ChunkSize < 1 {
		return fmt.Errorf("%w: CHUNK_SIZE must be positive", types.ErrConfig)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: CHUNK_OVERLAP must be in [0, CHUNK_SIZE)", types.ErrConfig)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("%w: MAX_RETRIES must be positive", types.ErrConfig)
	}
	if c.DigestEnabled && c.SMTPHost == "" {
		return fmt.Errorf("%w: SMTP_HOST is required when DIGEST_ENABLED", types.ErrConfig)
	}
	return nil
}

// LoadCredentials loads the mailbox user and password from a YAML file.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading credentials file %s: %v", types.ErrConfig, path, err)
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("%w: parsing credentials file %s: %v", types.ErrConfig, path, err)
	}

	if creds.User == "" || creds.Password == "" {
		return nil, fmt.Errorf("%w: credentials file %s must set user and password", types.ErrConfig, path)
	}

	return &creds, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer or returns a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean or returns a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration or returns a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
