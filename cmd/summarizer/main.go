package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/nehabalamurugan/Email-Summarizer/internal/audio"
	"github.com/nehabalamurugan/Email-Summarizer/internal/cache"
	"github.com/nehabalamurugan/Email-Summarizer/internal/config"
	"github.com/nehabalamurugan/Email-Summarizer/internal/llm"
	"github.com/nehabalamurugan/Email-Summarizer/internal/mail"
	"github.com/nehabalamurugan/Email-Summarizer/internal/pipeline"
	"github.com/nehabalamurugan/Email-Summarizer/internal/summarize"
	"github.com/nehabalamurugan/Email-Summarizer/internal/tts"
)

var (
	version     = "dev"
	showVersion = flag.Bool("version", false, "Show version information")
	credentials = flag.String("credentials", "", "Path to the credentials YAML file (overrides CREDENTIALS_PATH)")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("email-summarizer version %s\n", version)
		os.Exit(0)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if *credentials != "" {
		cfg.CredentialsPath = *credentials
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	creds, err := config.LoadCredentials(cfg.CredentialsPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load credentials")
	}

	logger.Info("Starting email summarizer run")

	completer := llm.NewClient(llm.Options{
		BaseURL:    cfg.OpenAIBaseURL,
		APIKey:     cfg.OpenAIAPIKey,
		Model:      cfg.ChatModel,
		MaxRetries: cfg.MaxRetries,
		Backoff:    cfg.RetryBackoff,
		Timeout:    cfg.RequestTimeout,
	}, logger)

	summarizer := summarize.New(completer, summarize.DefaultPrompts(), cfg.ChunkSize, cfg.ChunkOverlap, logger)

	var accumulator *audio.Accumulator
	if cfg.AudioEnabled {
		narrator := tts.NewClient(tts.Options{
			BaseURL:    cfg.OpenAIBaseURL,
			APIKey:     cfg.OpenAIAPIKey,
			Model:      cfg.TTSModel,
			Voice:      cfg.TTSVoice,
			MaxRetries: cfg.MaxRetries,
			Backoff:    cfg.RetryBackoff,
			Timeout:    cfg.RequestTimeout,
		}, logger)
		accumulator = audio.NewAccumulator(narrator, cfg.AudioDir, cfg.CombinedAudioPath, logger)
	}

	// The store only saves repeat completion calls; a run without it is
	// still a full run.
	var store *cache.Store
	if summaryCache, err := cache.NewCache(cfg.StorePath, logger); err != nil {
		logger.WithError(err).Warn("Summary store unavailable, summaries will not be reused")
	} else {
		defer summaryCache.Close()
		store = cache.NewStore(summaryCache, logger)
	}

	var digest *mail.DigestSender
	if cfg.DigestEnabled {
		digest = mail.NewDigestSender(cfg, creds, logger)
	}

	openSession := func() (mail.Session, func(), error) {
		sess, err := mail.Open(cfg, creds, logger)
		if err != nil {
			return nil, nil, err
		}
		return sess, sess.Cleanup, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
	}()

	run := pipeline.New(cfg, logger, openSession, summarizer, accumulator, store, digest)
	if err := run.Run(ctx); err != nil {
		logger.WithError(err).Error("Run failed")
		os.Exit(1)
	}

	logger.Info("Run complete")
}
