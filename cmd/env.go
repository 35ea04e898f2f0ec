package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzi/internal/config"
	"github.com/abhisek/hanzi/internal/grading"
	"github.com/abhisek/hanzi/internal/llm"
	"github.com/abhisek/hanzi/internal/practice"
	"github.com/abhisek/hanzi/internal/sentence"
	"github.com/abhisek/hanzi/internal/store"
)

// usageError is a bad argument rather than a failure.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

type envOptions struct {
	// tui sends logs to a file so they do not draw over the screen.
	tui bool
	// llm wires a sentence generator when a provider is configured.
	llm bool
	// grading wires the remote stroke grader when URLs are configured.
	grading bool
}

// env is everything a command needs, opened once per invocation.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
	svc    *practice.Service

	closers []io.Closer
}

// Close releases the store and the log file.
func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}
	return errors.Join(errs...)
}

// loadConfig reads the layered configuration for cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path, cmd.Flags())
}

func openEnv(cmd *cobra.Command, opts envOptions) (*env, error) {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}

	logger, closer, err := newLogger(cfg, opts.tui)
	if err != nil {
		return nil, err
	}
	e.logger = logger
	if closer != nil {
		e.closers = append(e.closers, closer)
	}
	slog.SetDefault(logger)

	st, err := openStore(cfg)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.store = st
	e.closers = append(e.closers, st)

	deps := practice.Deps{
		Blobs:  st.BlobStore(),
		Events: st.EventRepo(),
		Logger: logger,
	}
	if opts.llm {
		deps.Generator = newGenerator(ctx, cfg, st.EventRepo(), logger)
	}
	if opts.grading {
		deps.Grader = newGrader(cfg, logger)
	}

	svc, err := practice.Open(ctx, deps)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open practice state: %w", err)
	}
	e.svc = svc
	return e, nil
}

// openStore opens the database named by the config, or the default one.
func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath := cfg.DB
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		dbPath = p
	} else if err := store.EnsureDir(dbPath); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// newLogger logs to stderr, or to a file in TUI mode.
func newLogger(cfg *config.Config, tui bool) (*slog.Logger, io.Closer, error) {
	hopts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if !tui {
		return slog.New(slog.NewTextHandler(os.Stderr, hopts)), nil, nil
	}

	path := cfg.LogFile
	if path == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dir, "hanzi.log")
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, hopts)), f, nil
}

// newGenerator returns nil, after telling the user, when no provider is
// configured. Everything except sentences still works.
func newGenerator(ctx context.Context, cfg *config.Config, events store.EventRepo, logger *slog.Logger) sentence.Generator {
	llmCfg := llm.Resolve(cfg.LLM)
	err := llmCfg.Validate()
	var provider llm.Provider
	if err == nil {
		provider, err = llm.NewProvider(ctx, llmCfg, events, logger)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Example sentences will be unavailable.")
		return nil
	}
	sc := sentence.DefaultConfig()
	sc.Retries = cfg.Practice.SentenceRetries
	return sentence.New(provider, sc)
}

// newGrader builds the remote grader. Missing URLs leave the classifier or
// recognizer unset, which grades every attempt by the fail-open policy.
func newGrader(cfg *config.Config, logger *slog.Logger) *grading.Grader {
	g := cfg.Grading
	client := func(url string) grading.ClientConfig {
		return grading.ClientConfig{
			BaseURL:           url,
			Timeout:           g.Timeout,
			RequestsPerSecond: g.RequestsPerSecond,
			Burst:             g.Burst,
			MaxRetries:        g.MaxRetries,
		}
	}

	var classifier grading.Classifier
	if g.ClassifierURL != "" {
		classifier = grading.NewHTTPClassifier(client(g.ClassifierURL))
	}
	var recognizer grading.Recognizer
	if g.RecognizerURL != "" {
		recognizer = grading.NewHTTPRecognizer(client(g.RecognizerURL))
	}
	grader := grading.NewGrader(classifier, recognizer,
		grading.WithFailOpen(g.FailOpen),
		grading.WithLogger(logger))
	logger.Debug("grader configured",
		"classifier", g.ClassifierURL != "",
		"recognizer", g.RecognizerURL != "",
		"fail_open", grader.FailOpen())
	return grader
}
