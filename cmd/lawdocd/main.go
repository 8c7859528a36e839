// Command lawdocd serves the lawdoc HTTP API. It reads and indexes the
// legislative XML document once at startup, then answers retrieval and
// question-answering requests against the immutable snapshot.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fwojciec/lawdoc"
	"github.com/fwojciec/lawdoc/anthropic"
	"github.com/fwojciec/lawdoc/conversation"
	"github.com/fwojciec/lawdoc/etree"
	"github.com/fwojciec/lawdoc/fs"
	"github.com/fwojciec/lawdoc/gemini"
	lawdochttp "github.com/fwojciec/lawdoc/http"
	"github.com/fwojciec/lawdoc/search"
	lawdocslog "github.com/fwojciec/lawdoc/slog"
	"github.com/fwojciec/lawdoc/sqlite"
	"github.com/fwojciec/lawdoc/tools"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

func main() {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(context.Background(), logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Build the snapshot before accepting any traffic. A document that
	// cannot be indexed is fatal; partial snapshots are never served.
	source := fs.NewSource(cfg.DocumentPath)
	raw, contentHash, err := source.Read()
	if err != nil {
		return err
	}
	snapshot, err := etree.NewIndexer(logger).Build(raw)
	if err != nil {
		return err
	}
	logger.Info("document indexed",
		"path", cfg.DocumentPath,
		"hash", contentHash,
		"sections", len(snapshot.Sections),
		"keywords", len(snapshot.Index),
	)

	stats := lawdoc.NewStats()
	searcher := lawdocslog.NewLoggingSearcher(search.NewEngine(snapshot), logger)

	executor, err := tools.NewExecutor(searcher, stats)
	if err != nil {
		return fmt.Errorf("create tool executor: %w", err)
	}

	model, err := newModelClient(ctx, cfg)
	if err != nil {
		return err
	}

	asker := lawdocslog.NewLoggingAsker(&conversation.Orchestrator{
		Model:     model,
		Executor:  executor,
		Stats:     stats,
		Logger:    logger,
		MaxRounds: cfg.MaxRounds,
		Timeout:   cfg.ModelTimeout,
	}, logger)

	var cache lawdoc.AnswerCache
	if cfg.CachePath != "" {
		db := sqlite.NewDB(cfg.CachePath)
		if err := db.Open(); err != nil {
			return fmt.Errorf("open answer cache at %q: %w", cfg.CachePath, err)
		}
		defer db.Close()
		cache = sqlite.NewAnswerCache(db, cfg.CacheTTL)
	}

	server := lawdochttp.NewServer(searcher, asker, cache, stats, logger, cfg.QueriesPerSecond)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "port", cfg.Port, "provider", cfg.Provider)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newModelClient(ctx context.Context, cfg Config) (lawdoc.ModelClient, error) {
	switch cfg.Provider {
	case "gemini":
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to Gemini API: %w", err)
		}
		return gemini.NewClient(client, cfg.GeminiModel), nil
	default:
		return anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	}
}
