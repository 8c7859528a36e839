// Command lawdoc is the CLI for querying a legislative XML document: offline
// keyword search directly against the snapshot, and model-backed question
// answering.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/lawdoc"
	"github.com/fwojciec/lawdoc/anthropic"
	"github.com/fwojciec/lawdoc/conversation"
	"github.com/fwojciec/lawdoc/etree"
	"github.com/fwojciec/lawdoc/fs"
	"github.com/fwojciec/lawdoc/search"
	"github.com/fwojciec/lawdoc/tools"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Searcher and Asker override the defaults when set; used by tests.
	Searcher lawdoc.Searcher
	Asker    lawdoc.Asker
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("lawdoc"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'lawdoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	deps.Searcher = m.Searcher
	if deps.Searcher == nil {
		searcher, err := buildSearcher(cli.Doc, logger)
		if err != nil {
			return err
		}
		deps.Searcher = searcher
	}

	if cmd == "ask" {
		deps.Asker = m.Asker
		if deps.Asker == nil {
			asker, err := buildAsker(deps.Searcher, logger)
			if err != nil {
				return err
			}
			deps.Asker = asker
		}
	}

	return kongCtx.Run(deps)
}

// buildSearcher reads and indexes the document.
func buildSearcher(path string, logger *slog.Logger) (lawdoc.Searcher, error) {
	source := fs.NewSource(path)
	raw, _, err := source.Read()
	if err != nil {
		return nil, err
	}
	snapshot, err := etree.NewIndexer(logger).Build(raw)
	if err != nil {
		return nil, err
	}
	return search.NewEngine(snapshot), nil
}

// buildAsker wires the conversation orchestrator over the Anthropic API.
func buildAsker(searcher lawdoc.Searcher, logger *slog.Logger) (lawdoc.Asker, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	executor, err := tools.NewExecutor(searcher, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool executor: %w", err)
	}

	return &conversation.Orchestrator{
		Model:    anthropic.NewClient(apiKey, os.Getenv("ANTHROPIC_MODEL")),
		Executor: executor,
		Logger:   logger,
	}, nil
}
