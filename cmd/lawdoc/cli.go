package main

import (
	"context"
	"io"

	"github.com/fwojciec/lawdoc"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Searcher lawdoc.Searcher
	Asker    lawdoc.Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Doc string `short:"d" env:"LAWDOC_DOCUMENT" required:"" help:"Path to the legislative XML document"`

	Ask      AskCmd      `cmd:"" help:"Ask a natural language question about the bill"`
	Search   SearchCmd   `cmd:"" help:"Search bill sections by keywords"`
	Section  SectionCmd  `cmd:"" help:"Show one section by its identifier"`
	Overview OverviewCmd `cmd:"" help:"Show aggregate statistics about the bill"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the bill"`
	JSON     bool   `help:"Print the structured answer as JSON"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Keywords to search for"`
	Limit int    `short:"n" default:"10" help:"Maximum number of results"`
	Topic bool   `help:"Treat the query as a policy topic instead of keywords"`
	JSON  bool   `help:"Print results as JSON"`
}

// SectionCmd is the "section" subcommand.
type SectionCmd struct {
	ID   string `arg:"" help:"Section identifier"`
	Full bool   `help:"Show the section's full text"`
}

// OverviewCmd is the "overview" subcommand.
type OverviewCmd struct {
	JSON bool `help:"Print the overview as JSON"`
}
