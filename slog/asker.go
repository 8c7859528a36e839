package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lawdoc"
)

// Ensure LoggingAsker implements lawdoc.Asker.
var _ lawdoc.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with timing and outcome logging.
type LoggingAsker struct {
	next   lawdoc.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next lawdoc.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker, logging duration and either the
// error classification or the answer's confidence and citation count.
func (a *LoggingAsker) Ask(ctx context.Context, question string) (*lawdoc.StructuredAnswer, error) {
	begin := time.Now()
	answer, err := a.next.Ask(ctx, question)
	if err != nil {
		a.logger.Warn("question failed",
			"key", lawdoc.CacheKey(question),
			"code", lawdoc.ErrorCode(err),
			"duration", time.Since(begin),
		)
		return nil, err
	}
	a.logger.Info("question answered",
		"key", lawdoc.CacheKey(question),
		"confidence", answer.Confidence,
		"sections", len(answer.Sections),
		"duration", time.Since(begin),
	)
	return answer, nil
}
