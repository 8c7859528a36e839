// Package slog provides logging decorators for lawdoc interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lawdoc"
)

// Ensure LoggingSearcher implements lawdoc.Searcher.
var _ lawdoc.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with debug logging for every retrieval
// operation.
type LoggingSearcher struct {
	next   lawdoc.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next lawdoc.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the outcome.
func (s *LoggingSearcher) Search(ctx context.Context, query string, limit int) ([]lawdoc.SearchResult, error) {
	begin := time.Now()
	results, err := s.next.Search(ctx, query, limit)
	s.logger.Debug("keyword search",
		"query", query,
		"results", len(results),
		"duration", time.Since(begin),
	)
	return results, err
}

// SearchByTopic delegates to the wrapped searcher and logs the outcome.
func (s *LoggingSearcher) SearchByTopic(ctx context.Context, topic string, limit int) ([]lawdoc.SearchResult, error) {
	begin := time.Now()
	results, err := s.next.SearchByTopic(ctx, topic, limit)
	s.logger.Debug("topic search",
		"topic", topic,
		"results", len(results),
		"duration", time.Since(begin),
	)
	return results, err
}

// SearchFinancialImpact delegates to the wrapped searcher and logs the outcome.
func (s *LoggingSearcher) SearchFinancialImpact(ctx context.Context, impactType string, limit int) ([]lawdoc.SearchResult, error) {
	begin := time.Now()
	results, err := s.next.SearchFinancialImpact(ctx, impactType, limit)
	s.logger.Debug("financial impact search",
		"impact_type", impactType,
		"results", len(results),
		"duration", time.Since(begin),
	)
	return results, err
}

// SectionByID delegates to the wrapped searcher.
func (s *LoggingSearcher) SectionByID(ctx context.Context, id string) (*lawdoc.Section, error) {
	return s.next.SectionByID(ctx, id)
}

// Overview delegates to the wrapped searcher.
func (s *LoggingSearcher) Overview(ctx context.Context) (lawdoc.Overview, error) {
	return s.next.Overview(ctx)
}
