package mock

import (
	"context"

	"github.com/fwojciec/lawdoc"
)

var _ lawdoc.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of lawdoc.Searcher.
type Searcher struct {
	SearchFn                func(ctx context.Context, query string, limit int) ([]lawdoc.SearchResult, error)
	SearchByTopicFn         func(ctx context.Context, topic string, limit int) ([]lawdoc.SearchResult, error)
	SearchFinancialImpactFn func(ctx context.Context, impactType string, limit int) ([]lawdoc.SearchResult, error)
	SectionByIDFn           func(ctx context.Context, id string) (*lawdoc.Section, error)
	OverviewFn              func(ctx context.Context) (lawdoc.Overview, error)
}

func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]lawdoc.SearchResult, error) {
	return s.SearchFn(ctx, query, limit)
}

func (s *Searcher) SearchByTopic(ctx context.Context, topic string, limit int) ([]lawdoc.SearchResult, error) {
	return s.SearchByTopicFn(ctx, topic, limit)
}

func (s *Searcher) SearchFinancialImpact(ctx context.Context, impactType string, limit int) ([]lawdoc.SearchResult, error) {
	return s.SearchFinancialImpactFn(ctx, impactType, limit)
}

func (s *Searcher) SectionByID(ctx context.Context, id string) (*lawdoc.Section, error) {
	return s.SectionByIDFn(ctx, id)
}

func (s *Searcher) Overview(ctx context.Context) (lawdoc.Overview, error) {
	return s.OverviewFn(ctx)
}
