// Package search implements lexical retrieval over a document snapshot:
// keyword search via the inverted index, topic and financial-impact search
// over fixed keyword expansions, direct lookup, and document overview.
package search

import (
	"context"
	"sort"
	"strings"

	"github.com/fwojciec/lawdoc"
	"github.com/fwojciec/lawdoc/bloom"
)

// DefaultLimit is used when a caller requests a non-positive result count.
const DefaultLimit = 10

// vocabFalsePositiveRate sizes the vocabulary Bloom filter.
const vocabFalsePositiveRate = 0.01

// Ensure Engine implements lawdoc.Searcher at compile time.
var _ lawdoc.Searcher = (*Engine)(nil)

// Engine answers retrieval queries against one immutable snapshot. All
// operations are read-only map and slice lookups; Engine is safe for
// concurrent use.
type Engine struct {
	snapshot *lawdoc.Snapshot
	vocab    *bloom.Filter
}

// NewEngine creates an Engine over the snapshot.
func NewEngine(snapshot *lawdoc.Snapshot) *Engine {
	n := uint(len(snapshot.Index))
	if n == 0 {
		n = 1
	}
	vocab := bloom.NewFilter(n, vocabFalsePositiveRate)
	for keyword := range snapshot.Index {
		vocab.Add(keyword)
	}
	return &Engine{snapshot: snapshot, vocab: vocab}
}

// Search scores sections by the count of distinct query tokens they match
// in the inverted index. Results are ordered by descending score; ties
// break by ascending section ID so the ordering is deterministic. A query
// with no surviving tokens yields an empty result.
func (e *Engine) Search(_ context.Context, query string, limit int) ([]lawdoc.SearchResult, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	seen := make(map[string]struct{})
	scores := make(map[string]int)
	for _, token := range lawdoc.Tokenize(query) {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		if !e.vocab.Test(token) {
			continue
		}
		for _, id := range e.snapshot.Index[token] {
			scores[id]++
		}
	}
	if len(scores) == 0 {
		return []lawdoc.SearchResult{}, nil
	}

	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return ids[i] < ids[j]
	})

	if len(ids) > limit {
		ids = ids[:limit]
	}

	results := make([]lawdoc.SearchResult, 0, len(ids))
	for _, id := range ids {
		results = append(results, lawdoc.SearchResult{
			Section: e.snapshot.Sections[id],
			Score:   scores[id],
		})
	}
	return results, nil
}

// SearchByTopic expands a known topic into its keyword set and runs a
// keyword search over the joined set. An unknown topic falls back to the
// literal topic string.
func (e *Engine) SearchByTopic(ctx context.Context, topic string, limit int) ([]lawdoc.SearchResult, error) {
	return e.Search(ctx, expandQuery(lawdoc.TopicKeywords, topic), limit)
}

// SearchFinancialImpact is SearchByTopic over the financial impact table.
func (e *Engine) SearchFinancialImpact(ctx context.Context, impactType string, limit int) ([]lawdoc.SearchResult, error) {
	return e.Search(ctx, expandQuery(lawdoc.ImpactKeywords, impactType), limit)
}

// SectionByID returns a single section, or ENOTFOUND.
func (e *Engine) SectionByID(_ context.Context, id string) (*lawdoc.Section, error) {
	return e.snapshot.SectionByID(id)
}

// Overview returns aggregate statistics for the document.
func (e *Engine) Overview(_ context.Context) (lawdoc.Overview, error) {
	return e.snapshot.Overview(lawdoc.PolicyDomains), nil
}

func expandQuery(table map[string][]string, key string) string {
	if keywords, ok := table[lawdoc.Normalize(key)]; ok {
		return strings.Join(keywords, " ")
	}
	return key
}
