package lawdoc

import "sync"

// StatsSnapshot is a point-in-time view of the service counters.
type StatsSnapshot struct {
	Queries   int64            `json:"queries"`
	CacheHits int64            `json:"cacheHits"`
	ToolCalls map[string]int64 `json:"toolCalls"`
}

// Stats tracks read-only service counters: total queries answered and
// per-tool invocation counts. Reset is the only mutation the admin boundary
// exposes.
type Stats struct {
	mu        sync.Mutex
	queries   int64
	cacheHits int64
	toolCalls map[string]int64
}

// NewStats creates a zeroed Stats.
func NewStats() *Stats {
	return &Stats{toolCalls: make(map[string]int64)}
}

// RecordQuery increments the query counter.
func (s *Stats) RecordQuery() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
}

// RecordCacheHit increments the cache hit counter.
func (s *Stats) RecordCacheHit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cacheHits++
}

// RecordToolCall increments the invocation counter for one tool.
func (s *Stats) RecordToolCall(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toolCalls[name]++
}

// Snapshot returns a copy of the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	calls := make(map[string]int64, len(s.toolCalls))
	for name, count := range s.toolCalls {
		calls[name] = count
	}

	return StatsSnapshot{
		Queries:   s.queries,
		CacheHits: s.cacheHits,
		ToolCalls: calls,
	}
}

// Reset zeroes all counters.
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = 0
	s.cacheHits = 0
	s.toolCalls = make(map[string]int64)
}
