package search_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/lawdoc"
	"github.com/fwojciec/lawdoc/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureSnapshot builds a small pre-indexed snapshot by hand. Sections and
// index entries mirror what the etree indexer would produce.
func fixtureSnapshot() *lawdoc.Snapshot {
	sections := map[string]*lawdoc.Section{
		"s1": {ID: "s1", Type: "section", Title: "Farm subsidies", FullText: "Farm subsidies shall be expanded for qualifying producers."},
		"s2": {ID: "s2", Type: "section", Title: "Defense procurement", FullText: "Military procurement of defense systems is authorized."},
		"s3": {ID: "s3", Type: "section", Title: "Farm credit", FullText: "Farm credit programs and rural tax credit provisions."},
		"s4": {ID: "s4", Type: "section", Title: "Appropriations", FullText: "Funds are appropriated for farm and defense programs."},
	}
	index := make(map[string][]string)
	for id, s := range sections {
		for _, tok := range lawdoc.Tokenize(s.Title + " " + s.FullText) {
			index[tok] = appendUnique(index[tok], id)
		}
	}
	return &lawdoc.Snapshot{
		Sections: sections,
		Index:    index,
		Metadata: lawdoc.Metadata{Title: "Omnibus Act"},
		Order:    []string{"s1", "s2", "s3", "s4"},
	}
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	// Keep sorted; fixture IDs arrive in arbitrary map order.
	out := append(ids, id)
	for i := len(out) - 1; i > 0 && out[i] < out[i-1]; i-- {
		out[i], out[i-1] = out[i-1], out[i]
	}
	return out
}

func TestEngine_Search(t *testing.T) {
	t.Parallel()

	engine := search.NewEngine(fixtureSnapshot())
	ctx := context.Background()

	t.Run("scores by distinct matched tokens", func(t *testing.T) {
		t.Parallel()

		results, err := engine.Search(ctx, "farm defense", 10)
		require.NoError(t, err)
		require.NotEmpty(t, results)

		// s4 mentions both farm and defense.
		assert.Equal(t, "s4", results[0].Section.ID)
		assert.Equal(t, 2, results[0].Score)
		for _, r := range results[1:] {
			assert.Equal(t, 1, r.Score)
		}
	})

	t.Run("ties break by ascending section id", func(t *testing.T) {
		t.Parallel()

		results, err := engine.Search(ctx, "farm", 10)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "s1", results[0].Section.ID)
		assert.Equal(t, "s3", results[1].Section.ID)
		assert.Equal(t, "s4", results[2].Section.ID)
	})

	t.Run("duplicate query tokens count once", func(t *testing.T) {
		t.Parallel()

		results, err := engine.Search(ctx, "farm farm farm", 10)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, 1, results[0].Score)
	})

	t.Run("limit caps results", func(t *testing.T) {
		t.Parallel()

		results, err := engine.Search(ctx, "farm", 2)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("non-positive limit uses the default", func(t *testing.T) {
		t.Parallel()

		results, err := engine.Search(ctx, "farm", 0)
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("stopword-only query yields empty result", func(t *testing.T) {
		t.Parallel()

		results, err := engine.Search(ctx, "the and for", 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("empty query yields empty result", func(t *testing.T) {
		t.Parallel()

		results, err := engine.Search(ctx, "", 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("unknown keyword yields empty result", func(t *testing.T) {
		t.Parallel()

		results, err := engine.Search(ctx, "zyzzyva", 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestEngine_SearchByTopic(t *testing.T) {
	t.Parallel()

	engine := search.NewEngine(fixtureSnapshot())
	ctx := context.Background()

	t.Run("known topic expands to its keyword set", func(t *testing.T) {
		t.Parallel()

		results, err := engine.SearchByTopic(ctx, "tax", 10)
		require.NoError(t, err)

		// s3 matches both "tax" and "credit" from the expansion.
		require.NotEmpty(t, results)
		assert.Equal(t, "s3", results[0].Section.ID)
		assert.Equal(t, 2, results[0].Score)
	})

	t.Run("topic lookup is case-insensitive", func(t *testing.T) {
		t.Parallel()

		upper, err := engine.SearchByTopic(ctx, "Defense", 10)
		require.NoError(t, err)
		lower, err := engine.SearchByTopic(ctx, "defense", 10)
		require.NoError(t, err)
		assert.Equal(t, lower, upper)
	})

	t.Run("unknown topic falls back to the literal string", func(t *testing.T) {
		t.Parallel()

		results, err := engine.SearchByTopic(ctx, "subsidies", 10)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "s1", results[0].Section.ID)
	})
}

func TestEngine_SearchFinancialImpact(t *testing.T) {
	t.Parallel()

	engine := search.NewEngine(fixtureSnapshot())

	results, err := engine.SearchFinancialImpact(context.Background(), "appropriation", 10)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "s4", results[0].Section.ID)
}

func TestEngine_SectionByID(t *testing.T) {
	t.Parallel()

	engine := search.NewEngine(fixtureSnapshot())
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		section, err := engine.SectionByID(ctx, "s2")
		require.NoError(t, err)
		assert.Equal(t, "Defense procurement", section.Title)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		_, err := engine.SectionByID(ctx, "nope")
		require.Error(t, err)
		assert.Equal(t, lawdoc.ENOTFOUND, lawdoc.ErrorCode(err))
	})
}

func TestEngine_Overview(t *testing.T) {
	t.Parallel()

	engine := search.NewEngine(fixtureSnapshot())

	overview, err := engine.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, overview.TotalSections)
	assert.Equal(t, "Omnibus Act", overview.Metadata.Title)
	assert.Equal(t, lawdoc.PolicyDomains, overview.PolicyDomains)
}

func TestEngine_EmptySnapshot(t *testing.T) {
	t.Parallel()

	engine := search.NewEngine(&lawdoc.Snapshot{
		Sections: map[string]*lawdoc.Section{},
		Index:    map[string][]string{},
	})

	results, err := engine.Search(context.Background(), "anything", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func BenchmarkEngine_Search(b *testing.B) {
	sections := make(map[string]*lawdoc.Section)
	index := make(map[string][]string)
	order := make([]string, 0, 1000)
	for i := 0; i < 1000; i++ {
		id := fmt.Sprintf("s%04d", i)
		sections[id] = &lawdoc.Section{ID: id, FullText: "farm defense appropriation"}
		order = append(order, id)
		for _, tok := range []string{"farm", "defense", "appropriation"} {
			index[tok] = append(index[tok], id)
		}
	}
	engine := search.NewEngine(&lawdoc.Snapshot{Sections: sections, Index: index, Order: order})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Search(ctx, "farm defense appropriation", 10); err != nil {
			b.Fatal(err)
		}
	}
}
