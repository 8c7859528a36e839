package lawdoc_test

import (
	"regexp"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/lawdoc"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("collapses whitespace and lowercases", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "farm subsidy program", lawdoc.Normalize("  Farm \t Subsidy\n\nProgram  "))
	})

	t.Run("empty input yields empty string", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", lawdoc.Normalize(""))
		assert.Equal(t, "", lawdoc.Normalize("   \n\t  "))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			"Farm  Subsidy",
			"  ALREADY normalized  ",
			"§ 101. Appropriations — FY2026",
			"",
		}
		for _, input := range inputs {
			once := lawdoc.Normalize(input)
			assert.Equal(t, once, lawdoc.Normalize(once))
		}
	})
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	t.Run("splits on non-word boundaries", func(t *testing.T) {
		t.Parallel()

		tokens := lawdoc.Tokenize("farm-subsidy program, (fiscal) year")
		assert.Equal(t, []string{"farm", "subsidy", "program", "fiscal", "year"}, tokens)
	})

	t.Run("discards short numeric and stop-word tokens", func(t *testing.T) {
		t.Parallel()

		numericRe := regexp.MustCompile(`^\d+$`)
		tokens := lawdoc.Tokenize("The tax of 2026 is in an Act for all of us")
		for _, tok := range tokens {
			assert.Greater(t, len(tok), 2, "token %q too short", tok)
			assert.False(t, numericRe.MatchString(tok), "numeric token %q survived", tok)
		}
		assert.NotContains(t, tokens, "the")
		assert.NotContains(t, tokens, "for")
		assert.NotContains(t, tokens, "all")
		assert.Contains(t, tokens, "tax")
	})

	t.Run("empty and stop-word-only input yields no tokens", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, lawdoc.Tokenize(""))
		assert.Empty(t, lawdoc.Tokenize("the of and"))
	})
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	t.Run("identical non-empty texts score 1", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 1.0, lawdoc.Similarity("farm subsidy program", "farm subsidy program"))
	})

	t.Run("is symmetric", func(t *testing.T) {
		t.Parallel()

		a := "farm subsidy program"
		b := "defense spending program"
		assert.Equal(t, lawdoc.Similarity(a, b), lawdoc.Similarity(b, a))
	})

	t.Run("disjoint texts score 0", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0.0, lawdoc.Similarity("farm subsidy", "defense spending"))
	})

	t.Run("empty tokenization scores 0", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0.0, lawdoc.Similarity("", "farm subsidy"))
		assert.Equal(t, 0.0, lawdoc.Similarity("the of", "farm subsidy"))
	})

	t.Run("partial overlap scores between 0 and 1", func(t *testing.T) {
		t.Parallel()

		score := lawdoc.Similarity("farm subsidy program", "farm spending program")
		assert.Greater(t, score, 0.0)
		assert.Less(t, score, 1.0)
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	t.Run("returns short text unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "short", lawdoc.Truncate("short", 10))
	})

	t.Run("cuts long text and appends ellipsis", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "farm...", lawdoc.Truncate("farm subsidy", 5))
	})

	t.Run("trims trailing whitespace before the ellipsis", func(t *testing.T) {
		t.Parallel()

		got := lawdoc.Truncate("farm subsidy", 6)
		assert.Equal(t, "farm s...", got)
		assert.NotContains(t, got, " ...")
	})

	t.Run("counts characters, not bytes", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "§§...", lawdoc.Truncate("§§§§", 2))
		// Within the character limit even though over it in bytes.
		assert.Equal(t, "§§§§", lawdoc.Truncate("§§§§", 5))
	})

	t.Run("never splits a rune", func(t *testing.T) {
		t.Parallel()

		text := "Section 101—subsidies for “qualifying” producers under §7."
		for maxLength := 1; maxLength < len(text); maxLength++ {
			got := lawdoc.Truncate(text, maxLength)
			assert.True(t, utf8.ValidString(got), "maxLength %d produced invalid UTF-8", maxLength)
		}
	})
}

func TestHighlight(t *testing.T) {
	t.Parallel()

	t.Run("wraps word-boundary matches case-insensitively", func(t *testing.T) {
		t.Parallel()

		got := lawdoc.Highlight("Farm subsidies for farm use", []string{"farm"})
		assert.Equal(t, "**Farm** subsidies for **farm** use", got)
	})

	t.Run("does not match inside words", func(t *testing.T) {
		t.Parallel()

		got := lawdoc.Highlight("farmland", []string{"farm"})
		assert.Equal(t, "farmland", got)
	})

	t.Run("applies multiple terms independently", func(t *testing.T) {
		t.Parallel()

		got := lawdoc.Highlight("farm subsidy", []string{"farm", "subsidy"})
		assert.Equal(t, "**farm** **subsidy**", got)
	})
}

func TestRelevantSentences(t *testing.T) {
	t.Parallel()

	text := "The program funds farms. Defense spending is separate. Farm subsidies support farm towns."

	t.Run("orders by descending match count", func(t *testing.T) {
		t.Parallel()

		got := lawdoc.RelevantSentences(text, []string{"farm", "subsidies"}, 5)
		assert.Equal(t, []string{
			"Farm subsidies support farm towns",
			"The program funds farms",
		}, got)
	})

	t.Run("excludes sentences with no match", func(t *testing.T) {
		t.Parallel()

		got := lawdoc.RelevantSentences(text, []string{"farm"}, 5)
		for _, sentence := range got {
			assert.NotContains(t, sentence, "Defense")
		}
	})

	t.Run("respects maxCount", func(t *testing.T) {
		t.Parallel()

		got := lawdoc.RelevantSentences(text, []string{"farm"}, 1)
		assert.Len(t, got, 1)
	})

	t.Run("returns nil for empty terms", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, lawdoc.RelevantSentences(text, nil, 3))
	})
}
