package lawdoc

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// stopwords are excluded from tokenization. Closed list: articles,
// prepositions, conjunctions, and common auxiliary verbs.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "that": {}, "this": {}, "with": {},
	"from": {}, "are": {}, "was": {}, "were": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "will": {}, "would": {}, "shall": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "can": {}, "could": {},
	"not": {}, "but": {}, "all": {}, "any": {}, "each": {}, "such": {},
	"other": {}, "than": {}, "under": {}, "upon": {}, "into": {}, "out": {},
	"about": {}, "over": {}, "after": {}, "before": {}, "between": {},
	"through": {}, "during": {}, "which": {}, "who": {}, "whom": {},
	"whose": {}, "where": {}, "when": {}, "what": {}, "why": {}, "how": {},
	"its": {}, "their": {}, "there": {}, "here": {}, "also": {}, "only": {},
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonWordRe    = regexp.MustCompile(`\W+`)
	numericRe    = regexp.MustCompile(`^\d+$`)
	sentenceRe   = regexp.MustCompile(`[.!?]+`)
)

// Normalize collapses whitespace runs to a single space, trims, and
// lowercases. It never fails; empty input yields an empty string.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " ")))
}

// Tokenize normalizes text and splits it into keyword tokens. Tokens of
// length <= 2, purely numeric tokens, and stop words are discarded.
func Tokenize(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}

	parts := nonWordRe.Split(normalized, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) <= 2 {
			continue
		}
		if numericRe.MatchString(p) {
			continue
		}
		if _, stop := stopwords[p]; stop {
			continue
		}
		tokens = append(tokens, p)
	}
	return tokens
}

// Similarity returns the Jaccard index of the token sets of a and b,
// in [0, 1]. It returns 0 if either input tokenizes to an empty set.
func Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		set[tok] = struct{}{}
	}
	return set
}

// Truncate returns text unchanged if it fits within maxLength; otherwise it
// cuts at maxLength characters, trims trailing whitespace, and appends "...".
// The cut counts characters, not bytes, so multi-byte text is never split
// mid-rune.
func Truncate(text string, maxLength int) string {
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	runes := []rune(text)
	return strings.TrimRight(string(runes[:maxLength]), " \t\n") + "..."
}

// Highlight wraps every case-insensitive, word-boundary match of any term
// in "**" markers. Terms are applied independently; a later term may re-wrap
// text already wrapped by an earlier one.
func Highlight(text string, terms []string) string {
	for _, term := range terms {
		if strings.TrimSpace(term) == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		if err != nil {
			continue
		}
		text = re.ReplaceAllString(text, "**$0**")
	}
	return text
}

// RelevantSentences splits text on sentence-terminating punctuation, scores
// each sentence by the number of normalized terms it contains, and returns
// up to maxCount sentences ordered by descending match count. Ties keep
// original document order. Sentences matching no term are excluded.
func RelevantSentences(text string, terms []string, maxCount int) []string {
	if maxCount <= 0 {
		return nil
	}

	normalized := make([]string, 0, len(terms))
	for _, term := range terms {
		if n := Normalize(term); n != "" {
			normalized = append(normalized, n)
		}
	}
	if len(normalized) == 0 {
		return nil
	}

	type scored struct {
		sentence string
		matches  int
		position int
	}

	var candidates []scored
	for i, raw := range sentenceRe.Split(text, -1) {
		sentence := strings.TrimSpace(raw)
		if sentence == "" {
			continue
		}
		lower := strings.ToLower(sentence)
		matches := 0
		for _, term := range normalized {
			if strings.Contains(lower, term) {
				matches++
			}
		}
		if matches > 0 {
			candidates = append(candidates, scored{sentence: sentence, matches: matches, position: i})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].matches > candidates[j].matches
	})

	if len(candidates) > maxCount {
		candidates = candidates[:maxCount]
	}

	result := make([]string, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, c.sentence)
	}
	return result
}
