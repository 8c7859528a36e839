package lawdoc

import (
	"encoding/json"
	"strings"
)

// Confidence levels for a structured answer.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// DefaultImplications is the placeholder used when the model's reply carries
// no implications of its own.
const DefaultImplications = "No specific implications were identified for this question."

// StructuredAnswer is the fixed shape every query resolves to. All fields
// are always populated; ParseAnswer back-fills anything the model omitted.
type StructuredAnswer struct {
	Answer       string   `json:"answer"`
	Sections     []string `json:"sections"`
	KeyPoints    []string `json:"keyPoints"`
	Implications string   `json:"implications"`
	Confidence   string   `json:"confidence"`
}

// ParseAnswer converts the model's final free-text reply into a
// StructuredAnswer. It first tries to parse the first balanced
// brace-delimited block as JSON; failing that, it falls back to deriving
// key points from list-marker lines and the answer from the remaining text.
// It always returns a fully-populated structure and never fails.
func ParseAnswer(raw string) *StructuredAnswer {
	if block := firstJSONBlock(raw); block != "" {
		var parsed StructuredAnswer
		if err := json.Unmarshal([]byte(block), &parsed); err == nil {
			return fillDefaults(&parsed, raw)
		}
	}
	return fromPlainText(raw)
}

// firstJSONBlock returns the first balanced brace-delimited substring of raw,
// or "" if none exists. Braces inside JSON strings are accounted for.
func firstJSONBlock(raw string) string {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		ch := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1]
			}
		}
	}
	return ""
}

var listMarkers = []string{"- ", "* ", "• "}

func fromPlainText(raw string) *StructuredAnswer {
	var points []string
	var body []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		marked := false
		for _, marker := range listMarkers {
			if strings.HasPrefix(trimmed, marker) {
				points = append(points, strings.TrimSpace(strings.TrimPrefix(trimmed, marker)))
				marked = true
				break
			}
		}
		if !marked {
			body = append(body, trimmed)
		}
	}

	return fillDefaults(&StructuredAnswer{
		Answer:    strings.Join(body, "\n"),
		KeyPoints: points,
	}, raw)
}

func fillDefaults(a *StructuredAnswer, raw string) *StructuredAnswer {
	if a.Answer == "" {
		a.Answer = strings.TrimSpace(raw)
	}
	if a.Sections == nil {
		a.Sections = []string{}
	}
	if a.KeyPoints == nil {
		a.KeyPoints = []string{}
	}
	if a.Implications == "" {
		a.Implications = DefaultImplications
	}
	switch a.Confidence {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
	default:
		a.Confidence = ConfidenceMedium
	}
	return a
}
