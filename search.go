package lawdoc

import "context"

// SearchResult pairs a section with its relevance score for a query.
type SearchResult struct {
	Section *Section `json:"section"`
	Score   int      `json:"score"`
}

// Searcher provides lexical retrieval over a document snapshot.
type Searcher interface {
	// Search scores sections by inverted-index keyword overlap with the
	// query and returns up to limit results, best first. A query that
	// tokenizes to nothing yields an empty result, not an error.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)

	// SearchByTopic expands a known topic into its keyword set and
	// searches with it. Unknown topics fall back to the literal topic
	// string as the sole keyword.
	SearchByTopic(ctx context.Context, topic string, limit int) ([]SearchResult, error)

	// SearchFinancialImpact searches using the keyword set for a known
	// financial impact type, with the same fallback as SearchByTopic.
	SearchFinancialImpact(ctx context.Context, impactType string, limit int) ([]SearchResult, error)

	// SectionByID returns a single section.
	// Returns ENOTFOUND if the section does not exist.
	SectionByID(ctx context.Context, id string) (*Section, error)

	// Overview returns aggregate statistics for the document.
	Overview(ctx context.Context) (Overview, error)
}

// TopicKeywords maps known topics to their expanded keyword sets. This is the
// single source of truth consumed by both the retrieval engine and the tool
// schemas.
var TopicKeywords = map[string][]string{
	"tax":         {"tax", "taxes", "taxation", "income", "deduction", "credit", "revenue", "irs"},
	"healthcare":  {"health", "healthcare", "medical", "medicaid", "medicare", "insurance", "coverage"},
	"defense":     {"defense", "military", "armed", "forces", "national", "security", "pentagon"},
	"immigration": {"immigration", "immigrant", "border", "visa", "asylum", "citizenship", "alien"},
	"education":   {"education", "school", "student", "teacher", "college", "university", "loan"},
	"energy":      {"energy", "oil", "gas", "renewable", "solar", "wind", "electricity", "fuel"},
	"agriculture": {"agriculture", "farm", "farmer", "crop", "livestock", "rural", "food"},
	"border":      {"border", "wall", "patrol", "customs", "enforcement", "port", "entry"},
	"veterans":    {"veteran", "veterans", "service", "benefits", "disability", "pension"},
}

// ImpactKeywords maps known financial impact types to their keyword sets.
var ImpactKeywords = map[string][]string{
	"appropriation": {"appropriated", "appropriation", "appropriations"},
	"funding":       {"funding", "funds", "fund", "grant", "grants"},
	"cost":          {"cost", "costs", "expense", "expenditure"},
	"budget":        {"budget", "budgetary", "fiscal"},
	"spending":      {"spending", "outlay", "outlays", "disbursement"},
	"revenue":       {"revenue", "revenues", "receipts", "collection"},
	"tax-change":    {"tax", "rate", "increase", "decrease", "repeal", "amendment"},
}

// PolicyDomains lists the document's known top-level policy domains, reported
// by the overview operation.
var PolicyDomains = []string{
	"taxation", "healthcare", "defense", "immigration",
	"education", "energy", "agriculture", "veterans affairs",
}
