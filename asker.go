package lawdoc

import "context"

// Asker answers natural language questions about the document.
type Asker interface {
	// Ask answers one question, returning a fully-populated structured
	// answer with section citations. Returns EINVALID for an empty
	// question; terminal model failures surface as ERATELIMIT, ETIMEOUT,
	// or EUNAVAILABLE errors.
	Ask(ctx context.Context, question string) (*StructuredAnswer, error)
}
