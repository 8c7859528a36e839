// Package mock provides function-field mock implementations of the lawdoc
// interfaces for testing.
package mock

import (
	"context"

	"github.com/fwojciec/lawdoc"
)

var _ lawdoc.Asker = (*Asker)(nil)

// Asker is a mock implementation of lawdoc.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question string) (*lawdoc.StructuredAnswer, error)
}

func (a *Asker) Ask(ctx context.Context, question string) (*lawdoc.StructuredAnswer, error) {
	return a.AskFn(ctx, question)
}
