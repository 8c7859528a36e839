package mock

import (
	"context"

	"github.com/fwojciec/lawdoc"
)

var _ lawdoc.AnswerCache = (*AnswerCache)(nil)

// AnswerCache is a mock implementation of lawdoc.AnswerCache.
type AnswerCache struct {
	GetFn func(ctx context.Context, key string) (*lawdoc.StructuredAnswer, error)
	PutFn func(ctx context.Context, key string, answer *lawdoc.StructuredAnswer) error
}

func (c *AnswerCache) Get(ctx context.Context, key string) (*lawdoc.StructuredAnswer, error) {
	return c.GetFn(ctx, key)
}

func (c *AnswerCache) Put(ctx context.Context, key string, answer *lawdoc.StructuredAnswer) error {
	return c.PutFn(ctx, key, answer)
}
