package mock

import (
	"context"

	"github.com/fwojciec/lawdoc"
)

var _ lawdoc.ModelClient = (*ModelClient)(nil)

// ModelClient is a mock implementation of lawdoc.ModelClient.
type ModelClient struct {
	SendFn func(ctx context.Context, system string, tools []lawdoc.Tool, turns []lawdoc.Turn) (*lawdoc.ModelReply, error)
}

func (c *ModelClient) Send(ctx context.Context, system string, tools []lawdoc.Tool, turns []lawdoc.Turn) (*lawdoc.ModelReply, error) {
	return c.SendFn(ctx, system, tools, turns)
}
