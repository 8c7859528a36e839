package mock

import (
	"context"

	"github.com/fwojciec/lawdoc"
)

var _ lawdoc.Executor = (*Executor)(nil)

// Executor is a mock implementation of lawdoc.Executor.
type Executor struct {
	ToolsFn   func() []lawdoc.Tool
	ExecuteFn func(ctx context.Context, call lawdoc.ToolCall) (lawdoc.ToolResult, error)
}

func (e *Executor) Tools() []lawdoc.Tool {
	return e.ToolsFn()
}

func (e *Executor) Execute(ctx context.Context, call lawdoc.ToolCall) (lawdoc.ToolResult, error) {
	return e.ExecuteFn(ctx, call)
}
