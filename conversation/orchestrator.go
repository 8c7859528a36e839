// Package conversation drives the bounded multi-round tool-call protocol
// between the retrieval tools and the external language model.
package conversation

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lawdoc"
)

// Defaults applied when the corresponding Orchestrator field is zero.
const (
	DefaultMaxRounds = 5
	DefaultTimeout   = 60 * time.Second
)

// systemPrompt instructs the model on its role and the final answer shape.
const systemPrompt = `You are an assistant answering questions about a single legislative bill. ` +
	`Use the provided tools to locate relevant sections before answering; answer based only on what the tools return. ` +
	`When you have enough information, reply with a JSON object of the form ` +
	`{"answer": string, "sections": [section ids you relied on], "keyPoints": [strings], "implications": string, "confidence": "high"|"medium"|"low"}. ` +
	`If the bill does not address the question, say so in the answer.`

// forcedAnswerPrompt is sent when the iteration budget is exhausted.
const forcedAnswerPrompt = `You have used all available tool calls. ` +
	`Answer the original question now using only the information already gathered. ` +
	`Do not request any further tool use. Reply with the JSON answer object.`

// Ensure Orchestrator implements lawdoc.Asker at compile time.
var _ lawdoc.Asker = (*Orchestrator)(nil)

// Orchestrator runs one conversation per question: it sends the question to
// the model, executes any tool calls the model requests, feeds the results
// back, and repeats until the model produces a final answer or the round
// budget runs out. Every tool call receives exactly one matching result in
// the following turn, failed calls included.
type Orchestrator struct {
	Model    lawdoc.ModelClient
	Executor lawdoc.Executor
	Stats    *lawdoc.Stats
	Logger   *slog.Logger

	// MaxRounds bounds the number of tool-executing round-trips.
	// Zero means DefaultMaxRounds.
	MaxRounds int

	// Timeout applies to each individual model call.
	// Zero means DefaultTimeout.
	Timeout time.Duration
}

// Ask answers one question about the document.
func (o *Orchestrator) Ask(ctx context.Context, question string) (*lawdoc.StructuredAnswer, error) {
	if question == "" {
		return nil, lawdoc.Errorf(lawdoc.EINVALID, "question required")
	}
	if o.Stats != nil {
		o.Stats.RecordQuery()
	}

	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxRounds := o.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}

	conv := lawdoc.NewConversation(question)
	tools := o.Executor.Tools()

	for round := 0; round < maxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, lawdoc.Errorf(lawdoc.EUNAVAILABLE, "query abandoned before completion: %s", err)
		}

		reply, err := o.send(ctx, tools, conv)
		if err != nil {
			return nil, err
		}
		conv.AppendAssistant(reply)

		if reply.IsFinal() {
			return lawdoc.ParseAnswer(reply.Text), nil
		}

		logger.Debug("model requested tools", "round", round, "calls", len(reply.ToolCalls))
		results := o.executeAll(ctx, logger, reply.ToolCalls)
		if err := conv.AppendToolResults(results); err != nil {
			return nil, err
		}
	}

	// Budget exhausted with tools still pending. The pending calls have
	// already been executed and paired above; force one last round with
	// tool use disallowed.
	conv.AppendUser(forcedAnswerPrompt)
	reply, err := o.send(ctx, nil, conv)
	if err != nil {
		return nil, err
	}
	if reply.Text == "" {
		return nil, lawdoc.Errorf(lawdoc.EINTERNAL, "model failed to produce a final answer within %d rounds", maxRounds)
	}
	return lawdoc.ParseAnswer(reply.Text), nil
}

// send performs one model round-trip under the per-call timeout.
func (o *Orchestrator) send(ctx context.Context, tools []lawdoc.Tool, conv *lawdoc.Conversation) (*lawdoc.ModelReply, error) {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return o.Model.Send(callCtx, systemPrompt, tools, conv.Turns())
}

// executeAll runs every pending tool call, converting failures into
// error-bearing results so each call still gets a paired result.
func (o *Orchestrator) executeAll(ctx context.Context, logger *slog.Logger, calls []lawdoc.ToolCall) []lawdoc.ToolResult {
	results := make([]lawdoc.ToolResult, 0, len(calls))
	for _, call := range calls {
		begin := time.Now()
		result, err := o.Executor.Execute(ctx, call)
		if err != nil {
			logger.Warn("tool call failed",
				"tool", call.Name,
				"error", lawdoc.ErrorMessage(err),
			)
			results = append(results, lawdoc.ToolResult{
				ToolCallID: call.ID,
				Content:    lawdoc.ErrorMessage(err),
				IsError:    true,
			})
			continue
		}
		logger.Debug("tool call executed",
			"tool", call.Name,
			"duration", time.Since(begin),
		)
		results = append(results, result)
	}
	return results
}
