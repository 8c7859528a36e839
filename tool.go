package lawdoc

import (
	"context"
	"encoding/json"
)

// Tool names exposed to the external model.
const (
	ToolSearchKeywords   = "search_keywords"
	ToolSearchTopic      = "search_topic"
	ToolSearchFinancial  = "search_financial_impact"
	ToolGetSection       = "get_section"
	ToolDocumentOverview = "document_overview"
)

// Tool describes one named operation the external model may invoke: its
// natural-language description, a JSON Schema for its arguments, and a hard
// cap on result size. Callers may request fewer results than the cap but
// never more.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	ResultCap   int
}

// ToolCall is a structured request from the external model asking for one
// named operation to be executed with the given arguments.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolResult is the response to one tool call, matched by call ID. Failed
// invocations carry an error payload and IsError set; they are reported back
// into the conversation, never escalated.
type ToolResult struct {
	ToolCallID string `json:"toolCallId"`
	Content    string `json:"content"`
	IsError    bool   `json:"isError"`
}

// Executor executes named, schema-validated tool operations against the
// document snapshot.
type Executor interface {
	// Tools returns the definitions of every operation the executor
	// supports, in a stable order.
	Tools() []Tool

	// Execute runs one tool call and returns its result. Unknown tool
	// names and schema-invalid arguments yield EINVALID errors; these are
	// recoverable and meant to be reported as error-bearing tool results.
	Execute(ctx context.Context, call ToolCall) (ToolResult, error)
}
