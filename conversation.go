package lawdoc

import "context"

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one immutable entry in a conversation. Assistant turns may carry
// tool calls; user turns following a tool-bearing assistant turn carry the
// matching tool results.
type Turn struct {
	Role        string       `json:"role"`
	Content     string       `json:"content,omitempty"`
	ToolCalls   []ToolCall   `json:"toolCalls,omitempty"`
	ToolResults []ToolResult `json:"toolResults,omitempty"`
}

// ModelReply is the external model's reply to one round-trip: either a set
// of tool calls to execute, or final answer text.
type ModelReply struct {
	Text      string
	ToolCalls []ToolCall
}

// IsFinal reports whether the reply is a final answer rather than a tool
// invocation request.
func (r *ModelReply) IsFinal() bool {
	return len(r.ToolCalls) == 0
}

// ModelClient is the boundary to the external language model. One Send call
// is one round-trip: the accumulated turns go out, a reply comes back.
//
// Implementations must distinguish rate limiting (ERATELIMIT), timeouts
// (ETIMEOUT), and transport failures (EUNAVAILABLE) via error codes.
type ModelClient interface {
	Send(ctx context.Context, system string, tools []Tool, turns []Turn) (*ModelReply, error)
}

// Conversation is the per-query, append-only sequence of turns. It enforces
// the pairing invariant: the tool results appended after a tool-bearing
// assistant turn are a bijection with that turn's tool calls.
type Conversation struct {
	turns []Turn
}

// NewConversation creates a conversation opened by the user's question.
func NewConversation(question string) *Conversation {
	return &Conversation{
		turns: []Turn{{Role: RoleUser, Content: question}},
	}
}

// Turns returns a copy of the accumulated turns.
func (c *Conversation) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns.
func (c *Conversation) Len() int {
	return len(c.turns)
}

// AppendAssistant records the model's reply as an assistant turn.
func (c *Conversation) AppendAssistant(reply *ModelReply) {
	c.turns = append(c.turns, Turn{
		Role:      RoleAssistant,
		Content:   reply.Text,
		ToolCalls: reply.ToolCalls,
	})
}

// AppendUser records a plain user turn.
func (c *Conversation) AppendUser(content string) {
	c.turns = append(c.turns, Turn{Role: RoleUser, Content: content})
}

// AppendToolResults records a user turn carrying tool results for the
// immediately preceding assistant turn. The results are reordered to match
// the calls; a call with no matching result gets a synthesized error result,
// and results matching no call are discarded, so the appended turn is always
// a bijection with the preceding turn's tool calls.
//
// Returns EINTERNAL if the preceding turn is not a tool-bearing assistant
// turn; that is a programming error, not a model error.
func (c *Conversation) AppendToolResults(results []ToolResult) error {
	if len(c.turns) == 0 {
		return Errorf(EINTERNAL, "tool results appended to empty conversation")
	}
	last := c.turns[len(c.turns)-1]
	if last.Role != RoleAssistant || len(last.ToolCalls) == 0 {
		return Errorf(EINTERNAL, "tool results must follow a tool-bearing assistant turn")
	}

	byID := make(map[string]ToolResult, len(results))
	for _, r := range results {
		byID[r.ToolCallID] = r
	}

	paired := make([]ToolResult, 0, len(last.ToolCalls))
	for _, call := range last.ToolCalls {
		if r, ok := byID[call.ID]; ok {
			paired = append(paired, r)
			continue
		}
		paired = append(paired, ToolResult{
			ToolCallID: call.ID,
			Content:    "tool execution produced no result",
			IsError:    true,
		})
	}

	c.turns = append(c.turns, Turn{Role: RoleUser, ToolResults: paired})
	return nil
}
