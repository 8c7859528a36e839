// Package anthropic implements lawdoc.ModelClient over the Anthropic
// Messages API, including tool use.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/lawdoc"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	defaultModel     = "claude-sonnet-4-5-20250929"
	anthropicVersion = "2023-06-01"
	maxTokens        = 4096
)

// Ensure Client implements lawdoc.ModelClient at compile time.
var _ lawdoc.ModelClient = (*Client)(nil)

// Client calls the Anthropic Messages API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client. An empty model selects the default.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// Model returns the model identifier the client sends requests for.
func (c *Client) Model() string {
	return c.model
}

type apiTool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}

type apiContentBlock struct {
	Type string `json:"type"`

	// type "text"
	Text string `json:"text,omitempty"`

	// type "tool_use"
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// type "tool_result"
	ToolUseID string `json:"tool_use_id,omitempty"`
	Content   string `json:"content,omitempty"`
	IsError   bool   `json:"is_error,omitempty"`
}

type apiMessage struct {
	Role    string            `json:"role"`
	Content []apiContentBlock `json:"content"`
}

type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system,omitempty"`
	Tools     []apiTool    `json:"tools,omitempty"`
	Messages  []apiMessage `json:"messages"`
}

type apiResponse struct {
	Content    []apiContentBlock `json:"content"`
	StopReason string            `json:"stop_reason"`
	Error      *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Send performs one Messages API round-trip. Rate limiting, timeouts, and
// transport failures are distinguished by error code so callers can decide
// on retry policy.
func (c *Client) Send(ctx context.Context, system string, tools []lawdoc.Tool, turns []lawdoc.Turn) (*lawdoc.ModelReply, error) {
	reqBody := apiRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Tools:     convertTools(tools),
		Messages:  convertTurns(turns),
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, lawdoc.Errorf(lawdoc.ETIMEOUT, "model call timed out")
		}
		return nil, lawdoc.Errorf(lawdoc.EUNAVAILABLE, "model transport failure: %s", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<22))
	if err != nil {
		return nil, lawdoc.Errorf(lawdoc.EUNAVAILABLE, "read model response: %s", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, lawdoc.Errorf(lawdoc.ERATELIMIT, "model rate limited the request")
	}
	if resp.StatusCode >= 500 {
		return nil, lawdoc.Errorf(lawdoc.EUNAVAILABLE, "model API unavailable (status %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, lawdoc.Errorf(lawdoc.EINTERNAL, "model API status %d: %s", resp.StatusCode, lawdoc.Truncate(string(respBody), 200))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, lawdoc.Errorf(lawdoc.EINTERNAL, "decode model response: %s", err)
	}
	if apiResp.Error != nil {
		if apiResp.Error.Type == "rate_limit_error" {
			return nil, lawdoc.Errorf(lawdoc.ERATELIMIT, "model rate limited the request")
		}
		return nil, lawdoc.Errorf(lawdoc.EINTERNAL, "model error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	reply := &lawdoc.ModelReply{}
	for _, block := range apiResp.Content {
		switch block.Type {
		case "text":
			if reply.Text != "" {
				reply.Text += "\n"
			}
			reply.Text += block.Text
		case "tool_use":
			reply.ToolCalls = append(reply.ToolCalls, lawdoc.ToolCall{
				ID:        block.ID,
				Name:      block.Name,
				Arguments: block.Input,
			})
		}
	}
	return reply, nil
}

func convertTools(tools []lawdoc.Tool) []apiTool {
	out := make([]apiTool, 0, len(tools))
	for _, t := range tools {
		out = append(out, apiTool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	return out
}

func convertTurns(turns []lawdoc.Turn) []apiMessage {
	messages := make([]apiMessage, 0, len(turns))
	for _, turn := range turns {
		var blocks []apiContentBlock
		if turn.Content != "" {
			blocks = append(blocks, apiContentBlock{Type: "text", Text: turn.Content})
		}
		for _, call := range turn.ToolCalls {
			input := call.Arguments
			if len(input) == 0 {
				input = json.RawMessage("{}")
			}
			blocks = append(blocks, apiContentBlock{
				Type:  "tool_use",
				ID:    call.ID,
				Name:  call.Name,
				Input: input,
			})
		}
		for _, result := range turn.ToolResults {
			blocks = append(blocks, apiContentBlock{
				Type:      "tool_result",
				ToolUseID: result.ToolCallID,
				Content:   result.Content,
				IsError:   result.IsError,
			})
		}
		messages = append(messages, apiMessage{Role: turn.Role, Content: blocks})
	}
	return messages
}
