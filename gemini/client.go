// Package gemini implements lawdoc.ModelClient using Google Gemini
// function calling.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fwojciec/lawdoc"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Ensure Client implements lawdoc.ModelClient at compile time.
var _ lawdoc.ModelClient = (*Client)(nil)

// Client calls the Gemini API, mapping the lawdoc tool-call protocol onto
// Gemini function declarations and function responses.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Client. An empty model selects the default.
func NewClient(client *genai.Client, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{client: client, model: model}
}

// Model returns the model identifier the client sends requests for.
func (c *Client) Model() string {
	return c.model
}

// Send performs one round-trip. Gemini does not always assign IDs to
// function calls; missing IDs are synthesized so the pairing invariant
// holds upstream.
func (c *Client) Send(ctx context.Context, system string, tools []lawdoc.Tool, turns []lawdoc.Turn) (*lawdoc.ModelReply, error) {
	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	if len(tools) > 0 {
		declarations := make([]*genai.FunctionDeclaration, 0, len(tools))
		for _, t := range tools {
			schema, err := schemaFromJSON(t.InputSchema)
			if err != nil {
				return nil, fmt.Errorf("tool %s schema: %w", t.Name, err)
			}
			declarations = append(declarations, &genai.FunctionDeclaration{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  schema,
			})
		}
		config.Tools = []*genai.Tool{{FunctionDeclarations: declarations}}
	}

	contents, err := convertTurns(turns)
	if err != nil {
		return nil, err
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, classify(err)
	}
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, lawdoc.Errorf(lawdoc.EINTERNAL, "gemini returned an empty reply")
	}

	reply := &lawdoc.ModelReply{}
	for _, part := range result.Candidates[0].Content.Parts {
		if part.FunctionCall != nil {
			args, err := json.Marshal(part.FunctionCall.Args)
			if err != nil {
				return nil, lawdoc.Errorf(lawdoc.EINTERNAL, "encode function call args: %s", err)
			}
			id := part.FunctionCall.ID
			if id == "" {
				id = uuid.NewString()
			}
			reply.ToolCalls = append(reply.ToolCalls, lawdoc.ToolCall{
				ID:        id,
				Name:      part.FunctionCall.Name,
				Arguments: args,
			})
			continue
		}
		if part.Text != "" {
			if reply.Text != "" {
				reply.Text += "\n"
			}
			reply.Text += part.Text
		}
	}
	return reply, nil
}

// convertTurns maps conversation turns onto Gemini contents. Tool results
// need the originating function name, so call IDs are tracked across turns.
func convertTurns(turns []lawdoc.Turn) ([]*genai.Content, error) {
	callNames := make(map[string]string)

	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		role := genai.RoleUser
		if turn.Role == lawdoc.RoleAssistant {
			role = genai.RoleModel
		}

		var parts []*genai.Part
		if turn.Content != "" {
			parts = append(parts, &genai.Part{Text: turn.Content})
		}
		for _, call := range turn.ToolCalls {
			callNames[call.ID] = call.Name
			var args map[string]any
			if len(call.Arguments) > 0 {
				if err := json.Unmarshal(call.Arguments, &args); err != nil {
					return nil, lawdoc.Errorf(lawdoc.EINTERNAL, "decode tool call args: %s", err)
				}
			}
			parts = append(parts, &genai.Part{
				FunctionCall: &genai.FunctionCall{
					ID:   call.ID,
					Name: call.Name,
					Args: args,
				},
			})
		}
		for _, result := range turn.ToolResults {
			response := map[string]any{"result": result.Content}
			if result.IsError {
				response = map[string]any{"error": result.Content}
			}
			parts = append(parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					ID:       result.ToolCallID,
					Name:     callNames[result.ToolCallID],
					Response: response,
				},
			})
		}
		contents = append(contents, &genai.Content{Role: role, Parts: parts})
	}
	return contents, nil
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return lawdoc.Errorf(lawdoc.ETIMEOUT, "model call timed out")
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429:
			return lawdoc.Errorf(lawdoc.ERATELIMIT, "model rate limited the request")
		case apiErr.Code >= 500:
			return lawdoc.Errorf(lawdoc.EUNAVAILABLE, "model API unavailable (status %d)", apiErr.Code)
		}
		return lawdoc.Errorf(lawdoc.EINTERNAL, "model error: %s", apiErr.Message)
	}
	return lawdoc.Errorf(lawdoc.EUNAVAILABLE, "model transport failure: %s", err)
}

// jsonSchema is the subset of JSON Schema the tool definitions use.
type jsonSchema struct {
	Type        string                `json:"type"`
	Description string                `json:"description"`
	Properties  map[string]jsonSchema `json:"properties"`
	Required    []string              `json:"required"`
	Enum        []string              `json:"enum"`
	Minimum     *float64              `json:"minimum"`
	Maximum     *float64              `json:"maximum"`
}

// schemaFromJSON converts a raw JSON Schema into the genai schema type.
func schemaFromJSON(raw json.RawMessage) (*genai.Schema, error) {
	var parsed jsonSchema
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}
	return convertSchema(parsed), nil
}

func convertSchema(s jsonSchema) *genai.Schema {
	out := &genai.Schema{
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
		Minimum:     s.Minimum,
		Maximum:     s.Maximum,
	}
	switch s.Type {
	case "object":
		out.Type = genai.TypeObject
	case "string":
		out.Type = genai.TypeString
	case "integer":
		out.Type = genai.TypeInteger
	case "number":
		out.Type = genai.TypeNumber
	case "boolean":
		out.Type = genai.TypeBoolean
	case "array":
		out.Type = genai.TypeArray
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = convertSchema(prop)
		}
	}
	return out
}
