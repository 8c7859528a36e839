package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fwojciec/lawdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestSchemaFromJSON(t *testing.T) {
	t.Parallel()

	raw := json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {"type": "string", "description": "Keywords"},
			"limit": {"type": "integer", "minimum": 1, "maximum": 10},
			"topic": {"type": "string", "enum": ["tax", "defense"]}
		},
		"required": ["query"],
		"additionalProperties": false
	}`)

	schema, err := schemaFromJSON(raw)
	require.NoError(t, err)

	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, []string{"query"}, schema.Required)
	require.Len(t, schema.Properties, 3)

	assert.Equal(t, genai.TypeString, schema.Properties["query"].Type)
	assert.Equal(t, "Keywords", schema.Properties["query"].Description)

	limit := schema.Properties["limit"]
	assert.Equal(t, genai.TypeInteger, limit.Type)
	require.NotNil(t, limit.Minimum)
	assert.Equal(t, float64(1), *limit.Minimum)
	require.NotNil(t, limit.Maximum)
	assert.Equal(t, float64(10), *limit.Maximum)

	assert.Equal(t, []string{"tax", "defense"}, schema.Properties["topic"].Enum)
}

func TestConvertTurns(t *testing.T) {
	t.Parallel()

	t.Run("roles and text", func(t *testing.T) {
		t.Parallel()

		contents, err := convertTurns([]lawdoc.Turn{
			{Role: lawdoc.RoleUser, Content: "question"},
			{Role: lawdoc.RoleAssistant, Content: "answer"},
		})
		require.NoError(t, err)

		require.Len(t, contents, 2)
		assert.Equal(t, genai.RoleUser, contents[0].Role)
		assert.Equal(t, "question", contents[0].Parts[0].Text)
		assert.Equal(t, genai.RoleModel, contents[1].Role)
	})

	t.Run("function responses carry the originating call name", func(t *testing.T) {
		t.Parallel()

		contents, err := convertTurns([]lawdoc.Turn{
			{Role: lawdoc.RoleUser, Content: "q"},
			{Role: lawdoc.RoleAssistant, ToolCalls: []lawdoc.ToolCall{
				{ID: "c1", Name: "search_keywords", Arguments: json.RawMessage(`{"query":"farm"}`)},
			}},
			{Role: lawdoc.RoleUser, ToolResults: []lawdoc.ToolResult{
				{ToolCallID: "c1", Content: "results"},
			}},
		})
		require.NoError(t, err)

		require.Len(t, contents, 3)

		call := contents[1].Parts[0].FunctionCall
		require.NotNil(t, call)
		assert.Equal(t, "c1", call.ID)
		assert.Equal(t, "search_keywords", call.Name)
		assert.Equal(t, map[string]any{"query": "farm"}, call.Args)

		resp := contents[2].Parts[0].FunctionResponse
		require.NotNil(t, resp)
		assert.Equal(t, "c1", resp.ID)
		assert.Equal(t, "search_keywords", resp.Name)
		assert.Equal(t, map[string]any{"result": "results"}, resp.Response)
	})

	t.Run("error results use an error payload", func(t *testing.T) {
		t.Parallel()

		contents, err := convertTurns([]lawdoc.Turn{
			{Role: lawdoc.RoleAssistant, ToolCalls: []lawdoc.ToolCall{{ID: "c1", Name: "get_section"}}},
			{Role: lawdoc.RoleUser, ToolResults: []lawdoc.ToolResult{
				{ToolCallID: "c1", Content: "section not found", IsError: true},
			}},
		})
		require.NoError(t, err)

		resp := contents[1].Parts[0].FunctionResponse
		require.NotNil(t, resp)
		assert.Equal(t, map[string]any{"error": "section not found"}, resp.Response)
	})
}

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("deadline exceeded", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, lawdoc.ETIMEOUT, lawdoc.ErrorCode(classify(context.DeadlineExceeded)))
	})

	t.Run("rate limited", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, lawdoc.ERATELIMIT, lawdoc.ErrorCode(classify(genai.APIError{Code: 429})))
	})

	t.Run("server error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, lawdoc.EUNAVAILABLE, lawdoc.ErrorCode(classify(genai.APIError{Code: 503})))
	})

	t.Run("client error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, lawdoc.EINTERNAL, lawdoc.ErrorCode(classify(genai.APIError{Code: 400, Message: "bad"})))
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, lawdoc.EUNAVAILABLE, lawdoc.ErrorCode(classify(errors.New("dial tcp: refused"))))
	})
}

func TestNewClient_DefaultModel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, defaultModel, NewClient(nil, "").Model())
	assert.Equal(t, "custom", NewClient(nil, "custom").Model())
}
