// Package tools exposes the retrieval operations as named, schema-validated
// tools consumable by the conversation orchestrator. Argument payloads are
// validated against JSON Schemas before execution; unknown tools and invalid
// arguments are recoverable EINVALID errors meant to be fed back into the
// conversation as error results.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/lawdoc"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Result size caps. These are hard ceilings independent of the
// caller-requested limit; they bound the payload fed back to the model.
const (
	searchResultCap  = 10
	snippetMaxChars  = 1200
	fullTextMaxChars = 6000
)

// Ensure Executor implements lawdoc.Executor at compile time.
var _ lawdoc.Executor = (*Executor)(nil)

// Executor validates and runs tool calls against the retrieval engine.
type Executor struct {
	searcher lawdoc.Searcher
	stats    *lawdoc.Stats
	tools    []lawdoc.Tool
	schemas  map[string]*jsonschema.Schema
}

// NewExecutor creates an Executor. The stats collector may be nil.
func NewExecutor(searcher lawdoc.Searcher, stats *lawdoc.Stats) (*Executor, error) {
	e := &Executor{
		searcher: searcher,
		stats:    stats,
		schemas:  make(map[string]*jsonschema.Schema),
	}
	e.tools = definitions()

	compiler := jsonschema.NewCompiler()
	for _, tool := range e.tools {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(tool.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("unmarshal schema for %s: %w", tool.Name, err)
		}
		url := tool.Name + ".schema.json"
		if err := compiler.AddResource(url, doc); err != nil {
			return nil, fmt.Errorf("add schema for %s: %w", tool.Name, err)
		}
		schema, err := compiler.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile schema for %s: %w", tool.Name, err)
		}
		e.schemas[tool.Name] = schema
	}
	return e, nil
}

// Tools returns the tool definitions in a stable order.
func (e *Executor) Tools() []lawdoc.Tool {
	out := make([]lawdoc.Tool, len(e.tools))
	copy(out, e.tools)
	return out
}

// Execute validates and runs one tool call. The returned result carries the
// tool call's ID; validation and execution failures are returned as errors
// so the orchestrator can convert them into error-bearing tool results.
func (e *Executor) Execute(ctx context.Context, call lawdoc.ToolCall) (lawdoc.ToolResult, error) {
	schema, ok := e.schemas[call.Name]
	if !ok {
		return lawdoc.ToolResult{}, lawdoc.Errorf(lawdoc.EINVALID, "unknown tool %q", call.Name)
	}

	args := call.Arguments
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	decoded, err := jsonschema.UnmarshalJSON(bytes.NewReader(args))
	if err != nil {
		return lawdoc.ToolResult{}, lawdoc.Errorf(lawdoc.EINVALID, "tool %s: arguments are not valid JSON: %s", call.Name, err)
	}
	if err := schema.Validate(decoded); err != nil {
		return lawdoc.ToolResult{}, lawdoc.Errorf(lawdoc.EINVALID, "tool %s: invalid arguments: %s", call.Name, err)
	}

	if e.stats != nil {
		e.stats.RecordToolCall(call.Name)
	}

	content, err := e.run(ctx, call.Name, args)
	if err != nil {
		return lawdoc.ToolResult{}, err
	}
	return lawdoc.ToolResult{ToolCallID: call.ID, Content: content}, nil
}

type searchArgs struct {
	Query      string `json:"query"`
	Topic      string `json:"topic"`
	ImpactType string `json:"impact_type"`
	SectionID  string `json:"section_id"`
	Limit      int    `json:"limit"`
}

func (e *Executor) run(ctx context.Context, name string, raw json.RawMessage) (string, error) {
	var args searchArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return "", lawdoc.Errorf(lawdoc.EINVALID, "tool %s: %s", name, err)
	}
	limit := args.Limit
	if limit <= 0 || limit > searchResultCap {
		limit = searchResultCap
	}

	switch name {
	case lawdoc.ToolSearchKeywords:
		results, err := e.searcher.Search(ctx, args.Query, limit)
		if err != nil {
			return "", err
		}
		return marshalResults(results)
	case lawdoc.ToolSearchTopic:
		results, err := e.searcher.SearchByTopic(ctx, args.Topic, limit)
		if err != nil {
			return "", err
		}
		return marshalResults(results)
	case lawdoc.ToolSearchFinancial:
		results, err := e.searcher.SearchFinancialImpact(ctx, args.ImpactType, limit)
		if err != nil {
			return "", err
		}
		return marshalResults(results)
	case lawdoc.ToolGetSection:
		section, err := e.searcher.SectionByID(ctx, args.SectionID)
		if err != nil {
			return "", err
		}
		return marshalSection(section, fullTextMaxChars)
	case lawdoc.ToolDocumentOverview:
		overview, err := e.searcher.Overview(ctx)
		if err != nil {
			return "", err
		}
		return marshalJSON(overview)
	}
	return "", lawdoc.Errorf(lawdoc.EINVALID, "unknown tool %q", name)
}

// resultPayload is the wire shape of one search hit fed back to the model.
type resultPayload struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Score   int    `json:"score"`
	Excerpt string `json:"excerpt"`
}

func marshalResults(results []lawdoc.SearchResult) (string, error) {
	payload := make([]resultPayload, 0, len(results))
	for _, r := range results {
		payload = append(payload, resultPayload{
			ID:      r.Section.ID,
			Type:    r.Section.Type,
			Title:   r.Section.Title,
			Score:   r.Score,
			Excerpt: lawdoc.Truncate(r.Section.FullText, snippetMaxChars),
		})
	}
	return marshalJSON(payload)
}

func marshalSection(section *lawdoc.Section, maxChars int) (string, error) {
	truncated := *section
	truncated.FullText = lawdoc.Truncate(section.FullText, maxChars)
	return marshalJSON(&truncated)
}

func marshalJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", lawdoc.Errorf(lawdoc.EINTERNAL, "marshal tool result: %s", err)
	}
	return string(b), nil
}

// definitions builds the tool definitions. Enumerations are derived from the
// topic and impact keyword tables so the schemas never drift from the
// retrieval engine.
func definitions() []lawdoc.Tool {
	return []lawdoc.Tool{
		{
			Name:        lawdoc.ToolSearchKeywords,
			Description: "Search the bill for sections matching free-text keywords. Returns sections ranked by how many query keywords they contain.",
			InputSchema: objectSchema(map[string]string{
				"query": `{"type":"string","description":"Free-text keywords to search for"}`,
				"limit": limitSchema(),
			}, []string{"query"}),
			ResultCap: searchResultCap,
		},
		{
			Name:        lawdoc.ToolSearchTopic,
			Description: "Search the bill for sections about a known policy topic. The topic is expanded into a curated keyword set before searching.",
			InputSchema: objectSchema(map[string]string{
				"topic": enumSchema("Policy topic to search for", lawdoc.TopicKeywords),
				"limit": limitSchema(),
			}, []string{"topic"}),
			ResultCap: searchResultCap,
		},
		{
			Name:        lawdoc.ToolSearchFinancial,
			Description: "Search the bill for sections with a given kind of financial impact, such as appropriations or revenue changes.",
			InputSchema: objectSchema(map[string]string{
				"impact_type": enumSchema("Kind of financial impact to search for", lawdoc.ImpactKeywords),
				"limit":       limitSchema(),
			}, []string{"impact_type"}),
			ResultCap: searchResultCap,
		},
		{
			Name:        lawdoc.ToolGetSection,
			Description: "Retrieve one section of the bill by its identifier, including its full text.",
			InputSchema: objectSchema(map[string]string{
				"section_id": `{"type":"string","description":"Identifier of the section to retrieve"}`,
			}, []string{"section_id"}),
			ResultCap: 1,
		},
		{
			Name:        lawdoc.ToolDocumentOverview,
			Description: "Get aggregate statistics about the bill: section counts by type, estimated word count, and the policy domains it covers.",
			InputSchema: objectSchema(nil, nil),
			ResultCap:   1,
		},
	}
}

func limitSchema() string {
	return fmt.Sprintf(`{"type":"integer","minimum":1,"maximum":%d,"description":"Maximum number of results"}`, searchResultCap)
}

func enumSchema(description string, table map[string][]string) string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	quoted := make([]string, 0, len(keys))
	for _, k := range keys {
		quoted = append(quoted, fmt.Sprintf("%q", k))
	}
	return fmt.Sprintf(`{"type":"string","enum":[%s],"description":%q}`, strings.Join(quoted, ","), description)
}

func objectSchema(properties map[string]string, required []string) json.RawMessage {
	var sb strings.Builder
	sb.WriteString(`{"type":"object","properties":{`)
	keys := make([]string, 0, len(properties))
	for k := range properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "%q:%s", k, properties[k])
	}
	sb.WriteString(`}`)
	if len(required) > 0 {
		quoted := make([]string, 0, len(required))
		for _, r := range required {
			quoted = append(quoted, fmt.Sprintf("%q", r))
		}
		fmt.Fprintf(&sb, `,"required":[%s]`, strings.Join(quoted, ","))
	}
	sb.WriteString(`,"additionalProperties":false}`)
	return json.RawMessage(sb.String())
}
