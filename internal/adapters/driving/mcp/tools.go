package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query        string `json:"query" jsonschema:"what to search for in the course content"`
	CourseName   string `json:"course_name,omitempty" jsonschema:"course title to search within (partial matches work)"`
	LessonNumber int    `json:"lesson_number,omitempty" jsonschema:"specific lesson number to search within"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Content string         `json:"content"`
	Sources []SourceOutput `json:"sources,omitempty"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question  string `json:"question" jsonschema:"the question to ask about course materials"`
	SessionID string `json:"session_id,omitempty" jsonschema:"session id to continue a conversation"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer    string         `json:"answer"`
	Sources   []SourceOutput `json:"sources,omitempty"`
	SessionID string         `json:"session_id"`
}

// SourceOutput identifies course material behind a result.
type SourceOutput struct {
	Label string `json:"label"`
	Link  string `json:"link,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_course_content",
		Description: "Search indexed course materials with smart course name matching and lesson filtering",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_course_question",
		Description: "Ask the course tutor a question and get an answer grounded in course materials",
	}, s.handleAsk)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	args := map[string]any{"query": input.Query}
	if input.CourseName != "" {
		args["course_name"] = input.CourseName
	}
	if input.LessonNumber > 0 {
		args["lesson_number"] = input.LessonNumber
	}

	output, err := s.ports.Search.Execute(ctx, args)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, SearchOutput{
		Content: output.Content,
		Sources: sourceOutputs(output.Sources),
	}, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Assistant.Answer(ctx, input.Question, input.SessionID)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:    answer.Text,
		Sources:   sourceOutputs(answer.Sources),
		SessionID: answer.SessionID,
	}, nil
}

// sourceOutputs converts domain sources to the wire shape.
func sourceOutputs(sources []domain.Source) []SourceOutput {
	if len(sources) == 0 {
		return nil
	}
	out := make([]SourceOutput, len(sources))
	for i, src := range sources {
		out[i] = SourceOutput{
			Label: src.Label(),
			Link:  src.Link,
		}
	}
	return out
}
