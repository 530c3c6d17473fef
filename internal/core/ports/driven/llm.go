package driven

import "context"

// LLMService conducts tool-calling conversations with a language model.
//
// The contract is the tool-use round-trip: the caller declares tools in
// the request, the model may answer with a tool_use block, the caller
// executes the tool and re-submits the exchange with a tool_result
// block. Implementations map this onto their provider's wire format.
type LLMService interface {
	// CreateMessage sends one conversation turn to the model and
	// returns its response.
	CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// MessageRequest is one model invocation.
type MessageRequest struct {
	// System is the system prompt, empty for none.
	System string

	// Messages is the conversation so far, oldest first.
	Messages []Message

	// Tools declares the tools the model may invoke. When empty, the
	// model must produce a plain text answer.
	Tools []ToolDefinition

	// MaxTokens caps the generated length. Zero means the
	// implementation default.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

// MessageResponse is the model's reply.
type MessageResponse struct {
	// Content is the ordered sequence of blocks the model produced.
	Content []ContentBlock

	// StopReason reports why generation ended (StopReasonEndTurn,
	// StopReasonToolUse, ...).
	StopReason string
}

// Stop reasons signalled by the model.
const (
	// StopReasonEndTurn means the model finished a natural answer.
	StopReasonEndTurn = "end_turn"

	// StopReasonToolUse means the model is requesting a tool invocation.
	StopReasonToolUse = "tool_use"
)

// RequestsTool reports whether the model asked for a tool invocation.
func (r *MessageResponse) RequestsTool() bool {
	return r.StopReason == StopReasonToolUse && r.ToolUse() != nil
}

// ToolUse returns the first tool_use block, or nil.
func (r *MessageResponse) ToolUse() *ContentBlock {
	for i := range r.Content {
		if r.Content[i].Type == BlockToolUse {
			return &r.Content[i]
		}
	}
	return nil
}

// Text concatenates all text blocks of the response.
func (r *MessageResponse) Text() string {
	var out string
	for _, block := range r.Content {
		if block.Type == BlockText {
			out += block.Text
		}
	}
	return out
}

// Message is a single conversation message made of content blocks.
type Message struct {
	// Role is "user" or "assistant".
	Role string

	// Content is the ordered block sequence.
	Content []ContentBlock
}

// TextMessage builds a message with a single text block.
func TextMessage(role, text string) Message {
	return Message{
		Role:    role,
		Content: []ContentBlock{{Type: BlockText, Text: text}},
	}
}

// Content block types.
const (
	// BlockText is plain model or user text.
	BlockText = "text"

	// BlockToolUse is a model request to invoke a declared tool.
	BlockToolUse = "tool_use"

	// BlockToolResult carries a tool's output back to the model.
	BlockToolResult = "tool_result"
)

// ContentBlock is one typed element of a message. Exactly the fields
// matching Type are meaningful.
type ContentBlock struct {
	// Type is BlockText, BlockToolUse or BlockToolResult.
	Type string

	// Text is the content for BlockText.
	Text string

	// ToolUseID correlates a tool_use request with its tool_result.
	ToolUseID string

	// ToolName is the requested tool for BlockToolUse.
	ToolName string

	// ToolInput holds the model-supplied arguments for BlockToolUse.
	ToolInput map[string]any

	// ToolResult is the tool output text for BlockToolResult.
	ToolResult string

	// IsError marks a failed tool execution on BlockToolResult.
	IsError bool
}

// ToolDefinition describes one invocable tool, declared to the model
// with a structured parameter schema.
type ToolDefinition struct {
	// Name is the tool's wire name, e.g. "search_course_content".
	Name string

	// Description tells the model when to use the tool.
	Description string

	// InputSchema is the JSON-schema-shaped parameter description.
	InputSchema InputSchema
}

// InputSchema is a minimal JSON schema for tool parameters.
type InputSchema struct {
	// Type is always "object" for tool inputs.
	Type string

	// Properties maps parameter names to their schemas.
	Properties map[string]Property

	// Required lists mandatory parameter names.
	Required []string
}

// Property describes one tool parameter.
type Property struct {
	// Type is the JSON type ("string", "integer", ...).
	Type string

	// Description explains the parameter to the model.
	Description string
}
