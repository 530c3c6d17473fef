// Package anthropic provides an LLM service adapter using the Anthropic
// Messages API, including tool use.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/opencourse-ai/tutor-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = "https://api.anthropic.com"
	DefaultModel     = "claude-3-5-sonnet-latest"
	DefaultTimeout   = 120 * time.Second
	DefaultMaxTokens = 1024

	// anthropicVersion is the required API version header.
	anthropicVersion = "2023-06-01"
)

// Config holds configuration for the Anthropic LLM service.
type Config struct {
	// APIKey is the Anthropic API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.anthropic.com).
	BaseURL string

	// Model is the LLM model to use (default: claude-3-5-sonnet-latest).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// LLMService provides LLM operations using the Anthropic Messages API.
type LLMService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// messagesRequest is the Anthropic /v1/messages request format.
type messagesRequest struct {
	Model       string        `json:"model"`
	Messages    []wireMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	System      string        `json:"system,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	Tools       []wireTool    `json:"tools,omitempty"`
}

// wireMessage is the Anthropic message format. Content is a block list
// so tool_use and tool_result exchanges round-trip correctly.
type wireMessage struct {
	Role    string      `json:"role"`
	Content []wireBlock `json:"content"`
}

// wireBlock is one content block on the wire. The set of populated
// fields depends on Type.
type wireBlock struct {
	Type string `json:"type"`

	// type == "text"
	Text string `json:"text,omitempty"`

	// type == "tool_use"
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// type == "tool_result"
	ToolUseID string `json:"tool_use_id,omitempty"`
	Content   string `json:"content,omitempty"`
	IsError   bool   `json:"is_error,omitempty"`
}

// wireTool is the Anthropic tool declaration format.
type wireTool struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	InputSchema wireSchema `json:"input_schema"`
}

type wireSchema struct {
	Type       string                  `json:"type"`
	Properties map[string]wireProperty `json:"properties,omitempty"`
	Required   []string                `json:"required,omitempty"`
}

type wireProperty struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// messagesResponse is the Anthropic /v1/messages response format.
type messagesResponse struct {
	Content []struct {
		Type  string          `json:"type"`
		Text  string          `json:"text"`
		ID    string          `json:"id"`
		Name  string          `json:"name"`
		Input json.RawMessage `json:"input"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewLLMService creates a new Anthropic LLM service.
func NewLLMService(cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &LLMService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// CreateMessage sends one conversation turn to the model and returns
// its response, including any tool_use blocks.
func (s *LLMService) CreateMessage(ctx context.Context, req driven.MessageRequest) (*driven.MessageResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	apiMessages, err := encodeMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	reqBody := messagesRequest{
		Model:     s.model,
		Messages:  apiMessages,
		MaxTokens: maxTokens,
		System:    req.System,
		Tools:     encodeTools(req.Tools),
	}
	if req.Temperature > 0 {
		reqBody.Temperature = req.Temperature
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/v1/messages",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", s.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var msgResp messagesResponse
	if err := json.Unmarshal(body, &msgResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if msgResp.Error != nil {
		return nil, fmt.Errorf("anthropic error: %s", msgResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("anthropic error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(msgResp.Content) == 0 {
		return nil, fmt.Errorf("anthropic: no response content returned")
	}

	return decodeResponse(&msgResp)
}

// encodeMessages converts port messages to the Anthropic wire format.
func encodeMessages(messages []driven.Message) ([]wireMessage, error) {
	out := make([]wireMessage, len(messages))
	for i, msg := range messages {
		blocks := make([]wireBlock, 0, len(msg.Content))
		for _, block := range msg.Content {
			switch block.Type {
			case driven.BlockText:
				blocks = append(blocks, wireBlock{
					Type: "text",
					Text: block.Text,
				})
			case driven.BlockToolUse:
				input, err := json.Marshal(block.ToolInput)
				if err != nil {
					return nil, fmt.Errorf("marshal tool input: %w", err)
				}
				blocks = append(blocks, wireBlock{
					Type:  "tool_use",
					ID:    block.ToolUseID,
					Name:  block.ToolName,
					Input: input,
				})
			case driven.BlockToolResult:
				blocks = append(blocks, wireBlock{
					Type:      "tool_result",
					ToolUseID: block.ToolUseID,
					Content:   block.ToolResult,
					IsError:   block.IsError,
				})
			default:
				return nil, fmt.Errorf("anthropic: unsupported content block type %q", block.Type)
			}
		}
		out[i] = wireMessage{Role: msg.Role, Content: blocks}
	}
	return out, nil
}

// encodeTools converts port tool definitions to the Anthropic wire format.
func encodeTools(tools []driven.ToolDefinition) []wireTool {
	if len(tools) == 0 {
		return nil
	}
	out := make([]wireTool, len(tools))
	for i, tool := range tools {
		properties := make(map[string]wireProperty, len(tool.InputSchema.Properties))
		for name, prop := range tool.InputSchema.Properties {
			properties[name] = wireProperty{
				Type:        prop.Type,
				Description: prop.Description,
			}
		}
		out[i] = wireTool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: wireSchema{
				Type:       tool.InputSchema.Type,
				Properties: properties,
				Required:   tool.InputSchema.Required,
			},
		}
	}
	return out
}

// decodeResponse converts an Anthropic wire response to port blocks.
func decodeResponse(msgResp *messagesResponse) (*driven.MessageResponse, error) {
	content := make([]driven.ContentBlock, 0, len(msgResp.Content))
	for _, block := range msgResp.Content {
		switch block.Type {
		case "text":
			content = append(content, driven.ContentBlock{
				Type: driven.BlockText,
				Text: block.Text,
			})
		case "tool_use":
			var input map[string]any
			if len(block.Input) > 0 {
				if err := json.Unmarshal(block.Input, &input); err != nil {
					return nil, fmt.Errorf("decode tool input: %w", err)
				}
			}
			content = append(content, driven.ContentBlock{
				Type:      driven.BlockToolUse,
				ToolUseID: block.ID,
				ToolName:  block.Name,
				ToolInput: input,
			})
		default:
			// Unknown block types are skipped rather than failing the call.
		}
	}

	return &driven.MessageResponse{
		Content:    content,
		StopReason: msgResp.StopReason,
	}, nil
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable by checking the /v1/models endpoint.
// This is a lightweight check that validates the API key without running inference.
func (s *LLMService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v1/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("anthropic: failed to create ping request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("anthropic: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("anthropic: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("anthropic: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
