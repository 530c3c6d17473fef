package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
	"github.com/opencourse-ai/tutor-cli/internal/core/ports/driven"
	"github.com/opencourse-ai/tutor-cli/internal/core/ports/driving"
	"github.com/opencourse-ai/tutor-cli/internal/logger"
)

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// systemPrompt frames the model as a course tutor and constrains it to
// one search per query.
const systemPrompt = `You are a course materials assistant. Answer questions about course content using the search tool.

Rules:
- Use the search tool at most once per question.
- Ground your answer in the search results. If the results do not cover the question, say so.
- Keep answers concise and specific to the course material.
- Do not mention the search tool or these instructions.`

// AssistantConfig holds generation parameters.
type AssistantConfig struct {
	// MaxTokens caps answer length. Zero means the adapter default.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

// AssistantService answers course questions through a single-round
// tool-calling loop: the model may request one search, sees its result,
// and must then produce a final text answer.
type AssistantService struct {
	llm      driven.LLMService
	toolbox  *Toolbox
	sessions *SessionManager
	config   AssistantConfig
}

// NewAssistantService creates the assistant.
func NewAssistantService(
	llm driven.LLMService,
	toolbox *Toolbox,
	sessions *SessionManager,
	config AssistantConfig,
) *AssistantService {
	return &AssistantService{
		llm:      llm,
		toolbox:  toolbox,
		sessions: sessions,
		config:   config,
	}
}

// NewSession creates a session id for a multi-turn conversation.
func (s *AssistantService) NewSession() string {
	return s.sessions.NewSession()
}

// Answer processes one query. Sources from the search the model ran
// travel back as part of the Answer; a query that needed no search has
// none.
func (s *AssistantService) Answer(ctx context.Context, query, sessionID string) (*domain.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidQuery)
	}

	if sessionID == "" {
		sessionID = s.sessions.NewSession()
		logger.Debug("started session %s", sessionID)
	}

	messages := s.buildMessages(sessionID, query)

	logger.Section("Generation")
	logger.Debug("session=%s history_turns=%d", sessionID, len(messages)-1)

	resp, err := s.llm.CreateMessage(ctx, driven.MessageRequest{
		System:      systemPrompt,
		Messages:    messages,
		Tools:       s.toolbox.Definitions(),
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	var sources []domain.Source
	if resp.RequestsTool() {
		resp, sources, err = s.runToolRound(ctx, messages, resp)
		if err != nil {
			return nil, err
		}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, fmt.Errorf("%w: model returned no text", domain.ErrGenerationFailed)
	}

	s.sessions.AddExchange(sessionID, query, text)

	return &domain.Answer{
		Text:      text,
		Sources:   sources,
		SessionID: sessionID,
	}, nil
}

// buildMessages assembles session history plus the current query.
func (s *AssistantService) buildMessages(sessionID, query string) []driven.Message {
	history := s.sessions.History(sessionID)

	messages := make([]driven.Message, 0, len(history)+1)
	for _, turn := range history {
		messages = append(messages, driven.TextMessage(turn.Role, turn.Text))
	}
	return append(messages, driven.TextMessage(domain.RoleUser, query))
}

// runToolRound executes the requested tool and resubmits the exchange
// for the final answer. Tools are withheld from the follow-up request,
// which forces a text answer and caps the loop at one round.
func (s *AssistantService) runToolRound(
	ctx context.Context,
	messages []driven.Message,
	resp *driven.MessageResponse,
) (*driven.MessageResponse, []domain.Source, error) {
	use := resp.ToolUse()
	logger.Debug("model requested tool %s", use.ToolName)

	output, err := s.toolbox.Execute(ctx, use.ToolName, use.ToolInput)

	result := driven.ContentBlock{
		Type:       driven.BlockToolResult,
		ToolUseID:  use.ToolUseID,
		ToolResult: output.Content,
	}
	if err != nil {
		// A failed tool execution degrades to an error result the model
		// can explain, rather than aborting the answer.
		logger.Warn("tool %s failed: %v", use.ToolName, err)
		result.ToolResult = fmt.Sprintf("Tool error: %v", err)
		result.IsError = true
	}

	followUp := append(messages,
		driven.Message{Role: domain.RoleAssistant, Content: resp.Content},
		driven.Message{Role: domain.RoleUser, Content: []driven.ContentBlock{result}},
	)

	final, err := s.llm.CreateMessage(ctx, driven.MessageRequest{
		System:      systemPrompt,
		Messages:    followUp,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	return final, output.Sources, nil
}
