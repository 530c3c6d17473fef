package services

import (
	"context"
	"fmt"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
	"github.com/opencourse-ai/tutor-cli/internal/core/ports/driven"
)

// Tool is one invocable capability the assistant can offer the model.
type Tool interface {
	// Definition declares the tool to the model.
	Definition() driven.ToolDefinition

	// Execute runs the tool with model-supplied arguments. The returned
	// output carries both the text the model sees and the structured
	// sources behind it.
	Execute(ctx context.Context, args map[string]any) (domain.ToolOutput, error)
}

// Toolbox is a registry of tools keyed by wire name.
type Toolbox struct {
	tools  []Tool
	byName map[string]Tool
}

// NewToolbox creates a toolbox holding the given tools.
func NewToolbox(tools ...Tool) *Toolbox {
	box := &Toolbox{
		byName: make(map[string]Tool, len(tools)),
	}
	for _, tool := range tools {
		box.tools = append(box.tools, tool)
		box.byName[tool.Definition().Name] = tool
	}
	return box
}

// Definitions returns the declarations for every registered tool, in
// registration order.
func (b *Toolbox) Definitions() []driven.ToolDefinition {
	defs := make([]driven.ToolDefinition, len(b.tools))
	for i, tool := range b.tools {
		defs[i] = tool.Definition()
	}
	return defs
}

// Execute dispatches to the named tool.
func (b *Toolbox) Execute(ctx context.Context, name string, args map[string]any) (domain.ToolOutput, error) {
	tool, ok := b.byName[name]
	if !ok {
		return domain.ToolOutput{}, fmt.Errorf("unknown tool %q", name)
	}
	return tool.Execute(ctx, args)
}
