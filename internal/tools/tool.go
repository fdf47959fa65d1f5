package tools

import (
	"context"

	"advisor/pkg/errors"
)

// Args holds named arguments for a tool invocation.
type Args map[string]interface{}

// String returns a string argument or the empty string.
func (a Args) String(key string) string {
	v, _ := a[key].(string)
	return v
}

// Float returns a numeric argument. JSON numbers decode as float64.
func (a Args) Float(key string) float64 {
	switch v := a[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Int returns a numeric argument truncated to int.
func (a Args) Int(key string) int {
	return int(a.Float(key))
}

// Tool represents a callable capability exposed to agents.
type Tool interface {
	// Name returns the unique tool identifier.
	Name() string
	// Description returns a short human-readable summary.
	Description() string
	// Execute performs the tool's action using the provided arguments.
	Execute(ctx context.Context, args Args) (interface{}, error)
}

// HandlerFunc is the function signature for tool handlers.
type HandlerFunc func(ctx context.Context, args Args) (interface{}, error)

// FunctionTool is a simple Tool implementation backed by a handler function.
type FunctionTool struct {
	name        string
	description string
	handler     HandlerFunc
}

// New creates a new function-backed Tool.
func New(name, description string, handler HandlerFunc) Tool {
	return &FunctionTool{
		name:        name,
		description: description,
		handler:     handler,
	}
}

// Name returns the tool identifier.
func (t *FunctionTool) Name() string { return t.name }

// Description returns a human description of the tool.
func (t *FunctionTool) Description() string { return t.description }

// Execute runs the underlying handler.
func (t *FunctionTool) Execute(ctx context.Context, args Args) (interface{}, error) {
	if t.handler == nil {
		return nil, errors.New("tool handler is not defined")
	}

	return t.handler(ctx, args)
}
