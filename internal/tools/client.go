package tools

import (
	"context"
	"fmt"
	"time"

	"advisor/internal/metrics"
	"advisor/pkg/logger"
)

// Result is the uniform envelope returned by CallTool. Failures are reported
// in-band through Success and a human-readable payload, never as an error.
type Result struct {
	Success bool        `json:"success"`
	Tool    string      `json:"tool"`
	Result  interface{} `json:"result"`
}

// Client dispatches tool calls through the registry with a freshness cache in
// front of every network-backed tool.
type Client struct {
	registry *Registry
	cache    Cache
	log      *logger.Logger
}

// NewClient creates a tool client. A nil cache disables caching.
func NewClient(registry *Registry, cache Cache) *Client {
	return &Client{
		registry: registry,
		cache:    cache,
		log:      logger.Get().With("component", "tool_client"),
	}
}

// CallTool executes a named tool and always returns a Result. Unknown tools,
// missing configuration, and upstream failures all surface as Success=false
// with a message in the Result field.
func (c *Client) CallTool(ctx context.Context, name string, args Args) Result {
	tool, ok := c.registry.Get(name)
	if !ok {
		c.log.Warnw("Unknown tool requested", "tool", name)
		metrics.RecordToolCall(name, "unknown")
		return Result{
			Success: false,
			Tool:    name,
			Result:  fmt.Sprintf("Unknown tool: %s", name),
		}
	}

	if c.cache != nil {
		key := CacheKey(name, args)
		if payload, ok := c.cache.Get(key); ok {
			metrics.RecordCacheHit("tools")
			return Result{Success: true, Tool: name, Result: payload}
		}
		metrics.RecordCacheMiss("tools")
	}

	start := time.Now()
	payload, err := tool.Execute(ctx, args)
	metrics.RecordToolLatency(name, time.Since(start))
	if err != nil {
		c.log.Warnw("Tool execution failed", "tool", name, "error", err)
		metrics.RecordToolCall(name, "error")
		return Result{
			Success: false,
			Tool:    name,
			Result:  err.Error(),
		}
	}

	if c.cache != nil {
		c.cache.Set(CacheKey(name, args), payload)
	}

	metrics.RecordToolCall(name, "success")
	return Result{Success: true, Tool: name, Result: payload}
}
