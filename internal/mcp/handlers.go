package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/stringlens/internal/errors"
	"github.com/hpungsan/stringlens/internal/filter"
	"github.com/hpungsan/stringlens/internal/ops"
	"github.com/hpungsan/stringlens/internal/record"
	"github.com/hpungsan/stringlens/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store  store.Store
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st store.Store, logger *slog.Logger) *Handlers {
	return &Handlers{store: st, logger: logger}
}

// Request types for each tool

// ValueRequest carries the single "value" argument of create, get, delete, and analyze.
// Value is a pointer so a missing argument differs from an empty string.
type ValueRequest struct {
	Value *string `json:"value"`
}

// QueryRequest represents the arguments for string_query.
type QueryRequest struct {
	Query string `json:"query"`
}

// Handler implementations

// HandleCreate handles the string_create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := decodeValue(req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Create(ctx, h.store, ops.CreateInput{Value: value})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleGet handles the string_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := decodeValue(req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Get(ctx, h.store, ops.GetInput{Value: value})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the string_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, err := decode[filter.Filter](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	f, err = f.Normalize()
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.List(ctx, h.store, ops.ListInput{Filter: f})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleQuery handles the string_query tool call.
func (h *Handlers) HandleQuery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[QueryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListNatural(ctx, h.store, ops.ListNaturalInput{Query: input.Query})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the string_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := decodeValue(req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Delete(ctx, h.store, ops.DeleteInput{Value: value})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleAnalyze handles the string_analyze tool call. Nothing is stored.
func (h *Handlers) HandleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := decodeValue(req)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(record.Analyze(value, time.Now()))
}

// logged wraps a tool handler with a debug log line per call.
func (h *Handlers) logged(tool string, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := next(ctx, req)
		h.logger.LogAttrs(ctx, slog.LevelDebug, "tool call",
			slog.String("tool", tool),
			slog.Bool("is_error", result != nil && result.IsError),
			slog.Duration("duration", time.Since(start)),
		)
		return result, err
	}
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are never exposed.
func errorResult(err error) *mcp.CallToolResult {
	lErr := errors.As(err)

	errorObj := map[string]any{
		"code":    lErr.Code,
		"message": lErr.Message,
		"status":  lErr.Status,
	}
	if lErr.Code != errors.ErrInternal && len(lErr.Details) > 0 {
		errorObj["details"] = lErr.Details
	}

	content, _ := json.Marshal(map[string]any{"error": errorObj})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
