package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/stringlens/internal/config"
	"github.com/hpungsan/stringlens/internal/errors"
	"github.com/hpungsan/stringlens/internal/logging"
	"github.com/hpungsan/stringlens/internal/record"
	"github.com/hpungsan/stringlens/internal/store"
)

// testSetup creates an in-memory store and default config for testing.
func testSetup(t *testing.T) (store.Store, *config.Config) {
	t.Helper()
	st := store.NewMemory()
	t.Cleanup(func() { st.Close() })
	return st, config.DefaultConfig()
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func seed(t *testing.T, h *Handlers, values ...string) {
	t.Helper()
	for _, v := range values {
		result, err := h.HandleCreate(context.Background(), makeRequest(map[string]any{"value": v}))
		if err != nil {
			t.Fatalf("seed %q: %v", v, err)
		}
		if result.IsError {
			t.Fatalf("seed %q: %s", v, extractErrorMessage(result))
		}
	}
}

func TestHandleCreate(t *testing.T) {
	st, _ := testSetup(t)
	h := NewHandlers(st, logging.Discard())
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
	}{
		{name: "create palindrome", args: map[string]any{"value": "Racecar"}},
		{name: "create empty string", args: map[string]any{"value": ""}},
		{name: "duplicate", args: map[string]any{"value": "Racecar"}, wantError: true, errorCode: "ALREADY_EXISTS"},
		{name: "missing value", args: map[string]any{}, wantError: true, errorCode: "INVALID_REQUEST"},
		{name: "number value", args: map[string]any{"value": 42}, wantError: true, errorCode: "UNPROCESSABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleCreate(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("unexpected Go error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Fatal("expected error result")
				}
				assertErrorCode(t, result, tt.errorCode)
				return
			}

			output := parseOutput(t, result)
			if output["id"] != record.ContentHash(tt.args["value"].(string)) {
				t.Errorf("id = %v, want content hash", output["id"])
			}
			props, ok := output["properties"].(map[string]any)
			if !ok {
				t.Fatalf("properties missing: %v", output)
			}
			if props["sha256_hash"] != output["id"] {
				t.Errorf("sha256_hash = %v, want id", props["sha256_hash"])
			}
		})
	}
}

func TestHandleGet(t *testing.T) {
	st, _ := testSetup(t)
	h := NewHandlers(st, logging.Discard())
	ctx := context.Background()
	seed(t, h, "hello world")

	result, err := h.HandleGet(ctx, makeRequest(map[string]any{"value": "hello world"}))
	if err != nil {
		t.Fatalf("unexpected Go error: %v", err)
	}
	output := parseOutput(t, result)
	if output["value"] != "hello world" {
		t.Errorf("value = %v, want 'hello world'", output["value"])
	}
	if props := output["properties"].(map[string]any); props["word_count"] != float64(2) {
		t.Errorf("word_count = %v, want 2", props["word_count"])
	}

	result, _ = h.HandleGet(ctx, makeRequest(map[string]any{"value": "Hello world"}))
	assertErrorCode(t, result, "NOT_FOUND")
}

func TestHandleList(t *testing.T) {
	st, _ := testSetup(t)
	h := NewHandlers(st, logging.Discard())
	ctx := context.Background()
	seed(t, h, "level", "hello world", "Noon", "racecar")

	tests := []struct {
		name      string
		args      map[string]any
		wantCount int
		errorCode string
	}{
		{name: "no filters", args: map[string]any{}, wantCount: 4},
		{name: "palindromes", args: map[string]any{"is_palindrome": true}, wantCount: 3},
		{name: "length range", args: map[string]any{"min_length": 4, "max_length": 5}, wantCount: 2},
		{name: "word count", args: map[string]any{"word_count": 2}, wantCount: 1},
		{name: "character uppercase", args: map[string]any{"contains_character": "N"}, wantCount: 1},
		{name: "character too long", args: map[string]any{"contains_character": "no"}, errorCode: "INVALID_REQUEST"},
		{name: "fractional length", args: map[string]any{"min_length": 2.5}, errorCode: "INVALID_REQUEST"},
		{name: "string boolean", args: map[string]any{"is_palindrome": "yes"}, errorCode: "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleList(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("unexpected Go error: %v", err)
			}
			if tt.errorCode != "" {
				if !result.IsError {
					t.Fatal("expected error result")
				}
				assertErrorCode(t, result, tt.errorCode)
				return
			}

			output := parseOutput(t, result)
			if output["count"] != float64(tt.wantCount) {
				t.Errorf("count = %v, want %d", output["count"], tt.wantCount)
			}
			if _, ok := output["filters_applied"].(map[string]any); !ok {
				t.Errorf("filters_applied missing: %v", output)
			}
		})
	}
}

func TestHandleQuery(t *testing.T) {
	st, _ := testSetup(t)
	h := NewHandlers(st, logging.Discard())
	ctx := context.Background()
	seed(t, h, "level", "hello world", "a", "banana split")

	result, err := h.HandleQuery(ctx, makeRequest(map[string]any{"query": "palindromic strings containing the first vowel"}))
	if err != nil {
		t.Fatalf("unexpected Go error: %v", err)
	}
	output := parseOutput(t, result)
	if output["count"] != float64(1) {
		t.Errorf("count = %v, want 1 (only 'a')", output["count"])
	}
	iq := output["interpreted_query"].(map[string]any)
	pf := iq["parsed_filters"].(map[string]any)
	if pf["is_palindrome"] != true || pf["contains_character"] != "a" {
		t.Errorf("parsed_filters = %v", pf)
	}

	result, _ = h.HandleQuery(ctx, makeRequest(map[string]any{"query": "anything goes"}))
	assertErrorCode(t, result, "UNPARSEABLE_QUERY")

	result, _ = h.HandleQuery(ctx, makeRequest(map[string]any{}))
	assertErrorCode(t, result, "INVALID_REQUEST")
}

func TestHandleDelete(t *testing.T) {
	st, _ := testSetup(t)
	h := NewHandlers(st, logging.Discard())
	ctx := context.Background()
	seed(t, h, "level")

	result, err := h.HandleDelete(ctx, makeRequest(map[string]any{"value": "level"}))
	if err != nil {
		t.Fatalf("unexpected Go error: %v", err)
	}
	output := parseOutput(t, result)
	if output["deleted"] != true || output["id"] != record.ContentHash("level") {
		t.Errorf("output = %v", output)
	}

	result, _ = h.HandleDelete(ctx, makeRequest(map[string]any{"value": "level"}))
	assertErrorCode(t, result, "NOT_FOUND")

	if n, _ := st.Len(ctx); n != 0 {
		t.Errorf("store has %d records, want 0", n)
	}
}

func TestHandleAnalyze(t *testing.T) {
	st, _ := testSetup(t)
	h := NewHandlers(st, logging.Discard())
	ctx := context.Background()

	result, err := h.HandleAnalyze(ctx, makeRequest(map[string]any{"value": "Abba"}))
	if err != nil {
		t.Fatalf("unexpected Go error: %v", err)
	}
	output := parseOutput(t, result)
	props := output["properties"].(map[string]any)
	if props["is_palindrome"] != true || props["length"] != float64(4) {
		t.Errorf("properties = %v", props)
	}

	if n, _ := st.Len(ctx); n != 0 {
		t.Errorf("analyze stored %d records, want 0", n)
	}
}

func TestServerRegistration(t *testing.T) {
	st, cfg := testSetup(t)

	s := NewServer(st, cfg, logging.Discard(), "test")
	tools := s.ListTools()
	if tools == nil {
		t.Fatal("expected tools to be registered, got nil")
	}

	expectedTools := []string{
		"string_create",
		"string_get",
		"string_list",
		"string_query",
		"string_delete",
		"string_analyze",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("registered tool count = %d, want %d", len(tools), len(expectedTools))
	}

	for _, name := range expectedTools {
		if _, ok := tools[name]; !ok {
			t.Errorf("missing registered tool: %s", name)
		}
	}
}

func TestServerRegistration_WithDisabledTools(t *testing.T) {
	st, cfg := testSetup(t)

	cfg.DisabledTools = []string{"string_delete", "string_create", "not_a_tool"}
	s := NewServer(st, cfg, logging.Discard(), "test")
	tools := s.ListTools()

	if len(tools) != 4 {
		t.Errorf("registered tool count = %d, want 4", len(tools))
	}
	for _, name := range []string{"string_delete", "string_create"} {
		if _, ok := tools[name]; ok {
			t.Errorf("disabled tool %q should not be registered", name)
		}
	}
}

func TestServerRegistration_AllToolsDisabled(t *testing.T) {
	st, cfg := testSetup(t)

	cfg.DisabledTools = AllToolNames()
	s := NewServer(st, cfg, logging.Discard(), "test")

	if tools := s.ListTools(); len(tools) != 0 {
		t.Errorf("registered tool count = %d, want 0 (all disabled)", len(tools))
	}
}

func TestValidateDisabledTools(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		wantLen int
	}{
		{name: "all valid", input: []string{"string_delete", "string_create"}, wantLen: 0},
		{name: "one unknown", input: []string{"string_delete", "bogus_tool"}, wantLen: 1},
		{name: "empty list", input: []string{}, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if unknown := ValidateDisabledTools(tt.input); len(unknown) != tt.wantLen {
				t.Errorf("ValidateDisabledTools() returned %d unknown, want %d", len(unknown), tt.wantLen)
			}
		})
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	if len(names) != 6 {
		t.Errorf("AllToolNames() returned %d names, want 6", len(names))
	}
	if names[0] != "string_analyze" {
		t.Errorf("AllToolNames() not sorted: %v", names)
	}
}

func TestErrorResult_InternalDoesNotExposeDetails(t *testing.T) {
	r := errorResult(errors.NewInternal(fmt.Errorf("sql error: open /tmp/secret.db: permission denied")))
	if !r.IsError {
		t.Fatal("expected IsError=true")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(r.Content[0].(mcp.TextContent).Text), &payload); err != nil {
		t.Fatalf("failed to unmarshal error payload: %v", err)
	}
	errObj := payload["error"].(map[string]any)

	if errObj["code"] != string(errors.ErrInternal) {
		t.Fatalf("code=%v, want %v", errObj["code"], errors.ErrInternal)
	}
	if _, ok := errObj["details"]; ok {
		t.Fatal("expected INTERNAL errors to omit details")
	}
}

func TestErrorResult_PlainErrorIsInternal(t *testing.T) {
	r := errorResult(fmt.Errorf("boom"))
	assertErrorCode(t, r, "INTERNAL")
}

func TestErrorResult_WrappedErrorKeepsCode(t *testing.T) {
	r := errorResult(fmt.Errorf("lookup: %w", errors.NewNotFound("abc")))
	assertErrorCode(t, r, "NOT_FOUND")
}

// Helper functions

// parseOutput extracts and unmarshals the JSON output from an MCP result.
func parseOutput(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}
	var output map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &output); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return output
}

func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()

	if len(result.Content) == 0 {
		t.Errorf("no content in error result")
		return
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Errorf("content is not TextContent")
		return
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Errorf("failed to unmarshal error payload: %v", err)
		return
	}

	errorObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Errorf("no error object in payload")
		return
	}

	code, ok := errorObj["code"].(string)
	if !ok {
		t.Errorf("no code in error object")
		return
	}

	if code != expectedCode {
		t.Errorf("got error code %q, want %q", code, expectedCode)
	}
}

func extractErrorMessage(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return "<no content>"
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return "<not text content>"
	}

	return text.Text
}
