package mcp

import (
	"log/slog"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/stringlens/internal/config"
	"github.com/hpungsan/stringlens/internal/store"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"string_create": {
		def:     createToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCreate },
	},
	"string_get": {
		def:     getToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGet },
	},
	"string_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"string_query": {
		def:     queryToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleQuery },
	},
	"string_delete": {
		def:     deleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete },
	},
	"string_analyze": {
		def:     analyzeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAnalyze },
	},
}

// AllToolNames returns every valid tool name, sorted.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with the string tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(st store.Store, cfg *config.Config, logger *slog.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"stringlens",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	for _, name := range ValidateDisabledTools(cfg.DisabledTools) {
		logger.Warn("unknown tool in disabled_tools", slog.String("tool", name))
	}

	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	h := NewHandlers(st, logger)

	// Register tools (skip disabled)
	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, h.logged(name, entry.handler(h)))
	}

	return s
}

// Run starts the MCP server using stdio transport. stdout carries the
// protocol, so server errors go to the logger.
func Run(st store.Store, cfg *config.Config, logger *slog.Logger, version string) error {
	s := NewServer(st, cfg, logger, version)
	return server.ServeStdio(s,
		server.WithErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
	)
}
