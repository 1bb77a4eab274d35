package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hpungsan/stringlens/internal/config"
	"github.com/hpungsan/stringlens/internal/logging"
	"github.com/hpungsan/stringlens/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// env carries what commands need. The store is opened per command so help,
// version, and analyze never touch the database.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	open   func() (store.Store, error)
}

// loadEnv resolves configuration from ~/.stringlens, the nearest repo
// .stringlens directory, and the environment, in that order.
func loadEnv() (*env, error) {
	baseDir, err := config.DefaultBaseDir()
	if err != nil {
		return nil, err
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("could not determine working directory: %w", err)
	}

	cfg, err := config.LoadWithRepo(baseDir, wd)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// stdout is reserved for command output and the MCP protocol.
	logger, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Writer: os.Stderr,
	})
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:    cfg,
		logger: logger,
		open: func() (store.Store, error) {
			return store.Open(cfg.StoreBackend, cfg.SQLitePath)
		},
	}, nil
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion(args []string) bool {
	if len(args) < 2 {
		return false
	}
	arg := args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
  stringlens - string analysis service

  Usage: stringlens <command> [options]
         stringlens --help

  Run 'stringlens serve' for the HTTP API.
  MCP server mode requires piped input.`)
}

func main() {
	args := os.Args

	if len(args) < 2 {
		// No args + interactive terminal → show banner and exit
		if isTerminal() {
			printBanner()
			return
		}
		// No args + piped stdin → MCP server
		args = append(args, "mcp")
	}

	// Handle --help/--version before config load
	if isHelpOrVersion(args) {
		if err := newCLIApp(nil).Run(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	e, err := loadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := newCLIApp(e).Run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
