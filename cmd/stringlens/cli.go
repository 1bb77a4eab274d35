package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/stringlens/internal/errors"
	"github.com/hpungsan/stringlens/internal/filter"
	"github.com/hpungsan/stringlens/internal/mcp"
	"github.com/hpungsan/stringlens/internal/metrics"
	"github.com/hpungsan/stringlens/internal/ops"
	"github.com/hpungsan/stringlens/internal/record"
	"github.com/hpungsan/stringlens/internal/store"
	"github.com/hpungsan/stringlens/internal/web"
)

// maxStdinBytes caps values read from stdin.
const maxStdinBytes = 10 << 20

// newCLIApp creates the CLI application with all commands.
// e may be nil when only help or version output is needed.
func newCLIApp(e *env) *cli.App {
	app := &cli.App{
		Name:    "stringlens",
		Usage:   "String analysis API: hashes, palindromes, word counts, and filters",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(e),
			mcpCmd(e),
			analyzeCmd(),
			createCmd(e),
			getCmd(e),
			listCmd(e),
			queryCmd(e),
			deleteCmd(e),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// serveCmd creates the serve command.
func serveCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Listen port (overrides config and PORT)"},
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Usage: "Listen address (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			cfg := *e.cfg
			if c.IsSet("port") {
				cfg.Port = c.Int("port")
			}
			if c.IsSet("bind") {
				cfg.Bind = c.String("bind")
			}
			if err := cfg.Validate(); err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}

			st, err := e.open()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			defer st.Close()

			var collector *metrics.Collector
			if !cfg.DisableMetrics {
				collector = metrics.NewCollector(nil)
				if n, err := st.Len(c.Context); err == nil {
					collector.SetRecords(n)
				}
			}

			e.logger.Info("store opened",
				slog.String("backend", cfg.StoreBackend),
				slog.Bool("metrics", collector != nil),
			)

			srv := web.NewServer(st, &cfg, e.logger, collector, Version)
			return web.Run(srv, e.logger)
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP tool server over stdio",
		Action: func(c *cli.Context) error {
			st, err := e.open()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			defer st.Close()

			return mcp.Run(st, e.cfg, e.logger, Version)
		},
	}
}

// analyzeCmd creates the analyze command. It never touches the store.
func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Print the analyzed properties of a string (argument or stdin)",
		ArgsUsage: "[value]",
		Action: func(c *cli.Context) error {
			value, err := valueArg(c)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, record.Analyze(value, time.Now()))
		},
	}
}

// createCmd creates the create command.
func createCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Analyze and store a string (argument or stdin)",
		ArgsUsage: "[value]",
		Action: func(c *cli.Context) error {
			value, err := valueArg(c)
			if err != nil {
				return outputError(err)
			}
			return withStore(e, func(st store.Store) error {
				output, err := ops.Create(c.Context, st, ops.CreateInput{Value: value})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c.App.Writer, output)
			})
		},
	}
}

// getCmd creates the get command.
func getCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch a stored string by exact value",
		ArgsUsage: "<value>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("value argument is required"))
			}
			return withStore(e, func(st store.Store) error {
				output, err := ops.Get(c.Context, st, ops.GetInput{Value: c.Args().First()})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c.App.Writer, output)
			})
		},
	}
}

// listCmd creates the list command. Flags are validated by the same parser
// as the HTTP query string.
func listCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List stored strings matching every given filter",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "palindrome", Usage: `Filter by palindrome: "true" or "false"`},
			&cli.StringFlag{Name: "min-length", Usage: "Minimum length in characters"},
			&cli.StringFlag{Name: "max-length", Usage: "Maximum length in characters"},
			&cli.StringFlag{Name: "word-count", Usage: "Exact word count"},
			&cli.StringFlag{Name: "contains", Usage: "Single character the string must contain"},
		},
		Action: func(c *cli.Context) error {
			q := url.Values{}
			for flag, param := range map[string]string{
				"palindrome": filter.ParamIsPalindrome,
				"min-length": filter.ParamMinLength,
				"max-length": filter.ParamMaxLength,
				"word-count": filter.ParamWordCount,
				"contains":   filter.ParamContainsCharacter,
			} {
				if c.IsSet(flag) {
					q.Set(param, c.String(flag))
				}
			}

			f, err := filter.Parse(q)
			if err != nil {
				return outputError(err)
			}

			return withStore(e, func(st store.Store) error {
				output, err := ops.List(c.Context, st, ops.ListInput{Filter: f})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c.App.Writer, output)
			})
		},
	}
}

// queryCmd creates the query command.
func queryCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "List stored strings using a plain-English query",
		ArgsUsage: "<query words...>",
		Action: func(c *cli.Context) error {
			query := strings.Join(c.Args().Slice(), " ")
			return withStore(e, func(st store.Store) error {
				output, err := ops.ListNatural(c.Context, st, ops.ListNaturalInput{Query: query})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c.App.Writer, output)
			})
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Remove a stored string by exact value",
		ArgsUsage: "<value>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("value argument is required"))
			}
			return withStore(e, func(st store.Store) error {
				output, err := ops.Delete(c.Context, st, ops.DeleteInput{Value: c.Args().First()})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c.App.Writer, output)
			})
		},
	}
}

// Helper functions

// withStore opens the configured store for one command.
func withStore(e *env, fn func(store.Store) error) error {
	st, err := e.open()
	if err != nil {
		return outputError(errors.NewInternal(err))
	}
	defer st.Close()
	return fn(st)
}

// valueArg returns the first positional argument, or stdin when none is given.
func valueArg(c *cli.Context) (string, error) {
	if c.NArg() > 0 {
		return c.Args().First(), nil
	}
	if !stdinHasData(c.App.Reader) {
		return "", errors.NewInvalidRequest("value must be given as an argument or piped via stdin")
	}
	value, err := readStdin(c.App.Reader, maxStdinBytes)
	if err != nil {
		return "", errors.NewInvalidRequest(err.Error())
	}
	return value, nil
}

// outputJSON marshals result to w as JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	lErr := errors.As(err)
	if lErr.Code == errors.ErrInternal {
		if cause, ok := lErr.Details["internal_error"]; ok {
			return cli.Exit(fmt.Sprintf("[%s] %s: %v", lErr.Code, lErr.Message, cause), 1)
		}
	}
	return cli.Exit(fmt.Sprintf("[%s] %s", lErr.Code, lErr.Message), 1)
}

// stdinHasData returns true if r is piped data rather than a terminal.
func stdinHasData(r io.Reader) bool {
	if r == nil {
		return false
	}
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads up to limit bytes and strips one trailing newline, so
// `echo value | stringlens analyze` analyzes "value".
func readStdin(r io.Reader, limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("stdin exceeds %d bytes", limit)
	}
	s := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}
