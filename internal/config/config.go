package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DirName is the per-user and per-repo configuration directory name.
const DirName = ".stringlens"

// Config holds application configuration.
type Config struct {
	// Port is the HTTP listen port. Overridden by the PORT environment variable.
	Port int `json:"port" validate:"min=1,max=65535"`

	// Bind is the HTTP listen address.
	Bind string `json:"bind" validate:"required"`

	// StoreBackend selects the record store: "memory" or "sqlite".
	StoreBackend string `json:"store_backend" validate:"oneof=memory sqlite"`

	// SQLitePath is the database file for the sqlite backend.
	// ":memory:" keeps the database in process memory.
	SQLitePath string `json:"sqlite_path" validate:"required_if=StoreBackend sqlite"`

	// LogLevel is the minimum log level: debug, info, warn (or warning), error.
	// Case-insensitive; Validate lower-cases it.
	LogLevel string `json:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat is the log output format: text or json. Case-insensitive.
	LogFormat string `json:"log_format" validate:"oneof=text json"`

	// DisableMetrics turns off the /metrics endpoint.
	DisableMetrics bool `json:"disable_metrics,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:         3000,
		Bind:         "0.0.0.0",
		StoreBackend: "memory",
		SQLitePath:   ":memory:",
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// DefaultBaseDir returns $STRINGLENS_HOME, or ~/.stringlens.
func DefaultBaseDir() (string, error) {
	if dir := os.Getenv("STRINGLENS_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.stringlens.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.stringlens) and repo (.stringlens) directories.
// Repo config is found by walking upward from startDir to find the nearest .stringlens/config.json.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then repo
	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest .stringlens/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, DirName, "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root, not found
			return ""
		}
		dir = parent
	}
}

// ApplyEnv overrides cfg from environment variables looked up through lookup
// (os.LookupEnv in production).
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("PORT must be an integer, got %q", v)
		}
		cfg.Port = port
	}

	strs := map[string]*string{
		"STRINGLENS_BIND":        &cfg.Bind,
		"STRINGLENS_STORE":       &cfg.StoreBackend,
		"STRINGLENS_SQLITE_PATH": &cfg.SQLitePath,
		"STRINGLENS_LOG_LEVEL":   &cfg.LogLevel,
		"STRINGLENS_LOG_FORMAT":  &cfg.LogFormat,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok && v != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s fails %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	// Scalars: overlay wins if non-zero, else base
	result.Port = overlay.Port
	if result.Port == 0 {
		result.Port = base.Port
	}
	result.Bind = firstNonEmpty(overlay.Bind, base.Bind)
	result.StoreBackend = firstNonEmpty(overlay.StoreBackend, base.StoreBackend)
	result.SQLitePath = firstNonEmpty(overlay.SQLitePath, base.SQLitePath)
	result.LogLevel = firstNonEmpty(overlay.LogLevel, base.LogLevel)
	result.LogFormat = firstNonEmpty(overlay.LogFormat, base.LogFormat)

	// Booleans: overlay wins if true, else base
	result.DisableMetrics = base.DisableMetrics || overlay.DisableMetrics

	// Arrays: merge and deduplicate
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return strings.TrimSpace(a)
	}
	return b
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
