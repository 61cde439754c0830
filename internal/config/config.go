// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/blogsmith-tui/internal/api"
	"github.com/jeranaias/blogsmith-tui/internal/util"
	"github.com/joho/godotenv"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete blogsmith configuration.
type Config struct {
	API     APIConfig     `toml:"api" json:"api"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Export  ExportConfig  `toml:"export" json:"export"`
	Logging LoggingConfig `toml:"logging" json:"logging"`
}

// APIConfig describes how to reach the generation backend.
type APIConfig struct {
	// BaseURL is the backend root, without the /api/v1 prefix.
	BaseURL string `toml:"base_url" json:"base_url"`
	// GenerateTimeoutSecs bounds a generate call.
	GenerateTimeoutSecs int `toml:"generate_timeout_secs" json:"generate_timeout_secs"`
	// RequestTimeoutSecs bounds list, get, delete and health calls.
	RequestTimeoutSecs int `toml:"request_timeout_secs" json:"request_timeout_secs"`
	// RateLimit caps requests per second (0 = unlimited).
	RateLimit float64 `toml:"rate_limit" json:"rate_limit"`
}

// UIConfig contains terminal UI preferences.
type UIConfig struct {
	// Theme is "auto", "dark" or "light".
	Theme string `toml:"theme" json:"theme"`
	// WordWrap fixes the markdown wrap width (0 = fit the pane).
	WordWrap int `toml:"word_wrap" json:"word_wrap"`
	// PreviewLength is the number of characters shown in history previews.
	PreviewLength int `toml:"preview_length" json:"preview_length"`
	// HistoryLimit is the page size of the history list.
	HistoryLimit int `toml:"history_limit" json:"history_limit"`
}

// ExportConfig controls downloads.
type ExportConfig struct {
	// Dir receives downloaded files (empty = ~/Downloads, else the working
	// directory).
	Dir string `toml:"dir" json:"dir"`
	// Format is the alternate export format: "html" or "json".
	Format string `toml:"format" json:"format"`
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `toml:"level" json:"level"`
	// File is the log path (empty = ~/.blogsmith/blogsmith.log, "-" = stderr).
	File string `toml:"file" json:"file"`
}

// =============================================================================
// DEFAULT CONFIG
// =============================================================================

// Default returns a new Config with default values.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:             api.DefaultBaseURL,
			GenerateTimeoutSecs: int(api.DefaultGenerateTimeout / time.Second),
			RequestTimeoutSecs:  int(api.DefaultRequestTimeout / time.Second),
			RateLimit:           0,
		},
		UI: UIConfig{
			Theme:         "auto",
			WordWrap:      0,
			PreviewLength: 150,
			HistoryLimit:  api.DefaultLimit,
		},
		Export: ExportConfig{
			Dir:    "",
			Format: "html",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the blogsmith configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".blogsmith"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads the default config file, then applies .env and environment
// overrides. A missing file is not an error. A malformed file yields the
// defaults plus a non-nil error describing the problem.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		path = ""
	}
	return LoadFromPath(path)
}

// LoadFromPath is Load with an explicit config file path. An empty path
// skips the file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	var loadErr error

	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
				cfg = Default()
			}
		}
	}

	if err := LoadDotEnv(); err != nil && loadErr == nil {
		loadErr = err
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, loadErr
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env")
// into the process environment. Variables that are already set win, and
// missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg as TOML with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# blogsmith configuration file\n")
	buf.WriteString("# Environment variables (BLOGSMITH_API_URL, ...) override these values.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

var (
	validThemes  = map[string]bool{"auto": true, "dark": true, "light": true}
	validFormats = map[string]bool{"html": true, "json": true}
	validLevels  = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true}
)

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.API.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("invalid URL '%s', must be an absolute http(s) URL", c.API.BaseURL),
		})
	}
	if c.API.GenerateTimeoutSecs <= 0 {
		errs = append(errs, ValidationError{Field: "api.generate_timeout_secs", Message: "must be positive"})
	}
	if c.API.RequestTimeoutSecs <= 0 {
		errs = append(errs, ValidationError{Field: "api.request_timeout_secs", Message: "must be positive"})
	}
	if c.API.RateLimit < 0 {
		errs = append(errs, ValidationError{Field: "api.rate_limit", Message: "cannot be negative"})
	}

	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}
	if c.UI.WordWrap < 0 {
		errs = append(errs, ValidationError{Field: "ui.word_wrap", Message: "cannot be negative"})
	}
	if c.UI.HistoryLimit < 1 || c.UI.HistoryLimit > 100 {
		errs = append(errs, ValidationError{Field: "ui.history_limit", Message: "must be between 1 and 100"})
	}

	if !validFormats[strings.ToLower(c.Export.Format)] {
		errs = append(errs, ValidationError{
			Field:   "export.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: html, json", c.Export.Format),
		})
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s'", c.Logging.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.GenerateTimeoutSecs == 0 {
		c.API.GenerateTimeoutSecs = defaults.API.GenerateTimeoutSecs
	}
	if c.API.RequestTimeoutSecs == 0 {
		c.API.RequestTimeoutSecs = defaults.API.RequestTimeoutSecs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.PreviewLength <= 0 {
		c.UI.PreviewLength = defaults.UI.PreviewLength
	}
	if c.UI.HistoryLimit == 0 {
		c.UI.HistoryLimit = defaults.UI.HistoryLimit
	}
	if c.Export.Format == "" {
		c.Export.Format = defaults.Export.Format
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - BLOGSMITH_API_URL: overrides api.base_url
//   - VITE_API_URL: alias for BLOGSMITH_API_URL, used when it is unset
//   - BLOGSMITH_GENERATE_TIMEOUT: seconds, overrides api.generate_timeout_secs
//   - BLOGSMITH_REQUEST_TIMEOUT: seconds, overrides api.request_timeout_secs
//   - BLOGSMITH_THEME: overrides ui.theme
//   - BLOGSMITH_EXPORT_DIR: overrides export.dir
//   - BLOGSMITH_LOG_LEVEL: overrides logging.level
//   - BLOGSMITH_LOG_FILE: overrides logging.file
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("VITE_API_URL"); u != "" {
		c.API.BaseURL = u
	}
	if u := os.Getenv("BLOGSMITH_API_URL"); u != "" {
		c.API.BaseURL = u
	}
	if secs, ok := envInt("BLOGSMITH_GENERATE_TIMEOUT"); ok {
		c.API.GenerateTimeoutSecs = secs
	}
	if secs, ok := envInt("BLOGSMITH_REQUEST_TIMEOUT"); ok {
		c.API.RequestTimeoutSecs = secs
	}
	if theme := os.Getenv("BLOGSMITH_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if dir := os.Getenv("BLOGSMITH_EXPORT_DIR"); dir != "" {
		c.Export.Dir = dir
	}
	if level := os.Getenv("BLOGSMITH_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("BLOGSMITH_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
}

func envInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// ClientConfig converts the API section into an api.ClientConfig.
func (c *Config) ClientConfig() *api.ClientConfig {
	return &api.ClientConfig{
		BaseURL:         c.API.BaseURL,
		GenerateTimeout: time.Duration(c.API.GenerateTimeoutSecs) * time.Second,
		RequestTimeout:  time.Duration(c.API.RequestTimeoutSecs) * time.Second,
		RateLimit:       c.API.RateLimit,
	}
}

// ExportDir resolves the download directory: the configured one,
// ~/Downloads when it exists, or the working directory.
func (c *Config) ExportDir() string {
	if c.Export.Dir != "" {
		return expandHome(c.Export.Dir)
	}
	if home, err := os.UserHomeDir(); err == nil {
		downloads := filepath.Join(home, "Downloads")
		if info, err := os.Stat(downloads); err == nil && info.IsDir() {
			return downloads
		}
	}
	return "."
}

// LogPath resolves the log destination. "-" means stderr.
func (c *Config) LogPath() string {
	if c.Logging.File != "" {
		return expandHome(c.Logging.File)
	}
	dir, err := ConfigDir()
	if err != nil {
		return "-"
	}
	return filepath.Join(dir, "blogsmith.log")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

type field struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringField(ptr func(c *Config) *string) field {
	return field{
		get: func(c *Config) string { return *ptr(c) },
		set: func(c *Config, v string) error { *ptr(c) = v; return nil },
	}
}

func intField(ptr func(c *Config) *int) field {
	return field{
		get: func(c *Config) string { return strconv.Itoa(*ptr(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("expected an integer, got %q", v)
			}
			*ptr(c) = n
			return nil
		},
	}
}

var fields = map[string]field{
	"api.base_url":              stringField(func(c *Config) *string { return &c.API.BaseURL }),
	"api.generate_timeout_secs": intField(func(c *Config) *int { return &c.API.GenerateTimeoutSecs }),
	"api.request_timeout_secs":  intField(func(c *Config) *int { return &c.API.RequestTimeoutSecs }),
	"api.rate_limit": {
		get: func(c *Config) string { return strconv.FormatFloat(c.API.RateLimit, 'f', -1, 64) },
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("expected a number, got %q", v)
			}
			c.API.RateLimit = f
			return nil
		},
	},
	"ui.theme":          stringField(func(c *Config) *string { return &c.UI.Theme }),
	"ui.word_wrap":      intField(func(c *Config) *int { return &c.UI.WordWrap }),
	"ui.preview_length": intField(func(c *Config) *int { return &c.UI.PreviewLength }),
	"ui.history_limit":  intField(func(c *Config) *int { return &c.UI.HistoryLimit }),
	"export.dir":        stringField(func(c *Config) *string { return &c.Export.Dir }),
	"export.format":     stringField(func(c *Config) *string { return &c.Export.Format }),
	"logging.level":     stringField(func(c *Config) *string { return &c.Logging.Level }),
	"logging.file":      stringField(func(c *Config) *string { return &c.Logging.File }),
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns a value by dotted key ("api.base_url").
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[strings.ToLower(key)]
	if !ok {
		return "", fmt.Errorf("unknown key: %s", key)
	}
	return f.get(c), nil
}

// Set assigns a value by dotted key and revalidates the config. On a
// validation failure the previous value is restored.
func (c *Config) Set(key, value string) error {
	f, ok := fields[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("unknown key: %s", key)
	}
	prev := f.get(c)
	if err := f.set(c, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := c.Validate(); err != nil {
		_ = f.set(c, prev)
		return err
	}
	return nil
}

// String returns an indented JSON dump of the config.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance, loading it on first
// access.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if cfg == nil {
			cfg = Default()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the configuration from disk into the global
// instance. The previous instance is kept when loading fails.
func ReloadGlobal() error {
	cfg, err := Load()
	if cfg == nil {
		return err
	}
	globalConfigMu.Lock()
	globalConfig = cfg
	globalConfigMu.Unlock()
	return err
}

// SetGlobal sets the global configuration instance.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state between tests.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
