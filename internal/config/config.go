package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/boxselect/internal/config/loader"
)

// Config holds the merged configuration.
type Config struct {
	mu sync.RWMutex

	path       string
	dotenvPath string
	envPrefix  string
	fs         loader.FileSystem
	overrides  map[string]any

	merged map[string]any
}

// Option configures a Config.
type Option func(*Config)

// WithFile sets the config file. Missing files are not an error.
func WithFile(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithDotenv sets the .env file. An empty path disables the layer.
func WithDotenv(path string) Option {
	return func(c *Config) {
		c.dotenvPath = path
	}
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// disables the environment layer.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithFileSystem sets the file system the config file is read from.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithOverride pins path to value above every other layer, including on
// reload. Command line flags use it.
func WithOverride(path string, value any) Option {
	return func(c *Config) {
		setPath(c.overrides, path, value)
	}
}

// New creates a configuration holding the defaults and overrides. Call
// Load to read the other layers.
func New(opts ...Option) *Config {
	c := &Config{
		dotenvPath: ".env",
		envPrefix:  loader.DefaultEnvPrefix,
		fs:         loader.DefaultFS(),
		overrides:  make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.merged = loader.DeepMerge(defaultConfig(), c.overrides)
	return c
}

// Path returns the config file path, or "" when none is set.
func (c *Config) Path() string {
	return c.path
}

// Load reads every layer and validates the result. On error the previous
// configuration stays in effect.
func (c *Config) Load(_ context.Context) error {
	merged, err := c.read()
	if err != nil {
		return err
	}
	if err := validate(merged); err != nil {
		return err
	}

	c.mu.Lock()
	c.merged = merged
	c.mu.Unlock()
	return nil
}

// Reload re-reads every layer and reports which sections changed.
func (c *Config) Reload(ctx context.Context) (Change, error) {
	before := c.Snapshot()
	if err := c.Load(ctx); err != nil {
		return Change{}, err
	}
	return diffSnapshots(before, c.Snapshot()), nil
}

func (c *Config) read() (map[string]any, error) {
	var layers []loader.Loader
	if c.path != "" {
		l, err := loader.ForPath(c.fs, c.path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}
	if c.envPrefix != "" {
		if c.dotenvPath != "" {
			layers = append(layers, loader.NewDotenvLoader(c.dotenvPath, c.envPrefix))
		}
		layers = append(layers, loader.NewEnvLoader(c.envPrefix))
	}

	merged := defaultConfig()
	for _, l := range layers {
		m, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, m)
	}
	return loader.DeepMerge(merged, c.overrides), nil
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.merged, path)
}

// Set overrides a single value in memory.
func (c *Config) Set(path string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	setPath(c.merged, path, value)
}

// Merged returns a copy of the merged configuration map.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.merged)
}

// Validate checks the current configuration.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return validate(c.merged)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	return asString(path, v)
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	return asInt(path, v)
}

// GetDuration returns a duration at the given path. Strings are parsed
// with time.ParseDuration; bare numbers are milliseconds.
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	return asDuration(path, v)
}

func asString(path string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

func asInt(path string, v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		return int(val), nil
	case float64:
		if val != float64(int(val)) {
			return 0, &TypeError{Path: path, Expected: "int", Actual: "float64"}
		}
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

func asDuration(path string, v any) (time.Duration, error) {
	switch val := v.(type) {
	case time.Duration:
		return val, nil
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, &TypeError{Path: path, Expected: "duration", Actual: fmt.Sprintf("string %q", val)}
		}
		return d, nil
	default:
		ms, err := asInt(path, v)
		if err != nil {
			return 0, &TypeError{Path: path, Expected: "duration", Actual: typeName(v)}
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"selection": map[string]any{
			"cell_marker":  "boxselection-cell",
			"mark_marker":  "boxselection-mark",
			"resize_quiet": "500ms",
		},
		"grid": map[string]any{
			"cells":       100,
			"cell_width":  6,
			"cell_height": 3,
			"gap":         1,
		},
		"theme": map[string]any{
			"cell":     "#3a3f4b",
			"selected": "#d19a66",
			"marquee":  "#61afef",
			"label":    "#abb2bf",
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
		"script": map[string]any{
			"path":    "",
			"timeout": "100ms",
		},
	}
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	current := any(m)
	for _, part := range splitPath(path) {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = cm[part]; !ok {
			return nil, false
		}
	}
	return current, path != ""
}

// setPath sets a value in a nested map, creating intermediate maps.
func setPath(m map[string]any, path string, value any) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return
	}
	current := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// splitPath splits a dot-separated path into parts.
func splitPath(path string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			if i > start {
				parts = append(parts, path[start:i])
			}
			start = i + 1
		}
	}
	return parts
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64, uint64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case time.Duration:
		return "duration"
	case map[string]any:
		return "map"
	default:
		return fmt.Sprintf("%T", v)
	}
}
