package loader

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultEnvPrefix is the prefix for environment overrides.
const DefaultEnvPrefix = "BOXSELECT_"

// EnvLoader loads configuration from prefixed variables. Variables are
// read from the process environment unless a source map is supplied.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "BOXSELECT_")
	mapping map[string]string // Env var -> config path
	source  func() map[string]string
}

// NewEnvLoader creates a loader over the process environment.
// The prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		source:  processEnv,
	}
}

// NewEnvLoaderFrom creates a loader over a fixed set of variables.
func NewEnvLoaderFrom(prefix string, vars map[string]string) *EnvLoader {
	l := NewEnvLoader(prefix)
	l.source = func() map[string]string { return vars }
	return l
}

// defaultEnvMapping returns shorthand variables that do not follow the
// SECTION_KEY convention.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL": "logging.level",
		prefix + "LOG_FILE":  "logging.file",
		prefix + "SCRIPT":    "script.path",
	}
}

func processEnv() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if ok {
			env[name] = value
		}
	}
	return env
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load returns the configuration map built from matching variables.
// Empty values are kept, not treated as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for name, value := range l.source() {
		if !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, ok := l.mapping[name]
		if !ok {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		setByPath(config, path, parseValue(value))
	}
	return config, nil
}

// envToPath converts BOXSELECT_GRID_CELL_WIDTH to grid.cell_width.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return section + "." + key
}

// parseValue attempts to parse the string value into an appropriate type.
// Integers are tried before booleans so "0" stays a number.
func parseValue(s string) any {
	if s == "" {
		return s
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
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
