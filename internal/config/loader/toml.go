package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader loads configuration from TOML files.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader creates a new TOML loader for the given path.
func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{fs: fs, path: path}
}

// Load reads configuration from the configured path.
func (l *TOMLLoader) Load() (map[string]any, error) {
	data, err := readOptional(l.fs, l.path)
	if err != nil || data == nil {
		return nil, err
	}
	return ParseTOML(l.path, data)
}

// ParseTOML parses TOML data into a map. source names the data in errors.
func ParseTOML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			perr.Line, perr.Column = decodeErr.Position()
		}
		return nil, perr
	}
	return config, nil
}
