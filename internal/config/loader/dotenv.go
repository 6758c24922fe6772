package loader

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DotenvLoader reads prefixed variables from a .env file without touching
// the process environment.
type DotenvLoader struct {
	path   string
	prefix string
}

// NewDotenvLoader creates a loader for the .env file at path.
func NewDotenvLoader(path, prefix string) *DotenvLoader {
	return &DotenvLoader{path: path, prefix: prefix}
}

// Load parses the file. A missing file yields nil, nil.
func (l *DotenvLoader) Load() (map[string]any, error) {
	vars, err := godotenv.Read(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", l.path, err)
	}
	return NewEnvLoaderFrom(l.prefix, vars).Load()
}
