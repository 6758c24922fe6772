package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLoader loads configuration from YAML files.
type YAMLLoader struct {
	fs   FileSystem
	path string
}

// NewYAMLLoader creates a new YAML loader for the given path.
func NewYAMLLoader(path string) *YAMLLoader {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fs FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{fs: fs, path: path}
}

// Load reads configuration from the configured path.
func (l *YAMLLoader) Load() (map[string]any, error) {
	data, err := readOptional(l.fs, l.path)
	if err != nil || data == nil {
		return nil, err
	}
	return ParseYAML(l.path, data)
}

// ParseYAML parses YAML data into a map. Nested mappings must use string
// keys.
func ParseYAML(source string, data []byte) (map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	if len(doc.Content) == 0 {
		return map[string]any{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{
			Path:    source,
			Line:    root.Line,
			Column:  root.Column,
			Message: "top level must be a mapping",
		}
	}

	var config map[string]any
	if err := root.Decode(&config); err != nil {
		return nil, &ParseError{Path: source, Line: root.Line, Message: err.Error(), Err: err}
	}
	if err := checkStringKeys(config, ""); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return config, nil
}

// checkStringKeys rejects nested maps that yaml.v3 decoded with non-string
// keys, which DeepMerge cannot layer.
func checkStringKeys(m map[string]any, prefix string) error {
	for k, v := range m {
		switch nested := v.(type) {
		case map[string]any:
			if err := checkStringKeys(nested, prefix+k+"."); err != nil {
				return err
			}
		case map[any]any:
			return fmt.Errorf("%s%s: mapping keys must be strings", prefix, k)
		}
	}
	return nil
}
