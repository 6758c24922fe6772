package config

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by configuration operations.
var (
	// ErrSettingNotFound indicates the setting path doesn't exist.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrValidationFailed wraps every ValidationErrors value.
	ErrValidationFailed = errors.New("validation failed")
)

// TypeError indicates a setting holds a value of the wrong type.
type TypeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("setting %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	Path    string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Path, e.Message, e.Value)
}

// ValidationErrors collects every failure found by Validate.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Is lets errors.Is match ErrValidationFailed.
func (e ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}
