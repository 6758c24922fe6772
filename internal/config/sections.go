package config

import (
	"time"

	"github.com/dshills/boxselect/internal/renderer/core"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration.

// SelectionConfig configures the selection engine.
type SelectionConfig struct {
	// CellMarker identifies selectable items.
	CellMarker string

	// MarkMarker identifies the marquee overlay.
	MarkMarker string

	// ResizeQuiet is the debounce window for container resizes.
	ResizeQuiet time.Duration
}

// GridConfig configures the demo grid layout.
type GridConfig struct {
	Cells      int
	CellWidth  int
	CellHeight int
	Gap        int
}

// ThemeConfig holds hex colors for the grid.
type ThemeConfig struct {
	Cell     string
	Selected string
	Marquee  string
	Label    string
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error or off.
	Level string

	// File receives log output. Empty discards logs, since the terminal
	// is owned by the UI.
	File string
}

// ScriptConfig configures the Lua on_change hook.
type ScriptConfig struct {
	Path    string
	Timeout time.Duration
}

// Snapshot is every section at one point in time.
type Snapshot struct {
	Selection SelectionConfig
	Grid      GridConfig
	Theme     ThemeConfig
	Logging   LoggingConfig
	Script    ScriptConfig
}

// Change reports which sections differ between two snapshots.
type Change struct {
	Selection bool
	Grid      bool
	Theme     bool
	Logging   bool
	Script    bool
}

// Any reports whether any section changed.
func (c Change) Any() bool {
	return c.Selection || c.Grid || c.Theme || c.Logging || c.Script
}

func diffSnapshots(a, b Snapshot) Change {
	return Change{
		Selection: a.Selection != b.Selection,
		Grid:      a.Grid != b.Grid,
		Theme:     a.Theme != b.Theme,
		Logging:   a.Logging != b.Logging,
		Script:    a.Script != b.Script,
	}
}

// Selection returns the selection section.
func (c *Config) Selection() SelectionConfig {
	return c.Snapshot().Selection
}

// Grid returns the grid section.
func (c *Config) Grid() GridConfig {
	return c.Snapshot().Grid
}

// Theme returns the theme section.
func (c *Config) Theme() ThemeConfig {
	return c.Snapshot().Theme
}

// Logging returns the logging section.
func (c *Config) Logging() LoggingConfig {
	return c.Snapshot().Logging
}

// Script returns the script section.
func (c *Config) Script() ScriptConfig {
	return c.Snapshot().Script
}

// Snapshot returns every section. Values of the wrong type read as their
// defaults; Load rejects them before they get here.
func (c *Config) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, _ := readSnapshot(c.merged)
	return s
}

// sectionReader reads typed values and collects failures.
type sectionReader struct {
	m        map[string]any
	defaults map[string]any
	errs     ValidationErrors
}

func (r *sectionReader) value(path string) any {
	if v, ok := getPath(r.m, path); ok {
		return v
	}
	v, _ := getPath(r.defaults, path)
	return v
}

func (r *sectionReader) fail(path, msg string, v any) {
	r.errs = append(r.errs, &ValidationError{Path: path, Message: msg, Value: v})
}

func (r *sectionReader) str(path string) string {
	v := r.value(path)
	s, err := asString(path, v)
	if err != nil {
		r.fail(path, "must be a string", v)
		d, _ := getPath(r.defaults, path)
		return d.(string)
	}
	return s
}

func (r *sectionReader) integer(path string) int {
	v := r.value(path)
	n, err := asInt(path, v)
	if err != nil {
		r.fail(path, "must be an integer", v)
		d, _ := getPath(r.defaults, path)
		return d.(int)
	}
	return n
}

func (r *sectionReader) duration(path string) time.Duration {
	v := r.value(path)
	d, err := asDuration(path, v)
	if err != nil {
		r.fail(path, "must be a duration", v)
		def, _ := getPath(r.defaults, path)
		d, _ = asDuration(path, def)
	}
	return d
}

func readSnapshot(m map[string]any) (Snapshot, ValidationErrors) {
	r := &sectionReader{m: m, defaults: defaultConfig()}
	s := Snapshot{
		Selection: SelectionConfig{
			CellMarker:  r.str("selection.cell_marker"),
			MarkMarker:  r.str("selection.mark_marker"),
			ResizeQuiet: r.duration("selection.resize_quiet"),
		},
		Grid: GridConfig{
			Cells:      r.integer("grid.cells"),
			CellWidth:  r.integer("grid.cell_width"),
			CellHeight: r.integer("grid.cell_height"),
			Gap:        r.integer("grid.gap"),
		},
		Theme: ThemeConfig{
			Cell:     r.str("theme.cell"),
			Selected: r.str("theme.selected"),
			Marquee:  r.str("theme.marquee"),
			Label:    r.str("theme.label"),
		},
		Logging: LoggingConfig{
			Level: r.str("logging.level"),
			File:  r.str("logging.file"),
		},
		Script: ScriptConfig{
			Path:    r.str("script.path"),
			Timeout: r.duration("script.timeout"),
		},
	}
	return s, r.errs
}

var logLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "off": true,
}

// maxCells bounds the demo grid.
const maxCells = 10000

// validate type-checks every section and then checks ranges.
func validate(m map[string]any) error {
	s, errs := readSnapshot(m)
	r := &sectionReader{errs: errs}

	if s.Selection.CellMarker == "" {
		r.fail("selection.cell_marker", "must not be empty", s.Selection.CellMarker)
	}
	if s.Selection.MarkMarker == "" {
		r.fail("selection.mark_marker", "must not be empty", s.Selection.MarkMarker)
	}
	if s.Selection.CellMarker != "" && s.Selection.CellMarker == s.Selection.MarkMarker {
		r.fail("selection.mark_marker", "must differ from cell_marker", s.Selection.MarkMarker)
	}
	if s.Selection.ResizeQuiet <= 0 {
		r.fail("selection.resize_quiet", "must be positive", s.Selection.ResizeQuiet)
	}

	if s.Grid.Cells < 0 || s.Grid.Cells > maxCells {
		r.fail("grid.cells", "must be between 0 and 10000", s.Grid.Cells)
	}
	if s.Grid.CellWidth < 1 {
		r.fail("grid.cell_width", "must be at least 1", s.Grid.CellWidth)
	}
	if s.Grid.CellHeight < 1 {
		r.fail("grid.cell_height", "must be at least 1", s.Grid.CellHeight)
	}
	if s.Grid.Gap < 0 {
		r.fail("grid.gap", "must not be negative", s.Grid.Gap)
	}

	for path, hex := range map[string]string{
		"theme.cell":     s.Theme.Cell,
		"theme.selected": s.Theme.Selected,
		"theme.marquee":  s.Theme.Marquee,
		"theme.label":    s.Theme.Label,
	} {
		if _, err := core.ColorFromHex(hex); err != nil {
			r.fail(path, "must be a #rrggbb color", hex)
		}
	}

	if !logLevels[s.Logging.Level] {
		r.fail("logging.level", "must be debug, info, warn, error or off", s.Logging.Level)
	}
	if s.Script.Timeout <= 0 {
		r.fail("script.timeout", "must be positive", s.Script.Timeout)
	}

	if len(r.errs) > 0 {
		return r.errs
	}
	return nil
}
