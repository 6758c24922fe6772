// Package config loads boxselect settings from layered sources.
//
// Layers, lowest priority first:
//
//  1. Built-in defaults
//  2. The config file, TOML or YAML chosen by extension
//  3. A .env file next to the working directory
//  4. BOXSELECT_* process environment variables
//
// Every layer is a nested map; they are combined with loader.DeepMerge and
// read back through typed section accessors such as Selection and Grid.
// Reload re-reads all layers and reports which sections changed so callers
// can apply the difference.
//
// Keys use snake_case. Environment variables map SECTION_KEY onto
// section.key, e.g. BOXSELECT_GRID_CELL_WIDTH sets grid.cell_width.
package config
