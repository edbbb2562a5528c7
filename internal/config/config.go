// Package config provides YAML-based configuration loading and speed
// presets for the cylinder game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// View modes.
const (
	ViewCylinder = "cylinder"
	ViewUnrolled = "unrolled"
)

// CylinderConfig contains all configuration for the cylinder game.
type CylinderConfig struct {
	Grid     GridConfig     `yaml:"grid"`
	Timing   TimingConfig   `yaml:"timing"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	View     ViewConfig     `yaml:"view"`
	Input    InputConfig    `yaml:"input"`
}

// GridConfig defines the playfield size.
type GridConfig struct {
	Width  int `yaml:"width"`  // Columns around the cylinder
	Height int `yaml:"height"` // Rows
}

// TimingConfig defines gravity and animation timing.
type TimingConfig struct {
	FallIntervalMs int     `yaml:"fall_interval_ms"` // Time per row at normal speed
	SoftDropFactor int     `yaml:"soft_drop_factor"` // Gravity multiplier while soft drop is held
	SlideSmoothing float64 `yaml:"slide_smoothing"`  // Horizontal easing per frame, (0, 1]
}

// GameplayConfig defines spawn and end-of-run rules.
type GameplayConfig struct {
	SpawnRow int  `yaml:"spawn_row"` // Must be above the grid (negative)
	TopOut   bool `yaml:"top_out"`   // End the run when a piece locks above row 0
}

// ViewConfig defines how the cylinder is drawn.
type ViewConfig struct {
	Mode      string `yaml:"mode"`       // "cylinder" or "unrolled"
	CellWidth int    `yaml:"cell_width"` // Characters per cell at the front
}

// InputConfig defines terminal input handling.
type InputConfig struct {
	// Soft drop ends when no down-key repeat arrives within this window.
	ReleaseAfterMs int `yaml:"release_after_ms"`
}

// FallInterval returns the base gravity interval.
func (c CylinderConfig) FallInterval() time.Duration {
	return time.Duration(c.Timing.FallIntervalMs) * time.Millisecond
}

// ReleaseAfter returns the soft-drop release window.
func (c CylinderConfig) ReleaseAfter() time.Duration {
	return time.Duration(c.Input.ReleaseAfterMs) * time.Millisecond
}

// Validate reports every problem with the configuration at once.
func (c CylinderConfig) Validate() error {
	var errs []error

	if c.Grid.Width <= 0 {
		errs = append(errs, fmt.Errorf("grid.width must be positive, got %d", c.Grid.Width))
	}
	if c.Grid.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid.height must be positive, got %d", c.Grid.Height))
	}
	if c.Timing.FallIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("timing.fall_interval_ms must be positive, got %d", c.Timing.FallIntervalMs))
	}
	if c.Timing.SoftDropFactor < 1 {
		errs = append(errs, fmt.Errorf("timing.soft_drop_factor must be at least 1, got %d", c.Timing.SoftDropFactor))
	}
	if c.Timing.SlideSmoothing <= 0 || c.Timing.SlideSmoothing > 1 {
		errs = append(errs, fmt.Errorf("timing.slide_smoothing must be in (0, 1], got %g", c.Timing.SlideSmoothing))
	}
	if c.Gameplay.SpawnRow >= 0 {
		errs = append(errs, fmt.Errorf("gameplay.spawn_row must be negative, got %d", c.Gameplay.SpawnRow))
	}
	if c.View.Mode != ViewCylinder && c.View.Mode != ViewUnrolled {
		errs = append(errs, fmt.Errorf("view.mode must be %q or %q, got %q", ViewCylinder, ViewUnrolled, c.View.Mode))
	}
	if c.View.CellWidth <= 0 {
		errs = append(errs, fmt.Errorf("view.cell_width must be positive, got %d", c.View.CellWidth))
	}
	if c.Input.ReleaseAfterMs <= 0 {
		errs = append(errs, fmt.Errorf("input.release_after_ms must be positive, got %d", c.Input.ReleaseAfterMs))
	}

	return errors.Join(errs...)
}
