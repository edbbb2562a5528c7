package config

import (
	_ "embed"
)

//go:embed defaults/cylinder.yaml
var defaultCylinderYAML []byte

// DefaultCylinderConfig returns the default cylinder configuration.
func DefaultCylinderConfig() CylinderConfig {
	return CylinderConfig{
		Grid: GridConfig{
			Width:  15,
			Height: 20,
		},
		Timing: TimingConfig{
			FallIntervalMs: 500,
			SoftDropFactor: 4,
			SlideSmoothing: 0.05,
		},
		Gameplay: GameplayConfig{
			SpawnRow: -2,
			TopOut:   true,
		},
		View: ViewConfig{
			Mode:      ViewCylinder,
			CellWidth: 2,
		},
		Input: InputConfig{
			ReleaseAfterMs: 450,
		},
	}
}
