package config

import "fmt"

// SpeedPreset is a named gravity speed. Presets only set the starting
// interval; gravity never speeds up during a run.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedFixed  SpeedPreset = "fixed" // keep the configured interval
)

// SpeedPresets lists the presets in menu order.
var SpeedPresets = []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedFixed}

// ParseSpeedPreset accepts a preset name. The empty string means fixed.
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	switch SpeedPreset(s) {
	case "", SpeedFixed:
		return SpeedFixed, nil
	case SpeedSlow, SpeedNormal, SpeedFast:
		return SpeedPreset(s), nil
	}
	return "", fmt.Errorf("config: unknown speed %q (want slow, normal, fast or fixed)", s)
}

// FallIntervalForPreset returns the fall interval in milliseconds for a
// preset, or 0 for fixed.
func FallIntervalForPreset(preset SpeedPreset) int {
	switch preset {
	case SpeedSlow:
		return 800
	case SpeedNormal:
		return 500
	case SpeedFast:
		return 250
	default:
		return 0
	}
}

// ApplySpeedPreset sets the fall interval for a speed preset. The
// soft-drop factor is left as configured.
func ApplySpeedPreset(cfg *CylinderConfig, preset SpeedPreset) {
	if ms := FallIntervalForPreset(preset); ms > 0 {
		cfg.Timing.FallIntervalMs = ms
	}
}
