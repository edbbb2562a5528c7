package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCylinder loads the cylinder configuration.
// Search order: customPath -> ~/.cylitris/configs/cylinder.yaml -> ./configs/cylinder.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it
// changes. A custom path that cannot be read, parsed or validated is an
// error; the other locations are skipped when unusable.
func LoadCylinder(customPath string) (CylinderConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultCylinderConfig(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := decodeCylinder(data)
		if err != nil {
			return DefaultCylinderConfig(), fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("cylinder.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decodeCylinder(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "cylinder.yaml")); err == nil {
		if cfg, err := decodeCylinder(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if cfg, err := decodeCylinder(defaultCylinderYAML); err == nil {
		return cfg, nil
	}
	return DefaultCylinderConfig(), nil
}

func decodeCylinder(data []byte) (CylinderConfig, error) {
	cfg := DefaultCylinderConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid: %w", err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cylitris", "configs", filename)
}
