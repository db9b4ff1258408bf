package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "ladders.yaml"

// LoadLadders loads the table configuration.
// Search order: customPath -> ~/.ladders/configs/ladders.yaml -> ./configs/ladders.yaml -> embedded default.
// Fields missing from a file keep their default values.
func LoadLadders(customPath string) (LaddersConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return LaddersConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return LaddersConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local one
	candidates := []string{userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultLaddersYAML)
	if err != nil {
		return DefaultLaddersConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (LaddersConfig, error) {
	cfg := DefaultLaddersConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LaddersConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return LaddersConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ladders", "configs", filename)
}

// ApplySpeedPreset scales every pacing value by the preset's multiplier.
func ApplySpeedPreset(cfg *LaddersConfig, preset SpeedPreset) {
	scale := ScaleForPreset(preset)
	p := &cfg.Pacing
	p.RollMS = int(float64(p.RollMS) * scale)
	p.MoveMS = int(float64(p.MoveMS) * scale)
	p.JumpMS = int(float64(p.JumpMS) * scale)
	p.TurnMS = int(float64(p.TurnMS) * scale)
}
