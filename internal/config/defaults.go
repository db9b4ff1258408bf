package config

import (
	_ "embed"
)

//go:embed defaults/ladders.yaml
var defaultLaddersYAML []byte

// DefaultLaddersConfig returns the hardcoded table configuration.
// Pacing matches the classic web version: a 600ms dice tumble and one
// second between move, jump and turn switch.
func DefaultLaddersConfig() LaddersConfig {
	return LaddersConfig{
		Players: 2,
		Pacing: PacingConfig{
			RollMS: 600,
			MoveMS: 1000,
			JumpMS: 1000,
			TurnMS: 500,
		},
		Dice: DiceConfig{
			Seed: 0,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultLaddersYAML
}
