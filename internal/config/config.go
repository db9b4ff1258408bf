// Package config provides YAML-based table configuration and pacing presets.
package config

import (
	"fmt"
	"time"
)

// LaddersConfig contains all configuration for a Snakes & Ladders table.
// The board itself is fixed and not configurable here.
type LaddersConfig struct {
	Players int          `yaml:"players"`
	Pacing  PacingConfig `yaml:"pacing"`
	Dice    DiceConfig   `yaml:"dice"`
}

// PacingConfig controls how long each event of a turn stays on screen
// before the next one is shown. All values are in milliseconds.
type PacingConfig struct {
	RollMS int `yaml:"roll_ms"` // Dice tumble before the result shows
	MoveMS int `yaml:"move_ms"` // Token on the landing square before a jump
	JumpMS int `yaml:"jump_ms"` // Token at the end of a snake/ladder
	TurnMS int `yaml:"turn_ms"` // Pause before the next player's turn
}

// DiceConfig controls the roll source.
type DiceConfig struct {
	Seed   int64 `yaml:"seed"`   // 0 = random per game
	Script []int `yaml:"script"` // Fixed roll sequence for demos, cycles when exhausted
}

// Validate checks the ranges a table can actually use.
func (c LaddersConfig) Validate() error {
	if c.Players < 1 || c.Players > 4 {
		return fmt.Errorf("config: players must be 1-4, got %d", c.Players)
	}
	for name, ms := range map[string]int{
		"roll_ms": c.Pacing.RollMS,
		"move_ms": c.Pacing.MoveMS,
		"jump_ms": c.Pacing.JumpMS,
		"turn_ms": c.Pacing.TurnMS,
	} {
		if ms < 0 {
			return fmt.Errorf("config: pacing.%s must not be negative, got %d", name, ms)
		}
	}
	for i, v := range c.Dice.Script {
		if v < 1 || v > 6 {
			return fmt.Errorf("config: dice.script[%d] = %d, must be 1-6", i, v)
		}
	}
	return nil
}

// Ticks converts a pacing duration to simulation ticks at tickRate.
func Ticks(ms, tickRate int) int {
	if ms <= 0 || tickRate <= 0 {
		return 0
	}
	d := time.Duration(ms) * time.Millisecond
	return int(d * time.Duration(tickRate) / time.Second)
}

// SpeedPreset is a named pacing level.
type SpeedPreset string

const (
	SpeedSlow    SpeedPreset = "slow"
	SpeedNormal  SpeedPreset = "normal"
	SpeedFast    SpeedPreset = "fast"
	SpeedInstant SpeedPreset = "instant"
)

// ScaleForPreset returns the pacing multiplier for a preset.
func ScaleForPreset(preset SpeedPreset) float64 {
	switch preset {
	case SpeedSlow:
		return 1.5
	case SpeedFast:
		return 0.4
	case SpeedInstant:
		return 0
	default:
		return 1.0
	}
}

// ParseSpeedPreset validates a preset name. Empty means normal.
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	switch p := SpeedPreset(s); p {
	case "":
		return SpeedNormal, nil
	case SpeedSlow, SpeedNormal, SpeedFast, SpeedInstant:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown speed %q (want slow, normal, fast or instant)", s)
	}
}
