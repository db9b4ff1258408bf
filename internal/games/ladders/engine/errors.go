package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks. The typed errors below unwrap to them.
var (
	ErrConfig      = errors.New("engine: invalid configuration")
	ErrGameOver    = errors.New("engine: game is over")
	ErrInvalidRoll = errors.New("engine: invalid roll")
)

// ConfigError reports a malformed board or player count at construction.
type ConfigError struct {
	Field  string // "players", "snakes", "ladders" or "size"
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("engine: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// GameOverError is returned when a roll is requested after the game ended.
// Recoverable by calling Reset.
type GameOverError struct {
	WinnerID int
}

func (e *GameOverError) Error() string {
	return fmt.Sprintf("engine: game is over, player %d won", e.WinnerID)
}

func (e *GameOverError) Unwrap() error { return ErrGameOver }

// InvalidRollError is returned when a caller-supplied die value is outside [1, 6].
type InvalidRollError struct {
	Value int
}

func (e *InvalidRollError) Error() string {
	return fmt.Sprintf("engine: roll %d out of range [%d, %d]", e.Value, MinRoll, MaxRoll)
}

func (e *InvalidRollError) Unwrap() error { return ErrInvalidRoll }

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
