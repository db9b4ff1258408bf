package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(GetDefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML invalid: %v", err)
	}
	want := DefaultLaddersConfig()
	if cfg.Players != want.Players || cfg.Pacing != want.Pacing || cfg.Dice.Seed != want.Dice.Seed {
		t.Errorf("embedded = %+v, hardcoded = %+v", cfg, want)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	data := "players: 4\npacing:\n  move_ms: 200\ndice:\n  script: [6, 6, 1]\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadLadders(path)
	if err != nil {
		t.Fatalf("LoadLadders failed: %v", err)
	}
	if cfg.Players != 4 {
		t.Errorf("Players = %d, want 4", cfg.Players)
	}
	if cfg.Pacing.MoveMS != 200 {
		t.Errorf("MoveMS = %d, want 200", cfg.Pacing.MoveMS)
	}
	// Unset fields keep their defaults
	if cfg.Pacing.RollMS != DefaultLaddersConfig().Pacing.RollMS {
		t.Errorf("RollMS = %d, want default", cfg.Pacing.RollMS)
	}
	if len(cfg.Dice.Script) != 3 {
		t.Errorf("Script = %v", cfg.Dice.Script)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadLadders(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "players: [", "failed to parse"},
		{"too many players", "players: 5", "players must be 1-4"},
		{"negative pacing", "pacing:\n  jump_ms: -1", "pacing.jump_ms"},
		{"bad script", "dice:\n  script: [3, 7]", "dice.script[1]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.data), 0o600); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}
			_, err := LoadLadders(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("LoadLadders error = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestSpeedPresets(t *testing.T) {
	for _, name := range []string{"", "slow", "normal", "fast", "instant"} {
		if _, err := ParseSpeedPreset(name); err != nil {
			t.Errorf("ParseSpeedPreset(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseSpeedPreset("ludicrous"); err == nil {
		t.Error("unknown preset should fail")
	}

	cfg := DefaultLaddersConfig()
	ApplySpeedPreset(&cfg, SpeedInstant)
	if cfg.Pacing != (PacingConfig{}) {
		t.Errorf("instant pacing = %+v, want all zero", cfg.Pacing)
	}

	cfg = DefaultLaddersConfig()
	ApplySpeedPreset(&cfg, SpeedSlow)
	if cfg.Pacing.MoveMS != 1500 {
		t.Errorf("slow MoveMS = %d, want 1500", cfg.Pacing.MoveMS)
	}
}

func TestTicks(t *testing.T) {
	tests := []struct {
		ms, rate, want int
	}{
		{1000, 30, 30},
		{600, 30, 18},
		{500, 60, 30},
		{0, 30, 0},
		{100, 0, 0},
	}
	for _, tc := range tests {
		if got := Ticks(tc.ms, tc.rate); got != tc.want {
			t.Errorf("Ticks(%d, %d) = %d, want %d", tc.ms, tc.rate, got, tc.want)
		}
	}
}
