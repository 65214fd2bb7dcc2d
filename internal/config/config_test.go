package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	cfg := DefaultConfig()
	var embedded GameConfig
	if err := yaml.Unmarshal(DefaultYAML(), &embedded); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, embedded) {
		t.Errorf("embedded YAML and DefaultConfig disagree:\nembedded: %+v\nhardcoded: %+v", embedded, cfg)
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
		want   error
	}{
		{"zero tile", func(c *GameConfig) { c.Physics.TileSize = 0 }, ErrInvalidTileSize},
		{"zero tick rate", func(c *GameConfig) { c.Loop.TickRate = 0 }, ErrInvalidTickRate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, expected %v", err, tc.want)
			}
		})
	}

	t.Run("dangling power-up", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Items["mystery"] = ItemConfig{Type: "powerup", PowerUp: "nope"}
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for unknown power-up reference")
		}
	})
}

func TestLoadCustomPathOverridesKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("physics:\n  gravity: 0.8\nplayer:\n  lives: 7\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Physics.Gravity != 0.8 {
		t.Errorf("gravity = %v, expected 0.8", cfg.Physics.Gravity)
	}
	if cfg.Player.Lives != 7 {
		t.Errorf("lives = %d, expected 7", cfg.Player.Lives)
	}
	if cfg.Physics.TileSize != 32 {
		t.Errorf("tile size = %d, expected untouched default 32", cfg.Physics.TileSize)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed custom config")
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Error("expected embedded defaults when no config files exist")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"nightmare", DifficultyNormal, true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) err = %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	normal := DefaultConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if !reflect.DeepEqual(normal, DefaultConfig()) {
		t.Error("normal preset must leave defaults untouched")
	}

	easy := DefaultConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Player.Lives != 5 {
		t.Errorf("easy lives = %d, expected 5", easy.Player.Lives)
	}
	if easy.Enemies["candy"].Damage != 5 {
		t.Errorf("easy candy damage = %d, expected 5", easy.Enemies["candy"].Damage)
	}
	if easy.Boss.HP != 375 {
		t.Errorf("easy boss hp = %d, expected 375", easy.Boss.HP)
	}

	hard := DefaultConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Player.Lives != 2 {
		t.Errorf("hard lives = %d, expected 2", hard.Player.Lives)
	}
	if hard.Boss.HP != 750 {
		t.Errorf("hard boss hp = %d, expected 750", hard.Boss.HP)
	}
	if hard.Enemies["soda"].Damage != 30 {
		t.Errorf("hard soda damage = %d, expected 30", hard.Enemies["soda"].Damage)
	}
}
