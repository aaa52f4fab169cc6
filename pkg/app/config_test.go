package app

import (
	"strings"
	"testing"
)

func TestParseEnvDefaults(t *testing.T) {
	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Verbose || cfg.Muted || cfg.Seed != 0 || cfg.AgeBand != "" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Game != "fruit-stacker" {
		t.Errorf("Game = %q, want fruit-stacker", cfg.Game)
	}
}

func TestParseEnvValues(t *testing.T) {
	t.Setenv("XS_ARCADE_VERBOSE", "true")
	t.Setenv("XS_ARCADE_AGE_BAND", "4-5")
	t.Setenv("XS_ARCADE_SEED", "42")
	t.Setenv("XS_ARCADE_MUTED", "1")

	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if !cfg.Verbose || cfg.AgeBand != "4-5" || cfg.Seed != 42 || !cfg.Muted {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("XS_ARCADE_SEED", "not-a-number")

	_, err := ParseEnv()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("XS_ARCADE_AGE_BAND", "4-5")
	t.Setenv("XS_ARCADE_SEED", "42")

	cfg, err := ParseConfig("xs-arcade", []string{"-age", "8", "-verbose"})
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}
	if cfg.AgeBand != "8" {
		t.Errorf("AgeBand = %q, want flag value 8", cfg.AgeBand)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want env value 42", cfg.Seed)
	}
	if !cfg.Verbose {
		t.Error("Verbose flag should be set")
	}
}

func TestParseConfigRejectsUnknownAgeBand(t *testing.T) {
	if _, err := ParseConfig("xs-arcade", []string{"-age", "12"}); err == nil {
		t.Error("expected error for unknown age band")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{Game: "fruit-stacker"}, false},
		{"known band", Config{Game: "fruit-stacker", AgeBand: "6-7"}, false},
		{"unknown band", Config{Game: "fruit-stacker", AgeBand: "adult"}, true},
		{"missing game", Config{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
