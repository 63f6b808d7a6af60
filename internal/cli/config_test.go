package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ringforge/ringforge/pkg/pipeline"
)

func TestLoadConfigFromWorkingDir(t *testing.T) {
	dir := t.TempDir()
	data := `
diameter_mm = 450
policy = "proportional"

[redis]
addr = "localhost:6379"
`
	if err := os.WriteFile(filepath.Join(dir, "ringforge.toml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg := LoadConfig()
	if cfg.DiameterMM != 450 {
		t.Errorf("DiameterMM = %v, want 450", cfg.DiameterMM)
	}
	if cfg.Policy != "proportional" {
		t.Errorf("Policy = %q, want proportional", cfg.Policy)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want localhost:6379", cfg.Redis.Addr)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg := LoadConfig()
	if cfg != (Config{}) {
		t.Errorf("missing config file should yield zero config, got %+v", cfg)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ringforge.toml"), []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	cfg := LoadConfig()
	if cfg != (Config{}) {
		t.Errorf("malformed config file should be ignored, got %+v", cfg)
	}
}

func TestApplyBoardDefaults(t *testing.T) {
	c := &CLI{Config: Config{DiameterMM: 450, PaddingMM: 2, Policy: "equal"}}

	opts := pipeline.Options{DiameterMM: 300}
	c.applyBoardDefaults(&opts)

	if opts.DiameterMM != 300 {
		t.Errorf("flag value should win over config, got %v", opts.DiameterMM)
	}
	if opts.PaddingMM != 2 {
		t.Errorf("config should fill unset padding, got %v", opts.PaddingMM)
	}
	if opts.Policy != "equal" {
		t.Errorf("config should fill unset policy, got %q", opts.Policy)
	}
}
