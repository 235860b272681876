package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsOnly(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Compression != 4 || !cfg.BorderSmart {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestOutOfRangeCompressionKeepsDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	os.WriteFile(path, []byte("[general]\ncompression = 99\n"), 0o644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Compression != 4 {
		t.Fatalf("expected out-of-range compression to keep default 4, got %d", cfg.Compression)
	}
}

func TestExplicitBorderColorDisablesSmart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	os.WriteFile(path, []byte("[border]\ncolor = #ff0000\n"), 0o644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BorderSmart {
		t.Fatal("expected explicit color to disable smart border")
	}
	if cfg.BorderColor.R != 0xffff || cfg.BorderColor.G != 0 {
		t.Fatalf("got color %+v", cfg.BorderColor)
	}
}

func TestMissingExplicitConfigFileIsError(t *testing.T) {
	if _, err := Load("/nonexistent/config.ini"); err == nil {
		t.Fatal("expected error for an explicit, missing config path")
	}
}
