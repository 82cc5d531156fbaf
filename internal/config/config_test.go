package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Drill.Theme != nil || cfg.Drill.DBPath != nil {
		t.Errorf("cfg = %+v, want zero value", cfg)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestLoadParsesDrillSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[drill]\ntheme = \"ocean\"\ndb = \"/tmp/facts.db\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Drill.Theme == nil || *cfg.Drill.Theme != "ocean" {
		t.Errorf("Theme = %v, want ocean", cfg.Drill.Theme)
	}
	if cfg.Drill.DBPath == nil || *cfg.Drill.DBPath != "/tmp/facts.db" {
		t.Errorf("DBPath = %v, want /tmp/facts.db", cfg.Drill.DBPath)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[drill\ntheme ="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected decode error")
	}
}
