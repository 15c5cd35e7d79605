package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	t.Setenv("INSPECTGRID_CONFIG", "")
	cfg, err := LoadArgs(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HistoryDepth != 50 || cfg.PageSize != 50 || !cfg.Virtualized || cfg.Theme != ThemeDark {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestLayering(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "inspectgrid.toml")
	body := `file = "inspections.csv"
page_size = 25
history_depth = 10
theme = "light"
openai_model = "from-file"
`
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INSPECTGRID_CONFIG", p)
	t.Setenv("INSPECTGRID_OPENAI_MODEL", "from-env")
	cfg, err := LoadArgs([]string{"--page-size", "100"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FilePath != "inspections.csv" || cfg.HistoryDepth != 10 || cfg.Theme != ThemeLight {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.PageSize != 100 {
		t.Fatalf("flag should override file: page size %d", cfg.PageSize)
	}
	if cfg.OpenAIModel != "from-env" {
		t.Fatalf("env should override file: %s", cfg.OpenAIModel)
	}
}

func TestConfigFlagBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.toml")
	if err := os.WriteFile(p, []byte(`demo_rows = 7`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INSPECTGRID_CONFIG", filepath.Join(dir, "missing.toml"))
	cfg, err := LoadArgs([]string{"--config=" + p})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DemoRows != 7 {
		t.Fatalf("demo rows = %d, want 7", cfg.DemoRows)
	}
}

func TestValidation(t *testing.T) {
	t.Setenv("INSPECTGRID_CONFIG", "")
	cases := [][]string{
		{"--export", "csv"},
		{"--export", "xlsx", "--out", "x"},
		{"--theme", "neon"},
		{"--follow"},
	}
	for _, args := range cases {
		if _, err := LoadArgs(args); err == nil {
			t.Errorf("LoadArgs(%v) succeeded, want error", args)
		}
	}
	cfg, err := LoadArgs([]string{"--export", "json", "--out", "v.ndjson", "--history", "0"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ExportFormat != "ndjson" || cfg.HistoryDepth != 50 {
		t.Fatalf("normalized = %+v", cfg)
	}
}
