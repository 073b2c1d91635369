package config

import (
	"os"
	"path/filepath"
	"testing"

	"sowbuilder/internal/render"
	"sowbuilder/internal/sow"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SOW_OUTPUT_DIR", "SOW_THEME", "SOW_LOG_LEVEL",
		"SOW_PROVIDER_COMPANY", "SOW_PROVIDER_CONTACT", "SOW_PROVIDER_EMAIL",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider.CompanyName != "Blogsmith INC" {
		t.Errorf("expected CompanyName=Blogsmith INC, got %s", cfg.Provider.CompanyName)
	}
	if cfg.Defaults.Revisions != 3 {
		t.Errorf("expected Revisions=3, got %d", cfg.Defaults.Revisions)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Export.OutputDir != "." {
		t.Errorf("expected OutputDir=., got %s", cfg.Export.OutputDir)
	}
	if len(cfg.Export.Formats) != 2 {
		t.Errorf("expected 2 formats, got %v", cfg.Export.Formats)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	path := DefaultPath(t.TempDir())

	cfg := DefaultConfig()
	cfg.Provider.CompanyName = "Inkwell LLC"
	cfg.Defaults.Revisions = 5
	cfg.Export.Formats = []string{"pdf"}
	cfg.UI.Theme = "light"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Provider.CompanyName != "Inkwell LLC" {
		t.Errorf("expected CompanyName=Inkwell LLC, got %s", loaded.Provider.CompanyName)
	}
	if loaded.Defaults.Revisions != 5 {
		t.Errorf("expected Revisions=5, got %d", loaded.Defaults.Revisions)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("expected Theme=light, got %s", loaded.UI.Theme)
	}
	// Fields absent from the saved file keep their defaults.
	if loaded.Provider.Email != "maddy@theblogsmith.com" {
		t.Errorf("expected default Email, got %s", loaded.Provider.Email)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  theme: light\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("expected Theme=light, got %s", cfg.UI.Theme)
	}
	if cfg.UI.WordWrap != 80 {
		t.Errorf("expected WordWrap=80, got %d", cfg.UI.WordWrap)
	}
	if cfg.Provider.ContactName != "Madeline French" {
		t.Errorf("expected default ContactName, got %s", cfg.Provider.ContactName)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOW_OUTPUT_DIR", "/tmp/out")
	t.Setenv("SOW_THEME", "LIGHT")
	t.Setenv("SOW_LOG_LEVEL", "Debug")
	t.Setenv("SOW_PROVIDER_COMPANY", "Env Co")
	t.Setenv("SOW_PROVIDER_CONTACT", "Env Person")
	t.Setenv("SOW_PROVIDER_EMAIL", "env@example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Export.OutputDir != "/tmp/out" {
		t.Errorf("expected OutputDir=/tmp/out, got %s", cfg.Export.OutputDir)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("expected Theme=light, got %s", cfg.UI.Theme)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected Level=debug, got %s", cfg.Logging.Level)
	}
	if cfg.Provider.CompanyName != "Env Co" || cfg.Provider.ContactName != "Env Person" || cfg.Provider.Email != "env@example.com" {
		t.Errorf("provider overrides not applied: %+v", cfg.Provider)
	}
}

func TestEnvOverrides_BeatFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("export:\n  output_dir: from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SOW_OUTPUT_DIR", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Export.OutputDir != "from-env" {
		t.Errorf("expected OutputDir=from-env, got %s", cfg.Export.OutputDir)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, true},
		{"empty level", func(c *Config) { c.Logging.Level = "" }, false},
		{"unknown format", func(c *Config) { c.Export.Formats = []string{"docx", "odt"} }, true},
		{"no formats", func(c *Config) { c.Export.Formats = nil }, true},
		{"empty output dir", func(c *Config) { c.Export.OutputDir = "" }, true},
		{"negative revisions", func(c *Config) { c.Defaults.Revisions = -1 }, true},
		{"pdf only", func(c *Config) { c.Export.Formats = []string{"PDF"} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExportKinds(t *testing.T) {
	cfg := DefaultExportConfig()
	kinds, err := cfg.Kinds()
	if err != nil {
		t.Fatalf("Kinds failed: %v", err)
	}
	if len(kinds) != 2 || kinds[0] != render.KindDOCX || kinds[1] != render.KindPDF {
		t.Errorf("unexpected kinds: %v", kinds)
	}
}

func TestRecordDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider.CompanyName = "Inkwell LLC"
	cfg.Defaults.Revisions = 7

	rec := sow.NewRecord(cfg.RecordDefaults())
	if rec.Provider.CompanyName != "Inkwell LLC" {
		t.Errorf("expected provider Inkwell LLC, got %s", rec.Provider.CompanyName)
	}
	if rec.Terms.Revisions != 7 {
		t.Errorf("expected Revisions=7, got %d", rec.Terms.Revisions)
	}
}

func TestLoggingConfig(t *testing.T) {
	lc := LoggingConfig{Categories: map[string]bool{"export": false}}
	if lc.IsCategoryEnabled("wizard") {
		t.Error("categories must be disabled when debug mode is off")
	}

	lc.DebugMode = true
	if !lc.IsCategoryEnabled("wizard") {
		t.Error("unlisted category should be enabled")
	}
	if lc.IsCategoryEnabled("export") {
		t.Error("export was explicitly disabled")
	}

	lc.Level = "warn"
	out := lc.Logging()
	if !out.DebugMode || out.Level != "warn" || out.Categories["export"] {
		t.Errorf("unexpected conversion: %+v", out)
	}
}

func TestUIConfig_GlamourStyle(t *testing.T) {
	if got := (UIConfig{Theme: "light"}).GlamourStyle(); got != "light" {
		t.Errorf("expected light, got %s", got)
	}
	if got := (UIConfig{Theme: "dark"}).GlamourStyle(); got != "dark" {
		t.Errorf("expected dark, got %s", got)
	}
}

func TestFindWorkspaceRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".sow"), 0755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if got := FindWorkspaceRoot(nested); got != root {
		t.Errorf("expected %s, got %s", root, got)
	}

	lonely := t.TempDir()
	if got := FindWorkspaceRoot(lonely); got != lonely {
		t.Errorf("expected fallback %s, got %s", lonely, got)
	}
}
