package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func fixedNow(t *testing.T) {
	t.Helper()
	prev := now
	now = func() time.Time { return time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() {
		CloseAll()
		now = prev
		configMu.Lock()
		config = Config{}
		logsDir = ""
		configMu.Unlock()
	})
}

// TestAllCategoriesLog tests that all categories create log files when debug_mode is true
func TestAllCategoriesLog(t *testing.T) {
	fixedNow(t)
	tempDir := t.TempDir()

	if err := Initialize(tempDir, Config{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}

	categories := []Category{
		CategoryBoot,
		CategoryConfig,
		CategoryWizard,
		CategoryFormat,
		CategoryExport,
		CategorySignature,
		CategoryPreview,
	}
	for _, cat := range categories {
		if !IsCategoryEnabled(cat) {
			t.Errorf("Category %s should be enabled", cat)
		}
		logger := Get(cat)
		logger.Info("Test info message for %s", cat)
		logger.Debug("Test debug message for %s", cat)
	}

	Boot("Convenience boot log")
	BootWarn("Convenience boot warning")
	FormatDebug("Convenience format log")
	Export("Convenience export log")
	ExportError("Convenience export error")
	Signature("Convenience signature log")
	CloseAll()

	logsPath := filepath.Join(tempDir, ".sow", "logs")
	for _, cat := range categories {
		path := filepath.Join(logsPath, "2025-01-05_"+string(cat)+".log")
		content, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("No log file for category %s: %v", cat, err)
			continue
		}
		if !strings.Contains(string(content), "Test debug message for "+string(cat)) {
			t.Errorf("Log file for %s missing debug entry:\n%s", cat, content)
		}
	}
}

// TestDebugModeDisabled tests that no logs are created when debug_mode is false
func TestDebugModeDisabled(t *testing.T) {
	fixedNow(t)
	tempDir := t.TempDir()

	if err := Initialize(tempDir, Config{DebugMode: false}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	if IsCategoryEnabled(CategoryExport) {
		t.Error("Categories should be disabled when debug mode is off")
	}

	Get(CategoryExport).Error("should be dropped")
	Export("should be dropped")

	if _, err := os.Stat(filepath.Join(tempDir, ".sow", "logs")); !os.IsNotExist(err) {
		t.Errorf("Logs directory should not exist in production mode, stat err = %v", err)
	}
}

func TestCategoryFilterAndLevel(t *testing.T) {
	fixedNow(t)
	tempDir := t.TempDir()

	cfg := Config{
		DebugMode:  true,
		Level:      "warn",
		Categories: map[string]bool{"wizard": false},
	}
	if err := Initialize(tempDir, cfg); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	if IsCategoryEnabled(CategoryWizard) {
		t.Error("wizard category should be filtered out")
	}
	if !IsCategoryEnabled(CategoryExport) {
		t.Error("unlisted categories should be enabled")
	}

	Wizard("dropped")
	Get(CategoryExport).Info("below level")
	Get(CategoryExport).Warn("at level")
	CloseAll()

	logsPath := filepath.Join(tempDir, ".sow", "logs")
	if _, err := os.Stat(filepath.Join(logsPath, "2025-01-05_wizard.log")); !os.IsNotExist(err) {
		t.Error("disabled category should not create a file")
	}
	content, err := os.ReadFile(filepath.Join(logsPath, "2025-01-05_export.log"))
	if err != nil {
		t.Fatalf("read export log: %v", err)
	}
	if strings.Contains(string(content), "below level") {
		t.Error("info entry should be filtered at warn level")
	}
	if !strings.Contains(string(content), "at level") {
		t.Error("warn entry missing")
	}
}

func TestJSONFormatWithFields(t *testing.T) {
	fixedNow(t)
	tempDir := t.TempDir()

	if err := Initialize(tempDir, Config{DebugMode: true, JSONFormat: true}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	Get(CategoryExport).With("export_id", "abc123").Info("wrote %s", "SOW-Acme-2025-01-05.pdf")
	CloseAll()

	data, err := os.ReadFile(filepath.Join(tempDir, ".sow", "logs", "2025-01-05_export.log"))
	if err != nil {
		t.Fatalf("read export log: %v", err)
	}
	var entry map[string]interface{}
	line := strings.TrimSpace(strings.Split(strings.TrimSpace(string(data)), "\n")[0])
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("entry is not JSON: %v\n%s", err, line)
	}
	if entry["msg"] != "wrote SOW-Acme-2025-01-05.pdf" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["export_id"] != "abc123" {
		t.Errorf("export_id = %v", entry["export_id"])
	}
	if entry["logger"] != "export" {
		t.Errorf("logger = %v", entry["logger"])
	}
}

func TestInitializeRequiresWorkspace(t *testing.T) {
	if err := Initialize("", Config{}); err == nil {
		t.Error("expected error for empty workspace")
	}
}

func TestConcurrentGet(t *testing.T) {
	fixedNow(t)
	if err := Initialize(t.TempDir(), Config{DebugMode: true}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}

	var wg sync.WaitGroup
	got := make([]*Logger, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = Get(CategoryExport)
			got[i].Info("worker %d", i)
		}(i)
	}
	wg.Wait()
	for _, l := range got[1:] {
		if l != got[0] {
			t.Fatal("Get should return one shared logger per category")
		}
	}
}

func TestInitializeWhileLogging(t *testing.T) {
	fixedNow(t)
	ws := t.TempDir()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if err := Initialize(ws, Config{DebugMode: i%2 == 0}); err != nil {
				t.Errorf("Initialize: %v", err)
			}
		}(i)
		go func() {
			defer wg.Done()
			Get(CategoryExport).Info("concurrent entry")
		}()
	}
	wg.Wait()
}
