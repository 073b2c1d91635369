package ui

import (
	"strings"
	"testing"
)

func TestThemeFor(t *testing.T) {
	tests := []struct {
		name string
		dark bool
	}{
		{"light", false},
		{"LIGHT", false},
		{" light ", false},
		{"dark", true},
		{"", true},
		{"solarized", true},
	}
	for _, tt := range tests {
		if got := ThemeFor(tt.name).Dark; got != tt.dark {
			t.Errorf("ThemeFor(%q).Dark = %v, want %v", tt.name, got, tt.dark)
		}
	}
}

func TestRenderProgress(t *testing.T) {
	s := NewStyles(Dark)

	got := s.RenderProgress(40, 10)
	if strings.Count(got, "█") != 4 || strings.Count(got, "░") != 6 {
		t.Errorf("expected 4 filled of 10, got %q", got)
	}
	if !strings.Contains(got, "40%") {
		t.Errorf("expected percentage label, got %q", got)
	}

	if got := s.RenderProgress(250, 4); strings.Count(got, "█") != 4 {
		t.Errorf("percent should clamp to 100, got %q", got)
	}
	if got := s.RenderProgress(50, 0); got != "" {
		t.Errorf("zero width should render nothing, got %q", got)
	}
}

func TestNewStylesKeepsPalette(t *testing.T) {
	if got := NewStyles(Light).Palette.Name; got != "light" {
		t.Errorf("Palette.Name = %q, want light", got)
	}
}
