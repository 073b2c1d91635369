package config

import (
	"fmt"

	"sowbuilder/internal/render"
)

// ExportConfig controls where and how documents are written.
type ExportConfig struct {
	OutputDir string   `yaml:"output_dir"`
	Formats   []string `yaml:"formats"` // subset of docx, pdf
}

// DefaultExportConfig writes both formats to the working directory.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		OutputDir: ".",
		Formats:   []string{"docx", "pdf"},
	}
}

// Kinds parses Formats.
func (c ExportConfig) Kinds() ([]render.Kind, error) {
	kinds := make([]render.Kind, 0, len(c.Formats))
	for _, f := range c.Formats {
		k, err := render.ParseKind(f)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func (c ExportConfig) validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("export.output_dir must not be empty")
	}
	if len(c.Formats) == 0 {
		return fmt.Errorf("export.formats must list at least one of %v", render.Kinds)
	}
	if _, err := c.Kinds(); err != nil {
		return fmt.Errorf("export.formats: %w", err)
	}
	return nil
}
