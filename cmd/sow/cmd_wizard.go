package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sowbuilder/cmd/sow/ui"
	"sowbuilder/cmd/sow/wizard"
	"sowbuilder/internal/export"
	"sowbuilder/internal/logging"
	"sowbuilder/internal/render"
	"sowbuilder/internal/render/docx"
	"sowbuilder/internal/render/pdf"
	"sowbuilder/internal/render/preview"
	"sowbuilder/internal/signature"
	ctl "sowbuilder/internal/wizard"
)

func renderers() []render.Renderer {
	return []render.Renderer{docx.New(), pdf.New()}
}

// runWizard launches the interactive wizard
func runWizard(cmd *cobra.Command, args []string) error {
	kinds, err := cfg.Export.Kinds()
	if err != nil {
		return err
	}

	pv, err := preview.NewRenderer(cfg.UI.GlamourStyle(), cfg.UI.WordWrap)
	if err != nil {
		logging.PreviewWarn("preview renderer unavailable: %v", err)
		pv = nil
	}

	deps := wizard.Deps{
		Controller: ctl.New(cfg.RecordDefaults()),
		Exporter:   export.New(outputDir(""), renderers()),
		Formats:    kinds,
		Signer:     signature.NewLogSender(),
		Preview:    pv,
		Styles:     ui.NewStyles(ui.ThemeFor(cfg.UI.Theme)),
	}

	logging.Wizard("wizard started in %s", workspace)
	p := tea.NewProgram(wizard.New(deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("wizard: %w", err)
	}
	return nil
}
