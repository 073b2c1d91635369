package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sowbuilder/internal/logging"
	"sowbuilder/internal/render"
	"sowbuilder/internal/render/preview"
	"sowbuilder/internal/sow"
)

var (
	previewPlain bool
	previewWatch bool
	previewWidth int
	previewText  string
)

// previewCmd prints the formatted document to the terminal
var previewCmd = &cobra.Command{
	Use:   "preview [record.yaml]",
	Short: "Show the formatted Statement of Work in the terminal",
	Long: `Formats a record file and prints it with markdown styling.

--plain prints the exact text that text mode starts from.
--watch re-renders whenever the record file is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().BoolVar(&previewPlain, "plain", false, "Print plain text without styling")
	previewCmd.Flags().BoolVar(&previewWatch, "watch", false, "Re-render when the record file changes")
	previewCmd.Flags().IntVar(&previewWidth, "width", 0, "Word wrap column (default: ui.word_wrap from config)")
	previewCmd.Flags().StringVar(&previewText, "text", "", "Preview this plain text file instead of the formatted record")
}

func runPreview(cmd *cobra.Command, args []string) error {
	width := cfg.UI.WordWrap
	if previewWidth > 0 {
		width = previewWidth
	}

	var pv *preview.Renderer
	if !previewPlain {
		var err error
		if pv, err = preview.NewRenderer(cfg.UI.GlamourStyle(), width); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	draw := func() error {
		rec, err := sow.LoadRecord(args[0], cfg.RecordDefaults())
		if err != nil {
			return err
		}
		src, err := renderSource(rec, previewText)
		if err != nil {
			return err
		}
		return writePreview(out, pv, src)
	}

	if err := draw(); err != nil {
		if !previewWatch {
			return err
		}
		fmt.Fprintln(out, err)
	}
	if !previewWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rw, err := NewRecordWatcher(args[0], func() {
		fmt.Fprint(out, "\033[H\033[2J")
		if err := draw(); err != nil {
			logging.PreviewWarn("re-render failed: %v", err)
			fmt.Fprintln(out, err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", args[0], err)
	}
	if err := rw.Start(ctx); err != nil {
		return fmt.Errorf("failed to watch %s: %w", args[0], err)
	}
	defer rw.Stop()

	<-ctx.Done()
	return nil
}

func writePreview(w io.Writer, pv *preview.Renderer, src render.Source) error {
	if pv == nil {
		_, err := fmt.Fprintln(w, preview.Text(src))
		return err
	}
	styled, err := pv.Render(src)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, styled)
	return err
}
