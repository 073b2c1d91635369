package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sowbuilder/internal/export"
	"sowbuilder/internal/render"
	"sowbuilder/internal/sow"
)

var (
	renderFormats []string
	renderOutDir  string
	renderText    string
)

// renderCmd exports a record file without the wizard
var renderCmd = &cobra.Command{
	Use:   "render [record.yaml]",
	Short: "Render a record file to DOCX and/or PDF",
	Long: `Reads an engagement record (YAML or JSON) and writes the Statement of Work.

With --text the given file is used verbatim as the document body, the way
the wizard's text mode does; the record still supplies the file name.

Examples:
  sow render acme.yaml
  sow render acme.yaml --format pdf --out ./contracts
  sow render acme.yaml --text edited.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringSliceVarP(&renderFormats, "format", "f", nil, "Formats to write: docx, pdf (default: export.formats from config)")
	renderCmd.Flags().StringVarP(&renderOutDir, "out", "o", "", "Output directory (default: export.output_dir from config)")
	renderCmd.Flags().StringVar(&renderText, "text", "", "Use this plain text file as the document body")
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec, err := sow.LoadRecord(args[0], cfg.RecordDefaults())
	if err != nil {
		return err
	}

	kinds, err := resolveKinds(renderFormats)
	if err != nil {
		return err
	}

	src, err := renderSource(rec, renderText)
	if err != nil {
		return err
	}

	dir := outputDir(renderOutDir)
	logger.Info("Rendering record",
		zap.String("record", args[0]),
		zap.Stringers("formats", kinds),
		zap.Bool("override", src.IsOverride()),
		zap.String("dir", dir))

	res, err := export.New(dir, renderers()).ExportAll(ctx, rec, kinds, src)
	if err != nil {
		logger.Error("Render failed", zap.Error(err))
		return fmt.Errorf("%s: %w", export.UserMessage, err)
	}

	for _, f := range res.Files {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", f.Path, humanize.Bytes(uint64(f.Size)))
	}
	logger.Debug("Render complete", zap.String("export_id", res.ID.String()))
	return nil
}

func resolveKinds(formats []string) ([]render.Kind, error) {
	if len(formats) == 0 {
		return cfg.Export.Kinds()
	}
	kinds := make([]render.Kind, 0, len(formats))
	for _, f := range formats {
		k, err := render.ParseKind(f)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func renderSource(rec *sow.EngagementRecord, textPath string) (render.Source, error) {
	if textPath == "" {
		return render.FromRecord(rec)
	}
	data, err := os.ReadFile(textPath)
	if err != nil {
		return render.Source{}, fmt.Errorf("failed to read text override: %w", err)
	}
	return render.FromText(string(data)), nil
}
