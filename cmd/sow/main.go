package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sowbuilder/internal/config"
	"sowbuilder/internal/logging"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sow",
	Short: "sow - Statement of Work builder",
	Long: `sow walks you through an engagement (type, parties, scope, fees and terms)
and produces a Statement of Work as DOCX and PDF.

Run without arguments to start the interactive wizard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		// The wizard owns the terminal; keep zap off stderr there.
		if runsWizard(cmd) {
			logger = zap.NewNop()
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: runWizard,
}

// runsWizard reports whether cmd is the bare root command, which starts
// the interactive wizard.
func runsWizard(cmd *cobra.Command) bool {
	return !cmd.HasParent()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: nearest .sow above the current directory)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: <workspace>/.sow/config.yaml)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(termsCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the workspace, reads the config and starts file logging.
func loadConfig() error {
	if workspace == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		workspace = config.FindWorkspaceRoot(cwd)
	}
	abs, err := filepath.Abs(workspace)
	if err != nil {
		return fmt.Errorf("invalid workspace %s: %w", workspace, err)
	}
	workspace = abs

	if configPath == "" {
		configPath = config.DefaultPath(workspace)
	}
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", configPath, err)
	}

	if verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(workspace, cfg.Logging.Logging()); err != nil {
		return err
	}
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		logging.BootWarn("no config at %s, using defaults", configPath)
	} else {
		logging.Boot("config loaded from %s", configPath)
	}
	return nil
}

// outputDir resolves the configured output directory against the workspace.
func outputDir(override string) string {
	dir := cfg.Export.OutputDir
	if override != "" {
		dir = override
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(workspace, dir)
}
