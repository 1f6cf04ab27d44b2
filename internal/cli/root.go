package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/ProxySheet/internal/model"
	"github.com/piwi3910/ProxySheet/internal/project"
)

var (
	version = "dev" // semantic version (e.g., "v1.2.3")
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// globals holds the persistent flags shared by every command.
type globals struct {
	verbose    bool
	configPath string
	logOutput  io.Writer
}

// presetPath returns the preset store next to the active config file.
func (g *globals) presetPath() string {
	return project.PresetPathFor(g.configPath)
}

func (g *globals) loadConfig() (model.AppConfig, error) {
	cfg, err := project.LoadAppConfig(g.configPath)
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func (g *globals) loadPresets() (model.PresetStore, error) {
	store, err := project.LoadPresets(g.presetPath())
	if err != nil {
		return model.PresetStore{}, fmt.Errorf("failed to load presets: %w", err)
	}
	return store, nil
}

// newRootCommand builds the command tree. Log output goes to logOutput.
func newRootCommand(logOutput io.Writer) *cobra.Command {
	g := &globals{logOutput: logOutput}

	root := &cobra.Command{
		Use:           "proxysheet",
		Short:         "ProxySheet lays out card images on printable PDF sheets",
		Long:          `ProxySheet scales card images to fill a landscape page grid with fixed gaps and minimum margins, and writes a print-ready PDF.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if g.verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(g.logOutput, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("proxysheet %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&g.configPath, "config", project.DefaultConfigPath(), "config file path")

	root.AddCommand(newGenerateCmd(g))
	root.AddCommand(newPlanCmd(g))
	root.AddCommand(newPresetCmd(g))
	root.AddCommand(newConfigCmd(g))
	root.AddCommand(newBackupCmd(g))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the proxysheet CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	return newRootCommand(os.Stderr).ExecuteContext(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "proxysheet %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
		},
	}
}
