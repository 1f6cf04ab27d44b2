package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ProxySheet/internal/project"
)

func newBackupCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import config and presets",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write config and presets to one JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			store, err := g.loadPresets()
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], cfg, store); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Exported config and %d presets", len(store.Presets))
			printFile(cmd.OutOrStdout(), args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Replace config and presets from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(g.configPath, backup.Config); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			if err := project.SavePresets(g.presetPath(), backup.Presets); err != nil {
				return fmt.Errorf("failed to save presets: %w", err)
			}
			loggerFromContext(cmd.Context()).Debug("Imported backup", "version", backup.Version, "created", backup.CreatedAt)
			printSuccess(cmd.OutOrStdout(), "Imported config and %d presets", len(backup.Presets.Presets))
			return nil
		},
	})

	return cmd
}
