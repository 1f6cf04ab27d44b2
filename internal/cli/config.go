package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ProxySheet/internal/model"
	"github.com/piwi3910/ProxySheet/internal/project"
)

func newConfigCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the default settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			printConfig(cmd, g.configPath, cfg)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long:  "Change one setting. Keys: " + strings.Join(project.ConfigKeys(), ", ") + ".",
		Example: `  proxysheet config set cols 3
  proxysheet config set page Letter
  proxysheet config set cut_marks true`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if err := project.SetConfigValue(&cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := project.SaveAppConfig(g.configPath, cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			printSuccess(cmd.OutOrStdout(), "Set %s = %s", args[0], args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := project.SaveAppConfig(g.configPath, model.DefaultAppConfig()); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			printSuccess(cmd.OutOrStdout(), "Reset %s", g.configPath)
			return nil
		},
	})

	return cmd
}

func printConfig(cmd *cobra.Command, path string, cfg model.AppConfig) {
	out := cmd.OutOrStdout()
	l := cfg.Layout

	printTitle(out, path)
	printKeyValue(out, "page", cfg.PageSize)
	printKeyValue(out, "card", cfg.CardSize)
	printKeyValue(out, "cols", fmt.Sprintf("%d", l.NumCols))
	printKeyValue(out, "rows", fmt.Sprintf("%d", l.NumRows))
	printKeyValue(out, "hgap", fmt.Sprintf("%g mm", l.HorizontalGap))
	printKeyValue(out, "vgap", fmt.Sprintf("%g mm", l.VerticalGap))
	printKeyValue(out, "hmargin", fmt.Sprintf("%g mm", l.MinHorizontalMargin))
	printKeyValue(out, "vmargin", fmt.Sprintf("%g mm", l.MinVerticalMargin))
	printKeyValue(out, "cut_marks", fmt.Sprintf("%t", cfg.CutMarks))
	printKeyValue(out, "convert", fmt.Sprintf("%t", cfg.ConvertImages))
	printKeyValue(out, "concurrency", fmt.Sprintf("%d", cfg.Concurrency))
	printKeyValue(out, "output", cfg.OutputPath)
}
