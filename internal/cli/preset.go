package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ProxySheet/internal/model"
	"github.com/piwi3910/ProxySheet/internal/project"
)

func newPresetCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage named layout presets",
		Long:  `Presets store a grid, gaps, margins, page size and card size under a name for reuse with --preset.`,
	}

	cmd.AddCommand(newPresetListCmd(g))
	cmd.AddCommand(newPresetSaveCmd(g))
	cmd.AddCommand(newPresetDeleteCmd(g))

	return cmd
}

func newPresetListCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.loadPresets()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(store.Presets) == 0 {
				printDetail(out, "no presets saved in %s", g.presetPath())
				return nil
			}
			for _, p := range store.Presets {
				l := p.Layout
				printKeyValue(out, p.Name, fmt.Sprintf("%dx%d on %s, %s card", l.NumCols, l.NumRows, p.PageSize, p.CardSize))
				printDetail(out, "id %s, gaps %g/%g mm, min margins %g/%g mm", p.ID, l.HorizontalGap, l.VerticalGap, l.MinHorizontalMargin, l.MinVerticalMargin)
				if p.Description != "" {
					printDetail(out, "%s", p.Description)
				}
			}
			return nil
		},
	}
}

func newPresetSaveCmd(g *globals) *cobra.Command {
	var (
		layout      layoutFlags
		description string
	)

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current layout settings as a preset",
		Long:  `Save starts from the config defaults, applies any layout flags and stores the result. A preset with the same name is replaced.`,
		Example: `  proxysheet preset save nine-up --cols 3 --rows 3 --card poker
  proxysheet preset save tight --hgap 0 --vgap 0 --description "no gaps"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			store, err := g.loadPresets()
			if err != nil {
				return err
			}
			cfg, err = layout.resolve(cmd, cfg, store)
			if err != nil {
				return err
			}

			store.Put(model.NewLayoutPreset(args[0], description, cfg.Layout, cfg.PageSize, cfg.CardSize))
			if err := project.SavePresets(g.presetPath(), store); err != nil {
				return fmt.Errorf("failed to save presets: %w", err)
			}
			loggerFromContext(cmd.Context()).Debug("Saved preset", "name", args[0], "path", g.presetPath())
			printSuccess(cmd.OutOrStdout(), "Saved preset %s", args[0])
			return nil
		},
	}

	layout.register(cmd.Flags(), false)
	cmd.Flags().StringVar(&description, "description", "", "preset description")

	return cmd
}

func newPresetDeleteCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name|id>",
		Aliases: []string{"rm"},
		Short:   "Delete a preset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.loadPresets()
			if err != nil {
				return err
			}
			if !store.Remove(args[0]) {
				return fmt.Errorf("preset %q not found", args[0])
			}
			if err := project.SavePresets(g.presetPath(), store); err != nil {
				return fmt.Errorf("failed to save presets: %w", err)
			}
			printSuccess(cmd.OutOrStdout(), "Deleted preset %s", args[0])
			return nil
		},
	}
}
