package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/piwi3910/ProxySheet/internal/model"
)

// layoutFlags are the grid settings shared by generate, plan and preset save.
// Values only apply when the flag was given on the command line.
type layoutFlags struct {
	preset  string
	page    string
	card    string
	cols    int
	rows    int
	hgap    float64
	vgap    float64
	hmargin float64
	vmargin float64
}

func (f *layoutFlags) register(flags *pflag.FlagSet, withPreset bool) {
	defaults := model.DefaultLayoutParams()
	if withPreset {
		flags.StringVar(&f.preset, "preset", "", "layout preset name or ID")
	}
	flags.StringVar(&f.page, "page", model.DefaultPage, "page size (landscape)")
	flags.StringVar(&f.card, "card", model.DefaultCard, "reference card size")
	flags.IntVar(&f.cols, "cols", defaults.NumCols, "columns per page")
	flags.IntVar(&f.rows, "rows", defaults.NumRows, "rows per page")
	flags.Float64Var(&f.hgap, "hgap", defaults.HorizontalGap, "horizontal gap between cards (mm)")
	flags.Float64Var(&f.vgap, "vgap", defaults.VerticalGap, "vertical gap between cards (mm)")
	flags.Float64Var(&f.hmargin, "hmargin", defaults.MinHorizontalMargin, "minimum total horizontal margin (mm)")
	flags.Float64Var(&f.vmargin, "vmargin", defaults.MinVerticalMargin, "minimum total vertical margin (mm)")
}

// resolve layers the settings: config defaults, then the preset, then any
// flag set on the command line.
func (f *layoutFlags) resolve(cmd *cobra.Command, cfg model.AppConfig, presets model.PresetStore) (model.AppConfig, error) {
	if f.preset != "" {
		p := presets.FindByName(f.preset)
		if p == nil {
			p = presets.FindByID(f.preset)
		}
		if p == nil {
			return model.AppConfig{}, fmt.Errorf("preset %q not found", f.preset)
		}
		p.ApplyToConfig(&cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("page") {
		cfg.PageSize = f.page
	}
	if flags.Changed("card") {
		cfg.CardSize = f.card
	}
	if flags.Changed("cols") {
		cfg.Layout.NumCols = f.cols
	}
	if flags.Changed("rows") {
		cfg.Layout.NumRows = f.rows
	}
	if flags.Changed("hgap") {
		cfg.Layout.HorizontalGap = f.hgap
	}
	if flags.Changed("vgap") {
		cfg.Layout.VerticalGap = f.vgap
	}
	if flags.Changed("hmargin") {
		cfg.Layout.MinHorizontalMargin = f.hmargin
	}
	if flags.Changed("vmargin") {
		cfg.Layout.MinVerticalMargin = f.vmargin
	}

	if err := cfg.Validate(); err != nil {
		return model.AppConfig{}, err
	}
	return cfg, nil
}

// pageAndCard looks up the configured page and card sizes.
func pageAndCard(cfg model.AppConfig) (model.PageSize, model.CardSize, error) {
	page, err := model.FindPage(cfg.PageSize)
	if err != nil {
		return model.PageSize{}, model.CardSize{}, err
	}
	card, err := model.FindCard(cfg.CardSize)
	if err != nil {
		return model.PageSize{}, model.CardSize{}, err
	}
	return page, card, nil
}
