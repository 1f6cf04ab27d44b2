package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ProxySheet/internal/engine"
	"github.com/piwi3910/ProxySheet/internal/model"
)

type planOpts struct {
	layout  layoutFlags
	count   int
	deck    string
	compare bool
	json    bool
}

func newPlanCmd(g *globals) *cobra.Command {
	var opts planOpts

	cmd := &cobra.Command{
		Use:   "plan [images or directories...]",
		Short: "Show card size, margins and page count without rendering",
		Long: `Plan computes the layout geometry for the current settings and reports the
card size, actual margins and how many pages the inputs would fill. The
image count comes from --count, a deck list or the given paths. Files are
not read.`,
		Example: `  proxysheet plan --count 60
  proxysheet plan cards/ --cols 3 --rows 3 --compare`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, g, &opts, args)
		},
	}

	opts.layout.register(cmd.Flags(), true)
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "number of images to plan for")
	cmd.Flags().StringVar(&opts.deck, "deck", "", "deck list (CSV or Excel) to count cards from")
	cmd.Flags().BoolVar(&opts.compare, "compare", false, "compare alternative grids")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the plan as JSON")

	return cmd
}

func runPlan(cmd *cobra.Command, g *globals, opts *planOpts, args []string) error {
	logger := loggerFromContext(cmd.Context())

	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	presets, err := g.loadPresets()
	if err != nil {
		return err
	}
	cfg, err = opts.layout.resolve(cmd, cfg, presets)
	if err != nil {
		return err
	}
	page, card, err := pageAndCard(cfg)
	if err != nil {
		return err
	}

	n := opts.count
	if opts.deck != "" || len(args) > 0 {
		paths, err := collectPaths(logger, opts.deck, args)
		if err != nil {
			return err
		}
		n += len(paths)
	}
	if n < 0 {
		return errors.New("count must not be negative")
	}

	layout := engine.New(page, card)
	out := cmd.OutOrStdout()

	if opts.compare {
		results := layout.CompareScenarios(engine.BuildDefaultScenarios(cfg.Layout), n)
		if opts.json {
			return writeJSON(out, comparisonJSON(results))
		}
		printComparison(out, results)
		return nil
	}

	plan, err := layout.Plan(cfg.Layout, n)
	if err != nil {
		return err
	}
	if opts.json {
		return writeJSON(out, plan)
	}
	printPlan(out, layout, plan)
	return nil
}

func printPlan(w io.Writer, layout *engine.Layout, plan model.Plan) {
	g := plan.Geometry
	cw, ch := plan.CardSizeMM()

	printTitle(w, fmt.Sprintf("%s landscape, %s card, %dx%d grid", layout.Page.Name, layout.Card.Name, g.NumCols, g.NumRows))
	printKeyValue(w, "Card size", fmt.Sprintf("%.2f x %.2f mm (scale %.3f)", cw, ch, g.Scale))
	printKeyValue(w, "Margins", fmt.Sprintf("%.2f mm horizontal, %.2f mm vertical", model.PtToMM(g.HorizontalMargin), model.PtToMM(g.VerticalMargin)))
	printKeyValue(w, "Limited by", g.Bottleneck.String()+" axis")
	printKeyValue(w, "Images", fmt.Sprintf("%d", plan.Images))
	printKeyValue(w, "Pages", fmt.Sprintf("%d (%d per page, %d on last)", plan.Pages, plan.PerPage, plan.LastPageCount))
	printKeyValue(w, "Page coverage", fmt.Sprintf("%.0f%%", plan.Coverage()))
	if plan.Pages > 0 {
		printKeyValue(w, "Empty slots", fmt.Sprintf("%d", plan.EmptySlots()))
	}
}

func printComparison(w io.Writer, results []engine.ComparisonResult) {
	printTitle(w, "Layout comparison")
	for _, r := range results {
		if r.Err != nil {
			printWarning(w, "%s: %v", r.Scenario.Name, r.Err)
			continue
		}
		cw, ch := r.Plan.CardSizeMM()
		printKeyValue(w, r.Scenario.Name, fmt.Sprintf("%d pages, card %.1f x %.1f mm", r.Plan.Pages, cw, ch))
		printDetail(w, "%d per page, %d empty slots", r.Plan.PerPage, r.Plan.EmptySlots())
	}
}

type comparisonEntry struct {
	Name  string      `json:"name"`
	Plan  *model.Plan `json:"plan,omitempty"`
	Error string      `json:"error,omitempty"`
}

func comparisonJSON(results []engine.ComparisonResult) []comparisonEntry {
	entries := make([]comparisonEntry, 0, len(results))
	for _, r := range results {
		e := comparisonEntry{Name: r.Scenario.Name}
		if r.Err != nil {
			e.Error = r.Err.Error()
		} else {
			plan := r.Plan
			e.Plan = &plan
		}
		entries = append(entries, e)
	}
	return entries
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
