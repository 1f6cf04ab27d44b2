package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/piwi3910/ProxySheet/internal/export"
	"github.com/piwi3910/ProxySheet/internal/importer"
	"github.com/piwi3910/ProxySheet/internal/model"
)

type generateOpts struct {
	layout      layoutFlags
	deck        string
	output      string
	title       string
	index       string
	cutGuide    string
	cutMarks    bool
	convert     bool
	concurrency int
	noProgress  bool
}

func newGenerateCmd(g *globals) *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [images or directories...]",
		Short: "Lay out card images and write a PDF",
		Long: `Generate scales every input image to the same card size, fills a landscape
page grid row by row and writes the PDF. Images that are not JPEG or PNG are
skipped with a warning unless --convert is given.`,
		Example: `  proxysheet generate cards/ -o deck.pdf
  proxysheet generate --deck deck.csv --cols 3 --rows 3 --cut-marks
  proxysheet generate cards/ --preset nine-up --index index.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, g, &opts, args)
		},
	}

	opts.layout.register(cmd.Flags(), true)
	cmd.Flags().StringVar(&opts.deck, "deck", "", "deck list (CSV or Excel) of file, copies rows")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PDF path (default from config)")
	cmd.Flags().StringVar(&opts.title, "title", "", "PDF document title")
	cmd.Flags().StringVar(&opts.index, "index", "", "also write an index sheet PDF to this path")
	cmd.Flags().StringVar(&opts.cutGuide, "cut-guide", "", "also write a DXF cut guide to this path")
	cmd.Flags().BoolVar(&opts.cutMarks, "cut-marks", false, "draw trim guides in the margins")
	cmd.Flags().BoolVar(&opts.convert, "convert", false, "convert WebP/BMP/TIFF/GIF images to PNG instead of skipping them")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "parallel image reads (0 = number of CPUs)")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "hide the progress bar")

	return cmd
}

func runGenerate(cmd *cobra.Command, g *globals, opts *generateOpts, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

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
	applyGenerateFlags(cmd, opts, &cfg)

	page, card, err := pageAndCard(cfg)
	if err != nil {
		return err
	}

	paths, err := collectPaths(logger, opts.deck, args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no input images given")
	}

	logger.Debug("Layout", "page", page.Name, "card", card.Name,
		"grid", fmt.Sprintf("%dx%d", cfg.Layout.NumCols, cfg.Layout.NumRows),
		"hgap", cfg.Layout.HorizontalGap, "vgap", cfg.Layout.VerticalGap)

	prog := newProgress(logger)
	bar := newLoadBar(cmd, len(uniquePaths(paths)), opts.noProgress)
	loaded, err := importer.LoadImages(ctx, paths, importer.LoadOptions{
		Concurrency: cfg.Concurrency,
		Convert:     cfg.ConvertImages,
		Progress:    func() { _ = bar.Add(1) },
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}
	for _, w := range loaded.Warnings {
		logger.Warn(w)
	}
	if len(loaded.Images) == 0 {
		return fmt.Errorf("none of the %d inputs can be placed", len(paths))
	}
	prog.done(fmt.Sprintf("Loaded %d images", len(loaded.Images)))

	prog = newProgress(logger)
	result, err := export.Generate(loaded.Images, page, card, cfg.Layout, export.PDFOptions{
		CutMarks: cfg.CutMarks,
		Title:    opts.title,
	})
	if err != nil {
		return err
	}

	if err := writeFile(cfg.OutputPath, result.PDF); err != nil {
		return err
	}
	w, h := model.PtToMM(result.Geometry.CardWidth), model.PtToMM(result.Geometry.CardHeight)
	prog.done(fmt.Sprintf("Wrote %d cards on %d pages to %s (card %.1f x %.1f mm)",
		len(result.Placements), result.Pages(), cfg.OutputPath, w, h))

	out := cmd.OutOrStdout()
	printSuccess(out, "Generated %d cards on %d pages", len(result.Placements), result.Pages())
	printFile(out, cfg.OutputPath)

	if opts.index != "" {
		if err := writeIndex(opts.index, result.Placements); err != nil {
			return err
		}
		printFile(out, opts.index)
	}
	if opts.cutGuide != "" {
		if err := export.ExportCutGuide(opts.cutGuide, result.Geometry, result.Placements); err != nil {
			return err
		}
		printFile(out, opts.cutGuide)
	}
	return nil
}

// applyGenerateFlags overrides the output settings given on the command line.
func applyGenerateFlags(cmd *cobra.Command, opts *generateOpts, cfg *model.AppConfig) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputPath = opts.output
	}
	if flags.Changed("cut-marks") {
		cfg.CutMarks = opts.cutMarks
	}
	if flags.Changed("convert") {
		cfg.ConvertImages = opts.convert
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = opts.concurrency
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = model.DefaultAppConfig().OutputPath
	}
}

// collectPaths merges deck list entries and positional arguments, deck first.
func collectPaths(logger *log.Logger, deck string, args []string) ([]string, error) {
	var paths []string
	if deck != "" {
		result := importer.ImportDeck(deck)
		for _, w := range result.Warnings {
			logger.Debug(w, "deck", deck)
		}
		if len(result.Errors) > 0 {
			return nil, fmt.Errorf("deck %s: %s", deck, strings.Join(result.Errors, "; "))
		}
		paths = append(paths, result.Paths()...)
		logger.Info("Read deck list", "path", deck, "cards", len(paths))
	}

	expanded, err := importer.ExpandPaths(args)
	if err != nil {
		return nil, err
	}
	return append(paths, expanded...), nil
}

func uniquePaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	var out []string
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

func newLoadBar(cmd *cobra.Command, count int, hidden bool) *progressbar.ProgressBar {
	if hidden {
		return progressbar.DefaultSilent(int64(count))
	}
	return progressbar.NewOptions(count,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("Loading images"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionFullWidth(),
	)
}

func writeIndex(path string, placements []model.Placement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", path, err)
	}
	if err := export.ExportIndex(f, placements); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
