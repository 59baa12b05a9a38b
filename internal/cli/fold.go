package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/holepunch/pkg/pipeline"
	"github.com/matzehuels/holepunch/pkg/render"
)

// foldOpts holds the command-line flags for the fold command.
type foldOpts struct {
	punches     []string
	formats     []string
	steps       []int
	output      string
	cellSize    float64
	scale       float64
	hidePunches bool
	catalogOnly bool
	noCache     bool
	refresh     bool
	quiet       bool
}

// foldCommand creates the fold command: simulate a sequence, punch and
// write the rendered history.
func (c *CLI) foldCommand() *cobra.Command {
	var formatsStr string
	opts := foldOpts{}

	cmd := &cobra.Command{
		Use:   "fold <fold>...",
		Short: "Fold the sheet, punch it and render each step",
		Long: `Fold the sheet with up to four folds in fold notation, punch the stack and
write the rendered history.

Fold notation is kind:side:line, e.g. "v:left:1.5" folds the right half
onto the left along x = 1.5 and "d:right:3,0:0,3" folds along the
anti-diagonal. Punch points are "x,y" cells of the folded stack.`,
		Example: `  holepunch fold v:left:1.5 h:up:1.5 --punch 0,0
  holepunch fold v:left:1.5 d:left:1,0:0,1 -p 0,0 -f svg,png --step 2 -o corner`,
		Args: cobra.RangeArgs(1, pipeline.MaxFolds),
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatsStr != "" {
				opts.formats = parseList(formatsStr)
			}
			return c.runFold(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.punches, "punch", "p", nil, "punch point x,y on the folded stack (repeatable)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg, png, pdf, json, txt (comma-separated; default from config)")
	cmd.Flags().IntSliceVar(&opts.steps, "step", nil, "history step(s) to render (default: all)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "holepunch", "output base path")
	cmd.Flags().Float64Var(&opts.cellSize, "cell-size", 0, "cell edge length in pixels (default from config)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG pixel density (default from config)")
	cmd.Flags().BoolVar(&opts.hidePunches, "hide-punches", false, "do not mark punch holes")
	cmd.Flags().BoolVar(&opts.catalogOnly, "catalog-only", false, "reject folds that are not in the catalog")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the unfolded sheet")

	return cmd
}

func (c *CLI) runFold(ctx context.Context, folds []string, opts foldOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	cfg := c.Config.Render
	if len(opts.formats) == 0 {
		opts.formats = cfg.Formats
	}
	if opts.cellSize == 0 {
		opts.cellSize = cfg.CellSize
	}
	if opts.scale == 0 {
		opts.scale = cfg.Scale
	}
	popts := pipeline.Options{
		Folds:       folds,
		Punches:     opts.punches,
		Steps:       opts.steps,
		Formats:     opts.formats,
		CellSize:    opts.cellSize,
		Scale:       opts.scale,
		HidePunches: opts.hidePunches || cfg.HidePunches,
		Refresh:     opts.refresh,
		Logger:      c.Logger,
	}
	if opts.catalogOnly {
		if popts.Catalog, err = c.catalog(); err != nil {
			return err
		}
	}

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}

	printSuccess("Folded %d times, punched %d holes", result.Stats.Folds, result.Stats.Punched)
	printStats(result.Stats.Folds, len(result.Holes), result.CacheInfo.RenderHit)

	for _, name := range slices.Sorted(maps.Keys(result.Artifacts)) {
		step, format := splitArtifactName(name)
		path := outputPath(opts.output, step, format, len(popts.Steps) > 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		if err := os.WriteFile(path, result.Artifacts[name], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	if !opts.quiet {
		printNewline()
		sheet, err := render.RenderText(result.Paper, 0)
		if err != nil {
			return err
		}
		fmt.Print(sheet)
		if len(result.Holes) > 0 {
			printDetail("holes: %s", formatPoints(result.Holes))
		}
	}
	return nil
}

// outputPath names one artifact: base.format for a single step, or
// base_stepN.format when several steps are written.
func outputPath(base string, step int, format string, multiStep bool) string {
	if ext := filepath.Ext(base); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	if multiStep {
		return base + "_step" + strconv.Itoa(step) + "." + format
	}
	return base + "." + format
}

func splitArtifactName(name string) (int, string) {
	stepStr, format, _ := strings.Cut(name, "/")
	step, _ := strconv.Atoi(stepStr)
	return step, format
}
