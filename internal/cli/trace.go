package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/holepunch/pkg/pipeline"
	"github.com/matzehuels/holepunch/pkg/render/trace"
)

type traceOpts struct {
	punches   []string
	format    string
	output    string
	detailed  bool
	movesOnly bool
	noCache   bool
	refresh   bool
}

// traceCommand draws the fold history as a Graphviz flow graph.
func (c *CLI) traceCommand() *cobra.Command {
	opts := traceOpts{format: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "trace <fold>...",
		Short: "Draw where every cell travels during the folds",
		Long: `Draw the fold history as a flow graph: one row of nodes per step, one node
per occupied position and edges that follow each cell from step to step.
Stacks carrying a punched cell are highlighted.

The graph is written as Graphviz DOT or laid out to SVG.`,
		Args: cobra.RangeArgs(1, pipeline.MaxFolds),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTrace(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.punches, "punch", "p", nil, "punch point x,y on the folded stack (repeatable)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, dot")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "list cell origins in each node")
	cmd.Flags().BoolVar(&opts.movesOnly, "moves-only", false, "omit edges of cells that stay put")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runTrace(ctx context.Context, folds []string, opts traceOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	p, err := runner.Simulate(ctx, pipeline.Options{Folds: folds, Punches: opts.punches, Logger: c.Logger})
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Laying out fold graph...")
	if opts.format == pipeline.FormatSVG && opts.output != "" {
		spinner.Start()
	}
	data, hit, err := runner.Trace(ctx, p, opts.format, trace.Options{
		Detailed:  opts.detailed,
		MovesOnly: opts.movesOnly,
	}, opts.refresh)
	if err != nil {
		spinner.StopWithError("Trace failed")
		return err
	}
	spinner.Stop()

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}

	if opts.output != "" {
		printSuccess("Traced %d folds", p.FoldCount())
		printStats(p.FoldCount(), len(p.Holes()), hit)
		printFile(opts.output)
	}
	return nil
}
