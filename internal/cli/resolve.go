package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
)

// resolveOpts holds flags shared by commands that resolve a board.
type resolveOpts struct {
	grid    string
	noCache bool
	refresh bool
	partial bool
}

func (o *resolveOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.grid, "grid", "", "override the board grid size (WxH)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached layouts")
	cmd.Flags().BoolVar(&o.partial, "partial", false, "keep the layout when some widgets do not fit")
}

func (o resolveOpts) options() (pipeline.Options, error) {
	grid, err := parseSize(o.grid)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("--grid: %w", err)
	}
	return pipeline.Options{
		Grid:         grid,
		Refresh:      o.refresh,
		AllowPartial: o.partial,
	}, nil
}

// resolve runs b through a freshly configured runner.
func (c *CLI) resolve(ctx context.Context, b *board.Board, o resolveOpts) (*pipeline.Result, error) {
	opts, err := o.options()
	if err != nil {
		return nil, err
	}
	runner, err := c.newRunner(ctx, o.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Resolve(ctx, b, opts)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Resolved %d widgets", res.Stats.Widgets))
	return res, nil
}

// =============================================================================
// resolve
// =============================================================================

type resolveFlags struct {
	resolveOpts
	output  string
	format  string
	inPlace bool
	preview bool
}

func (c *CLI) resolveCommand() *cobra.Command {
	var f resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve <board-file>",
		Short: "Resolve widget placement for a board file",
		Long: `Resolve reads a board (.json, .toml or .grid), places every widget and
prints the resolved board. Widgets keep their position when it is free and
in bounds; everything else goes to the first free spot.`,
		Example: `  tilegrid resolve home.grid
  tilegrid resolve home.json --preview
  tilegrid resolve home.toml -o resolved.json
  tilegrid resolve home.json --in-place --partial`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd.Context(), cmd.OutOrStdout(), args[0], f)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the resolved board to a file")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: json, toml or grid (default: input format)")
	cmd.Flags().BoolVarP(&f.inPlace, "in-place", "i", false, "overwrite the input file")
	cmd.Flags().BoolVarP(&f.preview, "preview", "p", false, "print a grid preview and placement table")
	cmd.MarkFlagsMutuallyExclusive("output", "in-place")

	return cmd
}

func (c *CLI) runResolve(ctx context.Context, w io.Writer, path string, f resolveFlags) error {
	b, err := board.ReadFile(path)
	if err != nil {
		return err
	}
	res, err := c.resolve(ctx, b, f.resolveOpts)
	if err != nil {
		return err
	}

	dest := f.output
	if f.inPlace {
		dest = path
	}

	switch {
	case dest != "":
		if err := writeBoard(res.Board, dest, f.format); err != nil {
			return err
		}
		printSuccess("Resolved %s", boardLabel(res.Board))
		printStats(res.Stats, res.CacheInfo.LayoutHit)
		printFile(dest)
	case !f.preview:
		format, err := outputFormat(f.format, path)
		if err != nil {
			return err
		}
		if err := board.Write(res.Board, w, format); err != nil {
			return err
		}
	}

	if f.preview {
		fmt.Fprintln(w, renderPreview(res.Board))
		fmt.Fprintln(w, renderSummary(res.Board, res.Placement))
	}
	if n := len(res.Placement.Unplaced); n > 0 {
		c.Logger.Warn("widgets did not fit", "count", n, "ids", strings.Join(res.Placement.Unplaced, ", "))
	}
	return nil
}

// boardLabel names a board for status output.
func boardLabel(b *board.Board) string {
	if b.Name != "" {
		return StyleHighlight.Render(b.Name)
	}
	return StyleHighlight.Render(b.ID)
}
