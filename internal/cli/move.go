package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/placement"
)

// moveCommand creates the move command.
func (c *CLI) moveCommand() *cobra.Command {
	var (
		opts   resolveOpts
		output string
	)

	cmd := &cobra.Command{
		Use:   "move <board-file> <widget-id> <x,y>",
		Short: "Move a widget and re-resolve the board",
		Long: `Move requests a new position for one widget, resolves the board and
writes it back. The request is honoured when the target is free; otherwise the
widget goes to the first free spot and the other widgets keep their places
where they can.`,
		Example: `  tilegrid move home.json clock 4,0
  tilegrid move home.grid feed 0,6 -o moved.grid`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := parsePoint(args[2])
			if err != nil {
				return fmt.Errorf("position: %w", err)
			}
			dest := output
			if dest == "" {
				dest = args[0]
			}

			b, err := board.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := b.Move(args[1], to); err != nil {
				return err
			}
			res, err := c.resolve(cmd.Context(), b, opts)
			if err != nil {
				return err
			}
			if err := writeBoard(res.Board, dest, ""); err != nil {
				return err
			}

			p, _ := res.Placement.Find(args[1])
			switch p.Status {
			case placement.StatusConfirmed:
				printSuccess("Moved %s to %d,%d", StyleHighlight.Render(args[1]), to.X, to.Y)
			case placement.StatusUnplaced:
				printWarning("%s did not fit anywhere", args[1])
			default:
				printWarning("%d,%d is taken, %s placed at %d,%d", to.X, to.Y, args[1], p.Position.X, p.Position.Y)
			}
			printStats(res.Stats, res.CacheInfo.LayoutHit)
			printFile(dest)
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a different file instead of the input")

	return cmd
}
