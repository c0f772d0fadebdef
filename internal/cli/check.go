package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
)

// checkCommand creates the check command, the command-line form of a drag
// preview: is this rectangle free if the listed widgets are lifted off?
func (c *CLI) checkCommand() *cobra.Command {
	var (
		rectStr string
		ignore  []string
	)

	cmd := &cobra.Command{
		Use:   "check <board-file> --rect x,y,w,h",
		Short: "Report whether a rectangle is free on a board",
		Long: `Check tests a rectangle against the widgets of a board as they stand,
without resolving. It prints "free" or "occupied". Rectangles that leave the
grid are occupied.`,
		Example: `  tilegrid check home.json --rect 0,0,3,2
  tilegrid check home.json --rect 4,1,3,3 --ignore clock`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rect, err := parseRect(rectStr)
			if err != nil {
				return fmt.Errorf("--rect: %w", err)
			}
			b, err := board.ReadFile(args[0])
			if err != nil {
				return err
			}
			for _, id := range ignore {
				if b.Find(id) < 0 {
					c.Logger.Warn("ignored widget not on board", "id", id, "suggest", b.Suggest(id))
				}
			}
			return runCheck(cmd.OutOrStdout(), b, rect, ignore)
		},
	}

	cmd.Flags().StringVar(&rectStr, "rect", "", "rectangle to test (x,y,w,h)")
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "widget IDs to leave out of the check")
	_ = cmd.MarkFlagRequired("rect")

	return cmd
}

func runCheck(w io.Writer, b *board.Board, rect geom.Rect2, ignore []string) error {
	occupied, err := pipeline.Occupied(b, rect, ignore...)
	if err != nil {
		return err
	}
	if !occupied {
		fmt.Fprintln(w, "free")
		return nil
	}
	if !rect.InBounds(b.Grid) {
		fmt.Fprintf(w, "occupied (outside %dx%d grid)\n", b.Grid.X, b.Grid.Y)
		return nil
	}
	fmt.Fprintf(w, "occupied by %s\n", strings.Join(blockers(b, rect, ignore), ", "))
	return nil
}

// blockers lists the IDs of positioned widgets overlapping rect.
func blockers(b *board.Board, rect geom.Rect2, ignore []string) []string {
	var ids []string
	for _, w := range b.Widgets {
		if slices.Contains(ignore, w.ID) {
			continue
		}
		if wr, ok := w.Rect(); ok && wr.Overlaps(rect) {
			ids = append(ids, w.ID)
		}
	}
	return ids
}
