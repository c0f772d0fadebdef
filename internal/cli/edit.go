package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
)

// editCommand creates the interactive edit command.
func (c *CLI) editCommand() *cobra.Command {
	var opts resolveOpts

	cmd := &cobra.Command{
		Use:   "edit <board-file>",
		Short: "Move widgets interactively",
		Long: `Edit opens a terminal editor for a board file. Select a widget with tab,
move it with the arrow keys (or hjkl) and watch for overlaps, which are
highlighted as you move. Enter resolves the board, s writes it back to the
file and q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			b, err := board.ReadFile(path)
			if err != nil {
				return err
			}
			pipelineOpts, err := opts.options()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			resolve := func(b *board.Board) (*pipeline.Result, error) {
				return runner.Resolve(ctx, b, pipelineOpts)
			}
			save := func(b *board.Board) error {
				return writeBoard(b, path, "")
			}

			final, err := tea.NewProgram(NewEditModel(b, resolve, save), tea.WithContext(ctx)).Run()
			if err != nil {
				if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
					return ctx.Err()
				}
				return err
			}

			m, ok := final.(EditModel)
			if !ok {
				return nil
			}
			switch {
			case m.Dirty:
				printWarning("Unsaved changes discarded")
			case m.Saved:
				printSuccess("Saved %s", boardLabel(m.Board))
				printFile(path)
			}
			return nil
		},
	}

	opts.register(cmd)

	return cmd
}
