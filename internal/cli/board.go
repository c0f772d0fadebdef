package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/board"
	errs "github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/store"
)

// boardCommand creates the board management command.
func (c *CLI) boardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards in the configured store",
		Long: `Manage boards saved in the store selected by store.backend
(file, mongo or memory). Boards are resolved before they are saved.`,
	}

	cmd.AddCommand(c.boardListCommand())
	cmd.AddCommand(c.boardGetCommand())
	cmd.AddCommand(c.boardPutCommand())
	cmd.AddCommand(c.boardDeleteCommand())

	return cmd
}

func (c *CLI) boardListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored boards",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			summaries, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				printInfo("No boards stored")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderBoardList(summaries))
			return nil
		},
	}
}

func renderBoardList(summaries []store.Summary) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.ID,
			s.Name,
			fmt.Sprintf("%dx%d", s.Grid.X, s.Grid.Y),
			fmt.Sprintf("%d", s.Widgets),
			s.UpdatedAt.Local().Format(time.DateTime),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Grid", "Widgets", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 4 {
				return StyleDim.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

func (c *CLI) boardGetCommand() *cobra.Command {
	var (
		format  string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Print a stored board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := board.ParseFormat(format)
			if err != nil {
				return err
			}
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			b, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if preview {
				fmt.Fprintln(cmd.OutOrStdout(), renderPreview(b))
				return nil
			}
			return board.Write(b, cmd.OutOrStdout(), f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(board.FormatJSON), "output format: json, toml or grid")
	cmd.Flags().BoolVarP(&preview, "preview", "p", false, "print a grid preview instead of the board")

	return cmd
}

func (c *CLI) boardPutCommand() *cobra.Command {
	var (
		opts resolveOpts
		id   string
	)

	cmd := &cobra.Command{
		Use:   "put <board-file>",
		Short: "Resolve a board file and save it to the store",
		Example: `  tilegrid board put home.grid --id home
  tilegrid board put dashboard.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := board.ReadFile(args[0])
			if err != nil {
				return err
			}
			if id != "" {
				if err := errs.ValidateBoardID(id); err != nil {
					return err
				}
				b.ID = id
			}

			res, err := c.resolve(cmd.Context(), b, opts)
			if err != nil {
				return err
			}

			st, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Put(cmd.Context(), res.Board); err != nil {
				return err
			}
			printSuccess("Saved %s", boardLabel(res.Board))
			printStats(res.Stats, res.CacheInfo.LayoutHit)
			printKeyValue("ID", res.Board.ID)
			printNextStep("View it", "tilegrid board get "+res.Board.ID+" --preview")
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "store under this ID instead of the board's own")

	return cmd
}

func (c *CLI) boardDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a stored board",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", StyleHighlight.Render(args[0]))
			return nil
		},
	}
}
