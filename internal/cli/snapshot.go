package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorlayout/pkg/store"
)

// snapshotCommand creates the snapshot management command.
func (c *CLI) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "snapshot",
		Aliases: []string{"snap"},
		Short:   "List, show and delete stored snapshots",
	}

	cmd.AddCommand(c.snapshotListCommand())
	cmd.AddCommand(c.snapshotShowCommand())
	cmd.AddCommand(c.snapshotDeleteCommand())

	return cmd
}

func (c *CLI) snapshotListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			sums, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(sums) == 0 {
				printInfo("No snapshots stored")
				return nil
			}
			fmt.Fprintln(c.Out, summaryTable(sums))
			return nil
		},
	}
}

func (c *CLI) snapshotShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Print a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			snap, err := st.Get(ctx, args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("snapshot %s not found", args[0])
			}
			if err != nil {
				return err
			}
			data, err := encodeSnapshot(snap, format, false)
			if err != nil {
				return err
			}
			_, err = c.Out.Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", outputTable, "output format: table, json, yaml")
	return cmd
}

func (c *CLI) snapshotDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id...]",
		Aliases: []string{"rm"},
		Short:   "Delete stored snapshots",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			for _, id := range args {
				if err := st.Delete(ctx, id); err != nil {
					if errors.Is(err, store.ErrNotFound) {
						printWarning("snapshot %s not found", id)
						continue
					}
					return err
				}
				printSuccess("Deleted %s", id)
			}
			return nil
		},
	}
}

func summaryTable(sums []store.Summary) string {
	rows := make([][]string, 0, len(sums))
	for _, s := range sums {
		hash := s.DeclarationHash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		rows = append(rows, []string{
			s.ID,
			s.CreatedAt.Local().Format(time.DateTime),
			s.Policy,
			fmt.Sprint(s.Frames),
			hash,
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Created", "Policy", "Frames", "Declarations").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 0 {
				return StyleValue
			}
			return StyleDim
		}).
		Render()
}
