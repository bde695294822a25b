package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepwise/pkg/gallery"
)

// algorithmsCommand lists the gallery.
func (c *CLI) algorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "algorithms",
		Aliases: []string{"ls"},
		Short:   "List the available algorithms",
		RunE: func(cmd *cobra.Command, args []string) error {
			printAlgorithms(cmd.OutOrStdout(), gallery.Algorithms())
			return nil
		},
	}
}

func printAlgorithms(w io.Writer, infos []gallery.Info) {
	rows := make([][]string, len(infos))
	for i, info := range infos {
		rows[i] = []string{info.Name, info.Title, info.Input}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Algorithm", "Input").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorCyan)
			case col == 2:
				return base.Foreground(colorGray)
			}
			return base.Foreground(colorWhite)
		})

	fmt.Fprintln(w, t)
}
