package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matzehuels/blobsmith/pkg/blob"
)

// stylesCommand creates the styles command.
func (c *CLI) stylesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the blob style presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), stylesTable())
			return err
		},
	}
}

// stylesTable renders the preset table.
func stylesTable() string {
	title := cases.Title(language.English)
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	var rows [][]string
	for _, s := range blob.Styles() {
		p := blob.PresetFor(s)
		name := title.String(string(s))
		if s == blob.DefaultStyle {
			name += " *"
		}
		rows = append(rows, []string{
			name,
			strconv.Itoa(p.Points),
			fmtParam(p.Var1),
			fmtParam(p.Var2),
			fmtParam(p.Smooth),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Style", "Points", "Var1", "Var2", "Smooth").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return cellStyle.Foreground(colorTeal)
			}
			return cellStyle.Align(lipgloss.Right)
		})

	return t.Render() + "\n" + StyleDim.Render("* fallback for unknown style names")
}

func fmtParam(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
