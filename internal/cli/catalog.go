package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/holepunch/pkg/catalog"
	"github.com/matzehuels/holepunch/pkg/paper"
	"github.com/matzehuels/holepunch/pkg/pipeline"
)

// catalogCommand lists the fold menu, optionally marking which folds are
// legal after a given sequence.
func (c *CLI) catalogCommand() *cobra.Command {
	var asJSON, validOnly bool

	cmd := &cobra.Command{
		Use:   "catalog [fold]...",
		Short: "List the fold catalog",
		Long: `List the folds offered by the catalog. With a fold sequence as arguments the
sheet is folded first and every entry is marked as legal or not.`,
		Args: cobra.MaximumNArgs(pipeline.MaxFolds),
		RunE: func(cmd *cobra.Command, args []string) error {
			menu, err := c.catalog()
			if err != nil {
				return err
			}

			var p *paper.Paper
			if len(args) > 0 {
				runner, err := c.newRunner(true)
				if err != nil {
					return err
				}
				if p, err = runner.Simulate(cmd.Context(), pipeline.Options{Folds: args, Logger: c.Logger}); err != nil {
					return err
				}
			}

			entries := menu
			if validOnly {
				if p == nil {
					p = paper.New()
				}
				entries = menu.Valid(p)
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			fmt.Println(catalogTable(entries, p))
			printDetail("%d of %d folds", len(entries), len(menu))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	cmd.Flags().BoolVar(&validOnly, "valid", false, "only list folds that are legal next")

	return cmd
}

// catalogTable renders entries as a table. With a non-nil sheet a column
// marks the folds that are legal next.
func catalogTable(entries catalog.Catalog, p *paper.Paper) string {
	headers := []string{"#", "Fold", "Kind", "Side"}
	if p != nil {
		headers = append(headers, "Legal")
	}

	legal := make([]bool, len(entries))
	rows := make([][]string, len(entries))
	for i, e := range entries {
		row := []string{strconv.Itoa(i + 1), e.Name, e.Fold.Kind.String(), e.Fold.Side.String()}
		if p != nil {
			legal[i] = p.IsValidFold(e.Fold)
			mark := iconError
			if legal[i] {
				mark = iconSuccess
			}
			row = append(row, mark)
		}
		rows[i] = row
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return StyleDim
			case p == nil:
				return StyleValue
			case legal[row]:
				return StyleSuccess
			}
			return StyleDim
		}).
		Render()
}
