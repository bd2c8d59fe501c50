package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tattoo-studio/pkg/models"
)

// newListDesignsCmd creates a new command for listing designs
func newListDesignsCmd() *cobra.Command {
	var designType string

	cmd := &cobra.Command{
		Use:   "list-designs",
		Short: "List all tattoo designs",
		Long:  `List the published tattoo designs grouped by type, newest first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newContentService()
			if err != nil {
				return err
			}
			listDesigns(cmd.OutOrStdout(), svc.GetTattooDesigns(cmd.Context(), designType))
			return nil
		},
	}
	cmd.Flags().StringVarP(&designType, "type", "t", "", "Only list designs of this type (BlackWhite or Color)")
	return cmd
}

// listDesigns displays designs grouped by type in first-seen order
func listDesigns(w io.Writer, designs []models.Design) {
	var order []string
	groups := make(map[string][]models.Design)
	for _, d := range designs {
		if _, ok := groups[d.Type]; !ok {
			order = append(order, d.Type)
		}
		groups[d.Type] = append(groups[d.Type], d)
	}

	fmt.Fprintln(w, "Tattoo Designs:")
	fmt.Fprintln(w, "===============")

	for _, t := range order {
		group := groups[t]
		fmt.Fprintf(w, "Type: %s\n", group[0].TypeLabel())

		for _, d := range group {
			fmt.Fprintf(w, "  - %s\n", d.Name)
			if len(d.Styles) > 0 {
				fmt.Fprintf(w, "    Styles: %s\n", strings.Join(d.Styles, ", "))
			}
			fmt.Fprintf(w, "    Image: %s\n", d.Image)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total: %d designs across %d types\n", len(designs), len(order))
}
