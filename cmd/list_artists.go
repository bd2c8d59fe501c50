package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tattoo-studio/pkg/models"
)

// newListArtistsCmd creates a new command for listing artists
func newListArtistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-artists",
		Short: "List all artists",
		Long:  `List the published artists with their role and specialty.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newContentService()
			if err != nil {
				return err
			}
			listArtists(cmd.OutOrStdout(), svc.GetArtists(cmd.Context()))
			return nil
		},
	}
}

// listArtists displays every artist
func listArtists(w io.Writer, artists []models.Artist) {
	fmt.Fprintln(w, "Artists:")
	fmt.Fprintln(w, "========")

	for _, artist := range artists {
		fmt.Fprintf(w, "%s\n", artist.Name)
		if artist.Role != "" {
			fmt.Fprintf(w, "  Role: %s\n", artist.Role)
		}
		if artist.Specialty != "" {
			fmt.Fprintf(w, "  Specialty: %s\n", artist.Specialty)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total: %d artists\n", len(artists))
}
