package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"tattoo-studio/pkg/models"
)

// newShowPageCmd creates a new command for showing the media of one page
func newShowPageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-page [slug]",
		Short: "Show the media attached to a page",
		Long: `Show the media fields attached to the page identified by its slug.
Use "home" for the homepage singleton.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newContentService()
			if err != nil {
				return err
			}

			slug := args[0]
			if slug == "home" {
				home := svc.GetHomepageData(cmd.Context())
				if home == nil {
					return errors.New("homepage content not found")
				}
				showHomepage(cmd.OutOrStdout(), home)
				return nil
			}

			page := svc.GetPageContent(cmd.Context(), slug)
			if page == nil {
				return fmt.Errorf("page not found: %s", slug)
			}
			showPage(cmd.OutOrStdout(), page)
			return nil
		},
	}
}

// showPage displays every media slot of a page
func showPage(w io.Writer, page *models.PageContent) {
	slots := make([]string, 0, len(page.Media))
	for slot := range page.Media {
		slots = append(slots, slot)
	}
	sort.Strings(slots)

	fmt.Fprintf(w, "Page: %s\n", page.Slug)
	fmt.Fprintf(w, "Slots: %d\n", len(slots))
	fmt.Fprintln(w, "================")

	for _, slot := range slots {
		fmt.Fprintf(w, "%s:\n", slot)
		for i, m := range page.Media[slot] {
			fmt.Fprintf(w, "  %d. %s\n", i+1, m.URL)
		}
		fmt.Fprintln(w)
	}
}

func showHomepage(w io.Writer, home *models.Homepage) {
	fmt.Fprintln(w, "Page: home")
	fmt.Fprintln(w, "================")
	for _, field := range []struct {
		name  string
		media *models.Media
	}{
		{"heroVideo", home.HeroVideo},
		{"welcomeImage", home.WelcomeImage},
		{"bookingVideo", home.BookingVideo},
	} {
		if field.media == nil {
			fmt.Fprintf(w, "%s: (none)\n", field.name)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", field.name, field.media.URL)
	}
}
