package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tattoo-studio/pkg/models"
	"tattoo-studio/pkg/services"
)

// exportedPages are the route slugs with page content.
var exportedPages = []string{"gallery", "artists", "blog", "classes"}

// siteExport is every collection the site renders.
type siteExport struct {
	Homepage *models.Homepage               `json:"homepage"`
	Artists  []models.Artist                `json:"artists"`
	Designs  []models.Design                `json:"designs"`
	Featured []models.Design                `json:"featured"`
	Courses  []models.Course                `json:"courses"`
	Posts    []models.BlogPost              `json:"posts"`
	Pages    map[string]*models.PageContent `json:"pages"`
}

// newExportCmd creates a new command for exporting site content
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [format]",
		Short: "Export site content",
		Long:  `Export all site content in the specified format. Currently supported formats: json.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := "json"
			if len(args) > 0 {
				format = args[0]
			}
			if format != "json" {
				return fmt.Errorf("unsupported export format: %s (supported formats: json)", format)
			}

			svc, _, err := newContentService()
			if err != nil {
				return err
			}
			return exportData(cmd.Context(), cmd.OutOrStdout(), svc)
		},
	}
}

// exportData fetches every collection in parallel and writes indented JSON
func exportData(ctx context.Context, w io.Writer, svc *services.Service) error {
	out := siteExport{Pages: make(map[string]*models.PageContent, len(exportedPages))}
	pages := make([]*models.PageContent, len(exportedPages))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { out.Homepage = svc.GetHomepageData(ctx); return nil })
	g.Go(func() error { out.Artists = svc.GetArtists(ctx); return nil })
	g.Go(func() error { out.Designs = svc.GetTattooDesigns(ctx, ""); return nil })
	g.Go(func() error { out.Featured = svc.GetFeaturedTattoos(ctx); return nil })
	g.Go(func() error { out.Courses = svc.GetCourses(ctx); return nil })
	g.Go(func() error { out.Posts = svc.GetBlogPosts(ctx); return nil })
	for i, slug := range exportedPages {
		g.Go(func() error { pages[i] = svc.GetPageContent(ctx, slug); return nil })
	}
	_ = g.Wait()

	for i, slug := range exportedPages {
		if pages[i] != nil {
			out.Pages[slug] = pages[i]
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling data: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
