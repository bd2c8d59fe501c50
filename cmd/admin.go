package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"tattoo-studio/pkg/admin"
)

// newAdminCmd groups the commands that talk to the legacy admin API
func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Query the legacy admin API",
		Long:  `Read categories, products and posts from the legacy admin REST API, or verify admin credentials.`,
	}
	cmd.AddCommand(newAdminCategoriesCmd())
	cmd.AddCommand(newAdminProductsCmd())
	cmd.AddCommand(newAdminPostsCmd())
	cmd.AddCommand(newAdminLoginCmd())
	return cmd
}

func newAdminClient() (*admin.Client, error) {
	cfg, _, err := setup()
	if err != nil {
		return nil, err
	}
	return admin.NewClient(cfg.API.BaseURL, nil), nil
}

func newAdminCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAdminClient()
			if err != nil {
				return err
			}
			categories, err := client.Categories(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSLUG\tACTIVE\tORDER")
			for _, c := range categories {
				fmt.Fprintf(tw, "%s\t%s\t%t\t%d\n", c.Name, c.Slug, c.IsActive, c.DisplayOrder)
			}
			return tw.Flush()
		},
	}
}

func newAdminProductsCmd() *cobra.Command {
	var productType string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAdminClient()
			if err != nil {
				return err
			}
			products, err := client.Products(cmd.Context(), productType)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tCATEGORY\tARTIST\tVIEWS")
			for _, p := range products {
				category := p.CategoryID.ID
				if p.CategoryID.Category != nil {
					category = p.CategoryID.Category.Name
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", p.Name, p.Type, category, p.Artist, p.ViewCount)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&productType, "type", "t", "", "Only list products of this type")
	return cmd
}

func newAdminPostsCmd() *cobra.Command {
	var published bool
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List blog posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAdminClient()
			if err != nil {
				return err
			}

			var posts []admin.Post
			if published {
				posts, err = client.PublishedPosts(cmd.Context())
			} else {
				posts, err = client.Posts(cmd.Context())
			}
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TITLE\tSLUG\tSTATUS\tTAGS")
			for _, p := range posts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Title, p.Slug, p.Status, strings.Join(p.Tags, ","))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&published, "published", false, "Only list published posts")
	return cmd
}

func newAdminLoginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify admin credentials",
		Long: `Log in to the admin API and print the administrator profile.
The password is read from ADMIN_PASSWORD.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			password := os.Getenv("ADMIN_PASSWORD")
			if email == "" || password == "" {
				return errors.New("--email and ADMIN_PASSWORD are required")
			}

			client, err := newAdminClient()
			if err != nil {
				return err
			}
			session, err := client.Login(cmd.Context(), admin.Credentials{Email: email, Password: password})
			if err != nil {
				return err
			}
			defer session.Logout()

			printAdmin(cmd.OutOrStdout(), session.Admin)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Admin email address")
	return cmd
}

func printAdmin(w io.Writer, a admin.Admin) {
	fmt.Fprintf(w, "Logged in as %s <%s>\n", a.FullName, a.Email)
	fmt.Fprintf(w, "  Active: %t\n", a.IsActive)
	if a.LastLogin != nil {
		fmt.Fprintf(w, "  Last login: %s\n", a.LastLogin.Format(time.RFC3339))
	}
}
