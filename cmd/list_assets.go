package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tattoo-studio/pkg/assets"
	"tattoo-studio/pkg/server"
)

// newListAssetsCmd creates a new command for listing the static assets
func newListAssetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-assets",
		Short: "List static assets",
		Long: `List the static assets served under /static, from the configured bucket
or local directory, and report whether the placeholder image is present.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}

			store, err := server.NewAssetStore(cmd.Context(), cfg.Assets)
			if err != nil {
				return err
			}
			if c, ok := store.(io.Closer); ok {
				defer c.Close()
			}

			return listAssets(cmd.Context(), cmd.OutOrStdout(), store)
		},
	}
}

// listAssets prints every asset name and the placeholder status
func listAssets(ctx context.Context, w io.Writer, store assets.Store) error {
	names, err := store.List(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Static Assets:")
	fmt.Fprintln(w, "==============")
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total: %d assets\n", len(names))

	if assets.Exists(ctx, store, assets.PlaceholderPath) {
		fmt.Fprintf(w, "Placeholder: %s (ok)\n", assets.PlaceholderPath)
	} else {
		fmt.Fprintf(w, "Placeholder: %s (MISSING)\n", assets.PlaceholderPath)
	}
	return nil
}
