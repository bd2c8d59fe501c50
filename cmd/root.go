package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tattoo-studio/pkg/config"
	"tattoo-studio/pkg/logging"
	"tattoo-studio/pkg/server"
	"tattoo-studio/pkg/services"
)

// Configuration flags
var (
	endpoint   string
	portNumber string
	configPath string
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tattoo-studio",
		Short: "Tattoo Studio serves the studio website from its headless CMS",
		Long: `Tattoo Studio is a command line application that renders the studio website
from content stored in a Hygraph project. It can also inspect that content,
list the static assets and talk to the legacy admin API.`,
		SilenceUsage: true,
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "Set the HYGRAPH_ENDPOINT (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&portNumber, "port", "p", "", "Set the PORT (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")

	// Add commands to root
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newListArtistsCmd())
	rootCmd.AddCommand(newListDesignsCmd())
	rootCmd.AddCommand(newShowPageCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newListAssetsCmd())
	rootCmd.AddCommand(newAdminCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags. A .env
// file in the working directory is read first when present.
func LoadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	// Set environment variables from flags if provided
	if endpoint != "" {
		os.Setenv("HYGRAPH_ENDPOINT", endpoint)
	}
	if portNumber != "" {
		os.Setenv("PORT", portNumber)
	}

	return config.LoadWithFile(configPath)
}

// setup loads the configuration and builds the logger every command uses.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}

// newContentService builds the content service for one-shot commands.
func newContentService() (*services.Service, *config.Config, error) {
	cfg, logger, err := setup()
	if err != nil {
		return nil, nil, err
	}
	return server.NewContentService(cfg, logger, nil), cfg, nil
}
