package main

import (
	"github.com/matsen/bookrec/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	Path string `json:"path"`
	config.Config
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	if !humanOutput {
		return outputJSON(ConfigResponse{Path: config.ConfigPath(), Config: *cfg})
	}

	outputHuman("Config file: %s\n", config.ConfigPath())
	outputHuman("  dataset_path:   %s\n", firstNonEmpty(cfg.DatasetPath, "(built-in sample library)"))
	outputHuman("  ratings_path:   %s\n", firstNonEmpty(cfg.RatingsPath, "(none)"))
	outputHuman("  default_reader: %s\n", firstNonEmpty(cfg.DefaultReader, "(prompt)"))
	outputHuman("  viz_layout:     %s\n", firstNonEmpty(cfg.VizLayout, "bipartite"))
	return nil
}
