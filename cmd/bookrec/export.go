package main

import (
	"fmt"

	"github.com/matsen/bookrec/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Write the loaded ratings to a JSONL file",
	Long: `Write every rating in the loaded library to a JSONL file, one rating per line.

The file can be edited and passed back with --ratings to layer changes over
the dataset.

Example:
  bookrec export ratings.jsonl
  bookrec recommend Cat --ratings ratings.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	g := mustLoadGraph(mustLoadConfig())
	path := args[0]

	ratings := g.Ratings()
	if err := storage.WriteAllRatings(path, ratings); err != nil {
		return fmt.Errorf("exporting ratings: %w", err)
	}

	if humanOutput {
		outputHuman("Exported %d ratings to %s\n", len(ratings), path)
		return nil
	}
	return outputJSON(StatusResponse{Status: "exported", Path: path, Count: len(ratings)})
}
