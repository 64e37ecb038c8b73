// Package main provides the bookrec CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/matsen/bookrec/internal/config"
	"github.com/matsen/bookrec/internal/dataset"
	"github.com/matsen/bookrec/internal/library"
	"github.com/matsen/bookrec/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// Global data source flags; empty means fall back to config.
var (
	datasetFlag string
	ratingsFlag string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bookrec",
	Short: "Collaborative-filtering book recommendations",
	Long: `bookrec models readers and books as a bipartite graph of ratings and
recommends books from the readers most similar to you.

Similarity is the mean absolute rating difference over the books two readers
have both rated. Recommendations are offered one at a time; a rejected book is
marked as disliked and never offered again in the session.

The built-in sample library is used unless a dataset is configured.
All commands output JSON by default; use --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&datasetFlag, "dataset", "", "YAML library file (default: built-in sample library)")
	rootCmd.PersistentFlags().StringVar(&ratingsFlag, "ratings", "", "JSONL ratings to layer over the dataset")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v\n\n%s", err, config.HelpfulConfigMessage())
	}
	return cfg
}

// mustLoadGraph builds the library graph from flags and config, exits on error.
func mustLoadGraph(cfg *config.Config) *library.Graph {
	g, err := loadGraph(firstNonEmpty(datasetFlag, cfg.DatasetPath), firstNonEmpty(ratingsFlag, cfg.RatingsPath))
	if err != nil {
		exitWithError(ExitDataError, "loading library: %v", err)
	}
	return g
}

// loadGraph builds a graph from a YAML dataset (or the built-in sample when
// datasetPath is empty) and then applies any JSONL ratings on top of it.
func loadGraph(datasetPath, ratingsPath string) (*library.Graph, error) {
	var ds *dataset.Dataset
	var err error
	if datasetPath == "" {
		ds, err = dataset.Default()
	} else {
		ds, err = dataset.LoadFile(config.ExpandTilde(datasetPath))
	}
	if err != nil {
		return nil, err
	}

	g, err := ds.Graph()
	if err != nil {
		return nil, err
	}

	if ratingsPath == "" {
		return g, nil
	}
	ratings, err := storage.ReadAllRatings(config.ExpandTilde(ratingsPath))
	if err != nil {
		return nil, err
	}
	for _, r := range ratings {
		if err := g.AddRating(r); err != nil {
			return nil, fmt.Errorf("applying rating %s / %s: %w", r.Reader, r.Book, err)
		}
	}
	return g, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
