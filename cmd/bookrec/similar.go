package main

import (
	"github.com/matsen/bookrec/internal/recommend"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(similarCmd)
}

var similarCmd = &cobra.Command{
	Use:   "similar <reader>",
	Short: "List readers ranked by similarity to a reader",
	Long: `List the readers who share at least one rated book with the given reader,
most similar first.

Distance is the mean absolute rating difference over shared books; lower is
more similar. Readers with no books in common are omitted.

Examples:
  bookrec similar Cat
  bookrec similar Cat --human`,
	Args: cobra.ExactArgs(1),
	RunE: runSimilar,
}

// SimilarResponse is the response for the similar command.
type SimilarResponse struct {
	Reader    string               `json:"reader"`
	Neighbors []recommend.Neighbor `json:"neighbors"`
}

func runSimilar(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	g := mustLoadGraph(cfg)

	reader := args[0]
	if !g.HasReader(reader) {
		exitWithError(ExitDataError, msgUnknownReader)
	}

	neighbors := recommend.Neighbors(g, reader)
	if neighbors == nil {
		neighbors = []recommend.Neighbor{}
	}

	if !humanOutput {
		return outputJSON(SimilarResponse{Reader: reader, Neighbors: neighbors})
	}

	if len(neighbors) == 0 {
		outputHuman("No readers share a rated book with %s.\n", reader)
		return nil
	}
	outputHuman("Readers most similar to %s:\n", reader)
	for i, n := range neighbors {
		outputHuman("%2d. %-12s distance %.2f (%d shared)\n", i+1, n.Reader, n.Distance, n.Shared)
	}
	return nil
}
