package main

import (
	"fmt"
	"os"

	"github.com/matsen/bookrec/internal/viz"
	"github.com/spf13/cobra"
)

var vizOutput string
var vizLayout string
var vizTitle string

func init() {
	vizCmd.Flags().StringVarP(&vizOutput, "output", "o", "", "Output file path (default: stdout)")
	vizCmd.Flags().StringVar(&vizLayout, "layout", "", "Layout: bipartite, force, circle, or grid (default: config viz_layout, then bipartite)")
	vizCmd.Flags().StringVar(&vizTitle, "title", viz.DefaultTitle, "Page title")
	rootCmd.AddCommand(vizCmd)
}

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Generate rating graph visualization",
	Long: `Generate an interactive HTML visualization of the rating graph.

Readers (blue circles) are connected to the books (rectangles) they rated.
Each edge is labeled with its rating: green for 4 and up, dashed red for 1,
gray otherwise. The default bipartite layout puts readers in a left column
and books in a right column.

Examples:
  # Generate HTML to stdout
  bookrec viz > graph.html

  # Generate to file with a force-directed layout
  bookrec viz --layout force --output graph.html`,
	Args: cobra.NoArgs,
	RunE: runViz,
}

func runViz(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	g := mustLoadGraph(cfg)

	opts := viz.HTMLOptions{
		Layout: firstNonEmpty(vizLayout, cfg.VizLayout, viz.LayoutBipartite),
		Title:  vizTitle,
	}
	if err := viz.ValidateLayout(opts.Layout); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	html, err := viz.GenerateHTML(viz.BuildGraph(g), opts)
	if err != nil {
		return fmt.Errorf("generating HTML: %w", err)
	}

	if vizOutput == "" {
		fmt.Print(html)
		return nil
	}

	if err := os.WriteFile(vizOutput, []byte(html), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if humanOutput {
		outputHuman("Visualization written to %s\n", vizOutput)
		return nil
	}
	return outputJSON(StatusResponse{Status: "written", Path: vizOutput})
}
