package main

import (
	"fmt"

	"github.com/matsen/bookrec/internal/rating"
	"github.com/matsen/bookrec/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-book and per-reader rating statistics",
	Long: `Show rating counts and averages for every book and reader.

Ratings are loaded into an in-memory SQLite database for the query; nothing
is written to disk.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

// StatsResponse is the response for the stats command.
type StatsResponse struct {
	Ratings int                  `json:"ratings"`
	Books   []storage.BookStat   `json:"books"`
	Readers []storage.ReaderStat `json:"readers"`
}

func runStats(cmd *cobra.Command, args []string) error {
	g := mustLoadGraph(mustLoadConfig())

	db, err := storage.OpenDB(storage.MemoryPath)
	if err != nil {
		return err
	}
	defer db.Close()

	resp, err := collectStats(db, g.Ratings())
	if err != nil {
		return err
	}

	if !humanOutput {
		return outputJSON(resp)
	}

	outputHuman("%d ratings\n\nBooks:\n", resp.Ratings)
	for _, b := range resp.Books {
		outputHuman("  %-*s  %2d ratings  avg %.2f  (%d-%d)\n",
			ListTitleMaxLen, truncateString(b.Book, ListTitleMaxLen), b.Count, b.Average, b.Min, b.Max)
	}
	outputHuman("\nReaders:\n")
	for _, r := range resp.Readers {
		outputHuman("  %-12s %2d ratings  avg %.2f  %d liked\n", r.Reader, r.Count, r.Average, r.Liked)
	}
	return nil
}

// collectStats loads ratings into db and gathers the aggregates.
func collectStats(db *storage.DB, ratings []rating.Rating) (*StatsResponse, error) {
	if _, err := db.LoadRatings(ratings); err != nil {
		return nil, fmt.Errorf("loading ratings: %w", err)
	}
	n, err := db.CountRatings()
	if err != nil {
		return nil, err
	}
	books, err := db.BookStats()
	if err != nil {
		return nil, err
	}
	readers, err := db.ReaderStats()
	if err != nil {
		return nil, err
	}
	return &StatsResponse{Ratings: n, Books: books, Readers: readers}, nil
}
