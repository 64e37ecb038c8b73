package main

import (
	"github.com/matsen/bookrec/internal/library"
	"github.com/spf13/cobra"
)

// ListTitleMaxLen is the title width used in human list output.
const ListTitleMaxLen = 50

func init() {
	rootCmd.AddCommand(readersCmd)
	rootCmd.AddCommand(booksCmd)
}

var readersCmd = &cobra.Command{
	Use:   "readers",
	Short: "List readers and the books they rated",
	Args:  cobra.NoArgs,
	RunE:  runReaders,
}

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List books and how many readers rated them",
	Args:  cobra.NoArgs,
	RunE:  runBooks,
}

// ReaderSummary describes one reader in list output.
type ReaderSummary struct {
	Reader string         `json:"reader"`
	Rated  int            `json:"rated"`
	Books  map[string]int `json:"books"`
}

// BookSummary describes one book in list output.
type BookSummary struct {
	Book    string `json:"book"`
	RatedBy int    `json:"rated_by"`
}

func runReaders(cmd *cobra.Command, args []string) error {
	g := mustLoadGraph(mustLoadConfig())
	summaries := summarizeReaders(g)

	if !humanOutput {
		return outputJSON(summaries)
	}
	for _, s := range summaries {
		outputHuman("%-12s %d rated\n", s.Reader, s.Rated)
	}
	return nil
}

func runBooks(cmd *cobra.Command, args []string) error {
	g := mustLoadGraph(mustLoadConfig())
	summaries := summarizeBooks(g)

	if !humanOutput {
		return outputJSON(summaries)
	}
	for _, s := range summaries {
		outputHuman("%-*s  %d\n", ListTitleMaxLen, truncateString(s.Book, ListTitleMaxLen), s.RatedBy)
	}
	return nil
}

func summarizeReaders(g *library.Graph) []ReaderSummary {
	readers := g.Readers()
	summaries := make([]ReaderSummary, 0, len(readers))
	for _, reader := range readers {
		books := g.RatedBooks(reader)
		s := ReaderSummary{Reader: reader, Rated: len(books), Books: make(map[string]int, len(books))}
		for _, b := range books {
			s.Books[b] = g.WeightOrZero(reader, b)
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// summarizeBooks lists configured books first, then any rated book outside
// the configured list, in the order they are first rated.
func summarizeBooks(g *library.Graph) []BookSummary {
	counts := make(map[string]int)
	var extra []string
	configured := make(map[string]bool)
	for _, b := range g.Books() {
		configured[b] = true
	}
	for _, r := range g.Ratings() {
		if counts[r.Book] == 0 && !configured[r.Book] {
			extra = append(extra, r.Book)
		}
		counts[r.Book]++
	}

	books := append(g.Books(), extra...)
	summaries := make([]BookSummary, 0, len(books))
	for _, b := range books {
		summaries = append(summaries, BookSummary{Book: b, RatedBy: counts[b]})
	}
	return summaries
}
