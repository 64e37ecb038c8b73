package recommend

import (
	"github.com/matsen/bookrec/internal/library"
	"github.com/matsen/bookrec/internal/rating"
)

// Recommend returns the first book, scanning ranked neighbors in order and each
// neighbor's books in insertion order, that reader has not rated and the
// neighbor rated at least rating.RecommendThreshold.
// Returns false if no such book exists.
func Recommend(g *library.Graph, reader string) (string, bool) {
	seen := make(map[string]bool)
	for _, book := range g.RatedBooks(reader) {
		seen[book] = true
	}

	for _, neighbor := range Rank(g, reader) {
		for _, book := range g.RatedBooks(neighbor) {
			if seen[book] {
				continue
			}
			if g.WeightOrZero(neighbor, book) >= rating.RecommendThreshold {
				return book, true
			}
		}
	}
	return "", false
}
