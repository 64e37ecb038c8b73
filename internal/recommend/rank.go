// Package recommend ranks similar readers and selects book recommendations
// from a library.Graph.
package recommend

import (
	"sort"

	"github.com/matsen/bookrec/internal/library"
)

// Neighbor is a reader ranked by similarity to a target reader.
type Neighbor struct {
	Reader   string  `json:"reader"`
	Distance float64 `json:"distance"` // Mean absolute rating difference; lower is more similar
	Shared   int     `json:"shared"`   // Number of books both readers rated
}

// Distance returns the mean absolute rating difference between readers a and b
// over the books they both rated, along with the number of shared books.
// The distance is 0 with shared == 0 when they have no books in common.
func Distance(g *library.Graph, a, b string) (float64, int) {
	bBooks := make(map[string]bool)
	for _, book := range g.RatedBooks(b) {
		bBooks[book] = true
	}

	sum, shared := 0, 0
	for _, book := range g.RatedBooks(a) {
		if !bBooks[book] {
			continue
		}
		wa, _ := g.RatingOf(a, book)
		wb, _ := g.RatingOf(b, book)
		sum += abs(wa - wb)
		shared++
	}

	if shared == 0 {
		return 0, 0
	}
	return float64(sum) / float64(shared), shared
}

// Neighbors returns every other reader sharing at least one rated book with
// target, most similar first. Ties keep the graph's reader order.
func Neighbors(g *library.Graph, target string) []Neighbor {
	var neighbors []Neighbor
	for _, reader := range g.Readers() {
		if reader == target {
			continue
		}
		d, shared := Distance(g, reader, target)
		if shared == 0 {
			continue
		}
		neighbors = append(neighbors, Neighbor{Reader: reader, Distance: d, Shared: shared})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})
	return neighbors
}

// Rank returns the readers similar to target, most similar first.
func Rank(g *library.Graph, target string) []string {
	neighbors := Neighbors(g, target)
	ranked := make([]string, len(neighbors))
	for i, n := range neighbors {
		ranked[i] = n.Reader
	}
	return ranked
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
