// Package library holds the in-memory reader -> book rating graph.
package library

import (
	"errors"
	"fmt"

	"github.com/matsen/bookrec/internal/rating"
)

// ErrUnknownReader is returned when a reader is not in the configured reader set.
var ErrUnknownReader = errors.New("unknown reader")

// Graph is a directed bipartite graph of readers and books.
// Edges always point from a reader to a book and carry a rating weight.
// A Graph is not safe for concurrent use.
type Graph struct {
	readers []string
	books   []string

	readerSet map[string]bool
	shelves   map[string]*shelf
	edges     int
}

// shelf holds one reader's outgoing edges in insertion order.
type shelf struct {
	order   []string
	weights map[string]int
}

// New creates an empty graph over the given readers and books.
// The reader order is the traversal order used when ranking neighbors.
func New(readers, books []string) *Graph {
	g := &Graph{
		readers:   append([]string(nil), readers...),
		books:     append([]string(nil), books...),
		readerSet: make(map[string]bool, len(readers)),
		shelves:   make(map[string]*shelf, len(readers)),
	}
	for _, r := range readers {
		g.readerSet[r] = true
	}
	return g
}

// AddRating inserts or overwrites the (reader, book) edge.
// An overwrite keeps the book's original position in the reader's order.
func (g *Graph) AddRating(r rating.Rating) error {
	if err := r.ValidateForCreate(); err != nil {
		return err
	}
	if !g.readerSet[r.Reader] {
		return fmt.Errorf("%w: %s", ErrUnknownReader, r.Reader)
	}

	s, ok := g.shelves[r.Reader]
	if !ok {
		s = &shelf{weights: make(map[string]int)}
		g.shelves[r.Reader] = s
	}
	if _, exists := s.weights[r.Book]; !exists {
		s.order = append(s.order, r.Book)
		g.edges++
	}
	s.weights[r.Book] = r.Weight
	return nil
}

// RatedBooks returns the books the reader has an edge to, in insertion order.
// Returns nil for a reader with no ratings or an unknown reader.
func (g *Graph) RatedBooks(reader string) []string {
	s, ok := g.shelves[reader]
	if !ok {
		return nil
	}
	return append([]string(nil), s.order...)
}

// RatingOf returns the weight of the (reader, book) edge and whether it exists.
func (g *Graph) RatingOf(reader, book string) (int, bool) {
	s, ok := g.shelves[reader]
	if !ok {
		return 0, false
	}
	w, ok := s.weights[book]
	return w, ok
}

// WeightOrZero returns the weight of the (reader, book) edge, or 0 if there is none.
func (g *Graph) WeightOrZero(reader, book string) int {
	w, _ := g.RatingOf(reader, book)
	return w
}

// HasReader reports whether reader is in the configured reader set.
func (g *Graph) HasReader(reader string) bool {
	return g.readerSet[reader]
}

// Readers returns the configured readers in traversal order.
func (g *Graph) Readers() []string {
	return append([]string(nil), g.readers...)
}

// Books returns the configured books.
func (g *Graph) Books() []string {
	return append([]string(nil), g.books...)
}

// Ratings returns every edge, grouped by reader in traversal order and then
// in per-reader insertion order.
func (g *Graph) Ratings() []rating.Rating {
	out := make([]rating.Rating, 0, g.edges)
	for _, reader := range g.readers {
		s, ok := g.shelves[reader]
		if !ok {
			continue
		}
		for _, book := range s.order {
			out = append(out, rating.Rating{Reader: reader, Book: book, Weight: s.weights[book]})
		}
	}
	return out
}

// Len returns the number of edges in the graph.
func (g *Graph) Len() int {
	return g.edges
}
