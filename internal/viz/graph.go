package viz

import (
	"github.com/matsen/bookrec/internal/library"
)

// Bipartite layout columns.
const (
	readerColumn = -1
	bookColumn   = 2
)

// BuildGraph constructs GraphData for a library graph: one node per reader,
// one node per book and one edge per rating.
//
// Readers are placed in a left column at row i. Configured books are placed in
// a right column spread over the same height as the readers. Books that are
// rated but not configured are appended below the configured ones.
func BuildGraph(g *library.Graph) *GraphData {
	ratings := g.Ratings()
	readers := g.Readers()
	books := g.Books()

	counts := make(map[string]int)
	for _, r := range ratings {
		counts[r.Reader]++
		counts[r.Book]++
	}

	nodes := make([]Node, 0, len(readers)+len(books))
	for i, reader := range readers {
		nodes = append(nodes, Node{
			ID:              readerNodeID(reader),
			Type:            NodeTypeReader,
			Label:           reader,
			Column:          readerColumn,
			Row:             float64(i),
			ConnectionCount: counts[reader],
		})
	}

	spacing := 1.0
	if len(books) > 0 {
		spacing = float64(len(readers)) / float64(len(books))
	}
	placed := make(map[string]bool, len(books))
	addBook := func(book string) {
		nodes = append(nodes, Node{
			ID:              bookNodeID(book),
			Type:            NodeTypeBook,
			Label:           book,
			Column:          bookColumn,
			Row:             float64(len(placed)) * spacing,
			ConnectionCount: counts[book],
		})
		placed[book] = true
	}
	for _, book := range books {
		if !placed[book] {
			addBook(book)
		}
	}

	edges := make([]Edge, 0, len(ratings))
	for _, r := range ratings {
		if !placed[r.Book] {
			addBook(r.Book)
		}
		edges = append(edges, Edge{
			Source: readerNodeID(r.Reader),
			Target: bookNodeID(r.Book),
			Weight: r.Weight,
		})
	}

	return &GraphData{Nodes: nodes, Edges: edges}
}

// Reader and book names share a namespace in the source data (a reader could be
// named after a book), so node IDs are prefixed by type.
func readerNodeID(name string) string {
	return "reader:" + name
}

func bookNodeID(title string) string {
	return "book:" + title
}
