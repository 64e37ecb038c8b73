package viz

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matsen/bookrec/internal/library"
	"github.com/matsen/bookrec/internal/rating"
)

func newTestLibrary(t *testing.T) *library.Graph {
	t.Helper()
	g := library.New([]string{"Cat", "James"}, []string{"Kindred", "Twilight", "Uglies", "Dune"})
	for _, r := range []rating.Rating{
		{Reader: "Cat", Book: "Kindred", Weight: 5},
		{Reader: "Cat", Book: "Twilight", Weight: 3},
		{Reader: "James", Book: "Kindred", Weight: 4},
		{Reader: "James", Book: "Neuromancer", Weight: 5},
	} {
		if err := g.AddRating(r); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func findNode(nodes []Node, id string) (Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

func TestBuildGraph(t *testing.T) {
	graph := BuildGraph(newTestLibrary(t))

	// 2 readers + 4 configured books + 1 unconfigured rated book
	if len(graph.Nodes) != 7 {
		t.Fatalf("expected 7 nodes, got %d", len(graph.Nodes))
	}
	if len(graph.Edges) != 4 {
		t.Fatalf("expected 4 edges, got %d", len(graph.Edges))
	}

	tests := []struct {
		id        string
		wantType  string
		wantCol   int
		wantRow   float64
		wantCount int
	}{
		{"reader:Cat", NodeTypeReader, readerColumn, 0, 2},
		{"reader:James", NodeTypeReader, readerColumn, 1, 2},
		{"book:Kindred", NodeTypeBook, bookColumn, 0, 2},
		{"book:Twilight", NodeTypeBook, bookColumn, 0.5, 1},
		{"book:Dune", NodeTypeBook, bookColumn, 1.5, 0},
		{"book:Neuromancer", NodeTypeBook, bookColumn, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n, ok := findNode(graph.Nodes, tt.id)
			if !ok {
				t.Fatalf("node %s not found", tt.id)
			}
			if n.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", n.Type, tt.wantType)
			}
			if n.Column != tt.wantCol || n.Row != tt.wantRow {
				t.Errorf("position = (%d, %v), want (%d, %v)", n.Column, n.Row, tt.wantCol, tt.wantRow)
			}
			if n.ConnectionCount != tt.wantCount {
				t.Errorf("ConnectionCount = %d, want %d", n.ConnectionCount, tt.wantCount)
			}
		})
	}

	first := graph.Edges[0]
	if first.Source != "reader:Cat" || first.Target != "book:Kindred" || first.Weight != 5 {
		t.Errorf("first edge = %+v", first)
	}
}

func TestBuildGraph_ReaderNamedLikeBook(t *testing.T) {
	g := library.New([]string{"Kindred"}, []string{"Kindred"})
	if err := g.AddRating(rating.Rating{Reader: "Kindred", Book: "Kindred", Weight: 4}); err != nil {
		t.Fatal(err)
	}

	graph := BuildGraph(g)
	if len(graph.Nodes) != 2 {
		t.Errorf("expected distinct reader and book nodes, got %d nodes", len(graph.Nodes))
	}
}

func TestToCytoscapeJSON(t *testing.T) {
	graph := BuildGraph(newTestLibrary(t))

	tests := []struct {
		name          string
		withPositions bool
	}{
		{"preset positions", true},
		{"no positions", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := graph.ToCytoscapeJSON(tt.withPositions)
			if err != nil {
				t.Fatalf("ToCytoscapeJSON failed: %v", err)
			}

			var elements CytoscapeElements
			if err := json.Unmarshal([]byte(out), &elements); err != nil {
				t.Fatalf("output is not valid JSON: %v", err)
			}
			if len(elements.Nodes) != len(graph.Nodes) || len(elements.Edges) != len(graph.Edges) {
				t.Fatalf("element counts = %d/%d, want %d/%d",
					len(elements.Nodes), len(elements.Edges), len(graph.Nodes), len(graph.Edges))
			}

			pos := elements.Nodes[1].Position // reader:James
			if tt.withPositions {
				if pos == nil {
					t.Fatal("expected node position")
				}
				if pos.X != float64(readerColumn*columnSpacing) || pos.Y != rowSpacing {
					t.Errorf("position = %+v", *pos)
				}
			} else if pos != nil {
				t.Errorf("unexpected position %+v", *pos)
			}
		})
	}
}

func TestGenerateHTML(t *testing.T) {
	graph := BuildGraph(newTestLibrary(t))

	tests := []struct {
		name       string
		opts       HTMLOptions
		wantErr    bool
		wantLayout string
	}{
		{"default bipartite", DefaultOptions(), false, `"preset"`},
		{"empty layout", HTMLOptions{}, false, `"preset"`},
		{"force", HTMLOptions{Layout: LayoutForce}, false, `"cose"`},
		{"circle", HTMLOptions{Layout: LayoutCircle}, false, `"circle"`},
		{"grid", HTMLOptions{Layout: LayoutGrid}, false, `"grid"`},
		{"invalid", HTMLOptions{Layout: "spiral"}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := GenerateHTML(graph, tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("GenerateHTML failed: %v", err)
			}
			if !strings.Contains(html, "const layout = "+tt.wantLayout) {
				t.Errorf("HTML does not use layout %s", tt.wantLayout)
			}
			if !strings.Contains(html, "<title>What Books Have They Read?</title>") {
				t.Error("HTML missing title")
			}
			if !strings.Contains(html, "Neuromancer") {
				t.Error("HTML missing book data")
			}
		})
	}
}

func TestGenerateHTML_Empty(t *testing.T) {
	html, err := GenerateHTML(&GraphData{}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "No graph data") {
		t.Error("expected empty-state HTML")
	}

	if _, err := GenerateHTML(nil, DefaultOptions()); err == nil {
		t.Error("expected error for nil graph")
	}
}
