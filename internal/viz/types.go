// Package viz provides rating graph visualization functionality.
package viz

// Node types.
const (
	NodeTypeReader = "reader"
	NodeTypeBook   = "book"
)

// GraphData contains all data needed to render the visualization.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node represents a reader or book in the graph.
type Node struct {
	ID    string `json:"id"`
	Type  string `json:"type"` // "reader" or "book"
	Label string `json:"label"`

	// Column and row for the bipartite layout.
	Column int     `json:"-"`
	Row    float64 `json:"-"`

	// Number of rating edges touching this node (for sizing and tooltips)
	ConnectionCount int `json:"connectionCount"`
}

// Edge represents a reader -> book rating.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}
