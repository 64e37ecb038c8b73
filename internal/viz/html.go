package viz

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))
}

// Layout names.
const (
	LayoutBipartite = "bipartite"
	LayoutForce     = "force"
	LayoutCircle    = "circle"
	LayoutGrid      = "grid"
)

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Layout string // "bipartite", "force", "circle", or "grid"
	Title  string // Page title; defaults to DefaultTitle
}

// DefaultTitle is the page title used when HTMLOptions.Title is empty.
const DefaultTitle = "What Books Have They Read?"

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		Layout: LayoutBipartite,
		Title:  DefaultTitle,
	}
}

// ValidLayouts lists the supported layout algorithm names.
var ValidLayouts = []string{LayoutBipartite, LayoutForce, LayoutCircle, LayoutGrid}

// GenerateHTML generates a self-contained HTML file for the graph visualization.
func GenerateHTML(graph *GraphData, opts HTMLOptions) (string, error) {
	if graph == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}

	if err := ValidateLayout(opts.Layout); err != nil {
		return "", err
	}

	if graph.IsEmpty() {
		return generateEmptyHTML(), nil
	}

	layout := layoutToCytoscape(opts.Layout)
	graphJSON, err := graph.ToCytoscapeJSON(layout == "preset")
	if err != nil {
		return "", err
	}

	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	data := templateData{
		Title:     title,
		GraphJSON: template.JS(graphJSON),
		Layout:    layout,
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// ValidateLayout checks if the layout option is valid.
func ValidateLayout(layout string) error {
	switch layout {
	case "", LayoutBipartite, LayoutForce, LayoutCircle, LayoutGrid:
		return nil
	default:
		return fmt.Errorf("invalid layout %q: must be one of %s", layout, strings.Join(ValidLayouts, ", "))
	}
}

// templateData holds data for the HTML template.
type templateData struct {
	Title     string
	GraphJSON template.JS
	Layout    string
}

// layoutToCytoscape converts user-friendly layout names to Cytoscape.js layout algorithm names.
func layoutToCytoscape(layout string) string {
	switch layout {
	case LayoutCircle:
		return "circle"
	case LayoutGrid:
		return "grid"
	case LayoutForce:
		return "cose"
	default:
		return "preset"
	}
}

// generateEmptyHTML returns HTML for an empty graph state.
func generateEmptyHTML() string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Rating Graph - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .empty-state {
      text-align: center;
      color: #666;
    }
    .empty-state h2 {
      margin-bottom: 0.5em;
      color: #333;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No graph data</h2>
    <p>The library has no readers or books.</p>
  </div>
</body>
</html>`
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>
  <style>
    * {
      box-sizing: border-box;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #f5f5f5;
    }
    #title {
      margin: 0;
      padding: 12px 16px;
      font-size: 18px;
      background: white;
      border-bottom: 1px solid #ddd;
    }
    #cy {
      width: 100%;
      height: calc(100vh - 48px);
      background: white;
    }
    /* Tooltip container */
    #tooltip {
      position: absolute;
      display: none;
      background: white;
      border: 1px solid #ccc;
      border-radius: 4px;
      padding: 8px 12px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
      max-width: 300px;
      font-size: 13px;
      z-index: 1000;
      pointer-events: none;
    }
    #tooltip .type {
      font-size: 10px;
      text-transform: uppercase;
      color: #888;
      margin-bottom: 4px;
    }
    #tooltip .label {
      font-weight: bold;
      margin-bottom: 4px;
    }
    #tooltip .detail {
      color: #555;
      margin: 2px 0;
    }
  </style>
</head>
<body>
  <h1 id="title">{{.Title}}</h1>
  <div id="cy"></div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};
      const layout = "{{.Layout}}";

      // Initialize Cytoscape
      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: graphData,
        style: [
          // Reader nodes - blue circles
          {
            selector: 'node[type="reader"]',
            style: {
              'background-color': '#4A90D9',
              'label': 'data(label)',
              'color': '#333',
              'font-size': '12px',
              'font-weight': 'bold',
              'text-valign': 'center',
              'text-halign': 'left',
              'text-margin-x': '-8px',
              'width': 'mapData(connectionCount, 0, 10, 20, 40)',
              'height': 'mapData(connectionCount, 0, 10, 20, 40)'
            }
          },
          // Book nodes - sky blue rectangles
          {
            selector: 'node[type="book"]',
            style: {
              'background-color': '#87CEEB',
              'shape': 'round-rectangle',
              'label': 'data(label)',
              'color': '#333',
              'font-size': '10px',
              'text-valign': 'center',
              'text-halign': 'right',
              'text-margin-x': '8px',
              'width': 'mapData(connectionCount, 0, 6, 18, 36)',
              'height': 'mapData(connectionCount, 0, 6, 18, 36)'
            }
          },
          // Rating edges, labeled with their weight
          {
            selector: 'edge',
            style: {
              'line-color': '#95A5A6',
              'target-arrow-color': '#95A5A6',
              'target-arrow-shape': 'triangle',
              'curve-style': 'bezier',
              'opacity': 0.5,
              'width': 2,
              'label': 'data(weight)',
              'font-size': '9px',
              'text-background-color': '#fff',
              'text-background-opacity': 1
            }
          },
          {
            selector: 'edge[weight >= 4]',
            style: {
              'line-color': '#5CB85C',
              'target-arrow-color': '#5CB85C'
            }
          },
          {
            selector: 'edge[weight <= 1]',
            style: {
              'line-color': '#D9534F',
              'target-arrow-color': '#D9534F',
              'line-style': 'dashed'
            }
          },
          // Highlighted state
          {
            selector: 'node.highlighted',
            style: {
              'border-width': 3,
              'border-color': '#ff6b6b'
            }
          },
          {
            selector: 'node.dimmed',
            style: {
              'opacity': 0.3
            }
          },
          {
            selector: 'edge.dimmed',
            style: {
              'opacity': 0.1
            }
          }
        ],
        layout: {
          name: layout,
          animate: false,
          fit: true,
          padding: 40,
          // cose-specific options
          nodeRepulsion: 8000,
          idealEdgeLength: 100,
          edgeElasticity: 100
        }
      });

      // Tooltip handling
      const tooltip = document.getElementById('tooltip');

      function showTooltip(evt, content) {
        tooltip.innerHTML = content;
        tooltip.style.display = 'block';
        const pos = evt.renderedPosition || evt.position;
        tooltip.style.left = (pos.x + 15) + 'px';
        tooltip.style.top = (pos.y + 15) + 'px';
      }

      function hideTooltip() {
        tooltip.style.display = 'none';
      }

      // Build tooltip content for nodes
      function getNodeTooltip(node) {
        const data = node.data();
        let html = '<div class="type">' + data.type + '</div>';
        html += '<div class="label">' + escapeHtml(data.label) + '</div>';
        html += '<div class="detail">Ratings: ' + data.connectionCount + '</div>';
        return html;
      }

      // Build tooltip content for edges
      function getEdgeTooltip(edge) {
        const src = edge.source().data('label');
        const dst = edge.target().data('label');
        let html = '<div class="type">rating</div>';
        html += '<div class="label">' + escapeHtml(src) + ' → ' + escapeHtml(dst) + '</div>';
        html += '<div class="detail">Weight: ' + edge.data('weight') + '</div>';
        return html;
      }

      function escapeHtml(str) {
        if (!str) return '';
        return str.replace(/&/g, '&amp;')
                  .replace(/</g, '&lt;')
                  .replace(/>/g, '&gt;')
                  .replace(/"/g, '&quot;');
      }

      // Event handlers
      cy.on('mouseover', 'node', function(evt) {
        showTooltip(evt, getNodeTooltip(evt.target));
      });

      cy.on('mouseout', 'node', function() {
        hideTooltip();
      });

      cy.on('mouseover', 'edge', function(evt) {
        showTooltip(evt, getEdgeTooltip(evt.target));
      });

      cy.on('mouseout', 'edge', function() {
        hideTooltip();
      });

      // Click highlighting
      cy.on('tap', 'node', function(evt) {
        const node = evt.target;

        // Reset all
        cy.elements().removeClass('highlighted dimmed');

        // Get connected elements
        const neighborhood = node.neighborhood().add(node);

        // Highlight connected, dim others
        neighborhood.addClass('highlighted');
        cy.elements().not(neighborhood).addClass('dimmed');
      });

      // Click on empty space to reset
      cy.on('tap', function(evt) {
        if (evt.target === cy) {
          cy.elements().removeClass('highlighted dimmed');
        }
      });
    })();
  </script>
</body>
</html>`
