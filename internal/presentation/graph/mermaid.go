package graph

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/tree"
)

// Overlay highlights parts of the document on the diagram.
type Overlay struct {
	// ActivePage defaults to the document's active page when empty.
	ActivePage   string
	SelectedNode string
}

const labelLimit = 24

// GenerateMermaid produces a Mermaid flowchart of every page tree.
// It applies semantic styling:
// - Page: ((Circle))
// - Header/Footer: [[Subroutine]]
// - Container: [/Parallelogram/]
// - Default: [Rectangle]
// Pages are linked in navigation order with dotted arrows.
func GenerateMermaid(site *domain.Site, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, page := range site.Pages {
		pageID := "page_" + sanitizeMermaidID(page.ID)
		fmt.Fprintf(&sb, "    subgraph %s_tree[\"%s\"]\n", pageID, quote(page.Path))
		fmt.Fprintf(&sb, "    %s((\"%s\"))\n", pageID, quote(page.Name))

		parents := []string{pageID}
		tree.Walk(page.Elements, func(n *domain.Node, depth int) bool {
			safeID := sanitizeMermaidID(n.ID)
			opener, closer := shape(n.Kind)
			fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label(n), closer)
			fmt.Fprintf(&sb, "    %s --> %s\n", parents[depth], safeID)

			parents = append(parents[:depth+1], safeID)
			return true
		})
		sb.WriteString("    end\n")
	}

	for i := 1; i < len(site.Pages); i++ {
		fmt.Fprintf(&sb, "    page_%s -.-> page_%s\n",
			sanitizeMermaidID(site.Pages[i-1].ID), sanitizeMermaidID(site.Pages[i].ID))
	}

	if overlay != nil {
		active := overlay.ActivePage
		if active == "" {
			active = site.ActivePageID
		}
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on light fills under both themes.
		sb.WriteString("    classDef active fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		if active != "" {
			fmt.Fprintf(&sb, "    class page_%s active;\n", sanitizeMermaidID(active))
		}
		if overlay.SelectedNode != "" {
			fmt.Fprintf(&sb, "    class %s selected;\n", sanitizeMermaidID(overlay.SelectedNode))
		}
	}

	return sb.String()
}

// Exporter renders documents as Mermaid diagrams with the active page highlighted.
type Exporter struct{}

// Export implements ports.Exporter.
func (Exporter) Export(_ context.Context, w io.Writer, site *domain.Site) error {
	_, err := io.WriteString(w, GenerateMermaid(site, &Overlay{}))
	return err
}

func shape(kind domain.Kind) (string, string) {
	switch {
	case kind.IsGlobal():
		return "[[", "]]"
	case kind == domain.KindContainer:
		return "[/", "/]"
	}
	return "[", "]"
}

// label shows the kind and, for text-bearing nodes, the start of their content.
func label(n *domain.Node) string {
	text := ""
	switch n.Kind {
	case domain.KindHeader, domain.KindFooter, domain.KindContainer:
	case domain.KindImage:
		text = n.ImageAlt
	default:
		text = n.Content
	}
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return string(n.Kind)
	}
	if r := []rune(text); len(r) > labelLimit {
		text = string(r[:labelLimit]) + "…"
	}
	return quote(string(n.Kind) + ": " + text)
}

func quote(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
