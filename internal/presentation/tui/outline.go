package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/tree"
)

const previewLimit = 40

// Outline renders a markdown overview of site: one section per page with its node tree.
func Outline(site *domain.Site) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", site.SiteName)

	for _, page := range site.Pages {
		title := fmt.Sprintf("## %s `%s`", page.Name, page.Path)
		if page.ID == site.ActivePageID {
			title += " (active)"
		}
		sb.WriteString(title + "\n\n")
		if len(page.Elements) == 0 {
			sb.WriteString("_empty page_\n\n")
			continue
		}
		tree.Walk(page.Elements, func(n *domain.Node, depth int) bool {
			fmt.Fprintf(&sb, "%s- **%s** `%s`%s\n", strings.Repeat("  ", depth), n.Kind, n.ID, preview(n))
			return true
		})
		fmt.Fprintf(&sb, "\n%d nodes, grid %s\n\n", tree.Count(page.Elements), grid(page.Grid))
	}
	return sb.String()
}

func preview(n *domain.Node) string {
	var text string
	switch {
	case n.Kind.IsGlobal(), n.Kind == domain.KindContainer:
		if n.Attributes.LayoutType != "" {
			return fmt.Sprintf(" (%s)", n.Attributes.LayoutType)
		}
		return ""
	case n.Kind == domain.KindImage:
		text = n.ImageAlt
	default:
		text = n.Content
	}
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return ""
	}
	if r := []rune(text); len(r) > previewLimit {
		text = string(r[:previewLimit]) + "…"
	}
	return " " + text
}

func grid(g domain.GridSettings) string {
	if !g.Visible {
		return "hidden"
	}
	return g.CellSize + "px"
}

// OutlineExporter writes the markdown outline of a document.
type OutlineExporter struct{}

// Export implements ports.Exporter.
func (OutlineExporter) Export(_ context.Context, w io.Writer, site *domain.Site) error {
	_, err := io.WriteString(w, Outline(site))
	return err
}
