package tui_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pageforge/internal/presentation/tui"
	"github.com/aretw0/pageforge/pkg/domain"
)

func TestOutline(t *testing.T) {
	site := &domain.Site{
		SiteName:     "Demo",
		ActivePageID: "p1",
		Pages: []*domain.Page{
			{ID: "p1", Name: "Home", Path: "/", Grid: domain.GridSettings{Visible: true, CellSize: "20"}, Elements: []*domain.Node{
				{ID: "h", Kind: domain.KindHeader},
				{ID: "c", Kind: domain.KindContainer, Attributes: domain.Attributes{LayoutType: domain.LayoutTwoBlocks}, Children: []*domain.Node{
					{ID: "t", Kind: domain.KindParagraph, Content: "Hello\n   world"},
				}},
				{ID: "f", Kind: domain.KindFooter},
			}},
			{ID: "p2", Name: "Empty", Path: "/empty"},
		},
	}

	out := tui.Outline(site)
	assert.Contains(t, out, "# Demo\n")
	assert.Contains(t, out, "## Home `/` (active)")
	assert.Contains(t, out, "- **Container** `c` (two-blocks)")
	assert.Contains(t, out, "  - **Paragraph** `t` Hello world")
	assert.Contains(t, out, "4 nodes, grid 20px")
	assert.Contains(t, out, "## Empty `/empty`\n\n_empty page_")

	var buf bytes.Buffer
	require.NoError(t, tui.OutlineExporter{}.Export(context.Background(), &buf, site))
	assert.Equal(t, out, buf.String())
}

func TestBannerAndStatus(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "1.2.3\n")
	assert.Contains(t, buf.String(), "v1.2.3")

	assert.Contains(t, tui.Status(true, "saved"), "saved")
	assert.Contains(t, tui.Status(false, "rejected"), "rejected")
}

func TestRenderer(t *testing.T) {
	render, err := tui.NewRenderer()
	require.NoError(t, err)
	out, err := render("# Title")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}
