package dsl

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/pageforge/pkg/domain"
)

func ids() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}
}

func fixedNow() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }

func TestBuilder_Site(t *testing.T) {
	b := New("Acme").WithIDGenerator(ids()).WithClock(fixedNow)

	home := b.Page("Home", "/")
	home.Heading1("Welcome").Style("color", "#111")
	cols := home.Container(domain.LayoutTwoBlocks)
	cols.Block(0).Paragraph("Left")
	cols.Block(1).Image("https://example.com/a.png", "A product")
	home.Grid(false, "24").CanvasStyle("backgroundColor", "#fafafa")

	b.Page("About", "/about").Paragraph("Who we are")
	b.Page("Ignored", "/").Button("Buy")
	b.Header().Attr(domain.AttrSiteNameColor, "#ff0000")

	site, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if len(site.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(site.Pages))
	}
	if site.ActivePageID != site.Pages[0].ID {
		t.Errorf("first page should be active, got %q", site.ActivePageID)
	}

	home0 := site.Pages[0]
	kinds := make([]domain.Kind, len(home0.Elements))
	for i, n := range home0.Elements {
		kinds[i] = n.Kind
	}
	want := []domain.Kind{domain.KindHeader, domain.KindHeading1, domain.KindContainer, domain.KindButton, domain.KindFooter}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Errorf("home elements = %v, want %v", kinds, want)
	}
	if got := home0.Elements[1].Style["color"]; got != "#111" {
		t.Errorf("heading color = %q", got)
	}

	blocks := home0.Elements[2].Children
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if c := blocks[0].Children; len(c) != 1 || c[0].Content != "Left" {
		t.Errorf("left block children = %+v", c)
	}
	if c := blocks[1].Children; len(c) != 1 || c[0].ImageSrc != "https://example.com/a.png" || c[0].Attributes.AIHint != "custom image" {
		t.Errorf("right block children = %+v", c)
	}
	if home0.Grid.Visible || home0.CanvasStyle["backgroundColor"] != "#fafafa" {
		t.Errorf("page settings not applied: %+v %+v", home0.Grid, home0.CanvasStyle)
	}

	for _, page := range site.Pages {
		header := page.Elements[0]
		footer := page.Elements[len(page.Elements)-1]
		if header.Attributes.SiteNameColor != "#ff0000" {
			t.Errorf("%s: header customization missing", page.Path)
		}
		if !strings.Contains(header.Content, "/about") || !strings.Contains(header.Content, "Acme") {
			t.Errorf("%s: header navigation incomplete: %s", page.Path, header.Content)
		}
		if !strings.Contains(footer.Content, "2030") {
			t.Errorf("%s: footer year missing: %s", page.Path, footer.Content)
		}
	}

	if err := domain.Validate(site); err != nil {
		t.Errorf("built site is invalid: %v", err)
	}
}

func TestBuilder_EmptyPageKeepsDefaultBody(t *testing.T) {
	b := New("Blank")
	b.Page("Home", "/")
	site, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if n := len(site.Pages[0].Elements); n != 3 {
		t.Errorf("expected header, body and footer, got %d elements", n)
	}
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		declare func(b *Builder)
		want    error
	}{
		{"no pages", func(b *Builder) {}, domain.ErrInvalidDocument},
		{"second header", func(b *Builder) { b.Page("Home", "/").Add(domain.KindHeader) }, domain.ErrDuplicateGlobal},
		{"nested footer", func(b *Builder) {
			b.Page("Home", "/").Container(domain.LayoutSimple).Add(domain.KindFooter)
		}, domain.ErrGlobalNotTopLevel},
		{"child of paragraph", func(b *Builder) {
			b.Page("Home", "/").Paragraph("x").Paragraph("y")
		}, domain.ErrNotContainer},
		{"unknown kind", func(b *Builder) { b.Page("Home", "/").Add("Video") }, domain.ErrUnknownKind},
		{"missing block", func(b *Builder) {
			b.Page("Home", "/").Container(domain.LayoutTwoBlocks).Block(5).Paragraph("x")
		}, domain.ErrInvalidAttribute},
		{"bad layout", func(b *Builder) { b.Page("Home", "/").Container("grid") }, domain.ErrInvalidAttribute},
		{"relative path", func(b *Builder) { b.Page("Home", "home") }, domain.ErrInvalidDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("Broken")
			tt.declare(b)
			_, err := b.Build()
			if !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
		})
	}
}
