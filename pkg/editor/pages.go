package editor

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/aretw0/pageforge/pkg/domain"
)

// AddPageRequest describes a new page. Empty fields get generated values:
// "Новая страница N" and "/page-N", made unique.
type AddPageRequest struct {
	Name string
	Path string
}

// AddPage appends a page holding a Header, an empty Container and a Footer, and makes
// it the active page. The Header and Footer inherit the look of the existing ones.
func (s *Session) AddPage(ctx context.Context, req AddPageRequest) (Result, error) {
	e := edit{op: OpAddPage}
	site := s.Document()

	n := len(site.Pages) + 1
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = fmt.Sprintf("Новая страница %d", n)
	}
	path := fmt.Sprintf("/page-%d", n)
	if req.Path != "" {
		normalized, err := domain.NormalizePath(req.Path)
		if err != nil {
			return s.reject(ctx, e, err)
		}
		path = normalized
	}
	path = uniquePath(site, path)

	page, err := s.factory.Page(site, name, path)
	if err != nil {
		return s.reject(ctx, e, err)
	}
	e.pageID = page.ID

	next := *site
	next.Pages = append(append(make([]*domain.Page, 0, len(site.Pages)+1), site.Pages...), page)
	next.ActivePageID = page.ID

	res := s.commit(ctx, e, &next)
	res.PageID = page.ID
	return res, nil
}

// uniquePath appends -2, -3... to path until no page uses it.
func uniquePath(site *domain.Site, path string) string {
	taken := make(map[string]bool, len(site.Pages))
	for _, p := range site.Pages {
		taken[p.Path] = true
	}
	if !taken[path] {
		return path
	}
	base := strings.TrimSuffix(path, "/")
	if base == "" {
		base = "/page"
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken[candidate] {
			return candidate
		}
	}
}

// SelectPage makes pageID the active page. Selection is recorded in history.
func (s *Session) SelectPage(ctx context.Context, pageID string) Result {
	e := edit{op: OpSelectPage, pageID: pageID}
	site := s.Document()
	if _, page := site.Page(pageID); page == nil || site.ActivePageID == pageID {
		return s.noop(e)
	}
	next := *site
	next.ActivePageID = pageID
	return s.commit(ctx, e, &next)
}

// RenameSite changes the site name shown in every Header and Footer.
func (s *Session) RenameSite(ctx context.Context, name string) Result {
	e := edit{op: OpRenameSite}
	site := s.Document()
	if site.SiteName == name {
		return s.noop(e)
	}
	next := *site
	next.SiteName = name
	return s.commit(ctx, e, &next)
}

// UpdatePageRequest changes the name and/or the path of a page. Empty fields are kept.
type UpdatePageRequest struct {
	Name string
	Path string
}

// UpdatePage renames or re-paths a page. Paths are normalized to begin with "/" and
// must not be used by another page.
func (s *Session) UpdatePage(ctx context.Context, pageID string, req UpdatePageRequest) (Result, error) {
	e := edit{op: OpUpdatePage, pageID: pageID}
	var path string
	if req.Path != "" {
		normalized, err := domain.NormalizePath(req.Path)
		if err != nil {
			return s.reject(ctx, e, err)
		}
		for _, p := range s.Document().Pages {
			if p.ID != pageID && p.Path == normalized {
				return s.reject(ctx, e, fmt.Errorf("%w: %q is used by page %q", domain.ErrInvalidPath, normalized, p.ID))
			}
		}
		path = normalized
	}

	return s.updatePage(ctx, e, pageID, func(p *domain.Page) (*domain.Page, bool) {
		updated := *p
		if name := strings.TrimSpace(req.Name); name != "" {
			updated.Name = name
		}
		if path != "" {
			updated.Path = path
		}
		return &updated, updated.Name != p.Name || updated.Path != p.Path
	}), nil
}

// UpdateCanvasStyle merges style into the canvas style of the active page. Setting a
// background drops a background color and vice versa (see domain.ExclusiveStyles).
func (s *Session) UpdateCanvasStyle(ctx context.Context, style domain.Style) Result {
	e := edit{op: OpUpdateCanvasStyle}
	return s.updatePage(ctx, e, s.Document().ActivePageID, func(p *domain.Page) (*domain.Page, bool) {
		merged := p.CanvasStyle.Merge(style)
		for key, value := range style {
			if value == "" {
				continue
			}
			for _, cleared := range domain.ExclusiveStyles[key] {
				if _, explicit := style[cleared]; !explicit {
					delete(merged, cleared)
				}
			}
		}
		if maps.Equal(merged, p.CanvasStyle) {
			return p, false
		}
		updated := *p
		updated.CanvasStyle = merged
		return &updated, true
	})
}

// UpdateGrid shows or hides the editing grid of the active page. An empty size keeps
// the current cell size.
func (s *Session) UpdateGrid(ctx context.Context, visible bool, size string) Result {
	e := edit{op: OpUpdateGrid}
	return s.updatePage(ctx, e, s.Document().ActivePageID, func(p *domain.Page) (*domain.Page, bool) {
		grid := domain.GridSettings{Visible: visible, CellSize: size}
		if grid.CellSize == "" {
			grid.CellSize = p.Grid.CellSize
		}
		if grid.CellSize == "" {
			grid.CellSize = domain.DefaultGridSize
		}
		if grid == p.Grid {
			return p, false
		}
		updated := *p
		updated.Grid = grid
		return &updated, true
	})
}
