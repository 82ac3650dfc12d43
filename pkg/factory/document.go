package factory

import (
	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/globals"
)

// Pages of a freshly created document.
var defaultPages = []struct{ Name, Path string }{
	{"Главная", "/"},
	{"О проекте", "/about"},
}

// Inherit returns overrides that reproduce the look of the first top-level node of kind
// found on any page of site, or nil when there is none.
func Inherit(site *domain.Site, kind domain.Kind) *Overrides {
	if site == nil {
		return nil
	}
	for _, p := range site.Pages {
		if _, n := p.Global(kind); n != nil {
			return &Overrides{Style: n.Style.Clone(), Attributes: n.Attributes.Clone()}
		}
	}
	return nil
}

// Page builds a page holding a Header, an empty simple Container and a Footer.
// Header and Footer copy the look of the existing ones in site and their navigation
// already lists the new page.
func (f *Factory) Page(site *domain.Site, name, path string) (*domain.Page, error) {
	page := &domain.Page{
		ID:          f.newID(),
		Name:        name,
		Path:        path,
		CanvasStyle: domain.DefaultCanvasStyle(),
		Grid:        domain.DefaultGridSettings(),
	}

	ctx := &domain.Site{SiteName: domain.DefaultSiteName}
	if site != nil {
		ctx.SiteName = site.SiteName
		ctx.Pages = append(ctx.Pages, site.Pages...)
	}
	ctx.Pages = append(ctx.Pages, page)

	header, err := f.Create(domain.KindHeader, ctx, path, Inherit(site, domain.KindHeader))
	if err != nil {
		return nil, err
	}
	body, err := f.Layout(domain.LayoutSimple, ctx, path)
	if err != nil {
		return nil, err
	}
	footer, err := f.Create(domain.KindFooter, ctx, path, Inherit(site, domain.KindFooter))
	if err != nil {
		return nil, err
	}
	page.Elements = []*domain.Node{header, body, footer}
	return page, nil
}

// Site builds the default two-page document, the first page being active.
func (f *Factory) Site() (*domain.Site, error) {
	site := &domain.Site{SiteName: domain.DefaultSiteName}
	for _, def := range defaultPages {
		page, err := f.Page(site, def.Name, def.Path)
		if err != nil {
			return nil, err
		}
		site = &domain.Site{SiteName: site.SiteName, Pages: append(site.Pages[:len(site.Pages):len(site.Pages)], page)}
	}
	site.ActivePageID = site.Pages[0].ID

	// Earlier pages were rendered before the later ones existed.
	return globals.New(globals.WithClock(f.now)).Regenerate(site), nil
}
