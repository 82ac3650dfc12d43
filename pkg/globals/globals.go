// Package globals keeps the Header and Footer of every page consistent with the site.
//
// Two rules apply after each committed edit:
//
//   - Structural regeneration: when the site name or the ordered (id, name, path) list of
//     pages changes, the content of every top-level Header and Footer is re-rendered
//     from the new document, each page highlighting its own link.
//   - Propagation: when a Header or Footer of the active page was restyled, its style is
//     merged into the same node of every other page, its kind-specific attributes replace
//     theirs, and their content is rendered again.
//
// Regeneration always runs before propagation on the post-edit document.
package globals

import (
	"log/slog"
	"time"

	"github.com/aretw0/pageforge/internal/logging"
	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/markup"
)

// Engine applies the synchronization rules. The zero value is not usable; call New.
type Engine struct {
	now    func() time.Time
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for the copyright year.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		now:    time.Now,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Change describes the edit that produced a document.
type Change struct {
	PageID string
	NodeID string

	// Restyle is set when the style or the attributes of NodeID were edited.
	Restyle bool
}

// Report tells what a Sync did.
type Report struct {
	Regenerated bool
	Propagated  int
}

// Synchronized reports whether any Header or Footer was touched.
func (r Report) Synchronized() bool {
	return r.Regenerated || r.Propagated > 0
}

// Sync applies both rules to next, which was produced from prev by change.
// A nil prev forces regeneration.
func (e *Engine) Sync(prev, next *domain.Site, change Change) (*domain.Site, Report) {
	var report Report
	if prev == nil || prev.SiteName != next.SiteName || domain.NavigationChanged(prev, next) {
		next = e.Regenerate(next)
		report.Regenerated = true
	}
	if change.Restyle && change.PageID == next.ActivePageID {
		next, report.Propagated = e.Propagate(next, change.PageID, change.NodeID)
	}
	if report.Synchronized() {
		e.logger.Debug("globals synchronized",
			"regenerated", report.Regenerated,
			"propagated", report.Propagated,
			"node_id", change.NodeID)
	}
	return next, report
}

// Regenerate renders the content of every top-level Header and Footer again.
// Pages whose content is already up to date are shared with site; if nothing differs
// site itself is returned.
func (e *Engine) Regenerate(site *domain.Site) *domain.Site {
	year := e.now().Year()
	out := site
	for i, page := range site.Pages {
		nav := markup.NavFor(site, page)
		elements, changed := render(page.Elements, nav, year, nil)
		if !changed {
			continue
		}
		updated := *page
		updated.Elements = elements
		out = out.WithPage(i, &updated)
	}
	return out
}

// Propagate copies the style and attributes of the Header or Footer nodeID of page pageID
// onto the node of the same kind of every other page, then renders all of them again.
// It returns the number of pages other than the source that were updated.
func (e *Engine) Propagate(site *domain.Site, pageID, nodeID string) (*domain.Site, int) {
	_, source := site.Page(pageID)
	if source == nil {
		return site, 0
	}
	var node *domain.Node
	for _, el := range source.Elements {
		if el.ID == nodeID {
			node = el
			break
		}
	}
	if node == nil || !node.Kind.IsGlobal() {
		return site, 0
	}

	year := e.now().Year()
	out := site
	count := 0
	for i, page := range site.Pages {
		nav := markup.NavFor(site, page)
		var elements []*domain.Node
		var changed bool
		if page.ID == pageID {
			elements, changed = render(page.Elements, nav, year, func(n *domain.Node) bool { return n.ID == nodeID })
		} else {
			elements, changed = adopt(page.Elements, node, nav, year)
			if changed {
				count++
			}
		}
		if !changed {
			continue
		}
		updated := *page
		updated.Elements = elements
		out = out.WithPage(i, &updated)
	}
	return out, count
}

// render re-renders the top-level globals accepted by match (all of them when nil).
func render(elements []*domain.Node, nav markup.Nav, year int, match func(*domain.Node) bool) ([]*domain.Node, bool) {
	var out []*domain.Node
	for i, el := range elements {
		if !el.Kind.IsGlobal() || (match != nil && !match(el)) {
			continue
		}
		content, _ := markup.Render(el.Kind, el.Attributes, nav, year)
		if content == el.Content {
			continue
		}
		if out == nil {
			out = append([]*domain.Node(nil), elements...)
		}
		updated := *el
		updated.Content = content
		out[i] = &updated
	}
	if out == nil {
		return elements, false
	}
	return out, true
}

// adopt gives the top-level node of the same kind as source the look of source.
// Elements are returned untouched when the node already matches.
func adopt(elements []*domain.Node, source *domain.Node, nav markup.Nav, year int) ([]*domain.Node, bool) {
	for i, el := range elements {
		if el.Kind != source.Kind {
			continue
		}
		updated := *el
		updated.Style = el.Style.Merge(source.Style)
		updated.Attributes = adoptAttributes(el.Attributes, source)
		updated.Content, _ = markup.Render(updated.Kind, updated.Attributes, nav, year)
		if updated.Content == el.Content &&
			updated.Style.Equal(el.Style) &&
			updated.Attributes.Equal(el.Attributes) {
			return elements, false
		}

		out := append([]*domain.Node(nil), elements...)
		out[i] = &updated
		return out, true
	}
	return elements, false
}

// adoptAttributes replaces the kind-specific attributes of attrs with those of source,
// cleared values included. Extra and the AI hint are merged.
func adoptAttributes(attrs domain.Attributes, source *domain.Node) domain.Attributes {
	out := attrs.Clone()
	src := source.Attributes.Clone()
	switch source.Kind {
	case domain.KindHeader:
		out.HeaderAttributes = src.HeaderAttributes
	case domain.KindFooter:
		out.FooterAttributes = src.FooterAttributes
	}
	if src.AIHint != "" {
		out.AIHint = src.AIHint
	}
	for k, v := range src.Extra {
		if out.Extra == nil {
			out.Extra = make(map[string]string, len(src.Extra))
		}
		out.Extra[k] = v
	}
	return out
}
