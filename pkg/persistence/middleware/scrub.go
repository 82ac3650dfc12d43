package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/ports"
	"github.com/aretw0/pageforge/pkg/tree"
)

// Masked replaces the value of every scrubbed attribute.
const Masked = "***"

// ScrubConfig selects what is removed from documents before they are persisted.
type ScrubConfig struct {
	// Patterns match keys of free-form node attributes whose values get masked.
	Patterns []string

	// DropAIHints clears the image-generation hints attached to nodes.
	DropAIHints bool
}

type scrubMiddleware struct {
	next        ports.SiteStore
	patterns    []*regexp.Regexp
	dropAIHints bool
}

// NewScrubMiddleware creates a middleware that masks sensitive attribute values on Save.
// It panics if a pattern does not compile.
func NewScrubMiddleware(config ScrubConfig) Middleware {
	patterns := make([]*regexp.Regexp, len(config.Patterns))
	for i, p := range config.Patterns {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.SiteStore) ports.SiteStore {
		return &scrubMiddleware{next: next, patterns: patterns, dropAIHints: config.DropAIHints}
	}
}

func (m *scrubMiddleware) Save(ctx context.Context, sessionID string, site *domain.Site) error {
	// The caller keeps using site, so only the clone is touched.
	cloned := site.Clone()
	for _, page := range cloned.Pages {
		tree.Walk(page.Elements, func(n *domain.Node, _ int) bool {
			m.scrub(n)
			return true
		})
	}
	return m.next.Save(ctx, sessionID, cloned)
}

func (m *scrubMiddleware) scrub(n *domain.Node) {
	if m.dropAIHints {
		n.Attributes.AIHint = ""
	}
	for key := range n.Attributes.Extra {
		for _, re := range m.patterns {
			if re.MatchString(key) {
				n.Attributes.Extra[key] = Masked
				break
			}
		}
	}
}

func (m *scrubMiddleware) Load(ctx context.Context, sessionID string) (*domain.Site, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *scrubMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *scrubMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
