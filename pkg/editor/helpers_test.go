package editor_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/editor"
	"github.com/aretw0/pageforge/pkg/factory"
	"github.com/aretw0/pageforge/pkg/globals"
	"github.com/aretw0/pageforge/pkg/tree"
	"github.com/stretchr/testify/require"
)

var clock = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }

func testFactory() *factory.Factory {
	n := 0
	return factory.New(
		factory.WithClock(clock),
		factory.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func testOptions(extra ...editor.Option) []editor.Option {
	return append([]editor.Option{
		editor.WithFactory(testFactory()),
		editor.WithSynchronizer(globals.New(globals.WithClock(clock))),
		editor.WithClock(clock),
	}, extra...)
}

// newSession starts on the default two-page document.
func newSession(t *testing.T, extra ...editor.Option) *editor.Session {
	t.Helper()
	s, err := editor.New(testOptions(extra...)...)
	require.NoError(t, err)
	return s
}

// singlePageSession starts on a document with only "Главная" at "/".
func singlePageSession(t *testing.T) *editor.Session {
	t.Helper()
	f := factory.New(factory.WithClock(clock), factory.WithIDGenerator(func() string { return "seed" }))
	page, err := f.Page(nil, "Главная", "/")
	require.NoError(t, err)

	// Give the three seed nodes distinct ids.
	for i, el := range page.Elements {
		el.ID = fmt.Sprintf("seed-%d", i)
	}
	site := &domain.Site{SiteName: domain.DefaultSiteName, Pages: []*domain.Page{page}, ActivePageID: page.ID}

	s, err := editor.Open(site, testOptions()...)
	require.NoError(t, err)
	return s
}

func global(p *domain.Page, kind domain.Kind) *domain.Node {
	_, n := p.Global(kind)
	return n
}

func navLinkCount(content string) int {
	return strings.Count(content, "hover:underline")
}

// body returns the simple Container of the active default page.
func body(t *testing.T, s *editor.Session) *domain.Node {
	t.Helper()
	page := s.ActivePage()
	require.NotNil(t, page)
	for _, el := range page.Elements {
		if el.Kind == domain.KindContainer {
			return el
		}
	}
	t.Fatal("no container on active page")
	return nil
}

func topLevelIDs(p *domain.Page) []string {
	ids := make([]string, len(p.Elements))
	for i, el := range p.Elements {
		ids[i] = el.ID
	}
	return ids
}

func assertInvariants(t *testing.T, site *domain.Site) {
	t.Helper()
	require.NoError(t, domain.Validate(site))
	for _, p := range site.Pages {
		seen := map[string]bool{}
		tree.Walk(p.Elements, func(n *domain.Node, _ int) bool {
			require.False(t, seen[n.ID], "duplicate id %s on page %s", n.ID, p.ID)
			seen[n.ID] = true
			return true
		})
	}
}
