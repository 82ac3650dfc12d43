package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSiteStoreContract runs a suite of tests to verify that a SiteStore implementation
// adheres to the defined interface contract.
func RunSiteStoreContract(t *testing.T, store SiteStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		site := contractSite(t)

		err := store.Save(ctx, sessionID, site)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, site.SiteName, loaded.SiteName)
		assert.Equal(t, site.ActivePageID, loaded.ActivePageID)
		require.Len(t, loaded.Pages, len(site.Pages))
		assert.Equal(t, site.PageRefs(), loaded.PageRefs())

		header := loaded.Pages[0].Elements[0]
		assert.Equal(t, domain.KindHeader, header.Kind)
		assert.Equal(t, site.Pages[0].Elements[0].Content, header.Content)
		assert.Equal(t, "star", header.Attributes.LogoIconKey)

		footer := loaded.Pages[0].Elements[len(loaded.Pages[0].Elements)-1]
		require.NotNil(t, footer.Attributes.CopyrightText)
		assert.Equal(t, "Contract Inc.", *footer.Attributes.CopyrightText)

		assert.NoError(t, domain.Validate(loaded))
	})

	t.Run("Load Returns Independent Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.SiteName = "mutated"
		loaded.Pages[0].Elements[0].Style["color"] = "mutated"

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", again.SiteName)
		assert.NotEqual(t, "mutated", again.Pages[0].Elements[0].Style["color"])
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		site := contractSite(t)
		site.SiteName = "Overwritten"
		require.NoError(t, store.Save(ctx, sessionID, site))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "Overwritten", loaded.SiteName)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, contractSite(t))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, id1, contractSite(t)))
		require.NoError(t, store.Save(ctx, id2, contractSite(t)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

// contractSite builds a default document with a styled header and a custom copyright.
func contractSite(t *testing.T) *domain.Site {
	t.Helper()
	n := 0
	f := factory.New(factory.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("contract-%d", n)
	}))
	site, err := f.Site()
	require.NoError(t, err)

	page := site.Pages[0]
	header := page.Elements[0]
	header.Attributes.LogoIconKey = "star"
	header.Style["color"] = "navy"
	footer := page.Elements[len(page.Elements)-1]
	text := "Contract Inc."
	footer.Attributes.CopyrightText = &text
	return site
}
