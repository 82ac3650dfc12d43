package ports

import (
	"context"

	"github.com/aretw0/pageforge/pkg/domain"
)

// SiteStore persists site documents.
// Implementations must not retain or modify the documents they are given: the editor
// shares unchanged subtrees between successive versions.
type SiteStore interface {
	// Save persists the document for a given session ID.
	Save(ctx context.Context, sessionID string, site *domain.Site) error

	// Load retrieves the document for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Site, error)

	// Delete removes the document for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
