package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/pageforge/pkg/domain"
)

// Store implements ports.SiteStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Site
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Site),
	}
}

// Save keeps a deep copy of site, so later edits of the caller's value are not seen.
func (s *Store) Save(ctx context.Context, sessionID string, site *domain.Site) error {
	copied := site.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = copied
	return nil
}

// Load returns a deep copy of the stored document.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	site, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return site.Clone(), nil
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns stored session IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	slices.Sort(sessions)
	return sessions, nil
}
