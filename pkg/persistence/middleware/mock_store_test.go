package middleware_test

import (
	"context"
	"sort"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
// It keeps the pointers it is given so tests can inspect exactly what was written.
type MockStore struct {
	data map[string]*domain.Site
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]*domain.Site),
	}
}

func (s *MockStore) Save(ctx context.Context, sessionID string, site *domain.Site) error {
	s.data[sessionID] = site
	return nil
}

func (s *MockStore) Load(ctx context.Context, sessionID string) (*domain.Site, error) {
	site, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return site, nil
}

func (s *MockStore) Delete(ctx context.Context, sessionID string) error {
	delete(s.data, sessionID)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

var _ ports.SiteStore = (*MockStore)(nil)
