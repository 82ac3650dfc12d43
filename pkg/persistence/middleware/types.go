package middleware

import "github.com/aretw0/pageforge/pkg/ports"

// Middleware allows wrapping a SiteStore to add behavior.
type Middleware func(ports.SiteStore) ports.SiteStore

// Chain applies middlewares so that the first one listed sees calls first.
func Chain(store ports.SiteStore, mws ...Middleware) ports.SiteStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
