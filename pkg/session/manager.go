package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/pageforge/internal/logging"
	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/editor"
	"github.com/aretw0/pageforge/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Update describes the effect of an operation run through Manager.Do.
type Update struct {
	// Previous is nil when the session was created by the call.
	Previous *domain.Site
	Current  *domain.Site
}

// Changed reports whether the operation produced a new document.
func (u Update) Changed() bool { return u.Previous != u.Current }

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.SiteStore

	mu       sync.Mutex                 // guards locks and sessions
	locks    map[string]*lockEntry      // active per-session locks
	sessions map[string]*editor.Session // live sessions, keyed by id

	locker     ports.DistributedLocker
	lockTTL    time.Duration
	editorOpts []editor.Option
	logger     *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
//
// With a locker the store is the source of truth: every call reopens the document from
// the store, so undo history does not outlive a single call.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks (default DefaultLockTTL).
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithEditorOptions sets the options every new editing session is built with.
func WithEditorOptions(opts ...editor.Option) Option {
	return func(m *Manager) {
		m.editorOpts = append(m.editorOpts, opts...)
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Session Manager with the given persistence store.
func NewManager(store ports.SiteStore, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		locks:    make(map[string]*lockEntry),
		sessions: make(map[string]*editor.Session),
		lockTTL:  DefaultLockTTL,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

func (m *Manager) cached(sessionID string) *editor.Session {
	if m.locker != nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[sessionID]
}

func (m *Manager) remember(sessionID string, s *editor.Session) {
	if m.locker != nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = s
}

// open returns the live session, reopening it from the store when it is not cached.
// Callers must hold the session lock.
func (m *Manager) open(ctx context.Context, sessionID string) (*editor.Session, error) {
	if s := m.cached(sessionID); s != nil {
		return s, nil
	}
	site, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s, err := editor.Open(site, m.editorOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open session %q: %w", sessionID, err)
	}
	m.remember(sessionID, s)
	return s, nil
}

// Do runs fn against the session, creating it with the default document when it does not
// exist yet. The document is saved when fn (or the creation) replaced it, even if fn
// returned an error.
func (m *Manager) Do(ctx context.Context, sessionID string, fn func(context.Context, *editor.Session) error) (Update, error) {
	var update Update
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		s, err := m.open(ctx, sessionID)
		switch {
		case err == nil:
			update.Previous = s.Document()
		case errors.Is(err, domain.ErrSessionNotFound):
			if s, err = editor.New(m.editorOpts...); err != nil {
				return err
			}
			m.remember(sessionID, s)
		default:
			return err
		}

		fnErr := fn(ctx, s)
		update.Current = s.Document()

		if update.Changed() {
			if err := m.store.Save(ctx, sessionID, update.Current); err != nil {
				return errors.Join(fnErr, fmt.Errorf("failed to save session: %w", err))
			}
			m.logger.Debug("session saved", "session_id", sessionID, "created", update.Previous == nil)
		}
		return fnErr
	})
	return update, err
}

// Import replaces the session's document with site, dropping its history.
func (m *Manager) Import(ctx context.Context, sessionID string, site *domain.Site) (*domain.Site, error) {
	var doc *domain.Site
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		s, err := editor.Open(site, m.editorOpts...)
		if err != nil {
			return err
		}
		doc = s.Document()
		if err := m.store.Save(ctx, sessionID, doc); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		m.remember(sessionID, s)
		return nil
	})
	return doc, err
}

// Load returns the current document of an existing session.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Site, error) {
	var doc *domain.Site
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		s, err := m.open(ctx, sessionID)
		if err != nil {
			return err
		}
		doc = s.Document()
		return nil
	})
	return doc, err
}

// Delete removes the session from the store and from memory.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.Evict(sessionID)
		return m.store.Delete(ctx, sessionID)
	})
}

// Evict drops the in-memory session, including its undo history.
// The persisted document is kept.
func (m *Manager) Evict(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying site store.
func (m *Manager) Store() ports.SiteStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
