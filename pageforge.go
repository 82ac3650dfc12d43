package pageforge

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/pageforge/internal/logging"
	"github.com/aretw0/pageforge/pkg/adapters/memory"
	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/editor"
	"github.com/aretw0/pageforge/pkg/factory"
	"github.com/aretw0/pageforge/pkg/globals"
	"github.com/aretw0/pageforge/pkg/persistence/middleware"
	"github.com/aretw0/pageforge/pkg/ports"
	"github.com/aretw0/pageforge/pkg/session"
)

// Version is the release of this module.
//
//go:embed VERSION
var Version string

// Engine is the high-level entry point for the Pageforge library.
// It wires the factory, the synchronization engine and a session manager over a store.
type Engine struct {
	sessions     *session.Manager
	store        ports.SiteStore
	middlewares  []middleware.Middleware
	locker       ports.DistributedLocker
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
	historyLimit int
	now          func() time.Time
	newID        factory.IDGenerator
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore sets where documents are persisted (default: in memory).
func WithStore(store ports.SiteStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithMiddleware wraps the store. The first middleware sees calls first.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(e *Engine) {
		e.middlewares = append(e.middlewares, mws...)
	}
}

// WithLocker enables distributed locking of sessions.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHistoryLimit bounds the undo timeline of every session.
func WithHistoryLimit(limit int) Option {
	return func(e *Engine) {
		e.historyLimit = limit
	}
}

// WithClock sets the clock used for copyright years and event timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator sets how node and page ids are produced.
func WithIDGenerator(gen factory.IDGenerator) Option {
	return func(e *Engine) {
		e.newID = gen
	}
}

// New initializes a new Pageforge Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		historyLimit: domain.MaxHistory,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.historyLimit < 1 {
		return nil, fmt.Errorf("history limit must be positive, got %d", eng.historyLimit)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	eng.store = middleware.Chain(eng.store, eng.middlewares...)

	managerOpts := []session.Option{
		session.WithLogger(eng.logger),
		session.WithEditorOptions(eng.editorOptions()...),
	}
	if eng.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(eng.locker))
	}
	eng.sessions = session.NewManager(eng.store, managerOpts...)
	return eng, nil
}

func (e *Engine) editorOptions() []editor.Option {
	factoryOpts := []factory.Option{factory.WithClock(e.now)}
	if e.newID != nil {
		factoryOpts = append(factoryOpts, factory.WithIDGenerator(e.newID))
	}
	return []editor.Option{
		editor.WithFactory(factory.New(factoryOpts...)),
		editor.WithSynchronizer(globals.New(globals.WithClock(e.now), globals.WithLogger(e.logger))),
		editor.WithHistoryLimit(e.historyLimit),
		editor.WithLifecycleHooks(e.hooks),
		editor.WithLogger(e.logger),
		editor.WithClock(e.now),
	}
}

// NewSession starts a standalone, unpersisted editing session on the default document.
func (e *Engine) NewSession() (*editor.Session, error) {
	return editor.New(e.editorOptions()...)
}

// OpenSession starts a standalone, unpersisted editing session on site.
func (e *Engine) OpenSession(site *domain.Site) (*editor.Session, error) {
	return editor.Open(site, e.editorOptions()...)
}

// Execute applies cmd to the persisted session sessionID, creating it if needed.
func (e *Engine) Execute(ctx context.Context, sessionID string, cmd editor.Command) (editor.Result, *domain.Site, error) {
	var result editor.Result
	update, err := e.sessions.Do(ctx, sessionID, func(ctx context.Context, s *editor.Session) error {
		var err error
		result, err = s.Execute(ctx, cmd)
		return err
	})
	return result, update.Current, err
}

// Do runs fn against the persisted session sessionID, creating it if needed.
func (e *Engine) Do(ctx context.Context, sessionID string, fn func(context.Context, *editor.Session) error) (session.Update, error) {
	return e.sessions.Do(ctx, sessionID, fn)
}

// Load returns the current document of a persisted session.
func (e *Engine) Load(ctx context.Context, sessionID string) (*domain.Site, error) {
	return e.sessions.Load(ctx, sessionID)
}

// Import stores site as the document of sessionID.
func (e *Engine) Import(ctx context.Context, sessionID string, site *domain.Site) (*domain.Site, error) {
	return e.sessions.Import(ctx, sessionID, site)
}

// Delete removes a persisted session.
func (e *Engine) Delete(ctx context.Context, sessionID string) error {
	return e.sessions.Delete(ctx, sessionID)
}

// List returns the ids of the persisted sessions.
func (e *Engine) List(ctx context.Context) ([]string, error) {
	return e.sessions.List(ctx)
}

// Export renders the document of sessionID with exporter.
func (e *Engine) Export(ctx context.Context, w io.Writer, sessionID string, exporter ports.Exporter) error {
	site, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	return exporter.Export(ctx, w, site)
}

// Sessions returns the session manager, e.g. to mount transport adapters on it.
func (e *Engine) Sessions() *session.Manager {
	return e.sessions
}

// Store returns the (middleware-wrapped) store.
func (e *Engine) Store() ports.SiteStore {
	return e.store
}
