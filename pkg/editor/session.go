package editor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/pageforge/internal/logging"
	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/factory"
	"github.com/aretw0/pageforge/pkg/globals"
	"github.com/aretw0/pageforge/pkg/history"
)

// Session is an editing session over one site document.
type Session struct {
	factory      *factory.Factory
	sync         *globals.Engine
	timeline     *history.Timeline[*domain.Site]
	historyLimit int
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
	now          func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithFactory sets the node factory. Use it to control ids and the clock in tests.
func WithFactory(f *factory.Factory) Option {
	return func(s *Session) {
		s.factory = f
	}
}

// WithSynchronizer sets the globals engine.
func WithSynchronizer(e *globals.Engine) Option {
	return func(s *Session) {
		s.sync = e
	}
}

// WithHistoryLimit bounds the undo/redo timeline (default domain.MaxHistory).
func WithHistoryLimit(limit int) Option {
	return func(s *Session) {
		s.historyLimit = limit
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithClock sets the clock used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

func configure(opts []Option) *Session {
	s := &Session{
		historyLimit: domain.MaxHistory,
		logger:       logging.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.factory == nil {
		s.factory = factory.New()
	}
	if s.sync == nil {
		s.sync = globals.New(globals.WithLogger(s.logger))
	}
	return s
}

// New starts a session on the default two-page document.
func New(opts ...Option) (*Session, error) {
	s := configure(opts)
	site, err := s.factory.Site()
	if err != nil {
		return nil, fmt.Errorf("failed to build default document: %w", err)
	}
	s.timeline = history.New(site, history.WithLimit(s.historyLimit))
	return s, nil
}

// Open starts a session on a previously persisted document.
//
// A dangling active page pointer is repaired by selecting the first page, and stale
// Header/Footer content is rendered again. Neither adjustment creates an undo point.
// The repaired document must satisfy domain.Validate.
func Open(site *domain.Site, opts ...Option) (*Session, error) {
	if site == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrInvalidDocument)
	}
	s := configure(opts)
	s.timeline = history.New(site, history.WithLimit(s.historyLimit))

	repaired := site
	if len(site.Pages) > 0 && site.ActivePage() == nil {
		s.logger.Debug("repairing active page", "active_page_id", site.ActivePageID, "page_id", site.Pages[0].ID)
		fixed := *site
		fixed.ActivePageID = site.Pages[0].ID
		repaired = &fixed
	}
	if err := domain.Validate(repaired); err != nil {
		return nil, err
	}
	repaired = s.sync.Regenerate(repaired)
	if repaired != site {
		s.timeline.CommitSkippingHistory(repaired)
	}
	return s, nil
}

// Document returns the current document. It must be treated as read-only.
func (s *Session) Document() *domain.Site {
	return s.timeline.Current()
}

// ActivePage returns the page being edited, or nil when the document has no pages.
func (s *Session) ActivePage() *domain.Page {
	return s.Document().ActivePage()
}

func (s *Session) CanUndo() bool { return s.timeline.CanUndo() }

func (s *Session) CanRedo() bool { return s.timeline.CanRedo() }

// HistoryLen returns the number of entries in the timeline.
func (s *Session) HistoryLen() int { return s.timeline.Len() }

// Undo restores the previous document. It reports false at the earliest entry.
func (s *Session) Undo(ctx context.Context) bool {
	if _, ok := s.timeline.Undo(); !ok {
		return false
	}
	s.logger.Debug("undo", "cursor", s.timeline.Cursor(), "length", s.timeline.Len())
	if s.hooks.OnUndo != nil {
		s.hooks.OnUndo(ctx, s.historyEvent(domain.EventUndo))
	}
	return true
}

// Redo re-applies the next document. It reports false at the latest entry.
func (s *Session) Redo(ctx context.Context) bool {
	if _, ok := s.timeline.Redo(); !ok {
		return false
	}
	s.logger.Debug("redo", "cursor", s.timeline.Cursor(), "length", s.timeline.Len())
	if s.hooks.OnRedo != nil {
		s.hooks.OnRedo(ctx, s.historyEvent(domain.EventRedo))
	}
	return true
}

func (s *Session) historyEvent(t domain.EventType) *domain.HistoryEvent {
	return &domain.HistoryEvent{
		EventBase: domain.EventBase{Timestamp: s.now(), Type: t},
		Cursor:    s.timeline.Cursor(),
		Length:    s.timeline.Len(),
	}
}

// Result describes the outcome of a mutation.
type Result struct {
	// Changed is false when the request was a no-op and nothing was recorded.
	Changed bool `json:"changed"`

	// NodeID is the node created by AddNode or CopyNode.
	NodeID string `json:"nodeId,omitempty"`

	// PageID is the page created by AddPage.
	PageID string `json:"pageId,omitempty"`

	// Synchronized is set when Header/Footer content was regenerated or propagated.
	Synchronized bool `json:"synchronized,omitempty"`
}

// edit describes a pending mutation.
type edit struct {
	op     string
	pageID string
	nodeID string

	// restyle marks style/attribute edits, which propagate across pages.
	restyle bool
}

// commit synchronizes next and records it as a new history entry.
func (s *Session) commit(ctx context.Context, e edit, next *domain.Site) Result {
	prev := s.Document()
	next, report := s.sync.Sync(prev, next, globals.Change{PageID: e.pageID, NodeID: e.nodeID, Restyle: e.restyle})
	s.timeline.Commit(next)

	s.logger.Debug("commit", "op", e.op, "page_id", e.pageID, "node_id", e.nodeID, "synchronized", report.Synchronized())
	if s.hooks.OnCommit != nil {
		s.hooks.OnCommit(ctx, &domain.EditEvent{
			EventBase:    domain.EventBase{Timestamp: s.now(), Type: domain.EventCommit},
			Op:           e.op,
			PageID:       e.pageID,
			NodeID:       e.nodeID,
			Synchronized: report.Synchronized(),
		})
	}
	return Result{Changed: true, Synchronized: report.Synchronized()}
}

// reject reports an illegal request. Nothing is recorded.
func (s *Session) reject(ctx context.Context, e edit, err error) (Result, error) {
	s.logger.Debug("rejected", "op", e.op, "page_id", e.pageID, "node_id", e.nodeID, "err", err)
	if s.hooks.OnReject != nil {
		s.hooks.OnReject(ctx, &domain.EditEvent{
			EventBase: domain.EventBase{Timestamp: s.now(), Type: domain.EventReject},
			Op:        e.op,
			PageID:    e.pageID,
			NodeID:    e.nodeID,
			Err:       err,
		})
	}
	return Result{}, err
}

// noop logs a request that did not change the document.
func (s *Session) noop(e edit) Result {
	s.logger.Debug("no-op", "op", e.op, "page_id", e.pageID, "node_id", e.nodeID)
	return Result{}
}

// updateActive rebuilds the active page's elements through fn and commits the result.
func (s *Session) updateActive(ctx context.Context, e edit, fn func([]*domain.Node) ([]*domain.Node, bool)) Result {
	site := s.Document()
	i, page := site.Page(site.ActivePageID)
	if page == nil {
		return s.noop(e)
	}
	e.pageID = page.ID

	elements, changed := fn(page.Elements)
	if !changed {
		return s.noop(e)
	}
	updated := *page
	updated.Elements = elements
	return s.commit(ctx, e, site.WithPage(i, &updated))
}

// updatePage rebuilds the page pageID through fn and commits the result.
func (s *Session) updatePage(ctx context.Context, e edit, pageID string, fn func(*domain.Page) (*domain.Page, bool)) Result {
	site := s.Document()
	i, page := site.Page(pageID)
	if page == nil {
		return s.noop(e)
	}
	e.pageID = page.ID

	updated, changed := fn(page)
	if !changed {
		return s.noop(e)
	}
	return s.commit(ctx, e, site.WithPage(i, updated))
}
