package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/pageforge/pkg/domain"
)

// Logging returns hooks that write one structured record per event.
func Logging(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommit: func(ctx context.Context, e *domain.EditEvent) {
			logger.InfoContext(ctx, "edit_commit",
				"op", e.Op,
				"page_id", e.PageID,
				"node_id", e.NodeID,
				"synchronized", e.Synchronized,
			)
		},
		OnReject: func(ctx context.Context, e *domain.EditEvent) {
			logger.WarnContext(ctx, "edit_reject", "op", e.Op, "node_id", e.NodeID, "err", e.Err)
		},
		OnUndo: func(ctx context.Context, e *domain.HistoryEvent) {
			logger.InfoContext(ctx, "undo", "cursor", e.Cursor, "length", e.Length)
		},
		OnRedo: func(ctx context.Context, e *domain.HistoryEvent) {
			logger.InfoContext(ctx, "redo", "cursor", e.Cursor, "length", e.Length)
		},
	}
}

// Compose merges hook sets. Callbacks run in argument order; nil callbacks are skipped.
func Compose(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var commits, rejects []func(context.Context, *domain.EditEvent)
	var undos, redos []func(context.Context, *domain.HistoryEvent)
	for _, h := range sets {
		commits = appendNonNil(commits, h.OnCommit)
		rejects = appendNonNil(rejects, h.OnReject)
		undos = appendNonNil(undos, h.OnUndo)
		redos = appendNonNil(redos, h.OnRedo)
	}
	return domain.LifecycleHooks{
		OnCommit: fanOut(commits),
		OnReject: fanOut(rejects),
		OnUndo:   fanOut(undos),
		OnRedo:   fanOut(redos),
	}
}

func appendNonNil[E any](fns []func(context.Context, E), fn func(context.Context, E)) []func(context.Context, E) {
	if fn == nil {
		return fns
	}
	return append(fns, fn)
}

func fanOut[E any](fns []func(context.Context, E)) func(context.Context, E) {
	if len(fns) == 0 {
		return nil
	}
	return func(ctx context.Context, e E) {
		for _, fn := range fns {
			fn(ctx, e)
		}
	}
}
