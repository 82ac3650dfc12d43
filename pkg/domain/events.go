package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCommit EventType = "commit"
	EventUndo   EventType = "undo"
	EventRedo   EventType = "redo"
	EventReject EventType = "reject"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// EditEvent describes an operation applied to (or rejected by) an editing session.
type EditEvent struct {
	EventBase
	Op     string `json:"op"`
	PageID string `json:"page_id,omitempty"`
	NodeID string `json:"node_id,omitempty"`

	// Synchronized is set when header/footer content was regenerated or propagated.
	Synchronized bool  `json:"synchronized,omitempty"`
	Err          error `json:"-"`
}

// HistoryEvent describes an undo or redo step.
type HistoryEvent struct {
	EventBase
	Cursor int `json:"cursor"`
	Length int `json:"length"`
}

// LifecycleHooks defines callbacks for editor observability.
type LifecycleHooks struct {
	OnCommit func(context.Context, *EditEvent)
	OnReject func(context.Context, *EditEvent)
	OnUndo   func(context.Context, *HistoryEvent)
	OnRedo   func(context.Context, *HistoryEvent)
}
