package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// Illegal structural requests, rejected by the editor before any tree is touched.
var (
	ErrDuplicateGlobal   = errors.New("page already has a node of this kind")
	ErrGlobalNotTopLevel = errors.New("header and footer can only be top-level nodes")
	ErrNotContainer      = errors.New("parent node does not accept children")
	ErrCopyGlobal        = errors.New("header and footer cannot be copied")
)

var (
	ErrUnknownKind      = errors.New("unknown node kind")
	ErrInvalidPath      = errors.New("invalid page path")
	ErrInvalidAttribute = errors.New("invalid attribute")
	ErrInvalidDocument  = errors.New("invalid site document")
	ErrUnknownOperation = errors.New("unknown operation")
)
