package domain

import (
	"fmt"
	"strings"
)

// ValidationError describes one broken document invariant.
type ValidationError struct {
	PageID string // Empty for site-level problems
	NodeID string // Empty for page-level problems
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.NodeID != "":
		return fmt.Sprintf("page %q node %q: %s", e.PageID, e.NodeID, e.Reason)
	case e.PageID != "":
		return fmt.Sprintf("page %q: %s", e.PageID, e.Reason)
	default:
		return e.Reason
	}
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap lets errors.Is match ErrInvalidDocument.
func (e *AggregateError) Unwrap() error {
	return ErrInvalidDocument
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}

// Validate checks every structural invariant of a site document:
// unique page ids, rooted and unique paths, a valid active page pointer, unique node ids per page,
// known kinds, children only under containers, and at most one pinned Header/Footer.
func Validate(site *Site) error {
	if site == nil {
		return &AggregateError{Errors: []error{&ValidationError{Reason: "document is nil"}}}
	}

	var errs []error
	add := func(pageID, nodeID, format string, args ...any) {
		errs = append(errs, &ValidationError{PageID: pageID, NodeID: nodeID, Reason: fmt.Sprintf(format, args...)})
	}

	if site.Sealed != "" {
		add("", "", "document is sealed and must be opened by its store first")
	}

	pageIDs := make(map[string]bool, len(site.Pages))
	paths := make(map[string]string, len(site.Pages))
	for _, page := range site.Pages {
		if page == nil {
			add("", "", "nil page")
			continue
		}
		if page.ID == "" {
			add("", "", "page %q has an empty id", page.Name)
		} else if pageIDs[page.ID] {
			add(page.ID, "", "duplicate page id")
		}
		pageIDs[page.ID] = true

		if !strings.HasPrefix(page.Path, "/") {
			add(page.ID, "", "path %q must begin with /", page.Path)
		}
		if owner, ok := paths[page.Path]; ok {
			add(page.ID, "", "path %q is already used by page %q", page.Path, owner)
		} else {
			paths[page.Path] = page.ID
		}
		validateElements(page, add)
	}

	if len(site.Pages) > 0 && !pageIDs[site.ActivePageID] {
		add("", "", "active page %q does not exist", site.ActivePageID)
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func validateElements(page *Page, add func(pageID, nodeID, format string, args ...any)) {
	seen := make(map[string]bool)

	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			if n == nil {
				add(page.ID, "", "nil node")
				continue
			}
			if n.ID == "" {
				add(page.ID, "", "node of kind %s has an empty id", n.Kind)
			} else if seen[n.ID] {
				add(page.ID, n.ID, "duplicate node id")
			}
			seen[n.ID] = true

			if !n.Kind.Valid() {
				add(page.ID, n.ID, "unknown kind %q", n.Kind)
			}
			if n.Kind.IsGlobal() && depth > 0 {
				add(page.ID, n.ID, "%s must be a top-level node", n.Kind)
			}
			if len(n.Children) > 0 && !n.AcceptsChildren() {
				add(page.ID, n.ID, "%s cannot have children", n.Kind)
			}
			walk(n.Children, depth+1)
		}
	}
	walk(page.Elements, 0)

	headers, footers := 0, 0
	last := len(page.Elements) - 1
	for i, el := range page.Elements {
		if el == nil {
			continue
		}
		switch el.Kind {
		case KindHeader:
			headers++
			if i != 0 {
				add(page.ID, el.ID, "header must be the first element (found at %d)", i)
			}
		case KindFooter:
			footers++
			if i != last {
				add(page.ID, el.ID, "footer must be the last element (found at %d)", i)
			}
		}
	}
	if headers > 1 {
		add(page.ID, "", "page has %d headers", headers)
	}
	if footers > 1 {
		add(page.ID, "", "page has %d footers", footers)
	}
}
