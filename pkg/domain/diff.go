package domain

// SiteDiff represents the changes between two site documents.
// It is designed to be serialized to JSON for partial updates on the client.
type SiteDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	SiteName     *string `json:"site_name,omitempty"`
	ActivePageID *string `json:"active_page_id,omitempty"`

	// Navigation is set when the ordered (id, name, path) page list changed.
	Navigation bool `json:"navigation,omitempty"`

	AddedPages   []string `json:"added_pages,omitempty"`
	RemovedPages []string `json:"removed_pages,omitempty"`

	// ChangedPages lists pages present in both documents whose value differs.
	// Detection relies on structural sharing: an untouched page keeps its pointer.
	ChangedPages []string `json:"changed_pages,omitempty"`
}

// Diff calculates the difference between oldSite and newSite.
// If oldSite is nil, it returns a diff representing the entire newSite (initial load).
// It returns nil when nothing changed.
func Diff(sessionID string, oldSite, newSite *Site) *SiteDiff {
	if newSite == nil {
		return nil
	}

	diff := &SiteDiff{SessionID: sessionID}

	if oldSite == nil || oldSite.SiteName != newSite.SiteName {
		diff.SiteName = &newSite.SiteName
	}
	if oldSite == nil || oldSite.ActivePageID != newSite.ActivePageID {
		diff.ActivePageID = &newSite.ActivePageID
	}
	diff.Navigation = NavigationChanged(oldSite, newSite)

	oldPages := make(map[string]*Page)
	if oldSite != nil {
		for _, p := range oldSite.Pages {
			oldPages[p.ID] = p
		}
	}
	for _, p := range newSite.Pages {
		prev, ok := oldPages[p.ID]
		switch {
		case !ok:
			diff.AddedPages = append(diff.AddedPages, p.ID)
		case prev != p:
			diff.ChangedPages = append(diff.ChangedPages, p.ID)
		}
		delete(oldPages, p.ID)
	}
	if oldSite != nil {
		for _, p := range oldSite.Pages {
			if _, gone := oldPages[p.ID]; gone {
				diff.RemovedPages = append(diff.RemovedPages, p.ID)
			}
		}
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// NavigationChanged reports whether the ordered list of (id, name, path) triples differs.
func NavigationChanged(oldSite, newSite *Site) bool {
	if oldSite == nil || newSite == nil {
		return oldSite != newSite
	}
	if len(oldSite.Pages) != len(newSite.Pages) {
		return true
	}
	for i, p := range newSite.Pages {
		if oldSite.Pages[i].Ref() != p.Ref() {
			return true
		}
	}
	return false
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SiteDiff) IsEmpty() bool {
	return d.SiteName == nil &&
		d.ActivePageID == nil &&
		!d.Navigation &&
		len(d.AddedPages) == 0 &&
		len(d.RemovedPages) == 0 &&
		len(d.ChangedPages) == 0
}
