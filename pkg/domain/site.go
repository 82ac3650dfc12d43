package domain

// Site is the aggregate document edited by a session.
type Site struct {
	Pages        []*Page `json:"pages" yaml:"pages"`
	ActivePageID string  `json:"activePageId" yaml:"activePageId"`
	SiteName     string  `json:"siteName" yaml:"siteName"`

	// Sealed carries an opaque payload written by store middleware (e.g. encryption)
	// in place of the real document. It is empty on every document the editor sees.
	Sealed string `json:"sealed,omitempty" yaml:"sealed,omitempty"`
}

// Page returns the index and page with the given id, or -1 and nil.
func (s *Site) Page(id string) (int, *Page) {
	if s == nil {
		return -1, nil
	}
	for i, p := range s.Pages {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

// ActivePage returns the page being edited, or nil.
func (s *Site) ActivePage() *Page {
	_, p := s.Page(s.ActivePageID)
	return p
}

// PageRefs returns the ordered navigation triples of every page.
func (s *Site) PageRefs() []PageRef {
	refs := make([]PageRef, len(s.Pages))
	for i, p := range s.Pages {
		refs[i] = p.Ref()
	}
	return refs
}

// WithPage returns a shallow copy of s where the page at index i is replaced by p.
// Other pages are shared with s.
func (s *Site) WithPage(i int, p *Page) *Site {
	out := *s
	out.Pages = make([]*Page, len(s.Pages))
	copy(out.Pages, s.Pages)
	out.Pages[i] = p
	return &out
}

// Clone returns a deep copy of s.
func (s *Site) Clone() *Site {
	if s == nil {
		return nil
	}
	out := *s
	out.Pages = make([]*Page, len(s.Pages))
	for i, p := range s.Pages {
		out.Pages[i] = p.Clone()
	}
	return &out
}
