package domain_test

import (
	"testing"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSite() *domain.Site {
	return &domain.Site{
		SiteName:     "PagesMi",
		ActivePageID: "p1",
		Pages: []*domain.Page{{
			ID:   "p1",
			Name: "Главная",
			Path: "/",
			Elements: []*domain.Node{
				{ID: "h", Kind: domain.KindHeader},
				{ID: "c", Kind: domain.KindContainer, Children: []*domain.Node{
					{ID: "t", Kind: domain.KindParagraph},
				}},
				{ID: "f", Kind: domain.KindFooter},
			},
		}},
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, domain.Validate(validSite()))
	assert.NoError(t, domain.Validate(&domain.Site{}), "an empty document is valid")
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *domain.Site)
	}{
		{"duplicate node id", func(s *domain.Site) {
			s.Pages[0].Elements[1].Children[0].ID = "h"
		}},
		{"header not first", func(s *domain.Site) {
			els := s.Pages[0].Elements
			els[0], els[1] = els[1], els[0]
		}},
		{"footer not last", func(s *domain.Site) {
			els := s.Pages[0].Elements
			els[1], els[2] = els[2], els[1]
		}},
		{"nested header", func(s *domain.Site) {
			c := s.Pages[0].Elements[1]
			c.Children = append(c.Children, &domain.Node{ID: "h2", Kind: domain.KindHeader})
		}},
		{"children under paragraph", func(s *domain.Site) {
			p := s.Pages[0].Elements[1].Children[0]
			p.Children = []*domain.Node{{ID: "x", Kind: domain.KindButton}}
		}},
		{"unknown kind", func(s *domain.Site) {
			s.Pages[0].Elements[1].Children[0].Kind = "Marquee"
		}},
		{"dangling active page", func(s *domain.Site) {
			s.ActivePageID = "missing"
		}},
		{"relative path", func(s *domain.Site) {
			s.Pages[0].Path = "about"
		}},
		{"sealed envelope", func(s *domain.Site) {
			s.Sealed = "opaque"
		}},
		{"duplicate page id", func(s *domain.Site) {
			s.Pages = append(s.Pages, &domain.Page{ID: "p1", Name: "copy", Path: "/copy"})
		}},
		{"duplicate path", func(s *domain.Site) {
			s.Pages = append(s.Pages, &domain.Page{ID: "p2", Name: "Дубль", Path: "/"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := validSite()
			tt.mutate(site)
			err := domain.Validate(site)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidDocument)
			assert.NotEmpty(t, domain.ValidationErrors(err))
		})
	}
}

func TestNormalizePath(t *testing.T) {
	p, err := domain.NormalizePath("about")
	require.NoError(t, err)
	assert.Equal(t, "/about", p)

	p, err = domain.NormalizePath(" /team ")
	require.NoError(t, err)
	assert.Equal(t, "/team", p)

	_, err = domain.NormalizePath("  ")
	assert.ErrorIs(t, err, domain.ErrInvalidPath)

	_, err = domain.NormalizePath("/a b")
	assert.ErrorIs(t, err, domain.ErrInvalidPath)
}

func TestNode_CloneIsIndependent(t *testing.T) {
	orig := &domain.Node{
		ID: "c", Kind: domain.KindContainer,
		Style:    domain.Style{"color": "red"},
		Children: []*domain.Node{{ID: "p", Kind: domain.KindParagraph, Style: domain.Style{"margin": "0"}}},
	}
	cp := orig.Clone()
	cp.Style["color"] = "blue"
	cp.Children[0].Style["margin"] = "10px"

	assert.Equal(t, "red", orig.Style["color"])
	assert.Equal(t, "0", orig.Children[0].Style["margin"])
	assert.Equal(t, orig.ID, cp.ID)
}
