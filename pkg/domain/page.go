package domain

import (
	"fmt"
	"strings"
)

// GridSettings configures the editing grid shown on the canvas.
type GridSettings struct {
	Visible  bool   `json:"showGrid" yaml:"showGrid"`
	CellSize string `json:"gridSize" yaml:"gridSize"`
}

// Page is a named, path-addressed container of top-level nodes.
type Page struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Path        string       `json:"path" yaml:"path"`
	Elements    []*Node      `json:"elements" yaml:"elements"`
	CanvasStyle Style        `json:"canvasStyles" yaml:"canvasStyles"`
	Grid        GridSettings `json:"gridSettings" yaml:"gridSettings"`
}

// DefaultCanvasStyle returns the canvas style given to new pages.
func DefaultCanvasStyle() Style {
	return Style{
		"backgroundColor": "hsl(var(--card))",
		"padding":         "20px",
		"width":           "100%",
		"position":        "relative",
		"margin":          "0 auto",
	}
}

// DefaultGridSettings returns the grid settings given to new pages.
func DefaultGridSettings() GridSettings {
	return GridSettings{Visible: false, CellSize: DefaultGridSize}
}

// Global returns the index and node of the top-level node of the given kind, or -1.
func (p *Page) Global(kind Kind) (int, *Node) {
	for i, el := range p.Elements {
		if el.Kind == kind {
			return i, el
		}
	}
	return -1, nil
}

// Ref returns the identity triple used for navigation.
func (p *Page) Ref() PageRef {
	return PageRef{ID: p.ID, Name: p.Name, Path: p.Path}
}

// Clone returns a deep copy of p.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	out := *p
	out.Elements = CloneNodes(p.Elements)
	out.CanvasStyle = p.CanvasStyle.Clone()
	return &out
}

// PageRef is the (id, name, path) triple that drives navigation markup.
type PageRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// NormalizePath makes sure a route begins with "/".
func NormalizePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsAny(path, " \t\n\"<>") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path, nil
}
