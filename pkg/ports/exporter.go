package ports

import (
	"context"
	"io"

	"github.com/aretw0/pageforge/pkg/domain"
)

// Exporter renders a document to w without modifying it.
// Header and Footer content is already resolved markup and must be used as is.
type Exporter interface {
	Export(ctx context.Context, w io.Writer, site *domain.Site) error
}

// ExporterFunc adapts a function to the Exporter interface.
type ExporterFunc func(ctx context.Context, w io.Writer, site *domain.Site) error

func (f ExporterFunc) Export(ctx context.Context, w io.Writer, site *domain.Site) error {
	return f(ctx, w, site)
}
