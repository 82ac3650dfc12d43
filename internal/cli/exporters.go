package cli

import (
	"context"
	"encoding/json"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/pageforge/internal/presentation/graph"
	"github.com/aretw0/pageforge/internal/presentation/tui"
	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/ports"
)

// Exporters returns every built-in export format by name.
func Exporters() map[string]ports.Exporter {
	return map[string]ports.Exporter{
		"json": ports.ExporterFunc(func(_ context.Context, w io.Writer, site *domain.Site) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(site)
		}),
		"yaml": ports.ExporterFunc(func(_ context.Context, w io.Writer, site *domain.Site) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(site); err != nil {
				return err
			}
			return enc.Close()
		}),
		"outline": tui.OutlineExporter{},
		"mermaid": graph.Exporter{},
	}
}

// ExporterNames lists the built-in formats in sorted order.
func ExporterNames() []string {
	names := make([]string, 0, 4)
	for name := range Exporters() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
