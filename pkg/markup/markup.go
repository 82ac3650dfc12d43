package markup

import (
	"fmt"
	"strings"

	"github.com/aretw0/pageforge/pkg/domain"
	"golang.org/x/net/html"
)

// Placeholders mark the navigation element inside generated content.
const (
	HeaderNavPlaceholder = "page-nav-links"
	FooterNavPlaceholder = "page-footer-nav-links"
)

// Link classes. The active link is the one addressing the page that owns the node.
const (
	ActiveLinkClass   = "font-semibold text-primary"
	InactiveLinkClass = "text-muted-foreground"
)

// Nav is the site context needed to render a Header or Footer.
type Nav struct {
	SiteName   string
	Pages      []domain.PageRef
	ActivePath string
}

// NavFor builds the Nav of site as seen from page.
func NavFor(site *domain.Site, page *domain.Page) Nav {
	return Nav{SiteName: site.SiteName, Pages: site.PageRefs(), ActivePath: page.Path}
}

// Header renders the navigation bar: logo, site name and one link per page.
func Header(nav Nav, attrs domain.HeaderAttributes) string {
	var b strings.Builder
	b.WriteString(`<div class="flex justify-between items-center w-full">`)
	b.WriteString(`<a href="/" class="flex items-center gap-2 text-lg font-bold text-foreground">`)
	b.WriteString(logo(nav.SiteName, attrs))
	fmt.Fprintf(&b, `<span%s>%s</span>`, colorStyle(attrs.SiteNameColor), html.EscapeString(nav.SiteName))
	b.WriteString(`</a>`)
	fmt.Fprintf(&b, `<nav data-placeholder="%s">%s</nav>`, HeaderNavPlaceholder, links(nav, "text-sm"))
	b.WriteString(`</div>`)
	return b.String()
}

// Footer renders the copyright line and the secondary navigation list.
// A nil copyright is replaced with DefaultCopyright. An override is plain text.
func Footer(nav Nav, copyright *string, year int) string {
	text := DefaultCopyright(nav.SiteName, year)
	if copyright != nil {
		text = html.EscapeString(*copyright)
	}

	var b strings.Builder
	b.WriteString(`<div class="flex flex-col sm:flex-row justify-between items-center w-full text-xs text-muted-foreground gap-2">`)
	fmt.Fprintf(&b, `<p>%s</p>`, text)
	fmt.Fprintf(&b, `<nav data-placeholder="%s">%s</nav>`, FooterNavPlaceholder, links(nav, "text-xs"))
	b.WriteString(`</div>`)
	return b.String()
}

// DefaultCopyright is the copyright line used when a Footer has no override.
func DefaultCopyright(siteName string, year int) string {
	return fmt.Sprintf("&copy; %d %s. Все права защищены.", year, html.EscapeString(siteName))
}

// Href returns the link target of a page path, always rooted at "/".
func Href(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

func links(nav Nav, size string) string {
	out := make([]string, len(nav.Pages))
	for i, p := range nav.Pages {
		state := InactiveLinkClass
		if p.Path == nav.ActivePath {
			state = ActiveLinkClass
		}
		out[i] = fmt.Sprintf(`<a href="%s" class="%s hover:underline %s mr-3 last:mr-0">%s</a>`,
			html.EscapeString(Href(p.Path)), size, state, html.EscapeString(p.Name))
	}
	return strings.Join(out, " ")
}

func logo(siteName string, attrs domain.HeaderAttributes) string {
	if attrs.LogoSrc != "" {
		return fmt.Sprintf(`<img src="%s" alt="%s Logo" class="h-8 w-auto mr-3" data-ai-hint="logo custom" />`,
			html.EscapeString(attrs.LogoSrc), html.EscapeString(siteName))
	}

	class := "h-6 w-6 text-primary mr-2"
	icon, _ := LookupIcon("package")
	if custom, ok := LookupIcon(attrs.LogoIconKey); ok {
		icon = custom
		class = "h-7 w-7 text-primary mr-2"
	}
	return strings.Replace(icon.SVG, "<svg", fmt.Sprintf(`<svg%s class="%s"`, colorStyle(attrs.IconColor), class), 1)
}

func colorStyle(color string) string {
	if color == "" {
		return ""
	}
	return fmt.Sprintf(` style="color: %s;"`, html.EscapeString(color))
}

// Render returns the generated content of a Header or Footer with the given attributes.
// Any other kind yields "" and false.
func Render(kind domain.Kind, attrs domain.Attributes, nav Nav, year int) (string, bool) {
	switch kind {
	case domain.KindHeader:
		return Header(nav, attrs.HeaderAttributes), true
	case domain.KindFooter:
		return Footer(nav, attrs.CopyrightText, year), true
	}
	return "", false
}
