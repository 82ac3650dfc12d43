package domain

// Kind identifies the closed set of node types a page tree may contain.
type Kind string

const (
	KindHeader    Kind = "Header"
	KindFooter    Kind = "Footer"
	KindHeading1  Kind = "Heading1"
	KindHeading2  Kind = "Heading2"
	KindHeading3  Kind = "Heading3"
	KindParagraph Kind = "Paragraph"
	KindButton    Kind = "Button"
	KindImage     Kind = "Image"
	KindContainer Kind = "Container"
)

// Kinds lists every node kind in palette order.
var Kinds = []Kind{
	KindHeader, KindFooter,
	KindHeading1, KindHeading2, KindHeading3,
	KindParagraph, KindButton, KindImage, KindContainer,
}

// Valid reports whether k belongs to the closed set of node kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// IsGlobal reports whether nodes of this kind are shared across every page.
func (k Kind) IsGlobal() bool {
	return k == KindHeader || k == KindFooter
}

// LayoutType selects the shape of a Container produced by the factory.
type LayoutType string

const (
	LayoutSimple      LayoutType = "simple"
	LayoutTwoBlocks   LayoutType = "two-blocks"
	LayoutThreeBlocks LayoutType = "three-blocks"
)

// Blocks returns the number of child blocks a layout container is pre-populated with.
func (l LayoutType) Blocks() int {
	switch l {
	case LayoutTwoBlocks:
		return 2
	case LayoutThreeBlocks:
		return 3
	default:
		return 0
	}
}

// Attribute keys understood by the editor. They match the JSON field names of Attributes.
const (
	AttrLogoSrc       = "logoSrc"
	AttrLogoIconKey   = "selectedLogoIconKey"
	AttrIconColor     = "headerIconColor"
	AttrSiteNameColor = "headerSiteNameColor"
	AttrCopyright     = "copyrightText"
	AttrLayoutType    = "data-layout-type"
	AttrChildBlock    = "data-is-child-block"
	AttrAIHint        = "data-ai-hint"
)

// Style keys with a mutual exclusion rule on the page canvas.
const (
	StyleBackground      = "background"
	StyleBackgroundColor = "backgroundColor"
)

const (
	// MaxHistory is the default bound of the undo/redo timeline.
	MaxHistory = 50

	// DefaultSiteName is the name given to freshly created documents.
	DefaultSiteName = "PagesMi"

	// DefaultGridSize is the canvas grid cell size used when none is configured.
	DefaultGridSize = "20"
)
