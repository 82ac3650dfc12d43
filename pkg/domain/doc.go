/*
Package domain contains the core data model of the PageForge site builder.

It defines the entities of a multi-page site document and the invariants that every
document produced by the editor must satisfy. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Node: A single element of a page tree (heading, paragraph, image, container, header, footer, button).
  - Page: A named, routed collection of top-level nodes plus canvas and grid settings.
  - Site: The full multi-page project (pages, active page pointer, site name).
  - Attributes: Typed, kind-specific node attributes with an open map for export-only metadata.

Documents are treated as immutable values. Editing operations never modify a Node, Page
or Site in place; they build new values and share untouched subtrees by pointer.
*/
package domain
