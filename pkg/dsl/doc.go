/*
Package dsl provides a fluent Go API for declaring whole sites in code.

It is the programmatic counterpart of a sequence of editor commands: useful for
seeding sessions, fixtures in tests and templates shipped with an application.
Header and Footer are created for every page and kept in sync automatically.

Example usage:

	b := dsl.New("Acme")

	home := b.Page("Home", "/")
	home.Heading1("Welcome to Acme")
	cols := home.Container(domain.LayoutTwoBlocks)
	cols.Block(0).Paragraph("Left column")
	cols.Block(1).Image("https://example.com/a.png", "A product")

	b.Page("About", "/about").Paragraph("Who we are")
	b.Header().Style("backgroundColor", "#111")

	site, err := b.Build()
*/
package dsl
