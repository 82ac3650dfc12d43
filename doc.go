/*
Package pageforge is the editing core of a multi-page website builder.

A site is a list of pages, each an ordered tree of typed nodes. Every page starts with a
Header and ends with a Footer whose markup (site name, page navigation, copyright) is
generated and kept consistent across pages. Edits never mutate a document: each one
produces a new value sharing untouched subtrees, which makes a bounded undo/redo history
cheap.

# Packages

  - pkg/domain: Node, Page and Site types, validation and diffs.
  - pkg/tree: pure tree algorithms (find, replace, remove, move, copy).
  - pkg/factory: default nodes, pages and the initial document.
  - pkg/globals: Header/Footer regeneration and look propagation.
  - pkg/history: bounded undo/redo timeline.
  - pkg/editor: the editing session and its command surface.
  - pkg/session: concurrency-safe orchestration over a ports.SiteStore.

# Usage

	eng, err := pageforge.New()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	res, site, err := eng.Execute(ctx, "demo", editor.Command{Op: editor.OpAddPage, Name: "Blog"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.PageID == site.ActivePageID) // true
*/
package pageforge
