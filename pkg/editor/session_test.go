package editor_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/editor"
	"github.com/aretw0/pageforge/pkg/markup"
	"github.com/aretw0/pageforge/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultDocument(t *testing.T) {
	s := newSession(t)
	site := s.Document()

	assert.Equal(t, domain.DefaultSiteName, site.SiteName)
	require.Len(t, site.Pages, 2)
	assert.Equal(t, site.Pages[0].ID, site.ActivePageID)
	assert.Equal(t, 1, s.HistoryLen())
	assert.False(t, s.CanUndo())
	assertInvariants(t, site)
}

func TestOpen_RepairsActivePage(t *testing.T) {
	site := newSession(t).Document()
	broken := *site
	broken.ActivePageID = "gone"

	s, err := editor.Open(&broken, testOptions()...)
	require.NoError(t, err)
	assert.Equal(t, site.Pages[0].ID, s.Document().ActivePageID)
	assert.Equal(t, 1, s.HistoryLen(), "repair does not create an undo point")
	assert.False(t, s.CanUndo())
}

func TestOpen_Invalid(t *testing.T) {
	_, err := editor.Open(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)

	site := newSession(t).Document().Clone()
	site.Pages[1].ID = site.Pages[0].ID
	_, err = editor.Open(site, testOptions()...)
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestAddNode_Rejections(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	box := body(t, s).ID
	para, err := s.AddNode(ctx, editor.AddNodeRequest{Kind: domain.KindParagraph})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  editor.AddNodeRequest
		err  error
	}{
		{"second footer", editor.AddNodeRequest{Kind: domain.KindFooter}, domain.ErrDuplicateGlobal},
		{"nested header", editor.AddNodeRequest{Kind: domain.KindHeader, ParentID: box}, domain.ErrGlobalNotTopLevel},
		{"child of paragraph", editor.AddNodeRequest{Kind: domain.KindButton, ParentID: para.NodeID}, domain.ErrNotContainer},
		{"unknown kind", editor.AddNodeRequest{Kind: "Video"}, domain.ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := s.Document()
			length := s.HistoryLen()

			res, err := s.AddNode(ctx, tt.req)
			assert.ErrorIs(t, err, tt.err)
			assert.False(t, res.Changed)
			assert.Same(t, before, s.Document())
			assert.Equal(t, length, s.HistoryLen())
		})
	}
}

func TestAddNode_MissingParentIsNoop(t *testing.T) {
	s := newSession(t)
	length := s.HistoryLen()

	res, err := s.AddNode(context.Background(), editor.AddNodeRequest{Kind: domain.KindParagraph, ParentID: "ghost"})
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, length, s.HistoryLen())
}

func TestAddNode_TopLevelStaysBeforeFooter(t *testing.T) {
	s := newSession(t)
	res, err := s.AddNode(context.Background(), editor.AddNodeRequest{Kind: domain.KindHeading1})
	require.NoError(t, err)

	ids := topLevelIDs(s.ActivePage())
	require.Len(t, ids, 4)
	assert.Equal(t, res.NodeID, ids[2])
}

func TestAddNode_GlobalInheritsLook(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	page := s.ActivePage()
	header := global(page, domain.KindHeader)

	s.UpdateStyle(ctx, header.ID, header.Style.Merge(domain.Style{"backgroundColor": "teal"}))
	require.Equal(t, "teal", global(s.Document().Pages[1], domain.KindHeader).Style["backgroundColor"])

	s.RemoveNode(ctx, global(s.ActivePage(), domain.KindHeader).ID)
	require.Nil(t, global(s.ActivePage(), domain.KindHeader))

	res, err := s.AddNode(ctx, editor.AddNodeRequest{Kind: domain.KindHeader})
	require.NoError(t, err)
	added := s.ActivePage().Elements[0]
	assert.Equal(t, res.NodeID, added.ID)
	assert.Equal(t, "teal", added.Style["backgroundColor"])
}

func TestAddNode_Image(t *testing.T) {
	s := newSession(t)
	res, err := s.AddNode(context.Background(), editor.AddNodeRequest{
		Kind:     domain.KindImage,
		ParentID: body(t, s).ID,
		ImageSrc: "https://img/cat.png",
		ImageAlt: "Cat",
	})
	require.NoError(t, err)

	img := tree.Find(s.ActivePage().Elements, res.NodeID)
	assert.Equal(t, "https://img/cat.png", img.ImageSrc)
	assert.Equal(t, "Cat", img.ImageAlt)

	r := s.ReplaceImage(context.Background(), img.ID, "https://img/dog.png", "Dog", "")
	assert.True(t, r.Changed)
	img = tree.Find(s.ActivePage().Elements, res.NodeID)
	assert.Equal(t, "https://img/dog.png", img.ImageSrc)
	assert.Equal(t, "custom image", img.Attributes.AIHint)

	assert.False(t, s.ReplaceImage(context.Background(), body(t, s).ID, "x", "y", "").Changed, "not an image")
}

func TestUpdateContent(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	res, err := s.AddNode(ctx, editor.AddNodeRequest{Kind: domain.KindParagraph})
	require.NoError(t, err)

	assert.True(t, s.UpdateContent(ctx, res.NodeID, "Hello").Changed)
	assert.False(t, s.UpdateContent(ctx, res.NodeID, "Hello").Changed, "same text")
	assert.Equal(t, "Hello", tree.Find(s.ActivePage().Elements, res.NodeID).Content)

	header := global(s.ActivePage(), domain.KindHeader)
	assert.False(t, s.UpdateContent(ctx, header.ID, "<p>hacked</p>").Changed, "generated content")
	assert.False(t, s.UpdateContent(ctx, "ghost", "x").Changed)
}

func TestUpdateAttribute_LogoExclusion(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	header := global(s.ActivePage(), domain.KindHeader)

	res, err := s.UpdateAttribute(ctx, header.ID, domain.AttrLogoSrc, "https://cdn/logo.png")
	require.NoError(t, err)
	require.True(t, res.Changed)
	assert.True(t, res.Synchronized)

	_, err = s.UpdateAttribute(ctx, header.ID, domain.AttrLogoIconKey, "rocket")
	require.NoError(t, err)

	for _, p := range s.Document().Pages {
		h := global(p, domain.KindHeader)
		assert.Empty(t, h.Attributes.LogoSrc, p.Path)
		assert.Equal(t, "rocket", h.Attributes.LogoIconKey, p.Path)
		assert.NotContains(t, h.Content, "<img", p.Path)
	}

	res, err = s.UpdateAttribute(ctx, header.ID, domain.AttrLogoIconKey, "rocket")
	require.NoError(t, err)
	assert.False(t, res.Changed, "unchanged value")

	_, err = s.UpdateAttribute(ctx, header.ID, "", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidAttribute)
}

func TestUpdateAttribute_ClearReachesEveryPage(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	header := global(s.ActivePage(), domain.KindHeader)

	for key, value := range map[string]string{
		domain.AttrIconColor: "red",
		domain.AttrLogoSrc:   "https://x/logo.png",
	} {
		_, err := s.UpdateAttribute(ctx, header.ID, key, value)
		require.NoError(t, err)
	}
	require.Equal(t, "red", global(s.Document().Pages[1], domain.KindHeader).Attributes.IconColor)

	for _, key := range []string{domain.AttrIconColor, domain.AttrLogoSrc} {
		res, err := s.UpdateAttribute(ctx, header.ID, key, "")
		require.NoError(t, err)
		assert.True(t, res.Changed, key)
	}

	for _, p := range s.Document().Pages {
		h := global(p, domain.KindHeader)
		assert.Empty(t, h.Attributes.IconColor, p.Path)
		assert.Empty(t, h.Attributes.LogoSrc, p.Path)
		assert.NotContains(t, h.Content, "<img", p.Path)
	}
}

func TestUpdateAttribute_Copyright(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	footer := global(s.ActivePage(), domain.KindFooter)

	_, err := s.UpdateAttribute(ctx, footer.ID, domain.AttrCopyright, "Acme Inc.")
	require.NoError(t, err)
	s.RenameSite(ctx, "Other")

	for _, p := range s.Document().Pages {
		assert.Contains(t, global(p, domain.KindFooter).Content, "<p>Acme Inc.</p>")
	}
}

func TestMoveNode(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	page := s.ActivePage()
	header := global(page, domain.KindHeader)
	length := s.HistoryLen()

	assert.False(t, s.MoveNode(ctx, header.ID, tree.Down).Changed)
	assert.False(t, s.MoveNode(ctx, body(t, s).ID, tree.Up).Changed, "clamped below the header")
	assert.False(t, s.MoveNode(ctx, "ghost", tree.Up).Changed)
	assert.Equal(t, length, s.HistoryLen())

	res, err := s.AddNode(ctx, editor.AddNodeRequest{Kind: domain.KindParagraph})
	require.NoError(t, err)
	assert.True(t, s.MoveNode(ctx, res.NodeID, tree.Up).Changed)
	assert.Equal(t, res.NodeID, s.ActivePage().Elements[1].ID)
}

func TestCopyNode_Global(t *testing.T) {
	s := newSession(t)
	footer := global(s.ActivePage(), domain.KindFooter)

	_, err := s.CopyNode(context.Background(), footer.ID)
	assert.ErrorIs(t, err, domain.ErrCopyGlobal)

	res, err := s.CopyNode(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, res.Changed)
}

func TestRemoveNode(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	box := body(t, s).ID

	assert.True(t, s.RemoveNode(ctx, box).Changed)
	assert.Nil(t, tree.Find(s.ActivePage().Elements, box))
	assert.False(t, s.RemoveNode(ctx, box).Changed)
}

func TestAddPage_Defaults(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)

	res, err := s.AddPage(ctx, editor.AddPageRequest{})
	require.NoError(t, err)
	_, page := s.Document().Page(res.PageID)
	assert.Equal(t, "Новая страница 3", page.Name)
	assert.Equal(t, "/page-3", page.Path)
	assert.Len(t, page.Elements, 3)

	res, err = s.AddPage(ctx, editor.AddPageRequest{Name: "Root", Path: "/"})
	require.NoError(t, err)
	_, page = s.Document().Page(res.PageID)
	assert.Equal(t, "/page-2", page.Path, "\"/\" is taken")

	res, err = s.AddPage(ctx, editor.AddPageRequest{Path: "contacts"})
	require.NoError(t, err)
	_, page = s.Document().Page(res.PageID)
	assert.Equal(t, "/contacts", page.Path)

	_, err = s.AddPage(ctx, editor.AddPageRequest{Path: "bad path"})
	assert.ErrorIs(t, err, domain.ErrInvalidPath)
	assertInvariants(t, s.Document())
}

func TestSelectPage(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	second := s.Document().Pages[1].ID

	assert.True(t, s.SelectPage(ctx, second).Changed)
	assert.Equal(t, second, s.Document().ActivePageID)
	assert.False(t, s.SelectPage(ctx, second).Changed)
	assert.False(t, s.SelectPage(ctx, "ghost").Changed)

	s.Undo(ctx)
	assert.Equal(t, s.Document().Pages[0].ID, s.Document().ActivePageID)
}

func TestUpdatePage(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	about := s.Document().Pages[1]

	res, err := s.UpdatePage(ctx, about.ID, editor.UpdatePageRequest{Name: "Команда", Path: "team"})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.True(t, res.Synchronized)

	_, updated := s.Document().Page(about.ID)
	assert.Equal(t, "/team", updated.Path)
	for _, p := range s.Document().Pages {
		assert.Contains(t, global(p, domain.KindHeader).Content, `href="/team"`)
	}

	_, err = s.UpdatePage(ctx, about.ID, editor.UpdatePageRequest{Path: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidPath)

	history := s.HistoryLen()
	_, err = s.UpdatePage(ctx, about.ID, editor.UpdatePageRequest{Path: "/"})
	assert.ErrorIs(t, err, domain.ErrInvalidPath, "\"/\" belongs to the home page")
	assert.Equal(t, history, s.HistoryLen())
	for _, p := range s.Document().Pages {
		assert.Equal(t, 1, strings.Count(global(p, domain.KindHeader).Content, markup.ActiveLinkClass), p.Path)
	}

	res, err = s.UpdatePage(ctx, about.ID, editor.UpdatePageRequest{Path: "/team"})
	require.NoError(t, err)
	assert.False(t, res.Changed, "a page keeps its own path")

	res, err = s.UpdatePage(ctx, "ghost", editor.UpdatePageRequest{Name: "x"})
	require.NoError(t, err)
	assert.False(t, res.Changed)
}

func TestUpdateCanvasStyle(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)

	s.UpdateCanvasStyle(ctx, domain.Style{"background": "url(bg.png)"})
	canvas := s.ActivePage().CanvasStyle
	assert.Equal(t, "url(bg.png)", canvas["background"])
	assert.NotContains(t, canvas, "backgroundColor")
	assert.Equal(t, "20px", canvas["padding"])

	s.UpdateCanvasStyle(ctx, domain.Style{"backgroundColor": "white"})
	canvas = s.ActivePage().CanvasStyle
	assert.Equal(t, "white", canvas["backgroundColor"])
	assert.NotContains(t, canvas, "background")

	assert.False(t, s.UpdateCanvasStyle(ctx, domain.Style{"backgroundColor": "white"}).Changed)
}

func TestUpdateGrid(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)

	assert.True(t, s.UpdateGrid(ctx, true, "").Changed)
	assert.Equal(t, domain.GridSettings{Visible: true, CellSize: "20"}, s.ActivePage().Grid)

	s.UpdateGrid(ctx, true, "40")
	s.UpdateGrid(ctx, false, "")
	assert.Equal(t, domain.GridSettings{Visible: false, CellSize: "40"}, s.ActivePage().Grid)
	assert.False(t, s.UpdateGrid(ctx, false, "40").Changed)
}

func TestLifecycleHooks(t *testing.T) {
	ctx := context.Background()
	var commits, rejects, undos, redos []string
	s := newSession(t, editor.WithLifecycleHooks(domain.LifecycleHooks{
		OnCommit: func(_ context.Context, e *domain.EditEvent) { commits = append(commits, e.Op) },
		OnReject: func(_ context.Context, e *domain.EditEvent) { rejects = append(rejects, e.Op) },
		OnUndo:   func(_ context.Context, e *domain.HistoryEvent) { undos = append(undos, "undo") },
		OnRedo:   func(_ context.Context, e *domain.HistoryEvent) { redos = append(redos, "redo") },
	}))

	s.RenameSite(ctx, "Acme")
	_, _ = s.AddNode(ctx, editor.AddNodeRequest{Kind: domain.KindHeader})
	s.Undo(ctx)
	s.Undo(ctx)
	s.Redo(ctx)

	assert.Equal(t, []string{editor.OpRenameSite}, commits)
	assert.Equal(t, []string{editor.OpAddNode}, rejects)
	assert.Len(t, undos, 1)
	assert.Len(t, redos, 1)
}
