package domain_test

import (
	"testing"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributes_ExclusiveLogo(t *testing.T) {
	attrs, err := domain.Attributes{}.With(domain.AttrLogoSrc, "https://example.com/logo.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/logo.png", attrs.LogoSrc)

	attrs, err = attrs.With(domain.AttrLogoIconKey, "rocket")
	require.NoError(t, err)
	assert.Equal(t, "rocket", attrs.LogoIconKey)
	assert.Empty(t, attrs.LogoSrc, "setting an icon must clear the logo URL")

	attrs, err = attrs.With(domain.AttrLogoSrc, "/logo.svg")
	require.NoError(t, err)
	assert.Equal(t, "/logo.svg", attrs.LogoSrc)
	assert.Empty(t, attrs.LogoIconKey, "setting a logo URL must clear the icon")
}

func TestAttributes_ClearingDoesNotTriggerRules(t *testing.T) {
	attrs := domain.Attributes{HeaderAttributes: domain.HeaderAttributes{LogoIconKey: "rocket", LogoSrc: "/x.png"}}

	out, err := attrs.With(domain.AttrLogoSrc, "")
	require.NoError(t, err)
	assert.Empty(t, out.LogoSrc)
	assert.Equal(t, "rocket", out.LogoIconKey)
}

func TestAttributes_RuleTableIsSymmetric(t *testing.T) {
	for key, cleared := range domain.ExclusiveAttributes {
		for _, other := range cleared {
			assert.Contains(t, domain.ExclusiveAttributes[other], key, "%s clears %s but not the reverse", key, other)
		}
	}
}

func TestAttributes_WithDoesNotMutateReceiver(t *testing.T) {
	text := "original"
	attrs := domain.Attributes{
		FooterAttributes: domain.FooterAttributes{CopyrightText: &text},
		Extra:            map[string]string{"k": "v"},
	}

	out, err := attrs.With(domain.AttrCopyright, "changed")
	require.NoError(t, err)
	out, err = out.With("k", "other")
	require.NoError(t, err)

	assert.Equal(t, "original", *attrs.CopyrightText)
	assert.Equal(t, "v", attrs.Extra["k"])
	assert.Equal(t, "changed", *out.CopyrightText)
	assert.Equal(t, "other", out.Extra["k"])
}

func TestDecodeAttributes(t *testing.T) {
	attrs, err := domain.DecodeAttributes(map[string]any{
		"data-layout-type":    "two-blocks",
		"data-is-child-block": "true",
		"copyrightText":       "© Acme",
		"data-testid":         42,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.LayoutTwoBlocks, attrs.LayoutType)
	assert.True(t, attrs.ChildBlock)
	require.NotNil(t, attrs.CopyrightText)
	assert.Equal(t, "© Acme", *attrs.CopyrightText)
	assert.Equal(t, "42", attrs.Extra["data-testid"])
}

func TestDecodeAttributes_UnknownLayout(t *testing.T) {
	_, err := domain.DecodeAttributes(map[string]any{"data-layout-type": "five-blocks"})
	assert.ErrorIs(t, err, domain.ErrInvalidAttribute)
}

func TestAttributes_Merge(t *testing.T) {
	target := domain.Attributes{HeaderAttributes: domain.HeaderAttributes{LogoSrc: "/old.png", IconColor: "#000"}}
	source := domain.Attributes{HeaderAttributes: domain.HeaderAttributes{LogoIconKey: "star", SiteNameColor: "#fff"}}

	merged := target.Merge(source)
	assert.Equal(t, "star", merged.LogoIconKey)
	assert.Empty(t, merged.LogoSrc)
	assert.Equal(t, "#000", merged.IconColor)
	assert.Equal(t, "#fff", merged.SiteNameColor)
}

func TestAttributes_KeysAndMap(t *testing.T) {
	attrs := domain.Attributes{
		AIHint:           "hero",
		LayoutAttributes: domain.LayoutAttributes{LayoutType: domain.LayoutSimple},
		Extra:            map[string]string{"b": "2", "a": "1"},
	}
	assert.Equal(t, []string{domain.AttrLayoutType, domain.AttrAIHint, "a", "b"}, attrs.Keys())
	assert.Equal(t, map[string]any{
		domain.AttrLayoutType: "simple",
		domain.AttrAIHint:     "hero",
		"a":                   "1",
		"b":                   "2",
	}, attrs.Map())
}

func TestAttributes_Equal(t *testing.T) {
	a, b := "© Acme", "© Acme"
	left := domain.Attributes{FooterAttributes: domain.FooterAttributes{CopyrightText: &a}}
	right := domain.Attributes{FooterAttributes: domain.FooterAttributes{CopyrightText: &b}, Extra: map[string]string{}}
	assert.True(t, left.Equal(right), "copyright compared by value, nil and empty Extra match")

	cleared, err := left.With(domain.AttrIconColor, "red")
	require.NoError(t, err)
	assert.False(t, left.Equal(cleared))
	assert.False(t, left.Equal(domain.Attributes{}))
}
