package domain

import (
	"fmt"
	"maps"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// HeaderAttributes configure the generated header markup.
type HeaderAttributes struct {
	LogoSrc       string `json:"logoSrc,omitempty" yaml:"logoSrc,omitempty" mapstructure:"logoSrc"`
	LogoIconKey   string `json:"selectedLogoIconKey,omitempty" yaml:"selectedLogoIconKey,omitempty" mapstructure:"selectedLogoIconKey"`
	IconColor     string `json:"headerIconColor,omitempty" yaml:"headerIconColor,omitempty" mapstructure:"headerIconColor"`
	SiteNameColor string `json:"headerSiteNameColor,omitempty" yaml:"headerSiteNameColor,omitempty" mapstructure:"headerSiteNameColor"`
}

// FooterAttributes configure the generated footer markup.
// A nil CopyrightText means "generate it from the site name".
type FooterAttributes struct {
	CopyrightText *string `json:"copyrightText,omitempty" yaml:"copyrightText,omitempty" mapstructure:"copyrightText"`
}

// LayoutAttributes describe container layout variants.
type LayoutAttributes struct {
	LayoutType LayoutType `json:"data-layout-type,omitempty" yaml:"data-layout-type,omitempty" mapstructure:"data-layout-type"`
	ChildBlock bool       `json:"data-is-child-block,omitempty" yaml:"data-is-child-block,omitempty" mapstructure:"data-is-child-block"`
}

// Attributes holds the kind-specific attributes of a node.
// Known keys are typed; Extra carries export-only metadata the editor never interprets.
type Attributes struct {
	HeaderAttributes `yaml:",inline" mapstructure:",squash"`
	FooterAttributes `yaml:",inline" mapstructure:",squash"`
	LayoutAttributes `yaml:",inline" mapstructure:",squash"`

	AIHint string            `json:"data-ai-hint,omitempty" yaml:"data-ai-hint,omitempty" mapstructure:"data-ai-hint"`
	Extra  map[string]string `json:"extra,omitempty" yaml:"extra,omitempty" mapstructure:"-"`
}

// ExclusiveAttributes maps an attribute key to the keys that are cleared when it is set
// to a non-empty value.
var ExclusiveAttributes = map[string][]string{
	AttrLogoSrc:     {AttrLogoIconKey},
	AttrLogoIconKey: {AttrLogoSrc},
}

// ExclusiveStyles is the equivalent rule table for page canvas styles.
var ExclusiveStyles = map[string][]string{
	StyleBackgroundColor: {StyleBackground},
	StyleBackground:      {StyleBackgroundColor},
}

var knownAttributes = map[string]bool{
	AttrLogoSrc:       true,
	AttrLogoIconKey:   true,
	AttrIconColor:     true,
	AttrSiteNameColor: true,
	AttrCopyright:     true,
	AttrLayoutType:    true,
	AttrChildBlock:    true,
	AttrAIHint:        true,
}

// DecodeAttributes converts a loosely typed attribute bag (as received from JSON
// payloads or CLI flags) into typed Attributes. Unknown keys land in Extra.
func DecodeAttributes(raw map[string]any) (Attributes, error) {
	var attrs Attributes
	if len(raw) == 0 {
		return attrs, nil
	}

	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &attrs,
		Metadata:         &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return attrs, err
	}
	if err := dec.Decode(raw); err != nil {
		return attrs, fmt.Errorf("%w: %v", ErrInvalidAttribute, err)
	}

	for _, key := range md.Unused {
		if attrs.Extra == nil {
			attrs.Extra = make(map[string]string)
		}
		attrs.Extra[key] = fmt.Sprint(raw[key])
	}
	if layout := attrs.LayoutType; layout != "" && layout.Blocks() == 0 && layout != LayoutSimple {
		return attrs, fmt.Errorf("%w: unknown layout type %q", ErrInvalidAttribute, layout)
	}
	return attrs, nil
}

// With returns a copy of a with key set to value, applying the ExclusiveAttributes rules.
func (a Attributes) With(key string, value any) (Attributes, error) {
	if key == "" {
		return a, fmt.Errorf("%w: empty key", ErrInvalidAttribute)
	}
	out := a.Clone()

	if !knownAttributes[key] {
		if out.Extra == nil {
			out.Extra = make(map[string]string)
		}
		out.Extra[key] = fmt.Sprint(value)
		return out, nil
	}

	patch, err := DecodeAttributes(map[string]any{key: value})
	if err != nil {
		return a, err
	}
	switch key {
	case AttrLogoSrc:
		out.LogoSrc = patch.LogoSrc
	case AttrLogoIconKey:
		out.LogoIconKey = patch.LogoIconKey
	case AttrIconColor:
		out.IconColor = patch.IconColor
	case AttrSiteNameColor:
		out.SiteNameColor = patch.SiteNameColor
	case AttrCopyright:
		out.CopyrightText = patch.CopyrightText
	case AttrLayoutType:
		out.LayoutType = patch.LayoutType
	case AttrChildBlock:
		out.ChildBlock = patch.ChildBlock
	case AttrAIHint:
		out.AIHint = patch.AIHint
	}

	if isSet(value) {
		for _, cleared := range ExclusiveAttributes[key] {
			out = out.without(cleared)
		}
	}
	return out, nil
}

// Without returns a copy of a with key reset to its zero value.
func (a Attributes) Without(key string) Attributes {
	return a.Clone().without(key)
}

func (a Attributes) without(key string) Attributes {
	switch key {
	case AttrLogoSrc:
		a.LogoSrc = ""
	case AttrLogoIconKey:
		a.LogoIconKey = ""
	case AttrIconColor:
		a.IconColor = ""
	case AttrSiteNameColor:
		a.SiteNameColor = ""
	case AttrCopyright:
		a.CopyrightText = nil
	case AttrLayoutType:
		a.LayoutType = ""
	case AttrChildBlock:
		a.ChildBlock = false
	case AttrAIHint:
		a.AIHint = ""
	default:
		if _, ok := a.Extra[key]; ok {
			a.Extra = maps.Clone(a.Extra)
			delete(a.Extra, key)
		}
	}
	return a
}

// Merge shallow-merges every attribute set on over into a copy of a.
// Exclusion rules apply, so a logo icon set on over clears a logo URL kept on a.
func (a Attributes) Merge(over Attributes) Attributes {
	out := a.Clone()
	for _, key := range over.Keys() {
		value, _ := over.Get(key)
		if merged, err := out.With(key, value); err == nil {
			out = merged
		}
	}
	return out
}

// Get returns the value stored under key and whether it is set.
func (a Attributes) Get(key string) (any, bool) {
	switch key {
	case AttrLogoSrc:
		return a.LogoSrc, a.LogoSrc != ""
	case AttrLogoIconKey:
		return a.LogoIconKey, a.LogoIconKey != ""
	case AttrIconColor:
		return a.IconColor, a.IconColor != ""
	case AttrSiteNameColor:
		return a.SiteNameColor, a.SiteNameColor != ""
	case AttrCopyright:
		if a.CopyrightText == nil {
			return nil, false
		}
		return *a.CopyrightText, true
	case AttrLayoutType:
		return string(a.LayoutType), a.LayoutType != ""
	case AttrChildBlock:
		return a.ChildBlock, a.ChildBlock
	case AttrAIHint:
		return a.AIHint, a.AIHint != ""
	}
	v, ok := a.Extra[key]
	return v, ok
}

// Keys lists the keys currently set, in a stable order.
func (a Attributes) Keys() []string {
	var keys []string
	for _, key := range []string{
		AttrLogoSrc, AttrLogoIconKey, AttrIconColor, AttrSiteNameColor,
		AttrCopyright, AttrLayoutType, AttrChildBlock, AttrAIHint,
	} {
		if _, ok := a.Get(key); ok {
			keys = append(keys, key)
		}
	}
	extra := make([]string, 0, len(a.Extra))
	for key := range a.Extra {
		extra = append(extra, key)
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// Map flattens the attributes into a string-keyed map, for exporters.
func (a Attributes) Map() map[string]any {
	out := make(map[string]any)
	for _, key := range a.Keys() {
		out[key], _ = a.Get(key)
	}
	return out
}

// Clone returns a copy that shares no mutable state with a.
func (a Attributes) Clone() Attributes {
	out := a
	if a.CopyrightText != nil {
		text := *a.CopyrightText
		out.CopyrightText = &text
	}
	out.Extra = maps.Clone(a.Extra)
	return out
}

// Equal reports whether a and other carry the same values.
func (a Attributes) Equal(other Attributes) bool {
	if a.HeaderAttributes != other.HeaderAttributes ||
		a.LayoutAttributes != other.LayoutAttributes ||
		a.AIHint != other.AIHint {
		return false
	}
	ac, oc := a.CopyrightText, other.CopyrightText
	if (ac == nil) != (oc == nil) || (ac != nil && *ac != *oc) {
		return false
	}
	return maps.Equal(a.Extra, other.Extra)
}

func isSet(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	default:
		return true
	}
}
