package cosmetic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/cosmetic-filter/internal/hashutil"
)

func TestParse_MissingSharp(t *testing.T) {
	_, err := Parse("no-separator-here", false)
	assert.ErrorIs(t, err, ErrMissingSharp)
}

func TestParse_GenericSimpleClassSelector(t *testing.T) {
	f, err := Parse("##.ad-banner", false)
	require.NoError(t, err)
	assert.Equal(t, ".ad-banner", f.Selector)
	assert.True(t, f.Mask.Has(IsClassSelector))
	assert.True(t, f.Mask.Has(IsSimple))
	assert.Empty(t, f.Hostnames)
	key, ok := f.Key()
	assert.True(t, ok)
	assert.Equal(t, "ad-banner", key)
}

func TestParse_GenericSimpleIDSelector(t *testing.T) {
	f, err := Parse("##sponsor-box", false)
	require.NoError(t, err)
	assert.False(t, f.Mask.Has(IsIDSelector))

	f, err = Parse("###sponsor-box", false)
	require.NoError(t, err)
	assert.Equal(t, "#sponsor-box", f.Selector)
	assert.True(t, f.Mask.Has(IsIDSelector))
	assert.True(t, f.Mask.Has(IsSimple))
}

func TestParse_ClassSelectorWithAttributeTailIsClassifiableButNotSimple(t *testing.T) {
	f, err := Parse(`##.ad[data-sponsored]`, false)
	require.NoError(t, err)
	assert.True(t, f.Mask.Has(IsClassSelector))
	assert.False(t, f.Mask.Has(IsSimple))
	key, ok := f.Key()
	assert.True(t, ok)
	assert.Equal(t, "ad", key)
}

func TestParse_ClassSelectorWithCombinatorTailIsClassifiableButNotSimple(t *testing.T) {
	f, err := Parse("##.ad > div", false)
	require.NoError(t, err)
	assert.True(t, f.Mask.Has(IsClassSelector))
	assert.False(t, f.Mask.Has(IsSimple))
	key, ok := f.Key()
	assert.True(t, ok)
	assert.Equal(t, "ad", key)
}

func TestParse_CompoundClassSelectorWithNoSeparatorIsNotClassifiable(t *testing.T) {
	// ".ad.banner" hits a second "." directly after the "ad" token with no
	// intervening space, which the "simple selector" design rule rejects
	// outright — it is neither bare nor "[" / space-combinator terminated,
	// so it gets no selector-shape classification bit at all and is routed
	// to misc_rules by the cache instead of complex_class_rules.
	f, err := Parse("##.ad.banner", false)
	require.NoError(t, err)
	assert.False(t, f.Mask.Has(IsClassSelector))
	assert.False(t, f.Mask.Has(IsSimple))
	_, ok := f.Key()
	assert.False(t, ok)
}

func TestParse_ClassSelectorFollowedByPseudoClassIsNotClassifiable(t *testing.T) {
	f, err := Parse("##.ad:hover", false)
	require.NoError(t, err)
	assert.False(t, f.Mask.Has(IsClassSelector))
}

func TestParse_HostnameScopedRule(t *testing.T) {
	f, err := Parse("example.com##.ad-banner", false)
	require.NoError(t, err)
	assert.True(t, f.HasHostnameConstraint())
	assert.ElementsMatch(t, []hashutil.Hash{hashutil.FastHashString("example.com")}, f.Hostnames)
}

func TestParse_NegatedAndEntityScope(t *testing.T) {
	f, err := Parse("~example.com,sub.*##.ad", false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []hashutil.Hash{hashutil.FastHashString("example.com")}, f.NotHostnames)
	assert.ElementsMatch(t, []hashutil.Hash{hashutil.FastHashString("sub")}, f.Entities)
}

func TestParse_UnhideException(t *testing.T) {
	f, err := Parse("example.com#@#.ad-banner", false)
	require.NoError(t, err)
	assert.True(t, f.Mask.Has(Unhide))
	assert.Equal(t, ".ad-banner", f.Selector)
}

func TestParse_ScriptInjectPlusJS(t *testing.T) {
	f, err := Parse("##+js(abort-on-property-read, foo)", false)
	require.NoError(t, err)
	assert.True(t, f.Mask.Has(ScriptInject))
	assert.Equal(t, "abort-on-property-read, foo", f.Selector)
	assert.False(t, f.Mask.Has(IsClassSelector))
}

func TestParse_ScriptInjectScriptColon(t *testing.T) {
	f, err := Parse("##script:inject(foo.js, bar)", false)
	require.NoError(t, err)
	assert.True(t, f.Mask.Has(ScriptInject))
	assert.Equal(t, "foo.js, bar", f.Selector)
}

func TestParse_ScriptInjectScriptColonWithoutInjectPrefix(t *testing.T) {
	f, err := Parse("##script:foo.js, bar", false)
	require.NoError(t, err)
	assert.True(t, f.Mask.Has(ScriptInject))
	assert.Equal(t, "foo.js, bar", f.Selector)
}

func TestParse_StyleSpecifier(t *testing.T) {
	f, err := Parse("##.ad-banner:style(display: none !important;)", false)
	require.NoError(t, err)
	assert.True(t, f.HasStyle)
	assert.Equal(t, ".ad-banner", f.Selector)
	assert.Equal(t, "display: none !important;", f.Style)
}

func TestParse_InvalidStyleSpecifierUnterminated(t *testing.T) {
	_, err := Parse("##.ad-banner:style(display: none", false)
	assert.ErrorIs(t, err, ErrInvalidStyleSpecifier)
}

func TestParse_ProceduralSelectorRejected(t *testing.T) {
	_, err := Parse("##div:has(.ad)", false)
	assert.True(t, errors.Is(err, ErrUnsupportedSyntax))
}

func TestParse_HTMLFilterRejected(t *testing.T) {
	_, err := Parse("##^script:has-text(adsbygoogle)", false)
	assert.True(t, errors.Is(err, ErrUnsupportedSyntax))
}

func TestParse_HrefSelector(t *testing.T) {
	f, err := Parse(`##a[href="https://ads.example/track"]`, false)
	require.NoError(t, err)
	assert.True(t, f.Mask.Has(IsHrefSelector))
}

func TestParse_UnicodeHostnameScope(t *testing.T) {
	f, err := Parse("xn--p1ai-overridden,例え.com##.ad", false)
	// Either punycode conversion succeeds and yields a hostname hash, or the
	// label is rejected as invalid punycode; both are acceptable outcomes
	// for this fabricated example, but parsing must not panic.
	if err != nil {
		assert.ErrorIs(t, err, ErrPunycodeError)
		return
	}
	assert.True(t, f.Mask.Has(IsUnicode))
}

func TestParse_DebugRetainsRawLine(t *testing.T) {
	f, err := Parse("##.ad-banner", true)
	require.NoError(t, err)
	assert.Equal(t, "##.ad-banner", f.RawLine)

	f2, err := Parse("##.ad-banner", false)
	require.NoError(t, err)
	assert.Empty(t, f2.RawLine)
}

func TestParseBatch_ConcurrentAndOrdered(t *testing.T) {
	lines := []string{
		"##.ad-one",
		"not-a-cosmetic-rule-no-sharp",
		"##.ad-two",
		"example.com##.ad-three",
	}
	results, err := ParseBatch(lines, false)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, ".ad-one", results[0].Selector)
	assert.Equal(t, ".ad-two", results[1].Selector)
	assert.Equal(t, ".ad-three", results[2].Selector)
}
