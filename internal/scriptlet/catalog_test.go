package scriptlet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResources = `# Copyright banner
# Distributed under some license
/// abort-on-property-read.js
/// alias aopr.js
/// alias al.js
(function() {
    const target = {{1}};
    window[target] = undefined;
})();
/// set-constant.js
(function() {
    const name = {{1}};
    const value = {{2}};
    window[name] = value;
})();
`

func TestParseCatalog_ParsesBlocks(t *testing.T) {
	cat, err := ParseCatalog(strings.NewReader(sampleResources))
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
}

func TestParseCatalog_ResolvesDirectName(t *testing.T) {
	cat, err := ParseCatalog(strings.NewReader(sampleResources))
	require.NoError(t, err)

	out, err := cat.GetScriptlet("abort-on-property-read.js, 'eval'")
	require.NoError(t, err)
	assert.Contains(t, out, "const target = eval;")
}

func TestParseCatalog_ResolvesAlias(t *testing.T) {
	cat, err := ParseCatalog(strings.NewReader(sampleResources))
	require.NoError(t, err)

	out, err := cat.GetScriptlet("aopr.js, 'eval'")
	require.NoError(t, err)
	assert.Contains(t, out, "const target = eval;")
}

func TestParseCatalog_ResolvesAliasWithJSSuffixStrippedFromInvocation(t *testing.T) {
	// spec.md §8 scenario 4: the invocation name arrives without a ".js"
	// suffix even though the catalog registered its alias as "al.js".
	cat, err := ParseCatalog(strings.NewReader(sampleResources))
	require.NoError(t, err)

	out, err := cat.GetScriptlet("al, 'eval'")
	require.NoError(t, err)
	assert.Contains(t, out, "const target = eval;")
}

func TestParseCatalog_ResolvesCanonicalNameWithoutJSSuffix(t *testing.T) {
	cat, err := ParseCatalog(strings.NewReader(sampleResources))
	require.NoError(t, err)

	out, err := cat.GetScriptlet("abort-on-property-read, 'eval'")
	require.NoError(t, err)
	assert.Contains(t, out, "const target = eval;")
}

func TestParseCatalog_NoMatch(t *testing.T) {
	cat, err := ParseCatalog(strings.NewReader(sampleResources))
	require.NoError(t, err)

	_, err = cat.GetScriptlet("does-not-exist.js, arg")
	assert.ErrorIs(t, err, ErrNoMatchingScriptlet)
}

func TestParseCatalog_MissingName(t *testing.T) {
	cat, err := ParseCatalog(strings.NewReader(sampleResources))
	require.NoError(t, err)

	_, err = cat.GetScriptlet("")
	assert.ErrorIs(t, err, ErrMissingScriptletName)
}

func TestParseCatalog_ArityError(t *testing.T) {
	cat, err := ParseCatalog(strings.NewReader(sampleResources))
	require.NoError(t, err)

	_, err = cat.GetScriptlet("set-constant.js, onlyOneArg")
	assert.ErrorIs(t, err, ErrWrongNumberOfArguments)
}

func TestParseCatalog_MultiArgTemplate(t *testing.T) {
	cat, err := ParseCatalog(strings.NewReader(sampleResources))
	require.NoError(t, err)

	out, err := cat.GetScriptlet("set-constant.js, foo, bar")
	require.NoError(t, err)
	assert.Contains(t, out, "const name = foo;\n    const value = bar;")
}
