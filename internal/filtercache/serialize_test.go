package filtercache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/cosmetic-filter/internal/cosmetic"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filters.cache")

	rules := []*cosmetic.CosmeticFilter{
		mustParse(t, "##.ad-banner"),
		mustParse(t, "example.com##.regional-ad:style(color: red;)"),
		mustParse(t, "~skip.example.com,news.*##.sponsored"),
	}

	require.NoError(t, Save(path, rules, 1234))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, len(rules))

	for i := range rules {
		assert.Equal(t, rules[i].Selector, loaded[i].Selector)
		assert.Equal(t, rules[i].Style, loaded[i].Style)
		assert.Equal(t, rules[i].HasStyle, loaded[i].HasStyle)
		assert.Equal(t, rules[i].Mask, loaded[i].Mask)
		assert.Equal(t, rules[i].Entities, loaded[i].Entities)
		assert.Equal(t, rules[i].Hostnames, loaded[i].Hostnames)
		assert.Equal(t, rules[i].NotHostnames, loaded[i].NotHostnames)
	}
}

func TestLoad_RejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.cache")
	require.NoError(t, os.WriteFile(path, []byte("not a cache file at all"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSave_AtomicReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filters.cache")

	require.NoError(t, Save(path, []*cosmetic.CosmeticFilter{mustParse(t, "##.one")}, 1))
	require.NoError(t, Save(path, []*cosmetic.CosmeticFilter{mustParse(t, "##.two")}, 2))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, ".two", loaded[0].Selector)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no leftover temp files")
}
