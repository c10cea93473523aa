package cosmetic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/cosmetic-filter/internal/hashutil"
)

func h(s string) hashutil.Hash { return hashutil.FastHashString(s) }

func TestCosmeticFilter_Matches_NoConstraint(t *testing.T) {
	f := &CosmeticFilter{}
	assert.True(t, f.Matches(nil, []hashutil.Hash{h("example.com")}))
}

func TestCosmeticFilter_Matches_PositiveHostname(t *testing.T) {
	f := &CosmeticFilter{Hostnames: []hashutil.Hash{h("example.com")}}
	assert.True(t, f.Matches(nil, []hashutil.Hash{h("example.com"), h("sub.example.com")}))
	assert.False(t, f.Matches(nil, []hashutil.Hash{h("other.com")}))
}

func TestCosmeticFilter_Matches_NegativeHostname(t *testing.T) {
	f := &CosmeticFilter{NotHostnames: []hashutil.Hash{h("example.com")}}
	assert.True(t, f.Matches(nil, []hashutil.Hash{h("other.com")}))
	assert.False(t, f.Matches(nil, []hashutil.Hash{h("example.com")}))
}

func TestCosmeticFilter_Matches_PositiveAndNegativeCombo(t *testing.T) {
	f := &CosmeticFilter{
		Hostnames:    []hashutil.Hash{h("example.com")},
		NotHostnames: []hashutil.Hash{h("ads.example.com")},
	}
	assert.True(t, f.Matches(nil, []hashutil.Hash{h("example.com")}))
	assert.False(t, f.Matches(nil, []hashutil.Hash{h("ads.example.com"), h("example.com")}))
}

func TestCosmeticFilter_HasHostnameConstraint(t *testing.T) {
	assert.False(t, (&CosmeticFilter{}).HasHostnameConstraint())
	assert.True(t, (&CosmeticFilter{Entities: []hashutil.Hash{h("example")}}).HasHostnameConstraint())
}

func TestIntersects(t *testing.T) {
	a := []hashutil.Hash{h("a"), h("b"), h("c")}
	sortHashes(a)
	b := []hashutil.Hash{h("x"), h("b")}
	sortHashes(b)
	assert.True(t, intersects(a, b))
	assert.False(t, intersects(a, []hashutil.Hash{h("y")}))
}
