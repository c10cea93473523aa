package cosmetic

import (
	"sort"

	"github.com/bnema/cosmetic-filter/internal/hashutil"
)

// CosmeticFilter is a single parsed cosmetic rule.
type CosmeticFilter struct {
	Entities     []hashutil.Hash
	Hostnames    []hashutil.Hash
	Mask         Mask
	NotEntities  []hashutil.Hash
	NotHostnames []hashutil.Hash

	// RawLine preserves the original rule text; only populated when
	// parsing runs in debug mode, to avoid retaining every source line in
	// production builds.
	RawLine string

	Selector string

	// Style holds the declaration body of a :style(...) rule. HasStyle
	// distinguishes an absent style from a (syntactically valid) empty one.
	Style    string
	HasStyle bool
}

// Key returns the class/id name this rule should be bucketed under — the
// identifier text immediately following the leading "." or "#" — and
// whether the rule carries a class/id selector at all. For a simple
// selector this is the whole key; for a classifiable but non-bare selector
// (".ad[data-sponsored]", ".ad > div") it is just the leading class, which
// is what the cache indexes complex rules by.
func (c *CosmeticFilter) Key() (string, bool) {
	if !c.Mask.Has(IsClassSelector) && !c.Mask.Has(IsIDSelector) {
		return "", false
	}
	if c.Mask.Has(IsSimple) {
		return simpleKey(c.Selector), true
	}
	return leadingIdentifier(c.Selector[1:]), true
}

// leadingIdentifier returns the longest CSS-identifier-shaped prefix of s.
func leadingIdentifier(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' {
			i++
			continue
		}
		isIdentChar := c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_'
		if !isIdentChar {
			return s[:i]
		}
	}
	return s
}

// HasHostnameConstraint reports whether the rule is scoped to any
// hostname/entity allow- or deny-list, as opposed to applying generically.
func (c *CosmeticFilter) HasHostnameConstraint() bool {
	return len(c.Hostnames) > 0 || len(c.Entities) > 0 ||
		len(c.NotHostnames) > 0 || len(c.NotEntities) > 0
}

// Matches reports whether the rule's hostname/entity scope covers a request
// described by its own hostname/entity hash decomposition (see
// internal/hashutil.HostnameHashes/EntityHashes). A rule with no scope at
// all matches every request; a rule with only negative constraints matches
// whenever none of them hit; a rule with positive constraints additionally
// requires at least one of them to hit.
func (c *CosmeticFilter) Matches(requestEntities, requestHostnames []hashutil.Hash) bool {
	if len(c.Hostnames) > 0 && !intersects(c.Hostnames, requestHostnames) {
		return false
	}
	if len(c.Entities) > 0 && !intersects(c.Entities, requestEntities) {
		return false
	}
	if len(c.NotHostnames) > 0 && intersects(c.NotHostnames, requestHostnames) {
		return false
	}
	if len(c.NotEntities) > 0 && intersects(c.NotEntities, requestEntities) {
		return false
	}

	if len(c.Hostnames) == 0 && len(c.Entities) == 0 {
		return true
	}
	return intersects(c.Hostnames, requestHostnames) || intersects(c.Entities, requestEntities)
}

// intersects reports whether two ascending-sorted Hash slices share any
// element, walking both in a single pass.
func intersects(a, b []hashutil.Hash) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return true
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return false
}

func sortHashes(hashes []hashutil.Hash) {
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })
}
