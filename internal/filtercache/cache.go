// Package filtercache implements the cosmetic filter index: a bucketed
// fast-path structure over parsed rules that can answer "what selectors
// apply generically", "what selectors apply given this page's classes/ids",
// and "what selectors apply given this hostname" without re-scanning every
// rule on every lookup.
//
// The read-mostly concurrency pattern (sync.RWMutex guarding the buckets,
// readers far outnumbering writers) follows the same shape as the teacher's
// domain-rule map, just generalized from per-domain injected-script storage
// to the selector/stylesheet buckets this engine needs.
package filtercache

import (
	"sort"
	"sync"

	"github.com/bnema/cosmetic-filter/internal/cosmetic"
	"github.com/bnema/cosmetic-filter/internal/hashutil"
	"github.com/bnema/cosmetic-filter/internal/logging"
)

// Cache is the bucketed cosmetic filter index. The zero value is not
// ready for use; construct one with New.
type Cache struct {
	mu sync.RWMutex

	simpleClassRules map[string]struct{}
	simpleIDRules    map[string]struct{}

	complexClassRules map[string][]string
	complexIDRules    map[string][]string

	specificRules []*cosmetic.CosmeticFilter
	miscRules     []*cosmetic.CosmeticFilter

	// baseStylesheet memoizes the stylesheet generated from miscRules.
	// nil means "needs regeneration"; it is
	// invalidated lazily on insert rather than rebuilt eagerly.
	baseStylesheet *string

	psl hashutil.PublicSuffixLookup
}

// New returns an empty Cache. psl resolves registrable domains for
// HostnameStylesheet; pass hashutil.DefaultPublicSuffixLookup{} in
// production.
func New(psl hashutil.PublicSuffixLookup) *Cache {
	return &Cache{
		simpleClassRules:  make(map[string]struct{}),
		simpleIDRules:     make(map[string]struct{}),
		complexClassRules: make(map[string][]string),
		complexIDRules:    make(map[string][]string),
		psl:               psl,
	}
}

// NewFromRules builds a Cache from a slice of already-parsed rules in one
// pass, as the engine does when compiling a filter list from scratch.
func NewFromRules(rules []*cosmetic.CosmeticFilter, psl hashutil.PublicSuffixLookup) *Cache {
	c := New(psl)
	for _, rule := range rules {
		c.AddFilter(rule)
	}
	return c
}

// AddFilter inserts a single parsed rule into the appropriate bucket.
// UNHIDE and scriptlet-injection rules are recognized but never installed:
// they are dropped before reaching any bucket.
func (c *Cache) AddFilter(rule *cosmetic.CosmeticFilter) {
	if rule == nil {
		return
	}
	if rule.Mask.Has(cosmetic.Unhide) || rule.Mask.Has(cosmetic.ScriptInject) {
		logging.Debug("filtercache: skipping unhide/scriptlet rule, not indexed")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if rule.HasHostnameConstraint() {
		c.specificRules = append(c.specificRules, rule)
		return
	}

	// A rule carrying a custom :style(...) declaration can't be collapsed
	// into a bare class/id key without losing the declaration, so it is
	// kept in miscRules regardless of selector shape.
	if key, ok := rule.Key(); ok && !rule.HasStyle {
		switch {
		case rule.Mask.Has(cosmetic.IsClassSelector) && rule.Mask.Has(cosmetic.IsSimple):
			c.simpleClassRules[key] = struct{}{}
		case rule.Mask.Has(cosmetic.IsClassSelector):
			c.complexClassRules[key] = append(c.complexClassRules[key], rule.Selector)
		case rule.Mask.Has(cosmetic.IsIDSelector) && rule.Mask.Has(cosmetic.IsSimple):
			c.simpleIDRules[key] = struct{}{}
		case rule.Mask.Has(cosmetic.IsIDSelector):
			c.complexIDRules[key] = append(c.complexIDRules[key], rule.Selector)
		default:
			c.miscRules = append(c.miscRules, rule)
		}
	} else {
		c.miscRules = append(c.miscRules, rule)
	}

	c.baseStylesheet = nil
}

// BaseStylesheet returns the combined stylesheet for misc_rules — rules
// with no hostname constraint that landed in no fast-path bucket —
// regenerating and memoizing it if a prior insert invalidated the cached
// copy. Simple/complex class and id rules are served only through
// ClassIDStylesheet, never folded into the base stylesheet: they have no
// meaning until a page's actual class/id tokens are known.
func (c *Cache) BaseStylesheet() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.baseStylesheet != nil {
		return *c.baseStylesheet
	}

	entries := make([]styledSelector, 0, len(c.miscRules))
	for _, rule := range c.miscRules {
		entries = append(entries, styledSelector{selector: rule.Selector, style: rule.Style, hasStyle: rule.HasStyle})
	}

	sheet := rulesToStylesheet(entries)
	c.baseStylesheet = &sheet
	logging.Debug("filtercache: regenerated base stylesheet")
	return sheet
}

// ClassIDStylesheet returns the stylesheet covering the given classes and
// ids found on a page. A class/id token only produces output if it appears
// in the simple bucket at all; when it does, a complex bucket for the same
// key (from some other, non-simple rule sharing that key) takes priority
// over the bare ".key"/"#key" selector. Entries are emitted in input
// order, classes first, then ids, then every complex selector collected
// along the way — never resorted. ok is false when none of the supplied
// classes/ids matched anything, letting the caller skip injecting an empty
// stylesheet.
func (c *Cache) ClassIDStylesheet(classes, ids []string) (sheet string, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var simpleClassHits, simpleIDHits, complexHits []string

	for _, class := range classes {
		if _, found := c.simpleClassRules[class]; !found {
			continue
		}
		if bucket, found := c.complexClassRules[class]; found {
			complexHits = append(complexHits, bucket...)
		} else {
			simpleClassHits = append(simpleClassHits, class)
		}
	}
	for _, id := range ids {
		if _, found := c.simpleIDRules[id]; !found {
			continue
		}
		if bucket, found := c.complexIDRules[id]; found {
			complexHits = append(complexHits, bucket...)
		} else {
			simpleIDHits = append(simpleIDHits, id)
		}
	}

	if len(simpleClassHits) == 0 && len(simpleIDHits) == 0 && len(complexHits) == 0 {
		return "", false
	}

	entries := make([]styledSelector, 0, len(simpleClassHits)+len(simpleIDHits)+len(complexHits))
	for _, class := range simpleClassHits {
		entries = append(entries, styledSelector{selector: "." + class})
	}
	for _, id := range simpleIDHits {
		entries = append(entries, styledSelector{selector: "#" + id})
	}
	for _, sel := range complexHits {
		entries = append(entries, styledSelector{selector: sel})
	}

	return rulesToStylesheet(entries), true
}

// HostnameStylesheet returns the stylesheet covering every specific
// (hostname/entity-scoped) rule that matches hostname, resolving
// hostname's registrable domain through the cache's PublicSuffixLookup. It
// returns an empty string when no registrable domain can be resolved, or
// when nothing matches. Matching rules are emitted in insertion order.
func (c *Cache) HostnameStylesheet(hostname string) string {
	domain := c.psl.Domain(hostname)
	if domain == "" {
		return ""
	}

	requestHostnames := hashutil.HostnameHashes(hostname, domain)
	requestEntities := hashutil.EntityHashes(hostname, domain)
	// Matches intersects by a sorted merge, so the request sets must be
	// ascending like the rule's own sets.
	sort.Slice(requestHostnames, func(i, j int) bool { return requestHostnames[i] < requestHostnames[j] })
	sort.Slice(requestEntities, func(i, j int) bool { return requestEntities[i] < requestEntities[j] })

	c.mu.RLock()
	defer c.mu.RUnlock()

	var entries []styledSelector
	for _, rule := range c.specificRules {
		if rule.Matches(requestEntities, requestHostnames) {
			entries = append(entries, styledSelector{selector: rule.Selector, style: rule.Style, hasStyle: rule.HasStyle})
		}
	}
	if len(entries) == 0 {
		return ""
	}

	return rulesToStylesheet(entries)
}

// Stats summarizes the cache's current bucket sizes, mirroring the
// teacher's GetStats diagnostic shape.
type Stats struct {
	SimpleClassRules int
	SimpleIDRules    int
	ComplexClassKeys int
	ComplexIDKeys    int
	SpecificRules    int
	MiscRules        int
}

func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		SimpleClassRules: len(c.simpleClassRules),
		SimpleIDRules:    len(c.simpleIDRules),
		ComplexClassKeys: len(c.complexClassRules),
		ComplexIDKeys:    len(c.complexIDRules),
		SpecificRules:    len(c.specificRules),
		MiscRules:        len(c.miscRules),
	}
}
