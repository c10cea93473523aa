package cosmetic

// Mask is a bitset classifying a parsed cosmetic rule. The low six bits
// mirror the original implementation's layout exactly so serialized caches
// stay byte-compatible across the two ports; IS_SIMPLE is an internal
// extension with no equivalent there.
type Mask uint8

const (
	// NoFlags matches nothing when compared with & — do not use it with ==.
	NoFlags Mask = 0

	// Unhide marks an exception rule (#@#) that cancels a previous hiding
	// rule for the same selector/scope. Recognized by the parser but never
	// installed into the cache: spec.md's insertion algorithm treats it as
	// "no selector to hide", so it is simply discarded after parsing.
	Unhide Mask = 1 << 0

	// ScriptInject marks a scriptlet-injection rule (##script:... or
	// ##+js(...)), which the cache never indexes for stylesheet lookups —
	// scriptlet invocation is resolved against the separate resources
	// catalog, not the selector cache.
	ScriptInject Mask = 1 << 1

	// IsUnicode marks a rule whose hostname/entity scope or selector
	// contained non-ASCII text.
	IsUnicode Mask = 1 << 2

	// IsClassSelector marks a ".key"-led selector that passes the "simple
	// selector" rule (bare, or followed by "[" or a space combinator).
	IsClassSelector Mask = 1 << 3

	// IsIDSelector marks a "#key"-led selector that passes the same rule.
	IsIDSelector Mask = 1 << 4

	// IsHrefSelector marks an "a[href=...]"/"[href=...]"-shaped selector.
	IsHrefSelector Mask = 1 << 5

	// IsSimple is internal-only: it records whether a class/id selector was
	// the bare ".key"/"#key" form (vs. a compound selector that merely
	// starts with one), letting the cache route straight to its
	// simple_*_rules bucket instead of re-deriving simplicity at insertion
	// time.
	IsSimple Mask = 1 << 6
)

func (m Mask) Has(bit Mask) bool {
	return m&bit != 0
}
