// Package hashutil implements the fast_hash contract shared by the rule
// parser and the filter cache's hostname/entity decomposition: both sides
// must hash hostname and entity labels with the exact same function, or a
// rule's stored hash will never match a request's computed hash.
package hashutil

import "github.com/cespare/xxhash/v2"

// Hash is the fixed-width digest produced by FastHash. It is intentionally
// not a cryptographic hash: collision resistance against an adversary is not
// a requirement here, only a stable, fast digest of short ASCII labels.
type Hash uint64

// FastHash hashes a byte slice into a Hash. Every caller that needs to
// compare hostname/entity labels for filter matching must go through this
// function, since any other hash would partition the same label into a
// different bucket.
func FastHash(data []byte) Hash {
	return Hash(xxhash.Sum64(data))
}

// FastHashString is a convenience wrapper avoiding a []byte conversion at
// call sites that already hold a string.
func FastHashString(s string) Hash {
	return Hash(xxhash.Sum64String(s))
}
