package hashutil

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// PublicSuffixLookup resolves the registrable domain (eTLD+1) for a
// hostname. It is an interface, not a hard-coded dependency, so the cache
// never imports the public suffix list directly and a test can supply a
// trivial fake instead of the real (large) table.
type PublicSuffixLookup interface {
	// Domain returns the registrable domain for hostname, or "" if none
	// could be determined (hostname is itself a public suffix, or is not
	// a valid domain name at all).
	Domain(hostname string) string
}

// DefaultPublicSuffixLookup backs PublicSuffixLookup with
// golang.org/x/net/publicsuffix, the collaborator spec.md names for
// eTLD+1 resolution.
type DefaultPublicSuffixLookup struct{}

func (DefaultPublicSuffixLookup) Domain(hostname string) string {
	hostname = strings.ToLower(strings.TrimSuffix(hostname, "."))
	if hostname == "" {
		return ""
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(hostname)
	if err != nil {
		return ""
	}
	return domain
}

// HostnameHashes returns the fast_hash of hostname and every suffix of it
// down to (and including) domain. For hostname "a.b.example.com" and domain
// "example.com" this yields hashes of "a.b.example.com", "b.example.com",
// and "example.com" — every hostname scope a cosmetic rule could have been
// written against that still covers the request.
func HostnameHashes(hostname, domain string) []Hash {
	if hostname == "" {
		return nil
	}
	labels := strings.Split(hostname, ".")
	var hashes []Hash
	for i := 0; i < len(labels); i++ {
		suffix := strings.Join(labels[i:], ".")
		hashes = append(hashes, FastHashString(suffix))
		if suffix == domain {
			break
		}
	}
	return hashes
}

// EntityHashes returns the fast_hash of the "entity" form of hostname and
// every suffix down to the registrable domain's entity form. A rule's scope
// list writes an entity scope as `foo.*` (e.g. "example.*"), but the parser
// hashes only the label preceding the ".*" — the wildcard itself never
// enters the hash — so this must hash the same bare label the parser does,
// with no literal ".*" suffix: for hostname "a.b.example.com" and domain
// "example.com" (public suffix "com"), this yields hashes of "a.b.example",
// "b.example" and "example".
func EntityHashes(hostname, domain string) []Hash {
	if hostname == "" || domain == "" {
		return nil
	}
	domainLabels := strings.Split(domain, ".")
	if len(domainLabels) < 2 {
		return nil
	}
	base := domainLabels[0]

	labels := strings.Split(hostname, ".")
	var hashes []Hash
	for i := 0; i < len(labels); i++ {
		suffix := strings.Join(labels[i:], ".")
		if suffix != domain && !strings.HasSuffix(suffix, "."+domain) {
			continue
		}
		entity := strings.TrimSuffix(suffix, domain) + base
		hashes = append(hashes, FastHashString(entity))
		if suffix == domain {
			break
		}
	}
	return hashes
}
