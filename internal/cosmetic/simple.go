package cosmetic

import "strings"

// isIdentByte reports whether c is a token character in the "simple
// selector" design rule: alphanumeric, hyphen, or underscore.
func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_'
}

// isClassifiableSelector implements the "simple selector" design rule that
// gates IS_CLASS_SELECTOR/IS_ID_SELECTOR: starting from the second
// character (just past the leading "." or "#"), the token run continues
// while the character is alphanumeric, "-", "_", or a backslash escape. On
// the first non-token character, the selector is accepted iff that
// character is "[", or it is a space immediately followed by one of
// "> + ~ . #"; any other continuation rejects the selector outright. A
// selector consisting entirely of token characters is accepted too.
func isClassifiableSelector(selector string) bool {
	if len(selector) < 2 {
		return false
	}
	body := selector[1:]
	if body == "" {
		return false
	}

	i := 0
	for i < len(body) {
		c := body[i]
		if c == '\\' {
			if i+1 >= len(body) {
				return false
			}
			i += 2
			continue
		}
		if !isIdentByte(c) {
			break
		}
		i++
	}

	if i == len(body) {
		return true
	}
	if body[i] == '[' {
		return true
	}
	if body[i] == ' ' && i+1 < len(body) {
		switch body[i+1] {
		case '>', '+', '~', '.', '#':
			return true
		}
	}
	return false
}

// isSimpleSelector reports whether selector is "merely .key"/"merely
// #key" — after its leading "." or "#", nothing but a CSS identifier
// (letters, digits, hyphens, underscores, backslash escapes) with no
// trailing attribute bracket or combinator tail at all. This is the
// narrower check the cache uses to decide between its simple_*_rules
// bucket (bare key, this predicate) and its complex_*_rules bucket (a
// classifiable but non-bare selector sharing the same leading key).
func isSimpleSelector(selector string) bool {
	if len(selector) < 2 {
		return false
	}
	body := selector[1:]
	return isSimpleIdentifier(body)
}

func isSimpleIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			if i+1 >= len(s) {
				return false
			}
			i++
		case isIdentByte(c):
			// allowed
		default:
			return false
		}
	}
	return true
}

// simpleKey returns the bare class/id name a simple selector carries (the
// text after the leading "." or "#"), used as the cache bucket key.
func simpleKey(selector string) string {
	if len(selector) < 2 {
		return ""
	}
	return selector[1:]
}

// isSimpleHrefSelector reports whether selector is nothing but a single
// href attribute match — "a[href<op>"value"]" or "[href<op>"value"]" — with
// hrefStart pointing at the 'h' of "href" within selector. Anything beyond
// a single quoted attribute comparison (combinators, extra attributes,
// pseudo-classes) disqualifies it.
func isSimpleHrefSelector(selector string, hrefStart int) bool {
	if hrefStart >= len(selector) {
		return false
	}
	rest := selector[hrefStart:]
	if !strings.HasPrefix(rest, "href") {
		return false
	}
	rest = rest[len("href"):]

	matched := false
	for _, op := range []string{"^=", "$=", "*=", "~=", "="} {
		if strings.HasPrefix(rest, op) {
			rest = rest[len(op):]
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	if len(rest) < 2 {
		return false
	}
	quote := rest[0]
	if quote != '"' && quote != '\'' {
		return false
	}
	closeIdx := strings.IndexByte(rest[1:], quote)
	if closeIdx < 0 {
		return false
	}
	tail := rest[1+closeIdx+1:]
	return tail == "]"
}
