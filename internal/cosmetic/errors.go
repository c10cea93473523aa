package cosmetic

import "errors"

var (
	// ErrMissingSharp is returned when a line has no '#' at all, so it
	// cannot be a cosmetic rule (##/#@#/#?#/#@?#).
	ErrMissingSharp = errors.New("cosmetic filter: missing '#' separator")

	// ErrPunycodeError is returned when a non-ASCII hostname/entity scope
	// fails UTS-46 Punycode conversion.
	ErrPunycodeError = errors.New("cosmetic filter: invalid punycode in hostname scope")

	// ErrInvalidStyleSpecifier is returned when a :style(...) pseudo-class
	// is present but its parentheses are unterminated. A style argument
	// that fails CSS validation yields ErrInvalidCssStyle instead.
	ErrInvalidStyleSpecifier = errors.New("cosmetic filter: invalid style specifier")

	// ErrUnsupportedSyntax is returned for recognized-but-unsupported
	// syntax: extended-CSS/procedural pseudo-classes such as :has(),
	// :contains(), :xpath(), :matches-css(), and HTML-filter (##^) rules.
	ErrUnsupportedSyntax = errors.New("cosmetic filter: unsupported syntax")

	// ErrInvalidCssSelector is returned when the selector fails the
	// tokenize-and-balance CSS validation fallback.
	ErrInvalidCssSelector = errors.New("cosmetic filter: invalid css selector")

	// ErrInvalidCssStyle is returned when a :style(...) argument fails the
	// tokenize-and-balance CSS validation fallback.
	ErrInvalidCssStyle = errors.New("cosmetic filter: invalid css style")
)
