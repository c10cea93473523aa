// Package cssvalidate implements the "tokenize and balance" CSS fallback
// spec.md sanctions in place of a full CSS grammar: reject a selector or
// style block only when its brackets/parens are unbalanced or its tokenizer
// chokes on a stray unterminated string, without attempting to validate
// actual CSS semantics.
package cssvalidate

import (
	"github.com/gorilla/css/scanner"
)

// Validator checks that candidate CSS text is at least well-formed enough
// to be worth keeping: no unterminated strings, no unbalanced brackets.
type Validator interface {
	ValidSelector(selector string) bool
	ValidStyle(style string) bool
}

// TokenBalanceValidator is the default Validator, grounded on gorilla/css's
// scanner: it walks the token stream counting bracket/paren depth and
// watching for scanner.TokenError, the only signal gorilla/css's scanner
// gives for malformed input (it otherwise tokenizes permissively).
type TokenBalanceValidator struct{}

func (TokenBalanceValidator) ValidSelector(selector string) bool {
	return balanced(selector)
}

func (TokenBalanceValidator) ValidStyle(style string) bool {
	return balanced(style)
}

func balanced(text string) bool {
	s := scanner.New(text)

	depthBracket := 0
	depthParen := 0

	for {
		tok := s.Next()
		if tok == nil || tok.Type == scanner.TokenEOF {
			break
		}
		if tok.Type == scanner.TokenError {
			return false
		}

		switch tok.Type {
		case scanner.TokenFunction:
			// A function token ("rgba(", "url(", ...) already consumes its
			// opening paren.
			depthParen++
		case scanner.TokenChar:
			switch tok.Value {
			case "[":
				depthBracket++
			case "]":
				depthBracket--
			case "(":
				depthParen++
			case ")":
				depthParen--
			}
		}

		if depthBracket < 0 || depthParen < 0 {
			return false
		}
	}

	return depthBracket == 0 && depthParen == 0
}
