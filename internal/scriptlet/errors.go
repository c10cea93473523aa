package scriptlet

import "errors"

var (
	// ErrMissingScriptletName is returned when a scriptlet invocation
	// string has no name before the first comma (or is empty entirely).
	ErrMissingScriptletName = errors.New("scriptlet: missing scriptlet name")

	// ErrNoMatchingScriptlet is returned when a catalog lookup finds no
	// template registered under the invoked name or any of its aliases.
	ErrNoMatchingScriptlet = errors.New("scriptlet: no matching scriptlet")

	// ErrWrongNumberOfArguments is returned when an invocation supplies
	// more or fewer arguments than the template's highest {{N}} placeholder
	// requires.
	ErrWrongNumberOfArguments = errors.New("scriptlet: wrong number of arguments")
)
