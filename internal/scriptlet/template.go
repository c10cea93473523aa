// Package scriptlet implements the uBlock-Origin-style scriptlet resources
// catalog: parsing the "/// name" + metadata + body resource file format,
// tokenizing each body into a template of literal/argument parts, and
// patching a template with an invocation's arguments.
package scriptlet

import "strings"

// part is either a literal run of template text or a reference to the
// Nth (1-indexed, per the "{{N}}" placeholder grammar) invocation
// argument. argIdx stores the already-adjusted 0-based slice index
// (N-1) so Patch can index args directly.
type part struct {
	literal string
	argIdx  int
	isArg   bool
}

// Scriptlet is a parsed scriptlet body: an alternating sequence of literal
// text and {{N}} argument placeholders, plus the number of arguments a
// Patch call must supply.
type Scriptlet struct {
	parts        []part
	RequiredArgs int
}

// ParseTemplate tokenizes a scriptlet body. Placeholders are 1-indexed:
// "{{1}}" refers to the first invocation argument, through "{{9}}" for the
// ninth; anything shaped like {{0}}, {{10}} or {{name}} does not match the
// single-digit form and is retained as literal text, capping usable
// argument arity at nine explicit slots. RequiredArgs is simply the
// largest digit referenced, since argument 1 is always present whenever a
// template uses any placeholder at all.
func ParseTemplate(data string) *Scriptlet {
	var parts []part
	requiredArgs := 0

	literalStart := 0
	i := 0
	for i < len(data) {
		if isTemplateArgAt(data, i) {
			if i > literalStart {
				parts = append(parts, part{literal: data[literalStart:i]})
			}
			digit := int(data[i+2] - '0')
			parts = append(parts, part{argIdx: digit - 1, isArg: true})
			if digit > requiredArgs {
				requiredArgs = digit
			}
			i += 5
			literalStart = i
			continue
		}
		i++
	}
	if literalStart < len(data) {
		parts = append(parts, part{literal: data[literalStart:]})
	}

	return &Scriptlet{parts: parts, RequiredArgs: requiredArgs}
}

// isTemplateArgAt reports whether data[i:] begins with a "{{d}}" argument
// placeholder, where d is a single digit from 1 to 9.
func isTemplateArgAt(data string, i int) bool {
	if i+5 > len(data) {
		return false
	}
	return data[i] == '{' && data[i+1] == '{' &&
		data[i+2] >= '1' && data[i+2] <= '9' &&
		data[i+3] == '}' && data[i+4] == '}'
}

// Patch renders the template with args, which must supply exactly
// RequiredArgs values (the largest argument index the template
// references); too few or too many is an arity error.
func (s *Scriptlet) Patch(args []string) (string, error) {
	if len(args) != s.RequiredArgs {
		return "", ErrWrongNumberOfArguments
	}

	var sb strings.Builder
	for _, p := range s.parts {
		if p.isArg {
			sb.WriteString(args[p.argIdx])
		} else {
			sb.WriteString(p.literal)
		}
	}
	return sb.String(), nil
}
