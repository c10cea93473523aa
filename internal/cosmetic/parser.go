// Package cosmetic implements the rule parser/classifier for cosmetic
// filter rules: the "##selector", "#@#selector", scriptlet-injection
// ("##+js(...)", "##script:..."), and ":style(...)" rule grammar.
package cosmetic

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/cosmetic-filter/internal/cssvalidate"
	"github.com/bnema/cosmetic-filter/internal/hashutil"
)

var idnaProfile = idna.New(
	idna.Transitional(true),
	idna.VerifyDNSLength(true),
	idna.StrictDomainName(true),
)

var validator cssvalidate.Validator = cssvalidate.TokenBalanceValidator{}

// proceduralMarkers lists the extended-CSS/procedural pseudo-class prefixes
// this engine recognizes but refuses to support, per spec.md's Non-goals
// (no DOM-dependent selector execution).
var proceduralMarkers = []string{
	":has(", ":has-text(", ":contains(", ":xpath(", ":matches-css(",
	":matches-css-before(", ":matches-css-after(", ":min-text-length(",
	":upward(", ":watch-attr(", ":if(", ":if-not(", ":matches-attr(",
	":matches-property(", ":remove(", ":style-remove(", ":others(",
}

// Parse parses a single cosmetic filter rule line. When debug is true, the
// original line text is retained on the returned filter for diagnostics.
func Parse(line string, debug bool) (*CosmeticFilter, error) {
	sharpIndex := strings.IndexByte(line, '#')
	if sharpIndex < 0 {
		return nil, ErrMissingSharp
	}

	mask := NoFlags
	afterSharp := sharpIndex + 1
	suffixStart := afterSharp + 1

	if afterSharp < len(line) && line[afterSharp] == '@' {
		mask |= Unhide
		suffixStart++
	}

	var entities, notEntities, hostnames, notHostnames []hashutil.Hash
	if sharpIndex > 0 {
		var err error
		entities, notEntities, hostnames, notHostnames, mask, err = parseScope(line[:sharpIndex], mask)
		if err != nil {
			return nil, err
		}
	}

	if suffixStart > len(line) {
		suffixStart = len(line)
	}
	body := line[suffixStart:]

	selector, style, hasStyle, injected, err := parseBody(body)
	if err != nil {
		return nil, err
	}
	if injected {
		mask |= ScriptInject
	}

	if !isASCII(selector) {
		mask |= IsUnicode
	}

	if !mask.Has(ScriptInject) {
		switch {
		case strings.HasPrefix(selector, ".") && isClassifiableSelector(selector):
			mask |= IsClassSelector
			if isSimpleSelector(selector) {
				mask |= IsSimple
			}
		case strings.HasPrefix(selector, "#") && isClassifiableSelector(selector):
			mask |= IsIDSelector
			if isSimpleSelector(selector) {
				mask |= IsSimple
			}
		case strings.HasPrefix(selector, "a[h") && isSimpleHrefSelector(selector, 2):
			mask |= IsHrefSelector
		case strings.HasPrefix(selector, "[h") && isSimpleHrefSelector(selector, 1):
			mask |= IsHrefSelector
		}
	}

	filter := &CosmeticFilter{
		Entities:     entities,
		Hostnames:    hostnames,
		Mask:         mask,
		NotEntities:  notEntities,
		NotHostnames: notHostnames,
		Selector:     selector,
		Style:        style,
		HasStyle:     hasStyle,
	}
	if debug {
		filter.RawLine = line
	}
	return filter, nil
}

// parseScope parses the comma-separated hostname/entity scope list that
// precedes the '#' separator, dispatching each label into one of the four
// positive/negative, hostname/entity hash sets.
func parseScope(scope string, mask Mask) (entities, notEntities, hostnames, notHostnames []hashutil.Hash, outMask Mask, err error) {
	outMask = mask
	for _, part := range strings.Split(scope, ",") {
		label := part
		if !isASCII(part) {
			outMask |= IsUnicode
			ascii, convErr := idnaProfile.ToASCII(part)
			if convErr != nil {
				return nil, nil, nil, nil, outMask, ErrPunycodeError
			}
			label = ascii
		}

		negation := strings.HasPrefix(label, "~")
		isEntity := strings.HasSuffix(label, ".*")

		start := 0
		if negation {
			start = 1
		}
		end := len(label)
		if isEntity {
			end -= 2
		}
		if start > end {
			continue
		}

		hash := hashutil.FastHashString(label[start:end])
		switch {
		case negation && isEntity:
			notEntities = append(notEntities, hash)
		case negation && !isEntity:
			notHostnames = append(notHostnames, hash)
		case !negation && isEntity:
			entities = append(entities, hash)
		default:
			hostnames = append(hostnames, hash)
		}
	}

	sortHashes(entities)
	sortHashes(notEntities)
	sortHashes(hostnames)
	sortHashes(notHostnames)

	return entities, notEntities, hostnames, notHostnames, outMask, nil
}

// parseBody classifies the text following the '#'/'#@'/etc. separator:
// scriptlet invocation, :style(...) rule, or plain selector.
func parseBody(body string) (selector, style string, hasStyle, injected bool, err error) {
	if len(body) > 7 && strings.HasPrefix(body, "script:") {
		payload := body[len("script:"):]
		if strings.HasPrefix(payload, "inject(") {
			inner := payload[len("inject("):]
			if !strings.HasSuffix(inner, ")") {
				return "", "", false, false, ErrUnsupportedSyntax
			}
			payload = inner[:len(inner)-1]
		}
		return payload, "", false, true, nil
	}
	if len(body) > 4 && strings.HasPrefix(body, "+js(") {
		inner := body[len("+js("):]
		if !strings.HasSuffix(inner, ")") {
			return "", "", false, false, ErrUnsupportedSyntax
		}
		return inner[:len(inner)-1], "", false, true, nil
	}

	if strings.HasPrefix(body, "^") {
		return "", "", false, false, fmt.Errorf("%w: HTML filters are not supported", ErrUnsupportedSyntax)
	}

	for _, marker := range proceduralMarkers {
		if strings.Contains(body, marker) {
			return "", "", false, false, fmt.Errorf("%w: procedural selector %q", ErrUnsupportedSyntax, strings.TrimSuffix(marker, "("))
		}
	}

	if idx := strings.Index(body, ":style("); idx >= 0 {
		selectorPart := body[:idx]
		rest := body[idx+len(":style("):]
		if !strings.HasSuffix(rest, ")") {
			return "", "", false, false, ErrInvalidStyleSpecifier
		}
		styleBody := rest[:len(rest)-1]

		if !validator.ValidStyle(styleBody) {
			return "", "", false, false, ErrInvalidCssStyle
		}
		if !validator.ValidSelector(selectorPart) {
			return "", "", false, false, ErrInvalidCssSelector
		}
		return selectorPart, styleBody, true, false, nil
	}

	if !validator.ValidSelector(body) {
		return "", "", false, false, ErrInvalidCssSelector
	}
	return body, "", false, false, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// ParseBatch parses a slice of rule lines concurrently — rule parsing is
// pure and independent per line, so it is safe to fan out across a rule
// corpus — and returns the results in input order. A line that fails to
// parse is simply omitted from the result along with no error, matching a
// filter-list ingester's usual "skip unparseable lines" policy; use Parse
// directly when per-line errors must be surfaced.
func ParseBatch(lines []string, debug bool) ([]*CosmeticFilter, error) {
	results := make([]*CosmeticFilter, len(lines))

	g := new(errgroup.Group)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			filter, err := Parse(line, debug)
			if err != nil {
				return nil
			}
			results[i] = filter
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*CosmeticFilter, 0, len(lines))
	for _, f := range results {
		if f != nil {
			out = append(out, f)
		}
	}
	return out, nil
}
