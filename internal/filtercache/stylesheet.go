package filtercache

import "strings"

// styledSelector is a selector paired with its optional custom style
// declaration, the unit rulesToStylesheet assembles into CSS text.
type styledSelector struct {
	selector string
	style    string
	hasStyle bool
}

// rulesToStylesheet assembles a list of selectors into the generated
// stylesheet text: every unstyled selector is joined into one combined
// "hide" rule (the first selector opens the list with no leading comma,
// the rest are comma-joined), and every styled selector is appended
// afterward as its own "selector {declaration}\n" line. This pins the exact
// comma/ordering behavior a combined stylesheet must have.
func rulesToStylesheet(entries []styledSelector) string {
	var unstyled []string
	var styledLines []string

	for _, e := range entries {
		if e.hasStyle {
			styledLines = append(styledLines, e.selector+" {"+e.style+"}\n")
		} else {
			unstyled = append(unstyled, e.selector)
		}
	}

	var sb strings.Builder
	if len(unstyled) > 0 {
		sb.WriteString(strings.Join(unstyled, ","))
		sb.WriteString("{display:none !important;}\n")
	}
	for _, line := range styledLines {
		sb.WriteString(line)
	}
	return sb.String()
}
