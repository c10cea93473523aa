package scriptlet

import (
	"bufio"
	"io"
	"strings"
	"sync"

	"github.com/bnema/cosmetic-filter/internal/logging"
)

// Catalog holds every scriptlet template parsed from a resources file,
// along with its alias names, and resolves a "+js(...)"-style invocation
// to the template's name.
type Catalog struct {
	mu        sync.RWMutex
	templates map[string]*Scriptlet
	aliases   map[string]string
}

// ParseCatalog parses a uBlock-Origin-style resources file: one or more
// blocks, each opening with a bare "/// <name>" line, followed by zero or
// more "/// <key> <value>" metadata lines (only "alias" is recognized),
// followed by the scriptlet body up to the next "/// " line or EOF. Any
// leading "#"-prefixed banner/copyright lines before the first block are
// skipped.
func ParseCatalog(r io.Reader) (*Catalog, error) {
	c := &Catalog{
		templates: make(map[string]*Scriptlet),
		aliases:   make(map[string]string),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var currentName string
	var aliasesForCurrent []string
	var bodyLines []string
	inBody := false
	haveBlock := false

	flush := func() {
		if !haveBlock || currentName == "" {
			return
		}
		name := strings.TrimSuffix(currentName, ".js")
		c.templates[name] = ParseTemplate(strings.Join(bodyLines, "\n"))
		for _, alias := range aliasesForCurrent {
			c.aliases[strings.TrimSuffix(alias, ".js")] = name
		}
	}

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "/// ") {
			content := strings.TrimPrefix(line, "/// ")
			if !haveBlock || inBody {
				flush()
				currentName = strings.TrimSpace(content)
				aliasesForCurrent = nil
				bodyLines = nil
				inBody = false
				haveBlock = true
				continue
			}

			fields := strings.SplitN(content, " ", 2)
			if len(fields) == 2 && fields[0] == "alias" {
				aliasesForCurrent = append(aliasesForCurrent, strings.TrimSpace(fields[1]))
			}
			continue
		}

		if !haveBlock && strings.HasPrefix(line, "#") {
			continue
		}

		inBody = true
		bodyLines = append(bodyLines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	logging.Info("scriptlet catalog parsed")
	return c, nil
}

// GetScriptlet resolves a "name, arg1, arg2, ..." invocation string (the
// inner text of a "+js(...)" or "script:inject(...)" call) against the
// catalog and renders the matching template.
func (c *Catalog) GetScriptlet(invocation string) (string, error) {
	parts := ParseScriptletArgs(invocation)
	if len(parts) == 0 || parts[0] == "" {
		return "", ErrMissingScriptletName
	}
	name := strings.TrimSuffix(parts[0], ".js")
	args := parts[1:]

	c.mu.RLock()
	tmpl, ok := c.templates[name]
	if !ok {
		if canonical, aliased := c.aliases[name]; aliased {
			tmpl, ok = c.templates[canonical]
		}
	}
	c.mu.RUnlock()

	if !ok {
		return "", ErrNoMatchingScriptlet
	}

	out, err := tmpl.Patch(args)
	if err != nil {
		return "", err
	}
	return out, nil
}

// Len reports how many distinct scriptlet templates are registered.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}
