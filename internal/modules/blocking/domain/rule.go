package domain

import (
	"fmt"
	"strings"
)

const (
	RedirectPath      = "/blocker.html"
	ResourceMainFrame = "main_frame"
	rulePriority      = 1
)

type Scope string

const (
	ScopeRoot       Scope = "root"
	ScopeSubdomains Scope = "subdomains"
)

// Rule redirects top-level navigations matching URLFilter to RedirectPath.
type Rule struct {
	ID            int
	RootDomain    string
	Scope         Scope
	Priority      int
	URLFilter     string
	ResourceTypes []string
	RedirectPath  string
}

// RootDomain reduces a site to its last two dot-separated labels. Multi-part
// public suffixes are not recognised, so "bbc.co.uk" becomes "co.uk".
func RootDomain(site string) string {
	parts := strings.Split(site, ".")
	if len(parts) > 2 {
		return strings.Join(parts[len(parts)-2:], ".")
	}
	return site
}

// RuleIDs returns the root and subdomain rule IDs for the block-list entry at index.
func RuleIDs(index int) (int, int) {
	return 2*index + 1, 2*index + 2
}

// Compile turns the ordered block list into rule pairs, one pair per distinct
// root domain. The first entry for a root wins and IDs follow its position in
// the raw list.
func Compile(blockList []string) []Rule {
	rules := make([]Rule, 0, 2*len(blockList))
	seen := make(map[string]struct{}, len(blockList))
	for index, site := range blockList {
		root := RootDomain(site)
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		rootID, subID := RuleIDs(index)
		rules = append(rules, newRule(rootID, root, ScopeRoot), newRule(subID, root, ScopeSubdomains))
	}
	return rules
}

func newRule(id int, root string, scope Scope) Rule {
	filter := "*://" + root + "/*"
	if scope == ScopeSubdomains {
		filter = "*://*." + root + "/*"
	}
	return Rule{
		ID:            id,
		RootDomain:    root,
		Scope:         scope,
		Priority:      rulePriority,
		URLFilter:     filter,
		ResourceTypes: []string{ResourceMainFrame},
		RedirectPath:  RedirectPath,
	}
}

// Validate reports rules a matcher could not install, such as a filter built
// from an empty or whitespace-laden domain.
func (r Rule) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("rule id must be positive, got %d", r.ID)
	}
	if strings.TrimSpace(r.RootDomain) == "" || strings.ContainsAny(r.RootDomain, " \t\n*") {
		return fmt.Errorf("rule %d: malformed url filter %q", r.ID, r.URLFilter)
	}
	if len(r.ResourceTypes) == 0 {
		return fmt.Errorf("rule %d: resource types are required", r.ID)
	}
	return nil
}
