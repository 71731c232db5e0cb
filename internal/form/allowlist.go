package form

import "strings"

// AllowedSites is the set of site identifiers this deployment accepts
// submissions for. Membership is case-insensitive. The zero value is an
// empty set, which rejects every site: an unset allowlist fails closed.
type AllowedSites struct {
	sites map[string]struct{}
}

// ParseAllowedSites builds the set from a comma-separated configuration
// value. Entries are trimmed and empty entries discarded.
func ParseAllowedSites(raw string) AllowedSites {
	sites := make(map[string]struct{})
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		sites[strings.ToLower(entry)] = struct{}{}
	}
	return AllowedSites{sites: sites}
}

// Contains reports whether site is in the allowlist. The empty string
// is never allowed.
func (a AllowedSites) Contains(site string) bool {
	if site == "" || len(a.sites) == 0 {
		return false
	}
	_, ok := a.sites[strings.ToLower(site)]
	return ok
}

// Len returns the number of configured sites.
func (a AllowedSites) Len() int {
	return len(a.sites)
}
