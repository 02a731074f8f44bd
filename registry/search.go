package registry

import "strings"

// Namespace is a flat collection of targets addressable through the
// search path. Keys may themselves be dotted, mirroring nested paths
// inside the namespace.
type Namespace map[string]any

// searchEntry binds an alias prefix to a namespace. An empty alias makes
// the namespace global: the full dotted name is looked up in it directly.
type searchEntry struct {
	alias string
	ns    Namespace
}

// AddSearchPath appends a namespace to the search path under the given
// alias prefix. A name like `alias.rest` resolves to ns["rest"]; with an
// empty alias the whole name is tried against the namespace. Entries are
// consulted in registration order, after direct and alias lookup have
// missed.
func (r *Registry) AddSearchPath(alias string, ns Namespace) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.search = append(r.search, searchEntry{alias: alias, ns: ns})
}

// searchLocked runs the search-path fallback. Caller holds at least a
// read lock.
func (r *Registry) searchLocked(name string) (any, bool) {
	prefix, rest, dotted := strings.Cut(name, ".")
	for _, entry := range r.search {
		if entry.alias == "" {
			if target, ok := entry.ns[name]; ok {
				return target, true
			}
			continue
		}
		if !dotted || entry.alias != prefix {
			continue
		}
		if target, ok := entry.ns[rest]; ok {
			return target, true
		}
	}
	return nil, false
}
