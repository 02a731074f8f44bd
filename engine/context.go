package engine

import (
	"github.com/vk/cfgforge/interp"
)

// resolution is the ephemeral per-call state threaded through one
// Instantiate walk. It is created at the start of a top-level call and
// discarded at its end; it is never shared between calls.
type resolution struct {
	resolver *interp.Resolver

	// active counts how many frames currently hold each path. The same
	// path legitimately stacks twice when a reference hands a directive
	// to the walker, so this is a counter rather than a set; cycle
	// checks happen only at reference re-entry.
	active map[string]int
	// stack is the active paths in entry order, for error messages.
	stack []string
	// memo holds instantiated values keyed by canonical tree path, so
	// repeated references to one path share a single instance.
	memo map[string]any
}

func newResolution(root any, vars map[string]any) *resolution {
	return &resolution{
		resolver: interp.New(root, vars),
		active:   make(map[string]int),
		memo:     make(map[string]any),
	}
}

func (r *resolution) isActive(key string) bool {
	return r.active[key] > 0
}

func (r *resolution) enter(key string) {
	r.active[key]++
	r.stack = append(r.stack, key)
}

func (r *resolution) exit(key string) {
	r.active[key]--
	if r.active[key] <= 0 {
		delete(r.active, key)
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// trace returns the active stack plus the offending key, for cycle
// error reporting.
func (r *resolution) trace(key string) []string {
	out := make([]string, 0, len(r.stack)+1)
	for _, k := range r.stack {
		out = append(out, pathOrRoot(k))
	}
	return append(out, pathOrRoot(key))
}
