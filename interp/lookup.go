package interp

import (
	"github.com/vk/cfgforge/cfgpath"
)

// Lookup walks a configuration tree along the given path. Key segments
// address map[string]any entries, index segments address []any elements.
// The boolean result reports whether the full path exists.
func Lookup(tree any, p cfgpath.Path) (any, bool) {
	current := tree
	for _, seg := range p {
		if seg.IsIndex() {
			seq, ok := current.([]any)
			if !ok || seg.Index >= len(seq) {
				return nil, false
			}
			current = seq[seg.Index]
			continue
		}

		mapping, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = mapping[seg.Name]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
