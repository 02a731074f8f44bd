package config

import (
	"strings"

	"github.com/vk/cfgforge/interp"
)

// Reserved vocabulary recognized inside directive mappings. These tokens
// must not collide with legitimate user configuration keys.
const (
	// DefaultTargetKey marks a mapping as a directive and names the
	// registry target to invoke.
	DefaultTargetKey = "_target_"
	// ArgsKey holds the directive's positional argument sequence.
	ArgsKey = "_args_"
	// PartialKey, when true, makes the directive resolve to a deferred
	// bound call instead of being invoked.
	PartialKey = "_partial_"
)

// Kind is the closed classification of a configuration node. The engine
// classifies each node exactly once and dispatches on the tag.
type Kind int

const (
	// KindLiteral is a scalar with no interpolation references.
	KindLiteral Kind = iota
	// KindSequence is an ordered []any container.
	KindSequence
	// KindMapping is a map[string]any container without the target key.
	KindMapping
	// KindInterpolation is a string scalar carrying `${...}` references.
	KindInterpolation
	// KindDirective is a mapping carrying the target key.
	KindDirective
)

// String returns the kind's name for logs and error messages.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindInterpolation:
		return "interpolation"
	case KindDirective:
		return "directive"
	default:
		return "unknown"
	}
}

// Classify inspects a node and returns its kind. Presence of the target
// key takes precedence over treatment as a plain mapping. targetKey is
// normally DefaultTargetKey but callers may substitute their own token.
func Classify(node any, targetKey string) Kind {
	switch n := node.(type) {
	case map[string]any:
		if _, ok := n[targetKey]; ok {
			return KindDirective
		}
		return KindMapping
	case []any:
		return KindSequence
	case string:
		// Escaped openers classify as interpolation too: the resolver
		// still has to rewrite `$${` into a literal `${`.
		if interp.Contains(n) || strings.Contains(n, "$${") {
			return KindInterpolation
		}
		return KindLiteral
	default:
		return KindLiteral
	}
}
