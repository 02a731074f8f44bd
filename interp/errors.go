package interp

import (
	"fmt"
	"strings"
)

// UnresolvedReferenceError reports a reference whose path exists neither
// in the variable set nor in the configuration tree, with no default
// supplied. Path is the tree location of the referencing node; it is
// filled in by the instantiation engine.
type UnresolvedReferenceError struct {
	Ref  string
	Path string
}

func (e *UnresolvedReferenceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("unresolved reference ${%s} at %s", e.Ref, e.Path)
	}
	return fmt.Sprintf("unresolved reference ${%s}", e.Ref)
}

// CyclicReferenceError reports a chain of references that revisits a path
// already being resolved. Chain lists the paths in resolution order; the
// last entry is the one that closed the cycle.
type CyclicReferenceError struct {
	Ref   string
	Chain []string
}

func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("cyclic reference ${%s}: %s", e.Ref, strings.Join(e.Chain, " -> "))
}
