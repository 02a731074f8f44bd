package engine

import (
	"fmt"
	"strings"
)

// CyclicInstantiationError reports a directive (or container) whose
// arguments, transitively through interpolation references, include the
// node itself. Active lists the path stack at the point the cycle closed.
type CyclicInstantiationError struct {
	Path   string
	Active []string
}

func (e *CyclicInstantiationError) Error() string {
	return fmt.Sprintf("cyclic instantiation at %s: %s", pathOrRoot(e.Path), strings.Join(e.Active, " -> "))
}

// InstantiationError wraps a failure raised while invoking a directive's
// target: a binding error, an error return, or a recovered panic. The
// original failure is never swallowed and remains reachable through
// errors.Unwrap.
type InstantiationError struct {
	Path   string
	Target string
	Err    error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("instantiating %q at %s: %v", e.Target, pathOrRoot(e.Path), e.Err)
}

func (e *InstantiationError) Unwrap() error {
	return e.Err
}

// UnexpectedArgumentError reports named arguments the target cannot
// accept. In strict mode this covers arguments the target's args struct
// has no field for; outside strict mode it is raised only when the
// target offers no way at all to receive named arguments.
type UnexpectedArgumentError struct {
	Path   string
	Target string
	Keys   []string
}

func (e *UnexpectedArgumentError) Error() string {
	return fmt.Sprintf("target %q at %s does not accept arguments: %s",
		e.Target, pathOrRoot(e.Path), strings.Join(e.Keys, ", "))
}

func pathOrRoot(p string) string {
	if p == "" {
		return "<root>"
	}
	return p
}
