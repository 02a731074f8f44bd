package registry

import "fmt"

// DuplicateNameError reports an attempt to register a name that already
// has a target, without requesting an override.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("target %q is already registered", e.Name)
}

// UnknownNameError reports a lookup miss, after the search-path fallback
// has been exhausted. Path is the configuration tree location of the
// directive that referenced the name; it is filled in by the
// instantiation engine.
type UnknownNameError struct {
	Name string
	Path string
}

func (e *UnknownNameError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("no target registered under %q (referenced at %s)", e.Name, e.Path)
	}
	return fmt.Sprintf("no target registered under %q", e.Name)
}
