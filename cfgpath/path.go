package cfgpath

import (
	"fmt"
	"strings"
)

// Segment is a single component of a path. It is either a key segment
// (Name set, Index == -1) or an index segment (Name empty, Index >= 0).
type Segment struct {
	Name  string
	Index int
}

// Key creates a key segment addressing a mapping entry.
func Key(name string) Segment {
	return Segment{Name: name, Index: -1}
}

// Index creates an index segment addressing a sequence element.
func Index(i int) Segment {
	return Segment{Index: i}
}

// IsIndex reports whether the segment addresses a sequence element.
func (s Segment) IsIndex() bool {
	return s.Name == ""
}

// Path is the structured representation of an address into a
// configuration tree. The zero value addresses the tree root.
type Path []Segment

// Root returns the empty path addressing the tree root.
func Root() Path {
	return nil
}

// Child returns a new path with a key segment appended. The receiver is
// not modified.
func (p Path) Child(name string) Path {
	return p.append(Key(name))
}

// Elem returns a new path with an index segment appended. The receiver is
// not modified.
func (p Path) Elem(i int) Path {
	return p.append(Index(i))
}

// append copies before extending so sibling paths built from a shared
// prefix cannot alias each other's backing array.
func (p Path) append(s Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// IsRoot reports whether the path addresses the tree root.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// String serializes the path into its canonical string representation.
// The root path renders as an empty string.
func (p Path) String() string {
	var sb strings.Builder
	for i, seg := range p {
		if seg.IsIndex() {
			fmt.Fprintf(&sb, "[%d]", seg.Index)
			continue
		}
		if i > 0 {
			sb.WriteRune('.')
		}
		sb.WriteString(seg.Name)
	}
	return sb.String()
}

// Equal checks for deep equality between two paths.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
