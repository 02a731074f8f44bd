package cfgpath

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse creates a Path by parsing its canonical string representation,
// e.g. `a.b[0].c`. An empty string is rejected; use Root() for the root
// path explicitly.
func Parse(raw string) (Path, error) {
	if raw == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	var path Path
	for _, part := range strings.Split(raw, ".") {
		if part == "" {
			return nil, fmt.Errorf("path %q contains empty segment", raw)
		}

		name, indexes, err := splitIndexes(part)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", raw, err)
		}

		if name == "" && len(path) > 0 {
			return nil, fmt.Errorf("path %q: invalid segment %q", raw, part)
		}
		if name != "" {
			if !isValidName(name) {
				return nil, fmt.Errorf("path %q: invalid segment name %q", raw, name)
			}
			path = append(path, Key(name))
		}
		// A bare leading index segment like `[0]` addresses a root sequence.
		for _, idx := range indexes {
			path = append(path, Index(idx))
		}
	}

	return path, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// compile-time-constant paths.
func MustParse(raw string) Path {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// splitIndexes splits a dot-free segment string like `name[0][1]` into its
// name prefix and trailing indexes. The name may be empty when the segment
// is purely indexes (for a root-level sequence).
func splitIndexes(part string) (string, []int, error) {
	open := strings.IndexByte(part, '[')
	if open == -1 {
		if strings.ContainsAny(part, "]") {
			return "", nil, fmt.Errorf("unbalanced bracket in segment %q", part)
		}
		return part, nil, nil
	}

	name := part[:open]
	rest := part[open:]
	var indexes []int
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, fmt.Errorf("invalid segment format %q", part)
		}
		close := strings.IndexByte(rest, ']')
		if close == -1 {
			return "", nil, fmt.Errorf("unbalanced bracket in segment %q", part)
		}
		idx, err := strconv.Atoi(rest[1:close])
		if err != nil || idx < 0 {
			return "", nil, fmt.Errorf("invalid index in segment %q", part)
		}
		indexes = append(indexes, idx)
		rest = rest[close+1:]
	}
	return name, indexes, nil
}

// isValidName checks for undesirable but technically parseable names.
func isValidName(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
