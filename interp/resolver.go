package interp

import (
	"fmt"
	"strings"

	"github.com/vk/cfgforge/cfgpath"
)

// Resolver resolves references against a configuration tree and a
// caller-supplied variable set. It is stateless between calls; the active
// reference chain lives only for the duration of one Resolve.
type Resolver struct {
	root any
	vars map[string]any
}

// New creates a Resolver over the given tree root and variables. Either
// may be nil.
func New(root any, vars map[string]any) *Resolver {
	return &Resolver{root: root, vars: vars}
}

// Result is the outcome of resolving one scalar string. Path is set when
// Value is a raw node read from the configuration tree (the terminal node
// of a pure reference chain); the engine uses it to instantiate the
// referenced node at its canonical location. Values drawn from variables
// or assembled from embedded text carry no path.
type Result struct {
	Value any
	Path  cfgpath.Path
}

// Resolve resolves every reference in s. A pure reference preserves the
// referenced value's type; embedded references are stringified into the
// surrounding text. Strings without references are returned unchanged
// apart from `$${` unescaping.
func (r *Resolver) Resolve(s string) (Result, error) {
	return r.resolveString(s, &chain{seen: make(map[string]struct{})})
}

func (r *Resolver) resolveString(s string, ch *chain) (Result, error) {
	for {
		rf, ok, err := findInnermost(s)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return Result{Value: unescape(s)}, nil
		}

		res, err := r.resolveRef(strings.TrimSpace(rf.body), ch)
		if err != nil {
			return Result{}, err
		}
		if rf.pure {
			return res, nil
		}

		text, err := stringifyScalar(res.Value, rf.body)
		if err != nil {
			return Result{}, err
		}
		// Re-escape before substituting so literal `${` produced by the
		// inner resolution survives the rescan of the remaining text.
		s = s[:rf.start] + strings.ReplaceAll(text, "${", "$${") + s[rf.end:]
	}
}

// resolveRef resolves a single reference body of the form `path` or
// `path:default`. Variables take precedence over tree paths; a default
// applies only when the path exists in neither.
func (r *Resolver) resolveRef(body string, ch *chain) (Result, error) {
	pathStr, def, hasDef := strings.Cut(body, ":")
	p, err := cfgpath.Parse(strings.TrimSpace(pathStr))
	if err != nil {
		return Result{}, fmt.Errorf("invalid reference ${%s}: %w", body, err)
	}

	if v, ok := Lookup(r.vars, p); ok {
		// Caller variables are injected verbatim, never re-resolved.
		return Result{Value: v}, nil
	}

	v, ok := Lookup(r.root, p)
	if !ok {
		if hasDef {
			return Result{Value: def}, nil
		}
		return Result{}, &UnresolvedReferenceError{Ref: body}
	}

	if s, isStr := v.(string); isStr && Contains(s) {
		key := p.String()
		if !ch.push(key) {
			return Result{}, &CyclicReferenceError{Ref: body, Chain: append(ch.order, key)}
		}
		defer ch.pop()
		return r.resolveString(s, ch)
	}

	return Result{Value: v, Path: p}, nil
}

// stringifyScalar renders a resolved value for embedding in surrounding
// text. Containers cannot be embedded; that is almost always a
// configuration mistake and fails loudly.
func stringifyScalar(v any, body string) (string, error) {
	switch v.(type) {
	case nil:
		return "null", nil
	case map[string]any:
		return "", fmt.Errorf("cannot embed mapping value of ${%s} in text", strings.TrimSpace(body))
	case []any:
		return "", fmt.Errorf("cannot embed sequence value of ${%s} in text", strings.TrimSpace(body))
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// chain is the active reference-resolution stack for one Resolve call.
type chain struct {
	order []string
	seen  map[string]struct{}
}

func (c *chain) push(key string) bool {
	if _, dup := c.seen[key]; dup {
		return false
	}
	c.seen[key] = struct{}{}
	c.order = append(c.order, key)
	return true
}

func (c *chain) pop() {
	last := c.order[len(c.order)-1]
	delete(c.seen, last)
	c.order = c.order[:len(c.order)-1]
}
