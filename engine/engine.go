package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/vk/cfgforge/cfgpath"
	"github.com/vk/cfgforge/config"
	"github.com/vk/cfgforge/internal/ctxlog"
	"github.com/vk/cfgforge/interp"
	"github.com/vk/cfgforge/registry"
)

// Options configures one Engine. The zero value instantiates eagerly
// with the default target key, no variables, and lenient argument
// binding.
type Options struct {
	// Variables is the external reference namespace; it takes precedence
	// over same-named configuration tree paths.
	Variables map[string]any
	// Overrides replace same-named arguments of the root directive. They
	// do not reach nested directives.
	Overrides map[string]any
	// Partial makes the root directive resolve to a *Deferred instead of
	// being invoked.
	Partial bool
	// Strict fails with UnexpectedArgumentError when a directive carries
	// named arguments its target's args struct has no field for.
	Strict bool
	// TargetKey overrides the reserved directive key; empty means
	// config.DefaultTargetKey.
	TargetKey string
	// ResolveOnly resolves interpolations but leaves directives as plain
	// mappings. No registry is consulted.
	ResolveOnly bool
}

// Engine drives the recursive instantiation walk. An Engine is cheap to
// construct and safe for concurrent use: each Instantiate call owns its
// resolution context, and the registry serializes its own access.
type Engine struct {
	reg  *registry.Registry
	opts Options
}

// New creates an Engine over the given registry. The registry may be nil
// only when Options.ResolveOnly is set.
func New(reg *registry.Registry, opts Options) *Engine {
	if opts.TargetKey == "" {
		opts.TargetKey = config.DefaultTargetKey
	}
	return &Engine{reg: reg, opts: opts}
}

// Instantiate materializes the configuration tree into a live value
// graph. The input tree is never mutated; the result is a parallel tree
// in which interpolations are resolved and directives are replaced by
// their targets' return values (or *Deferred bound calls).
func (e *Engine) Instantiate(ctx context.Context, cfg any) (any, error) {
	if e.reg == nil && !e.opts.ResolveOnly {
		return nil, fmt.Errorf("instantiation requires a registry")
	}

	res := newResolution(cfg, e.opts.Variables)
	return e.instantiate(ctx, res, cfg, cfgpath.Root())
}

func (e *Engine) instantiate(ctx context.Context, res *resolution, node any, at cfgpath.Path) (any, error) {
	switch kind := config.Classify(node, e.opts.TargetKey); kind {
	case config.KindLiteral:
		return node, nil

	case config.KindInterpolation:
		return e.resolveScalar(ctx, res, node.(string), at)

	case config.KindSequence:
		seq := node.([]any)
		out := make([]any, len(seq))
		for i, elem := range seq {
			v, err := e.instantiate(ctx, res, elem, at.Elem(i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case config.KindMapping:
		return e.instantiateMapping(ctx, res, node.(map[string]any), at)

	case config.KindDirective:
		if e.opts.ResolveOnly {
			return e.instantiateMapping(ctx, res, node.(map[string]any), at)
		}
		return e.instantiateDirective(ctx, res, node.(map[string]any), at)

	default:
		return nil, fmt.Errorf("unhandled node kind %s at %s", kind, pathOrRoot(at.String()))
	}
}

// instantiateMapping resolves every value of a plain mapping, preserving
// keys. Keys are processed in sorted order so evaluation order and error
// reporting are deterministic.
func (e *Engine) instantiateMapping(ctx context.Context, res *resolution, m map[string]any, at cfgpath.Path) (any, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(m))
	for _, k := range keys {
		v, err := e.instantiate(ctx, res, m[k], at.Child(k))
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// resolveScalar resolves a string scalar carrying references. A pure
// reference to a tree node hands the node back to the walker at its
// canonical path, so referenced directives instantiate exactly once.
func (e *Engine) resolveScalar(ctx context.Context, res *resolution, s string, at cfgpath.Path) (any, error) {
	result, err := res.resolver.Resolve(s)
	if err != nil {
		var unresolved *interp.UnresolvedReferenceError
		if errors.As(err, &unresolved) && unresolved.Path == "" {
			unresolved.Path = at.String()
		}
		return nil, err
	}
	if result.Path == nil {
		return result.Value, nil
	}
	return e.instantiateAt(ctx, res, result.Value, result.Path)
}

// instantiateAt materializes a referenced node at its canonical tree
// path. This is the only re-entry point of the walk, so it carries the
// structural cycle check: a reference that leads back to a path still
// being instantiated can never complete.
func (e *Engine) instantiateAt(ctx context.Context, res *resolution, node any, at cfgpath.Path) (any, error) {
	key := at.String()
	if v, ok := res.memo[key]; ok {
		return v, nil
	}
	if res.isActive(key) {
		return nil, &CyclicInstantiationError{Path: key, Active: res.trace(key)}
	}

	res.enter(key)
	defer res.exit(key)

	v, err := e.instantiate(ctx, res, node, at)
	if err != nil {
		return nil, err
	}
	res.memo[key] = v
	return v, nil
}

// instantiateDirective resolves the target name, recursively
// instantiates the argument values, and either invokes the target or
// binds a *Deferred.
func (e *Engine) instantiateDirective(ctx context.Context, res *resolution, m map[string]any, at cfgpath.Path) (any, error) {
	key := at.String()
	if v, ok := res.memo[key]; ok {
		return v, nil
	}

	res.enter(key)
	defer res.exit(key)

	nameVal, err := e.instantiate(ctx, res, m[e.opts.TargetKey], at.Child(e.opts.TargetKey))
	if err != nil {
		return nil, err
	}
	if nameVal == nil {
		// A null target short-circuits the whole directive to nil.
		return nil, nil
	}
	name, ok := nameVal.(string)
	if !ok {
		return nil, fmt.Errorf("target name at %s must be a string, got %T", pathOrRoot(key), nameVal)
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Instantiating directive.", "path", pathOrRoot(key), "target", name)

	pos, err := e.positionalArgs(ctx, res, m, at)
	if err != nil {
		return nil, err
	}
	named, err := e.namedArgs(ctx, res, m, at)
	if err != nil {
		return nil, err
	}

	if at.IsRoot() {
		for k, v := range e.opts.Overrides {
			named[k] = v
		}
	}

	partial, err := e.partialRequested(ctx, res, m, at)
	if err != nil {
		return nil, err
	}

	target, err := e.reg.Lookup(name)
	if err != nil {
		var unknown *registry.UnknownNameError
		if errors.As(err, &unknown) && unknown.Path == "" {
			unknown.Path = key
		}
		return nil, err
	}

	if partial {
		d := &Deferred{name: name, target: target, pos: pos, named: named, path: key, strict: e.opts.Strict}
		res.memo[key] = d
		return d, nil
	}

	out, err := invoke(ctx, name, target, pos, named, key, e.opts.Strict)
	if err != nil {
		return nil, err
	}
	res.memo[key] = out
	return out, nil
}

func (e *Engine) positionalArgs(ctx context.Context, res *resolution, m map[string]any, at cfgpath.Path) ([]any, error) {
	raw, ok := m[config.ArgsKey]
	if !ok {
		return nil, nil
	}
	v, err := e.instantiate(ctx, res, raw, at.Child(config.ArgsKey))
	if err != nil {
		return nil, err
	}
	seq, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s at %s must be a sequence, got %T", config.ArgsKey, pathOrRoot(at.String()), v)
	}
	return seq, nil
}

func (e *Engine) namedArgs(ctx context.Context, res *resolution, m map[string]any, at cfgpath.Path) (map[string]any, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		if k == e.opts.TargetKey || k == config.ArgsKey || k == config.PartialKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	named := make(map[string]any, len(keys))
	for _, k := range keys {
		v, err := e.instantiate(ctx, res, m[k], at.Child(k))
		if err != nil {
			return nil, err
		}
		named[k] = v
	}
	return named, nil
}

func (e *Engine) partialRequested(ctx context.Context, res *resolution, m map[string]any, at cfgpath.Path) (bool, error) {
	partial := e.opts.Partial && at.IsRoot()

	raw, ok := m[config.PartialKey]
	if !ok {
		return partial, nil
	}
	v, err := e.instantiate(ctx, res, raw, at.Child(config.PartialKey))
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s at %s must be a boolean, got %T", config.PartialKey, pathOrRoot(at.String()), v)
	}
	return partial || b, nil
}
