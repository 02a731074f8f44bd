// Package cfgforge materializes declarative configuration trees into
// live object graphs.
//
// A configuration is plain data: mappings, sequences, and scalars, as
// produced by any loader (see the loader package for YAML and HCL).
// Mappings carrying the reserved `_target_` key are directives; their
// target name is resolved through a registry and invoked with the
// mapping's remaining entries as arguments, innermost directives first.
// Scalar strings may reference other parts of the tree (or caller
// variables) with `${path}` interpolation.
//
//	reg := registry.New()
//	reg.MustRegister("add", func(a, b int) int { return a + b })
//
//	cfg := map[string]any{"_target_": "add", "_args_": []any{1, 2}}
//	v, err := cfgforge.Instantiate(context.Background(), cfg, reg)
//	// v == 3
package cfgforge

import (
	"context"

	"github.com/vk/cfgforge/engine"
	"github.com/vk/cfgforge/interp"
	"github.com/vk/cfgforge/registry"
)

// Error types surfaced by Instantiate and Resolve, re-exported so
// callers can match them without importing the subpackages.
type (
	DuplicateNameError       = registry.DuplicateNameError
	UnknownNameError         = registry.UnknownNameError
	UnresolvedReferenceError = interp.UnresolvedReferenceError
	CyclicReferenceError     = interp.CyclicReferenceError
	CyclicInstantiationError = engine.CyclicInstantiationError
	InstantiationError       = engine.InstantiationError
	UnexpectedArgumentError  = engine.UnexpectedArgumentError
)

// Deferred is a bound, not-yet-invoked directive call produced by
// partial instantiation.
type Deferred = engine.Deferred

// Instantiate materializes the configuration tree into a live value
// graph using targets from reg. The input tree is never mutated. It is
// the sole entry point the rest of an application needs: registry
// population happens before, and the returned value graph (or error) is
// the complete result — there are no partial results on failure.
func Instantiate(ctx context.Context, cfg any, reg *registry.Registry, opts ...Option) (any, error) {
	return engine.New(reg, buildOptions(opts)).Instantiate(ctx, cfg)
}

// Resolve resolves interpolation references in the configuration tree
// without invoking any directive targets; directives stay plain
// mappings. Useful for inspecting or validating a configuration before
// instantiation.
func Resolve(ctx context.Context, cfg any, opts ...Option) (any, error) {
	o := buildOptions(opts)
	o.ResolveOnly = true
	return engine.New(nil, o).Instantiate(ctx, cfg)
}

func buildOptions(opts []Option) engine.Options {
	var o engine.Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
