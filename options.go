package cfgforge

import "github.com/vk/cfgforge/engine"

// Option adjusts how one Instantiate or Resolve call behaves.
type Option func(*engine.Options)

// WithVariables supplies the external reference namespace. Variables
// take precedence over same-named configuration tree paths and are
// injected verbatim, never instantiated.
func WithVariables(vars map[string]any) Option {
	return func(o *engine.Options) {
		o.Variables = vars
	}
}

// WithOverrides replaces same-named arguments of the root directive.
// Overrides win per key and do not reach nested directives. They are
// ignored when the root node is not a directive.
func WithOverrides(overrides map[string]any) Option {
	return func(o *engine.Options) {
		o.Overrides = overrides
	}
}

// WithPartial makes the root directive resolve to a *Deferred bound
// call instead of being invoked. Nested directives still instantiate
// eagerly; use the `_partial_` marker to defer a nested directive.
func WithPartial() Option {
	return func(o *engine.Options) {
		o.Partial = true
	}
}

// WithStrict fails instantiation with UnexpectedArgumentError when a
// directive carries named arguments its target has no field for. The
// default is lenient: argument binding is left to the target.
func WithStrict() Option {
	return func(o *engine.Options) {
		o.Strict = true
	}
}

// WithTargetKey substitutes the reserved directive key. The default is
// config.DefaultTargetKey (`_target_`).
func WithTargetKey(key string) Option {
	return func(o *engine.Options) {
		o.TargetKey = key
	}
}
