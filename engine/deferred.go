package engine

import "context"

// Deferred is a bound, not-yet-invoked directive call: the resolved
// target plus its fully-instantiated arguments. Calling it performs the
// same construction eager instantiation would have.
type Deferred struct {
	name   string
	target any
	pos    []any
	named  map[string]any
	path   string
	strict bool
}

// Target returns the registered name the call is bound to.
func (d *Deferred) Target() string {
	return d.name
}

// Call invokes the bound target. It may be called any number of times;
// each call re-invokes the target with the same resolved arguments.
func (d *Deferred) Call(ctx context.Context) (any, error) {
	return invoke(ctx, d.name, d.target, d.pos, d.named, d.path, d.strict)
}
