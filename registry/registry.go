package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Factory pairs an argument-struct constructor with the function that
// consumes it. NewArgs must return a pointer to a fresh args struct; the
// engine decodes the directive's named arguments into it and then calls
// Fn with the populated struct (optionally preceded by a
// context.Context). Fn may return T, (T, error), or error.
type Factory struct {
	NewArgs func() any
	Fn      any
}

// Registry holds the registered targets for one application instance.
type Registry struct {
	mu      sync.RWMutex
	targets map[string]any
	aliases map[string]string
	search  []searchEntry
}

// New creates and initializes an empty Registry.
func New() *Registry {
	return &Registry{
		targets: make(map[string]any),
		aliases: make(map[string]string),
	}
}

// Register stores a target under name. It fails with DuplicateNameError
// if the name (or an alias of the same spelling) is already taken.
func (r *Registry) Register(name string, target any) error {
	if name == "" {
		return fmt.Errorf("target name cannot be empty")
	}
	if target == nil {
		return fmt.Errorf("target %q cannot be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.targets[name]; exists {
		return &DuplicateNameError{Name: name}
	}
	if _, exists := r.aliases[name]; exists {
		return &DuplicateNameError{Name: name}
	}

	slog.Debug("Registering target.", "name", name)
	r.targets[name] = target
	return nil
}

// MustRegister is Register for startup wiring: it panics on conflict.
func (r *Registry) MustRegister(name string, target any) {
	if err := r.Register(name, target); err != nil {
		panic(err)
	}
}

// Override stores a target under name, replacing any existing entry.
func (r *Registry) Override(name string, target any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slog.Debug("Overriding target.", "name", name)
	delete(r.aliases, name)
	r.targets[name] = target
}

// RegisterMap registers every entry of the given map. Registration stops
// at the first conflict; entries registered before the failure remain.
func (r *Registry) RegisterMap(targets map[string]any) error {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := r.Register(name, targets[name]); err != nil {
			return err
		}
	}
	return nil
}

// Alias makes alias resolve to the target registered under name. The
// referenced name must exist at the time of the call.
func (r *Registry) Alias(alias, name string) error {
	if alias == "" {
		return fmt.Errorf("alias cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.targets[alias]; exists {
		return &DuplicateNameError{Name: alias}
	}
	if _, exists := r.aliases[alias]; exists {
		return &DuplicateNameError{Name: alias}
	}
	if _, exists := r.targets[name]; !exists {
		return &UnknownNameError{Name: name}
	}

	r.aliases[alias] = name
	return nil
}

// Unregister removes the entry (or alias) stored under name. Removing an
// absent name is a no-op; the return value reports whether anything was
// removed.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.targets[name]; exists {
		delete(r.targets, name)
		return true
	}
	if _, exists := r.aliases[name]; exists {
		delete(r.aliases, name)
		return true
	}
	return false
}

// Lookup returns the target registered under name. Aliases resolve one
// level deep. A dotted name that is not registered directly falls back to
// the search path before the lookup fails with UnknownNameError.
func (r *Registry) Lookup(name string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if target, ok := r.targets[name]; ok {
		return target, nil
	}
	if real, ok := r.aliases[name]; ok {
		if target, ok := r.targets[real]; ok {
			return target, nil
		}
	}
	if target, ok := r.searchLocked(name); ok {
		return target, nil
	}
	return nil, &UnknownNameError{Name: name}
}

// Names returns the sorted names of all registered targets and aliases.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.targets)+len(r.aliases))
	for name := range r.targets {
		names = append(names, name)
	}
	for alias := range r.aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered targets, aliases excluded.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.targets)
}
