package registry

import "fmt"

// External is an interned grammar external name with a stable serial id.
// The id is assigned in first-seen order and never reused within a
// Registry's lifetime.
type External struct {
	Name   string
	Serial int32
}

func (e *External) String() string {
	return fmt.Sprintf("<external '%s'[%d]>", e.Name, e.Serial)
}

// Registry interns external names. The zero value is not usable; build
// one with New.
type Registry struct {
	byName map[string]*External
	order  []*External
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string]*External)}
}

// Intern returns the External for name, creating and assigning it a new
// serial id the first time name is seen.
func (r *Registry) Intern(name string) *External {
	if e, ok := r.byName[name]; ok {
		return e
	}
	e := &External{Name: name, Serial: int32(len(r.order))}
	r.byName[name] = e
	r.order = append(r.order, e)
	return e
}

// Lookup returns the External for name without creating it, and whether
// it was found.
func (r *Registry) Lookup(name string) (*External, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// All returns every interned external, in first-seen order. The
// returned slice is owned by the caller.
func (r *Registry) All() []*External {
	out := make([]*External, len(r.order))
	copy(out, r.order)
	return out
}

// Size returns the number of distinct interned externals.
func (r *Registry) Size() int {
	return len(r.order)
}
