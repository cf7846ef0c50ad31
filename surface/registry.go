// CLAUDE:SUMMARY Registry holds the weak, replaceable reference to the currently active surface.
package surface

import "sync"

// Registry tracks the currently active surface. It performs no validation:
// the reference it returns may already be dead, and it is the caller's job
// to find that out by using it. Single writer expected, concurrent readers
// tolerated.
type Registry struct {
	mu     sync.RWMutex
	active Surface
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// SetActive replaces the tracked reference. Passing nil clears it.
func (r *Registry) SetActive(s Surface) {
	r.mu.Lock()
	r.active = s
	r.mu.Unlock()
}

// Current returns the tracked reference, or nil if none is set.
func (r *Registry) Current() Surface {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}
