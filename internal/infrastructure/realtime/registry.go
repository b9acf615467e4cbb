package realtime

import "sync"

// Registry maps an active connection id to its claimed display name.
// Names are not unique across connections; collisions are allowed.
type Registry struct {
	mu    sync.RWMutex
	names map[string]string
}

func NewRegistry() *Registry {
	return &Registry{names: make(map[string]string)}
}

// Bind records (or overwrites) the name for a connection.
func (r *Registry) Bind(connID, username string) {
	r.mu.Lock()
	r.names[connID] = username
	r.mu.Unlock()
}

// Lookup returns the bound name, or ok=false if the connection never joined.
func (r *Registry) Lookup(connID string) (string, bool) {
	r.mu.RLock()
	name, ok := r.names[connID]
	r.mu.RUnlock()
	return name, ok
}

// Unbind removes the binding. No-op if absent.
func (r *Registry) Unbind(connID string) {
	r.mu.Lock()
	delete(r.names, connID)
	r.mu.Unlock()
}

// Clear drops all bindings. Used on router teardown.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.names = make(map[string]string)
	r.mu.Unlock()
}
