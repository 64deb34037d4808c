// Package route holds the static per-endpoint access policy table. The
// table is populated once during startup, before any traffic is served, and
// is read-only afterward; lookups therefore need no synchronization.
package route

import "fmt"

// Metadata is the access policy of a single endpoint.
type Metadata struct {
	// Public endpoints bypass the authorization guard entirely.
	Public bool

	// Roles restricts the endpoint to principals carrying one of the
	// listed roles. Empty means any authenticated principal passes.
	Roles []string
}

// DefaultMetadata is the policy applied to endpoints that were never
// registered: protected, no specific role required.
var DefaultMetadata = Metadata{}

// Registry maps endpoint identities ("METHOD /path/pattern") to their
// access policy.
type Registry struct {
	routes map[string]Metadata
	sealed bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		routes: make(map[string]Metadata),
	}
}

// Register records the policy for an endpoint. Registering the same
// endpoint twice is a configuration error.
func (r *Registry) Register(endpointID string, meta Metadata) error {
	if r.sealed {
		return fmt.Errorf("registry is sealed, cannot register %q", endpointID)
	}
	if _, exists := r.routes[endpointID]; exists {
		return fmt.Errorf("endpoint %q registered twice", endpointID)
	}
	r.routes[endpointID] = meta
	return nil
}

// MustRegister is Register but panics on error. Registration happens during
// startup wiring, where a duplicate endpoint is fatal.
func (r *Registry) MustRegister(endpointID string, meta Metadata) {
	if err := r.Register(endpointID, meta); err != nil {
		panic(err)
	}
}

// Seal marks the registry read-only. Any later Register is an error.
func (r *Registry) Seal() {
	r.sealed = true
}

// Lookup returns the policy for an endpoint, falling back to
// DefaultMetadata when the endpoint was never registered.
func (r *Registry) Lookup(endpointID string) Metadata {
	if meta, ok := r.routes[endpointID]; ok {
		return meta
	}
	return DefaultMetadata
}
