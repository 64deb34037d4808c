// Package revocation tracks tokens invalidated by logout. A revoked token
// must fail every subsequent guard evaluation, even while its signature and
// expiry are still valid.
package revocation

import "sync"

// Store is an in-process set of revoked tokens. Revokes arrive from
// concurrent logout requests and membership checks run on every protected
// request, so both operations are guarded by a RWMutex.
//
// Entries are never evicted, not even after the token's natural expiry, and
// the set does not propagate across replicas or survive a restart.
type Store struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

// NewStore creates an empty revocation store.
func NewStore() *Store {
	return &Store{
		revoked: make(map[string]struct{}),
	}
}

// Revoke records a token as revoked. Revoking an already-revoked token is a
// no-op.
func (s *Store) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = struct{}{}
}

// IsRevoked reports whether a token has been revoked.
func (s *Store) IsRevoked(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.revoked[token]
	return ok
}

// Len returns the number of revoked tokens.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.revoked)
}
