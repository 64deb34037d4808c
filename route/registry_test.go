package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register("POST /auth/login", Metadata{Public: true})
	require.NoError(t, err)
	err = registry.Register("DELETE /loans/{loanId}/delete", Metadata{Roles: []string{"superadmin"}})
	require.NoError(t, err)

	meta := registry.Lookup("POST /auth/login")
	assert.True(t, meta.Public)

	meta = registry.Lookup("DELETE /loans/{loanId}/delete")
	assert.False(t, meta.Public)
	assert.Equal(t, []string{"superadmin"}, meta.Roles)
}

func TestRegistry_UnregisteredDefaultsToProtected(t *testing.T) {
	registry := NewRegistry()

	meta := registry.Lookup("GET /never/registered")
	assert.False(t, meta.Public)
	assert.Empty(t, meta.Roles)
}

func TestRegistry_DuplicateRegistrationFails(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register("GET /loans", Metadata{}))
	err := registry.Register("GET /loans", Metadata{Public: true})
	require.Error(t, err)

	assert.Panics(t, func() {
		registry.MustRegister("GET /loans", Metadata{})
	})
}

func TestRegistry_SealedRejectsRegistration(t *testing.T) {
	registry := NewRegistry()
	registry.Seal()

	err := registry.Register("GET /loans", Metadata{})
	require.Error(t, err)
}
