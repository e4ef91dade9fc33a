package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/commodities-api/internal/infrastructure/security"
)

func TestBcryptHasher_HashVerify(t *testing.T) {
	h := security.NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", digest)

	assert.True(t, h.Verify(digest, "password123"))
	assert.False(t, h.Verify(digest, "password124"))
	assert.False(t, h.Verify("no-es-bcrypt", "password123"))
}

func TestBcryptHasher_SaltDistinto(t *testing.T) {
	h := security.NewBcryptHasher(bcrypt.MinCost)
	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewBcryptHasher_CostFueraDeRango(t *testing.T) {
	h := security.NewBcryptHasher(99)
	digest, err := h.Hash("x")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
