package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher_CostRange(t *testing.T) {
	t.Parallel()

	_, err := NewBcryptHasher(bcrypt.MinCost - 1)
	assert.Error(t, err)

	_, err = NewBcryptHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)

	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotNil(t, h)
}

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	t.Parallel()

	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	digest, err := h.Hash("secret12")
	require.NoError(t, err)
	assert.NotEqual(t, "secret12", digest)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.NoError(t, h.Compare(digest, "secret12"))
	assert.ErrorIs(t, h.Compare(digest, "secret13"), ErrPasswordMismatch)

	again, err := h.Hash("secret12")
	require.NoError(t, err)
	assert.NotEqual(t, digest, again, "each hash uses a fresh salt")
}

func TestBcryptHasher_RejectsLongPassword(t *testing.T) {
	t.Parallel()

	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	_, err = h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = h.Hash(strings.Repeat("a", 72))
	assert.NoError(t, err)
}

func TestBcryptHasher_CompareMalformedDigest(t *testing.T) {
	t.Parallel()

	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	err = h.Compare("not-a-bcrypt-hash", "secret12")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}
