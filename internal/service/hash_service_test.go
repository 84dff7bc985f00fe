package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashService_HashAndVerify(t *testing.T) {
	svc := NewBcryptHashService(bcrypt.MinCost)

	password := "SecureP@ssw0rd!"
	hash, err := svc.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Format check
	assert.True(t, strings.HasPrefix(hash, "$2a$"), "hash should be a bcrypt hash")

	// Verify correct password
	match, err := svc.Verify(password, hash)
	require.NoError(t, err)
	assert.True(t, match, "correct password should verify")
}

func TestBcryptHashService_VerifyWrongPassword(t *testing.T) {
	svc := NewBcryptHashService(bcrypt.MinCost)

	hash, err := svc.Hash("correct-password")
	require.NoError(t, err)

	match, err := svc.Verify("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, match, "wrong password should not verify")
}

func TestBcryptHashService_UniqueSalts(t *testing.T) {
	svc := NewBcryptHashService(bcrypt.MinCost)

	hash1, err := svc.Hash("same-password")
	require.NoError(t, err)

	hash2, err := svc.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2, "same password should produce different hashes (different salts)")
}

func TestBcryptHashService_EmptyPassword(t *testing.T) {
	svc := NewBcryptHashService(bcrypt.MinCost)

	hash, err := svc.Hash("")
	require.NoError(t, err)

	match, err := svc.Verify("", hash)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestBcryptHashService_VerifyInvalidFormat(t *testing.T) {
	svc := NewBcryptHashService(bcrypt.MinCost)

	_, err := svc.Verify("password", "not-a-valid-hash")
	assert.Error(t, err)
}

func TestBcryptHashService_OutOfRangeCostFallsBack(t *testing.T) {
	svc := NewBcryptHashService(99)

	hash, err := svc.Hash("test")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
