package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests for hashPassword and checkPasswordHash

func TestHashAndCheckPassword(t *testing.T) {
	password := "mysecretpassword"
	pepper := "test-pepper-for-unit-tests"

	// 1. hashPassword
	hashedPassword, err := hashPassword(password, pepper)
	require.NoError(t, err, "hashPassword should not return an error")
	require.NotEmpty(t, hashedPassword, "hashPassword should return a non-empty string")
	assert.NotEqual(t, password, hashedPassword, "Hashed password should not be equal to the original password")

	// 2. checkPasswordHash - success
	match := checkPasswordHash(password, hashedPassword, pepper)
	assert.True(t, match, "checkPasswordHash should return true for correct password and pepper")

	// 3. checkPasswordHash - wrong password
	match = checkPasswordHash("wrongpassword", hashedPassword, pepper)
	assert.False(t, match, "checkPasswordHash should return false for incorrect password")

	// 4. checkPasswordHash - wrong pepper. The pepper is mixed into the
	// password via HMAC before bcrypt, so a different pepper must not verify.
	match = checkPasswordHash(password, hashedPassword, "another-pepper")
	assert.False(t, match, "checkPasswordHash should return false for incorrect pepper")

	// 5. checkPasswordHash - invalid hash
	match = checkPasswordHash(password, "not-a-bcrypt-hash", pepper)
	assert.False(t, match, "checkPasswordHash should return false for invalid hash format")

	// 6. Short passwords are allowed; there is no strength policy here.
	hashedShort, err := hashPassword("p1", pepper)
	require.NoError(t, err, "hashPassword should handle short passwords")
	assert.True(t, checkPasswordHash("p1", hashedShort, pepper), "checkPasswordHash should verify a short password")
}

func TestApplyPepperDeterministic(t *testing.T) {
	a := applyPepper("password", "pepper")
	b := applyPepper("password", "pepper")
	c := applyPepper("password", "other")

	assert.Equal(t, a, b, "applyPepper must be deterministic for the same inputs")
	assert.NotEqual(t, a, c, "applyPepper must differ for different peppers")
}
