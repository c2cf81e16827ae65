package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	// Salts are random, so the same password hashes differently each time
	other, err := HashPassword("secret123")
	assert.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret123")
	assert.NoError(t, err)

	assert.True(t, CheckPasswordHash(hash, "secret123"))
	assert.False(t, CheckPasswordHash(hash, "secret124"))
	assert.False(t, CheckPasswordHash(hash, ""))

	// Malformed hashes never verify
	assert.False(t, CheckPasswordHash("", "secret123"))
	assert.False(t, CheckPasswordHash("$argon2id$garbage", "secret123"))
	assert.False(t, CheckPasswordHash("plaintext", "plaintext"))
}
