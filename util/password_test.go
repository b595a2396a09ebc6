package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSaltUnique(t *testing.T) {
	s1, err := GenerateSalt()
	assert.NoError(t, err)
	s2, err := GenerateSalt()
	assert.NoError(t, err)
	assert.NotEmpty(t, s1)
	assert.NotEqual(t, s1, s2)
}

func TestHashPasswordDeterministicForSameSalt(t *testing.T) {
	salt, err := GenerateSalt()
	assert.NoError(t, err)

	h1, err := HashPasswordArgon2("password123", salt)
	assert.NoError(t, err)
	h2, err := HashPasswordArgon2("password123", salt)
	assert.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.True(t, strings.HasPrefix(h1, "argon2id$"))
}

func TestHashPasswordDifferentSalts(t *testing.T) {
	s1, _ := GenerateSalt()
	s2, _ := GenerateSalt()

	h1, err := HashPasswordArgon2("password123", s1)
	assert.NoError(t, err)
	h2, err := HashPasswordArgon2("password123", s2)
	assert.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword(t *testing.T) {
	salt, err := GenerateSalt()
	assert.NoError(t, err)
	hashed, err := HashPasswordArgon2("correct horse", salt)
	assert.NoError(t, err)

	match, err := VerifyPassword("correct horse", hashed, salt)
	assert.NoError(t, err)
	assert.True(t, match)

	match, err = VerifyPassword("wrong horse", hashed, salt)
	assert.NoError(t, err)
	assert.False(t, match)
}

func TestVerifyPasswordRejectsUnknownFormat(t *testing.T) {
	salt, _ := GenerateSalt()
	_, err := VerifyPassword("whatever", "plaintext-not-a-hash", salt)
	assert.Error(t, err)
}
