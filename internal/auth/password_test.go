package auth

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSalt = "0123456789abcdef"
	// PBKDF2-HMAC-SHA256("hunter2", testSalt, 100000, 32)
	testHash = "fb0c308bd80cfde00997bb9d6cd16e24a62edfd3038e1d661fbaadbfa9cd885c"
)

var lowerHex = regexp.MustCompile(`^[0-9a-f]+$`)

func TestHashPassword_KnownVector(t *testing.T) {
	assert.Equal(t, testHash, HashPassword("hunter2", testSalt))
}

func TestHashPassword_Format(t *testing.T) {
	h := HashPassword("anything", "salt")
	assert.Len(t, h, 2*PasswordKeyLength)
	assert.Regexp(t, lowerHex, h)

	// Empty password is still hashed.
	assert.Equal(t,
		"378a8bda976ade0a4497d2a04bd1ce352bc66c389947624ae5fab8c62074a371",
		HashPassword("", "salt"))
}

func TestVerifyPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		salt     string
		hash     string
		want     bool
	}{
		{name: "match", password: "hunter2", salt: testSalt, hash: testHash, want: true},
		{name: "uppercase hex accepted", password: "hunter2", salt: testSalt, hash: strings.ToUpper(testHash), want: true},
		{name: "wrong password", password: "hunter3", salt: testSalt, hash: testHash},
		{name: "wrong salt", password: "hunter2", salt: "fedcba9876543210", hash: testHash},
		{name: "not hex", password: "hunter2", salt: testSalt, hash: "zz" + testHash[2:]},
		{name: "odd length", password: "hunter2", salt: testSalt, hash: testHash[1:]},
		{name: "too short", password: "hunter2", salt: testSalt, hash: testHash[:32]},
		{name: "too long", password: "hunter2", salt: testSalt, hash: testHash + "00"},
		{name: "empty hash", password: "hunter2", salt: testSalt, hash: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.password, tt.salt, tt.hash))
		})
	}
}

func TestHashVerifyRoundTrip(t *testing.T) {
	salt, err := GenerateSalt(16)
	require.NoError(t, err)

	h := HashPassword("correct horse battery staple", salt)
	assert.True(t, VerifyPassword("correct horse battery staple", salt, h))
	assert.False(t, VerifyPassword("correct horse battery stapler", salt, h))
}

func TestGenerateSalt(t *testing.T) {
	for _, n := range []int{1, 15, 16, 32} {
		s, err := GenerateSalt(n)
		require.NoError(t, err)
		assert.Len(t, s, n)
		assert.Regexp(t, lowerHex, s)
	}

	a, err := GenerateSalt(32)
	require.NoError(t, err)
	b, err := GenerateSalt(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
