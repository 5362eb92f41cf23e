package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"

	"golang.org/x/crypto/pbkdf2"
)

// Key-derivation parameters for stored passwords. Changing any of them
// invalidates every hash produced so far.
const (
	PasswordIterations = 100_000
	PasswordKeyLength  = sha256.Size
)

// HashPassword derives the canonical stored representation of password:
// lowercase hex of PBKDF2-HMAC-SHA256(password, salt).
func HashPassword(password, salt string) string {
	return hex.EncodeToString(derive(password, salt))
}

// VerifyPassword reports whether password matches storedHash under salt.
// A storedHash that is not hex or has the wrong length never matches.
func VerifyPassword(password, salt, storedHash string) bool {
	want, err := hex.DecodeString(storedHash)
	if err != nil {
		slog.Error("Invalid password hash stored", "error", err)
		return false
	}
	if len(want) != PasswordKeyLength {
		slog.Error("Invalid password hash stored",
			"bytes", len(want), "expected_bytes", PasswordKeyLength)
		return false
	}

	return subtle.ConstantTimeCompare(derive(password, salt), want) == 1
}

func derive(password, salt string) []byte {
	return pbkdf2.Key([]byte(password), []byte(salt), PasswordIterations, PasswordKeyLength, sha256.New)
}

// GenerateSalt returns a random lowercase hex string of the given length.
func GenerateSalt(length int) (string, error) {
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf)[:length], nil
}
