// Package utils provides helper functions for credential hashing and
// session token handling.
package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// ErrMalformedSalt indicates stored credential material that is not
// valid hex. Callers should log it distinctly from a wrong password
// even though the verification answer to the UI is the same "no".
var ErrMalformedSalt = errors.New("malformed salt encoding")

// saltBytes is the raw salt length. 16 bytes gives 128 bits of
// entropy, the same as the original system.
const saltBytes = 16

// GenerateSalt returns a fresh random salt, hex-encoded for storage as
// text.
func GenerateSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword derives a hex digest from the password and salt using
// PBKDF2-HMAC-SHA256. An empty salt means "generate one"; the salt
// actually used is returned alongside the digest. The derivation is
// deterministic for a given (password, salt, iterations) triple, which
// verification relies on.
func HashPassword(password, salt string, iterations int) (hash, usedSalt string, err error) {
	if salt == "" {
		salt, err = GenerateSalt()
		if err != nil {
			return "", "", err
		}
	}
	raw, err := hex.DecodeString(salt)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrMalformedSalt, err)
	}
	key := pbkdf2.Key([]byte(password), raw, iterations, sha256.Size, sha256.New)
	return hex.EncodeToString(key), salt, nil
}

// VerifyPassword recomputes the digest for the candidate password and
// compares it to the stored one in constant time. A malformed salt is
// reported as an error rather than a silent false.
func VerifyPassword(password, storedHash, salt string, iterations int) (bool, error) {
	computed, _, err := HashPassword(password, salt, iterations)
	if err != nil {
		return false, err
	}
	return hmac.Equal([]byte(computed), []byte(storedHash)), nil
}
