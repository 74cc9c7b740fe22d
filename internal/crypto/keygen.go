package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// MinKeyLength is the smallest accepted token key size in bytes.
const MinKeyLength = 32

var ErrKeyTooShort = errors.New("key length must be at least 32 bytes")

// GenerateKey returns n cryptographically random bytes encoded as standard
// base64, suitable for TOKEN_KEY.
func GenerateKey(n int) (string, error) {
	if n < MinKeyLength {
		return "", ErrKeyTooShort
	}

	key := make([]byte, n)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(key), nil
}
