// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
)

const randomStringCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomString returns a cryptographically random alphanumeric
// string of the given length.
func GenerateRandomString(length int) (string, error) {
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(randomStringCharset))))
		if err != nil {
			return "", err
		}
		b[i] = randomStringCharset[n.Int64()]
	}

	return string(b), nil
}
