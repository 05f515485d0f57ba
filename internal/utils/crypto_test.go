// internal/utils/crypto_test.go
package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomString(t *testing.T) {
	for _, length := range []int{0, 1, 8, 32} {
		s, err := GenerateRandomString(length)
		require.NoError(t, err)
		assert.Len(t, s, length)

		for _, r := range s {
			assert.True(t, strings.ContainsRune(randomStringCharset, r), "unexpected character %q", r)
		}
	}
}

func TestGenerateRandomStringVaries(t *testing.T) {
	a, err := GenerateRandomString(16)
	require.NoError(t, err)
	b, err := GenerateRandomString(16)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
