package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hash, err := BcryptHasher{}.Hash("open-sesame")
	require.NoError(t, err)

	assert.NoError(t, BcryptHasher{}.Compare(hash, "open-sesame"))
	assert.Error(t, BcryptHasher{}.Compare(hash, "wrong"))
}

func TestRandomTokenGenerator(t *testing.T) {
	gen := RandomTokenGenerator{}

	first, err := gen.NewToken()
	require.NoError(t, err)
	second, err := gen.NewToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	// 32 bytes of entropy, base64url without padding.
	assert.Len(t, first, 43)
}
