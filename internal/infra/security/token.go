package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Session tokens are opaque bearer credentials; 32 bytes of entropy keeps
// them unguessable for the lifetime of a desk login.
const defaultTokenBytes = 32

type RandomTokenGenerator struct {
	Size int
}

func (g RandomTokenGenerator) NewToken() (string, error) {
	size := g.Size
	if size <= 0 {
		size = defaultTokenBytes
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("security: session token entropy: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
