// Package utils contains various common utils separate by utility types
package utils // import "github.com/openscholar/contribution-processor/pkg/utils"

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new random v4 UUID string for use as an entity id
func NewUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// RandomHexStr generates a random hex string of n bytes
func RandomHexStr(n int) (string, error) {
	bys := make([]byte, n)
	_, err := rand.Read(bys)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bys), nil
}

// NewProofToken generates an opaque proof token for a record. The token is
// collision resistant but carries no cryptographic guarantee.
func NewProofToken() (string, error) {
	seed, err := RandomHexStr(32)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:]), nil
}

// HashOfParts returns the deterministic sha256 hex digest of the given parts
// joined with a separator. Used to key logical credit events so replays of a
// partially applied operation are detectable.
func HashOfParts(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
