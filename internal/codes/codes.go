// Package codes generates the identifiers handed out to clients: short
// human-enterable matching codes, opaque participant codes, and external
// record ids.
//
// The generators are side-effect free and do not guarantee uniqueness on
// their own. Matching codes are short by design, so the caller probes the
// store and retries a bounded number of times; the storage-layer unique
// constraint remains the final arbiter either way.
package codes

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// DefaultAlphabet omits easily confused characters (0/O, 1/I) so codes can
// be read aloud and typed on a phone.
const DefaultAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// DefaultLength is the matching code length used when none is configured.
const DefaultLength = 6

// Generator produces matching codes of a fixed length over a fixed alphabet.
// The zero value is not usable; construct with New.
type Generator struct {
	length   int
	alphabet string
}

// New returns a Generator for the given code length and alphabet.
// Non-positive lengths and short alphabets fall back to the defaults.
func New(length int, alphabet string) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	if len(alphabet) < 2 {
		alphabet = DefaultAlphabet
	}
	return &Generator{length: length, alphabet: alphabet}
}

// MatchingCode returns a fresh matching code drawn uniformly from the
// configured alphabet using crypto/rand. Collisions are possible and must be
// handled by the caller.
func (g *Generator) MatchingCode() (string, error) {
	buf := make([]byte, g.length)
	max := big.NewInt(int64(len(g.alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate matching code: %w", err)
		}
		buf[i] = g.alphabet[n.Int64()]
	}
	return string(buf), nil
}

// ParticipantCode returns a cryptographically unguessable opaque token used
// as the bearer credential for answer submission.
func ParticipantCode() string {
	return uuid.NewString()
}

// RecordID returns an opaque external record identifier, distinct from the
// database primary key and safe to expose to clients.
func RecordID() string {
	return uuid.NewString()
}
