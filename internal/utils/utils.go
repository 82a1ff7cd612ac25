package utils

import (
	"math/rand"
	"strings"
)

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

const (
	idAlphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	PartyCodeLength = 6
)

// GenerateID produces a random lowercase alphanumeric identifier of length n,
// used as the connection identity for players and bots.
func GenerateID(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(idAlphabet[rand.Intn(len(idAlphabet))])
	}
	return b.String()
}

// GeneratePartyCode yields a short, human-typeable party code. Uniqueness is
// the registry's job; this only supplies candidates.
func GeneratePartyCode() string {
	var b strings.Builder
	b.Grow(PartyCodeLength)
	for i := 0; i < PartyCodeLength; i++ {
		b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return b.String()
}
