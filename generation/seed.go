package generation

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
	"strings"
	"time"
)

// seedLiteralPrefix marks the textual form of an integer seed. FromInt
// produces it and DeriveInt reads it back verbatim.
const seedLiteralPrefix = "#"

// Seed is a resolved run seed: the text the player typed (or the literal form
// of a picked integer) and the integer that drives every random stream.
type Seed struct {
	Text  string
	Value uint64
}

// DeriveInt turns any string into a stable 64-bit seed. It never fails and
// gives the same answer on every platform: the first eight bytes of the
// SHA-256 digest, little endian. Integer literals of the form "#<decimal>"
// map to their own value.
func DeriveInt(text string) uint64 {
	if v, ok := parseSeedLiteral(text); ok {
		return v
	}
	sum := sha256.Sum256([]byte(text))
	return binary.LittleEndian.Uint64(sum[:8])
}

// FromInt wraps a concrete integer seed. Its Text round-trips through
// ParseSeed to the same Value.
func FromInt(value uint64) Seed {
	return Seed{
		Text:  seedLiteralPrefix + strconv.FormatUint(value, 10),
		Value: value,
	}
}

// ParseSeed resolves a seed string. Empty input lets the engine pick a fresh
// random seed, returned in literal form so it can be stored and replayed.
//
// Text of the form "#<decimal>" is an integer literal, not a name: "#42"
// drives the streams with the value 42 rather than a hash of "#42", which is
// how a picked random seed is replayed. Any other text, including "#" alone
// and the non-canonical "#007", is hashed.
func ParseSeed(text string) Seed {
	if text == "" {
		return FromInt(randomSeedValue())
	}
	return Seed{Text: text, Value: DeriveInt(text)}
}

// String returns the reproducible text form of the seed
func (s Seed) String() string {
	return s.Text
}

func parseSeedLiteral(text string) (uint64, bool) {
	digits, found := strings.CutPrefix(text, seedLiteralPrefix)
	if !found || digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	// Only the canonical spelling is a literal, so "#007" still hashes
	if strconv.FormatUint(v, 10) != digits {
		return 0, false
	}
	return v, true
}

func randomSeedValue() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(buf[:])
}
