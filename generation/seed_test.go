package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveIntIsStable(t *testing.T) {
	for _, text := range []string{"ABC", "", "  spaced  ", "Łódź ✓ 種", "!@#$%^&*()", "#", "#-1"} {
		assert.Equal(t, DeriveInt(text), DeriveInt(text), "seed %q", text)
	}
	assert.NotEqual(t, DeriveInt("ABC"), DeriveInt("ABD"))
	assert.NotEqual(t, DeriveInt("abc"), DeriveInt("ABC"))
}

func TestSeedLiteralsRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 7, 42, 1 << 63, ^uint64(0)} {
		s := FromInt(v)
		require.Equal(t, v, s.Value)
		assert.Equal(t, v, ParseSeed(s.Text).Value, "literal %q", s.Text)
	}

	// Only canonical spellings are literals
	assert.NotEqual(t, uint64(7), DeriveInt("#007"))
	assert.NotEqual(t, uint64(7), DeriveInt("#7 "))
}

func TestTypedLiteralSeedIsNotHashed(t *testing.T) {
	s := ParseSeed("#42")
	assert.Equal(t, "#42", s.Text)
	assert.Equal(t, uint64(42), s.Value)
	assert.Equal(t, FromInt(42), s)
	assert.NotEqual(t, DeriveInt("42"), s.Value)
}

func TestEmptySeedPicksReplayableSeed(t *testing.T) {
	s := ParseSeed("")
	require.NotEmpty(t, s.Text)
	assert.Equal(t, s.Value, ParseSeed(s.Text).Value)
	assert.Equal(t, s.Text, s.String())
}
