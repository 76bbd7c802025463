package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sinpath/components"
)

func TestNewEncounterTableChecksWeights(t *testing.T) {
	_, err := NewEncounterTable([]EncounterTableEntry{
		{Kind: components.EncounterMinor, Weight: 60, MinCount: 1, MaxCount: 2},
		{Kind: components.EncounterMajor, Weight: 40, MinCount: 1, MaxCount: 1},
	})
	require.ErrorIs(t, err, ErrInvalidRules, "weights must be multiples of 25")

	_, err = NewEncounterTable([]EncounterTableEntry{
		{Kind: components.EncounterMinor, Weight: 50, MinCount: 1, MaxCount: 2},
	})
	require.ErrorIs(t, err, ErrInvalidRules, "weights must sum to 100")

	_, err = NewEncounterTable([]EncounterTableEntry{
		{Kind: components.EncounterMinor, Weight: 100, MinCount: 3, MaxCount: 2},
	})
	require.ErrorIs(t, err, ErrInvalidRules, "count range must be ordered")

	table, err := NewEncounterTable([]EncounterTableEntry{
		{Kind: components.EncounterMajor, Weight: 100, MinCount: 2, MaxCount: 2},
	})
	require.NoError(t, err)
	kind, count := table.Roll(NewStreamFromInt(1))
	assert.Equal(t, components.EncounterMajor, kind)
	assert.Equal(t, 2, count)
}

func TestEncounterRollTakesTwoDraws(t *testing.T) {
	s := NewStreamFromInt(77)
	for i := 0; i < 50; i++ {
		before := s.Position()
		kind, count := earlyEncounters.Roll(s)
		require.Equal(t, before+2, s.Position())

		switch kind {
		case components.EncounterMinor:
			require.True(t, count >= 1 && count <= 3)
		case components.EncounterMajor:
			require.Equal(t, 1, count)
		default:
			t.Fatalf("unexpected kind %q", kind)
		}
	}
}

func TestEncounterTableForDepth(t *testing.T) {
	scaled := Balanced()
	assert.Same(t, earlyEncounters, encounterTableFor(0, scaled))
	assert.Same(t, earlyEncounters, encounterTableFor(lateEncounterDepth-1, scaled))
	assert.Same(t, lateEncounters, encounterTableFor(lateEncounterDepth, scaled))
	assert.Same(t, earlyEncounters, encounterTableFor(6, Safe()))
}
