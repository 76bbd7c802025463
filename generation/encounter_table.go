package generation

import (
	"fmt"

	"sinpath/components"
)

// encounterWeightStep is the granularity of table weights. Every split is a
// multiple of it and the weights of a table sum to 100.
const encounterWeightStep = 25

// EncounterTable defines the possible encounter tiers and their odds
type EncounterTable struct {
	Entries []EncounterTableEntry
}

// EncounterTableEntry represents a single tier in an encounter table
type EncounterTableEntry struct {
	Kind     components.EncounterKind
	Weight   int // Percent, a multiple of 25
	MinCount int
	MaxCount int
}

// NewEncounterTable creates a table after checking its weights
func NewEncounterTable(entries []EncounterTableEntry) (*EncounterTable, error) {
	total := 0
	for _, entry := range entries {
		if entry.Weight <= 0 || entry.Weight%encounterWeightStep != 0 {
			return nil, fmt.Errorf("%w: weight %d of %s is not a positive multiple of %d",
				ErrInvalidRules, entry.Weight, entry.Kind, encounterWeightStep)
		}
		if entry.MinCount < 1 || entry.MinCount > entry.MaxCount {
			return nil, fmt.Errorf("%w: enemy count range [%d, %d] of %s is invalid",
				ErrInvalidRules, entry.MinCount, entry.MaxCount, entry.Kind)
		}
		total += entry.Weight
	}
	if total != 100 {
		return nil, fmt.Errorf("%w: encounter weights sum to %d, want 100", ErrInvalidRules, total)
	}
	return &EncounterTable{Entries: entries}, nil
}

// mustEncounterTable is for the package's fixed tables
func mustEncounterTable(entries []EncounterTableEntry) *EncounterTable {
	table, err := NewEncounterTable(entries)
	if err != nil {
		panic(err)
	}
	return table
}

var (
	// earlyEncounters is used for shallow layers and whenever difficulty
	// scaling is off
	earlyEncounters = mustEncounterTable([]EncounterTableEntry{
		{Kind: components.EncounterMinor, Weight: 75, MinCount: 1, MaxCount: 3},
		{Kind: components.EncounterMajor, Weight: 25, MinCount: 1, MaxCount: 1},
	})

	// lateEncounters is used from lateEncounterDepth on when difficulty scales
	lateEncounters = mustEncounterTable([]EncounterTableEntry{
		{Kind: components.EncounterMinor, Weight: 50, MinCount: 2, MaxCount: 3},
		{Kind: components.EncounterMajor, Weight: 50, MinCount: 1, MaxCount: 2},
	})
)

const lateEncounterDepth = 3

// encounterTableFor picks the fixed table for a layer
func encounterTableFor(depth int, rules Rules) *EncounterTable {
	if rules.DifficultyScaling && depth >= lateEncounterDepth {
		return lateEncounters
	}
	return earlyEncounters
}

// Roll picks a tier and an enemy count. It always takes exactly two draws:
// the tier roll, then the count.
func (t *EncounterTable) Roll(stream *Stream) (components.EncounterKind, int) {
	roll := stream.Intn(100)
	entry := t.Entries[len(t.Entries)-1]
	cumulative := 0
	for _, e := range t.Entries {
		cumulative += e.Weight
		if roll < cumulative {
			entry = e
			break
		}
	}
	return entry.Kind, stream.IntRange(entry.MinCount, entry.MaxCount)
}
