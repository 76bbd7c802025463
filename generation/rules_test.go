package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsAreValid(t *testing.T) {
	for _, name := range []string{"balanced", "chaotic", "safe", "", " Safe "} {
		r, err := PresetByName(name)
		require.NoError(t, err, name)
		require.NoError(t, r.Validate(), name)
	}

	_, err := PresetByName("nightmare")
	require.ErrorIs(t, err, ErrInvalidRules)
}

func TestNewRulesRejectsImpossibleBounds(t *testing.T) {
	cases := map[string]func(r *Rules){
		"nodes min above max":    func(r *Rules) { r.MinNodesPerPath, r.MaxNodesPerPath = 6, 5 },
		"zero nodes":             func(r *Rules) { r.MinNodesPerPath = 0 },
		"paths min above max":    func(r *Rules) { r.MinPathsPerLayer, r.MaxPathsPerLayer = 4, 3 },
		"zero paths":             func(r *Rules) { r.MinPathsPerLayer = 0 },
		"events min above max":   func(r *Rules) { r.MinEvents, r.MaxEvents = 3, 1 },
		"negative events":        func(r *Rules) { r.MinEvents = -1 },
		"negative major":         func(r *Rules) { r.MaxMajorEnemies = -1 },
		"minor above combat":     func(r *Rules) { r.GuaranteedMinorEnemies = 3 },
		"event chance above one": func(r *Rules) { r.BaseEventChance = 1.5 },
		"flexibility too high":   func(r *Rules) { r.RuleFlexibility = 0.9 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := Balanced()
			mutate(&r)
			_, err := NewRules(r)
			require.ErrorIs(t, err, ErrInvalidRules)
		})
	}

	r, err := NewRules(Safe())
	require.NoError(t, err)
	assert.Equal(t, Safe(), r)
}

func TestDeriveForLayerScalesWithDepth(t *testing.T) {
	base := Balanced()
	base.AllowSeedRuleVariation = false

	d := base.DeriveForLayer(0, nil)
	assert.Equal(t, base, d, "depth 0 changes nothing")

	d = base.DeriveForLayer(4, nil)
	assert.Equal(t, 5, d.MinNodesPerPath)
	assert.Equal(t, 7, d.MaxNodesPerPath)
	assert.Equal(t, 3, d.MinPathsPerLayer)
	assert.Equal(t, 4, d.MaxPathsPerLayer)
	assert.InDelta(t, 0.45, d.BaseEventChance, 1e-9)

	d = base.DeriveForLayer(100, nil)
	assert.Equal(t, MaxNodesPerPathCap, d.MinNodesPerPath)
	assert.Equal(t, MaxNodesPerPathCap, d.MaxNodesPerPath)
	assert.Equal(t, MaxPathsPerLayerCap, d.MinPathsPerLayer)
	assert.Equal(t, MaxPathsPerLayerCap, d.MaxPathsPerLayer)
	assert.InDelta(t, MaxEventChance, d.BaseEventChance, 1e-9)
}

func TestDeriveForLayerWithoutScaling(t *testing.T) {
	safe := Safe()
	assert.Equal(t, safe, safe.DeriveForLayer(6, NewStreamFromInt(1)))
}

func TestDeriveForLayerDraws(t *testing.T) {
	fixed := Safe()
	s := NewStreamFromInt(5)
	fixed.DeriveForLayer(2, s)
	assert.Equal(t, int64(0), s.Position(), "no draws without variation")

	varied := Balanced()
	s = NewStreamFromInt(5)
	d := varied.DeriveForLayer(2, s)
	assert.Equal(t, int64(2), s.Position())
	assert.GreaterOrEqual(t, d.GuaranteedMinorEnemies, varied.GuaranteedMinorEnemies-1)
	assert.LessOrEqual(t, d.MaxMajorEnemies, varied.MaxMajorEnemies+1)

	always := Balanced()
	always.RuleFlexibility = MaxRuleFlexibility
	always.GuaranteedMinorEnemies = 0
	d = always.DeriveForLayer(0, NewStreamFromInt(5))
	assert.Equal(t, 0, d.GuaranteedMinorEnemies, "never below zero")
}
