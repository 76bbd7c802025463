package generation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRules is wrapped by every rule construction failure
var ErrInvalidRules = errors.New("invalid generation rules")

// Depth scaling limits
const (
	MaxNodesPerPathCap  = 10   // Node bounds never grow past this
	MaxPathsPerLayerCap = 5    // Path bounds never grow past this
	MaxEventChance      = 0.6  // Scaled event chance is capped here
	EventChancePerDepth = 0.05 // Added to the base event chance per layer
	MaxRuleFlexibility  = 0.5
)

// Rules is the structural constraint set of one generation. Values are
// immutable once built; DeriveForLayer returns adjusted copies.
type Rules struct {
	Name string `json:"name" yaml:"name"`

	MinNodesPerPath  int `json:"min_nodes_per_path" yaml:"min_nodes_per_path"`
	MaxNodesPerPath  int `json:"max_nodes_per_path" yaml:"max_nodes_per_path"`
	MinPathsPerLayer int `json:"min_paths_per_layer" yaml:"min_paths_per_layer"`
	MaxPathsPerLayer int `json:"max_paths_per_layer" yaml:"max_paths_per_layer"`

	GuaranteedCombatNodes  int  `json:"guaranteed_combat_nodes" yaml:"guaranteed_combat_nodes"`
	GuaranteedMinorEnemies int  `json:"guaranteed_minor_enemies" yaml:"guaranteed_minor_enemies"`
	RequireRestShop        bool `json:"require_rest_shop" yaml:"require_rest_shop"`
	MaxMajorEnemies        int  `json:"max_major_enemies" yaml:"max_major_enemies"`
	MinEvents              int  `json:"min_events" yaml:"min_events"`
	MaxEvents              int  `json:"max_events" yaml:"max_events"`

	BaseEventChance float64 `json:"base_event_chance" yaml:"base_event_chance"`

	PathsGrowWithDepth         bool `json:"paths_grow_with_depth" yaml:"paths_grow_with_depth"`
	MoreChoicesInLaterLayers   bool `json:"more_choices_in_later_layers" yaml:"more_choices_in_later_layers"`
	EventChanceScalesWithDepth bool `json:"event_chance_scales_with_depth" yaml:"event_chance_scales_with_depth"`
	DifficultyScaling          bool `json:"difficulty_scaling" yaml:"difficulty_scaling"`
	PreventAdjacentSameType    bool `json:"prevent_adjacent_same_type" yaml:"prevent_adjacent_same_type"`
	RestShopBeforeBoss         bool `json:"rest_shop_before_boss" yaml:"rest_shop_before_boss"`

	AllowSeedRuleVariation bool    `json:"allow_seed_rule_variation" yaml:"allow_seed_rule_variation"`
	RuleFlexibility        float64 `json:"rule_flexibility" yaml:"rule_flexibility"`
}

// NewRules validates r and returns it. Impossible bound combinations are
// rejected, never clamped.
func NewRules(r Rules) (Rules, error) {
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

// Validate reports the first impossible setting in r
func (r Rules) Validate() error {
	switch {
	case r.MinNodesPerPath < 1:
		return fmt.Errorf("%w: min nodes per path must be at least 1, got %d", ErrInvalidRules, r.MinNodesPerPath)
	case r.MinNodesPerPath > r.MaxNodesPerPath:
		return fmt.Errorf("%w: min nodes per path (%d) exceeds max (%d)", ErrInvalidRules, r.MinNodesPerPath, r.MaxNodesPerPath)
	case r.MinPathsPerLayer < 1:
		return fmt.Errorf("%w: min paths per layer must be at least 1, got %d", ErrInvalidRules, r.MinPathsPerLayer)
	case r.MinPathsPerLayer > r.MaxPathsPerLayer:
		return fmt.Errorf("%w: min paths per layer (%d) exceeds max (%d)", ErrInvalidRules, r.MinPathsPerLayer, r.MaxPathsPerLayer)
	case r.MinEvents < 0:
		return fmt.Errorf("%w: min events must not be negative, got %d", ErrInvalidRules, r.MinEvents)
	case r.MinEvents > r.MaxEvents:
		return fmt.Errorf("%w: min events (%d) exceeds max (%d)", ErrInvalidRules, r.MinEvents, r.MaxEvents)
	case r.GuaranteedCombatNodes < 0, r.GuaranteedMinorEnemies < 0, r.MaxMajorEnemies < 0:
		return fmt.Errorf("%w: encounter counts must not be negative", ErrInvalidRules)
	case r.GuaranteedMinorEnemies > r.GuaranteedCombatNodes:
		return fmt.Errorf("%w: guaranteed minor enemies (%d) exceeds guaranteed combat nodes (%d)",
			ErrInvalidRules, r.GuaranteedMinorEnemies, r.GuaranteedCombatNodes)
	case r.BaseEventChance < 0 || r.BaseEventChance > 1:
		return fmt.Errorf("%w: base event chance must be within [0, 1], got %.2f", ErrInvalidRules, r.BaseEventChance)
	case r.RuleFlexibility < 0 || r.RuleFlexibility > MaxRuleFlexibility:
		return fmt.Errorf("%w: rule flexibility must be within [0, %.1f], got %.2f", ErrInvalidRules, MaxRuleFlexibility, r.RuleFlexibility)
	}
	return nil
}

// Balanced is the default preset
func Balanced() Rules {
	return Rules{
		Name:                       "balanced",
		MinNodesPerPath:            3,
		MaxNodesPerPath:            5,
		MinPathsPerLayer:           2,
		MaxPathsPerLayer:           3,
		GuaranteedCombatNodes:      2,
		GuaranteedMinorEnemies:     1,
		RequireRestShop:            true,
		MaxMajorEnemies:            3,
		MinEvents:                  0,
		MaxEvents:                  4,
		BaseEventChance:            0.25,
		PathsGrowWithDepth:         true,
		MoreChoicesInLaterLayers:   true,
		EventChanceScalesWithDepth: true,
		DifficultyScaling:          true,
		PreventAdjacentSameType:    true,
		RestShopBeforeBoss:         true,
		AllowSeedRuleVariation:     true,
		RuleFlexibility:            0.15,
	}
}

// Chaotic trades structural guarantees for variety
func Chaotic() Rules {
	return Rules{
		Name:                       "chaotic",
		MinNodesPerPath:            2,
		MaxNodesPerPath:            7,
		MinPathsPerLayer:           2,
		MaxPathsPerLayer:           4,
		GuaranteedCombatNodes:      1,
		GuaranteedMinorEnemies:     0,
		RequireRestShop:            false,
		MaxMajorEnemies:            6,
		MinEvents:                  0,
		MaxEvents:                  8,
		BaseEventChance:            0.4,
		PathsGrowWithDepth:         true,
		MoreChoicesInLaterLayers:   true,
		EventChanceScalesWithDepth: true,
		DifficultyScaling:          true,
		PreventAdjacentSameType:    false,
		RestShopBeforeBoss:         false,
		AllowSeedRuleVariation:     true,
		RuleFlexibility:            0.5,
	}
}

// Safe keeps layers short and predictable
func Safe() Rules {
	return Rules{
		Name:                       "safe",
		MinNodesPerPath:            3,
		MaxNodesPerPath:            4,
		MinPathsPerLayer:           2,
		MaxPathsPerLayer:           2,
		GuaranteedCombatNodes:      2,
		GuaranteedMinorEnemies:     2,
		RequireRestShop:            true,
		MaxMajorEnemies:            2,
		MinEvents:                  0,
		MaxEvents:                  3,
		BaseEventChance:            0.2,
		PathsGrowWithDepth:         false,
		MoreChoicesInLaterLayers:   false,
		EventChanceScalesWithDepth: false,
		DifficultyScaling:          false,
		PreventAdjacentSameType:    true,
		RestShopBeforeBoss:         true,
		AllowSeedRuleVariation:     false,
		RuleFlexibility:            0,
	}
}

// PresetByName returns one of the canonical presets
func PresetByName(name string) (Rules, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "balanced":
		return Balanced(), nil
	case "chaotic":
		return Chaotic(), nil
	case "safe":
		return Safe(), nil
	}
	return Rules{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidRules, name)
}

// DeriveForLayer returns the rules adjusted for a layer at depth. Draws from
// stream happen only when seed rule variation is allowed, always two of them
// in this order: minor enemy relaxation, then major enemy allowance.
func (r Rules) DeriveForLayer(depth int, stream *Stream) Rules {
	if depth < 0 {
		depth = 0
	}
	d := r

	if r.PathsGrowWithDepth {
		grow := depth / 2
		d.MinNodesPerPath = min(r.MinNodesPerPath+grow, MaxNodesPerPathCap)
		d.MaxNodesPerPath = min(r.MaxNodesPerPath+grow, MaxNodesPerPathCap)
		d.MinNodesPerPath = min(d.MinNodesPerPath, d.MaxNodesPerPath)
	}

	if r.MoreChoicesInLaterLayers {
		grow := depth / 3
		d.MinPathsPerLayer = min(r.MinPathsPerLayer+grow, MaxPathsPerLayerCap)
		d.MaxPathsPerLayer = min(r.MaxPathsPerLayer+grow, MaxPathsPerLayerCap)
		d.MinPathsPerLayer = min(d.MinPathsPerLayer, d.MaxPathsPerLayer)
	}

	if r.EventChanceScalesWithDepth {
		d.BaseEventChance = min(r.BaseEventChance+EventChancePerDepth*float64(depth), MaxEventChance)
		d.BaseEventChance = max(d.BaseEventChance, r.BaseEventChance)
	}

	if r.AllowSeedRuleVariation && stream != nil {
		relaxMinor := stream.Chance(r.RuleFlexibility)
		allowMajor := stream.Chance(r.RuleFlexibility)
		if relaxMinor && d.GuaranteedMinorEnemies > 0 {
			d.GuaranteedMinorEnemies--
		}
		if allowMajor {
			d.MaxMajorEnemies++
		}
	}

	return d
}
