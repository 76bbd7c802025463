package generation

import (
	"fmt"

	"sinpath/components"
)

// ValidationResult lists every rule a layer breaks. Violations are human
// readable and accumulated, never short-circuited.
type ValidationResult struct {
	LayerIndex int      `json:"layer_index"`
	BossID     string   `json:"boss_id"`
	Violations []string `json:"violations,omitempty"`
	// BentPaths lists paths whose rest-before-boss check was skipped by a
	// seed-driven rule bend
	BentPaths []int `json:"bent_paths,omitempty"`
}

// IsValid reports whether no rule was broken
func (v ValidationResult) IsValid() bool {
	return len(v.Violations) == 0
}

func (v *ValidationResult) addf(format string, args ...any) {
	v.Violations = append(v.Violations, fmt.Sprintf(format, args...))
}

// ValidateLayer checks layer against r without modifying it. When seed rule
// variation is allowed, one draw is taken from stream per path whose
// rest-before-boss check applies, in path order, and a draw under
// RuleFlexibility skips that path's check.
func (r Rules) ValidateLayer(layer components.Layer, stream *Stream) ValidationResult {
	result := ValidationResult{LayerIndex: layer.Index, BossID: layer.BossID}

	paths := layer.Paths()
	if n := len(paths); n < r.MinPathsPerLayer || n > r.MaxPathsPerLayer {
		result.addf("path count %d outside [%d, %d]", n, r.MinPathsPerLayer, r.MaxPathsPerLayer)
	}

	combat := layer.CountType(components.NodeEncounter) + layer.CountType(components.NodeElite)
	if combat < r.GuaranteedCombatNodes {
		result.addf("combat nodes %d below guaranteed %d", combat, r.GuaranteedCombatNodes)
	}

	if minor := layer.CountEncounters(components.EncounterMinor); minor < r.GuaranteedMinorEnemies {
		result.addf("minor enemy encounters %d below guaranteed %d", minor, r.GuaranteedMinorEnemies)
	}

	if r.RequireRestShop && layer.CountType(components.NodeRestShop) == 0 {
		result.addf("no rest/shop node in layer")
	}

	if major := layer.CountEncounters(components.EncounterMajor); major > r.MaxMajorEnemies {
		result.addf("major enemy encounters %d above max %d", major, r.MaxMajorEnemies)
	}

	if events := layer.CountType(components.NodeEvent); events < r.MinEvents || events > r.MaxEvents {
		result.addf("event count %d outside [%d, %d]", events, r.MinEvents, r.MaxEvents)
	}

	for _, path := range paths {
		pathIndex := path[0].PathIndex
		last := path[len(path)-1]

		if last.Type != components.NodeBoss || last.Boss == nil {
			result.addf("path %d does not end in a boss node", pathIndex)
			continue
		}
		if last.Boss.BossID != layer.BossID {
			result.addf("path %d ends in boss %q, layer boss is %q", pathIndex, last.Boss.BossID, layer.BossID)
		}

		if r.RestShopBeforeBoss {
			if r.AllowSeedRuleVariation && stream != nil && stream.Chance(r.RuleFlexibility) {
				result.BentPaths = append(result.BentPaths, pathIndex)
			} else if len(path) < 2 || path[len(path)-2].Type != components.NodeRestShop {
				result.addf("path %d has no rest/shop right before the boss", pathIndex)
			}
		}

		if r.PreventAdjacentSameType {
			for i := 1; i < len(path); i++ {
				t := path[i].Type
				if t == path[i-1].Type && (t == components.NodeEvent || t == components.NodeRestShop) {
					result.addf("path %d has adjacent %s nodes at %d and %d", pathIndex, t, i-1, i)
				}
			}
		}
	}

	return result
}

// Report collects the validation results of a whole map
type Report struct {
	Seed   string             `json:"seed"`
	Layers []ValidationResult `json:"layers"`
}

// IsValid reports whether every layer passed
func (r Report) IsValid() bool {
	for _, l := range r.Layers {
		if !l.IsValid() {
			return false
		}
	}
	return true
}

// Violations flattens every layer's violations with a layer prefix
func (r Report) Violations() []string {
	var out []string
	for _, l := range r.Layers {
		for _, v := range l.Violations {
			out = append(out, fmt.Sprintf("layer %d (%s): %s", l.LayerIndex, l.BossID, v))
		}
	}
	return out
}
