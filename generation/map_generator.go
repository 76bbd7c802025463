package generation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sinpath/components"
	"sinpath/data"
)

// ErrInvalidLayer is returned by strict generators when a layer breaks its rules
var ErrInvalidLayer = errors.New("generated layer violates its rules")

// nodeNamespace scopes the name-based node UUIDs
var nodeNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("sinpath.node"))

// MapGenerator handles procedural generation of run maps
type MapGenerator struct {
	catalog       *data.Catalog
	strict        bool
	includeFinale bool
	logger        zerolog.Logger
}

// Option configures a MapGenerator
type Option func(*MapGenerator)

// WithCatalog overrides the built-in boss and event catalog
func WithCatalog(catalog *data.Catalog) Option {
	return func(g *MapGenerator) {
		if catalog != nil {
			g.catalog = catalog
		}
	}
}

// WithStrictValidation makes Generate fail when any layer breaks its rules
// instead of only reporting it
func WithStrictValidation() Option {
	return func(g *MapGenerator) {
		g.strict = true
	}
}

// WithFinaleLayer controls whether the finale boss gets a trailing layer
func WithFinaleLayer(include bool) Option {
	return func(g *MapGenerator) {
		g.includeFinale = include
	}
}

// WithLogger sets the generator's logger
func WithLogger(logger zerolog.Logger) Option {
	return func(g *MapGenerator) {
		g.logger = logger
	}
}

// NewMapGenerator creates a new map generator
func NewMapGenerator(opts ...Option) *MapGenerator {
	g := &MapGenerator{
		catalog:       data.DefaultCatalog(),
		includeFinale: true,
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Catalog returns the catalog the generator draws content from
func (g *MapGenerator) Catalog() *data.Catalog {
	return g.catalog
}

// Generate builds the map of seed. A nil rules uses the Balanced preset.
//
// Every draw comes from one stream created for the seed, in this order: the
// boss shuffle, then per layer the rule derivation, path count, and per path
// the node count followed by each body node's rolls, and finally the layer
// validation draws. The same seed and rules therefore always give the same
// map.
func (g *MapGenerator) Generate(seed Seed, rules *Rules) (*components.Map, Report, error) {
	base := Balanced()
	if rules != nil {
		if err := rules.Validate(); err != nil {
			return nil, Report{}, err
		}
		base = *rules
	}

	stream := NewStream(seed)
	bosses := OrderBosses(g.catalog, stream)
	if g.includeFinale {
		bosses = append(bosses, g.catalog.FinaleID())
	}

	m := &components.Map{Seed: seed.Text, Layers: make([]components.Layer, 0, len(bosses))}
	report := Report{Seed: seed.Text}

	for depth, bossID := range bosses {
		layerRules := base.DeriveForLayer(depth, stream)
		layer := g.generateLayer(seed, depth, bossID, layerRules, stream)
		result := layerRules.ValidateLayer(layer, stream)

		m.Layers = append(m.Layers, layer)
		report.Layers = append(report.Layers, result)

		event := g.logger.Debug()
		if !result.IsValid() {
			event = g.logger.Warn().Strs("violations", result.Violations)
		}
		event.Str("seed", seed.Text).
			Int("layer", depth).
			Str("boss", bossID).
			Int("paths", layer.PathCount()).
			Int("nodes", len(layer.Nodes)).
			Msg("layer generated")
	}

	if g.strict && !report.IsValid() {
		return nil, report, fmt.Errorf("%w: seed %q: %d violation(s), first: %s",
			ErrInvalidLayer, seed.Text, len(report.Violations()), report.Violations()[0])
	}
	return m, report, nil
}

// generateLayer fills every path of one layer
func (g *MapGenerator) generateLayer(seed Seed, depth int, bossID string, rules Rules, stream *Stream) components.Layer {
	location, description := bossID, ""
	if boss, ok := g.catalog.Boss(bossID); ok {
		location, description = boss.Location, boss.Description
	}

	layer := components.Layer{
		Index:    depth,
		BossID:   bossID,
		Location: location,
		Nodes:    make([]components.Node, 0),
	}

	table := encounterTableFor(depth, rules)
	reward := rewardMultiplier(depth, rules)
	eventKinds := g.catalog.EventKinds()
	events := 0

	pathCount := stream.IntRange(rules.MinPathsPerLayer, rules.MaxPathsPerLayer)
	for p := 0; p < pathCount; p++ {
		count := stream.IntRange(rules.MinNodesPerPath, rules.MaxNodesPerPath)

		restAt := -1
		if rules.RestShopBeforeBoss {
			restAt = count - 1
		} else if rules.RequireRestShop && p == 0 {
			restAt = stream.Intn(count)
		}

		prev := components.NodeStart
		for n := 0; n < count; n++ {
			var node components.Node
			if n == restAt {
				node = components.NewRestShopNode()
			} else {
				isEvent := stream.Chance(rules.BaseEventChance) && events < rules.MaxEvents
				if isEvent && rules.PreventAdjacentSameType && prev == components.NodeEvent {
					isEvent = false
				}
				if isEvent {
					node = components.NewEventNode(eventKinds[stream.Intn(len(eventKinds))])
					events++
				} else {
					kind, enemies := table.Roll(stream)
					node = components.NewEncounterNode(kind, enemies, reward)
				}
			}
			layer.Nodes = append(layer.Nodes, placeNode(node, seed, depth, p, n))
			prev = node.Type
		}

		boss := components.NewBossNode(bossID, description)
		layer.Nodes = append(layer.Nodes, placeNode(boss, seed, depth, p, count))
	}

	return layer
}

// placeNode stamps position and a stable id onto a node
func placeNode(node components.Node, seed Seed, depth, pathIndex, nodeIndex int) components.Node {
	node.PathIndex = pathIndex
	node.NodeIndex = nodeIndex
	name := fmt.Sprintf("%s\x00%d\x00%d\x00%d", seed.Text, depth, pathIndex, nodeIndex)
	node.ID = uuid.NewSHA1(nodeNamespace, []byte(name)).String()
	return node
}

// rewardMultiplier steps by a quarter per layer when difficulty scales
func rewardMultiplier(depth int, rules Rules) float64 {
	if !rules.DifficultyScaling {
		return 1.0
	}
	return 1.0 + 0.25*float64(depth)
}
