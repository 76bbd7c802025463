package save

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"sinpath/components"
	"sinpath/generation"
	"sinpath/systems"
)

// Version is bumped whenever the SaveGame layout changes
const Version = 1

// SaveGame is everything needed to resume a run. Map is optional: a save
// without it is rebuilt from Seed and Rules.
type SaveGame struct {
	Version    int                      `json:"version"`
	Seed       string                   `json:"seed"`
	Rules      *generation.Rules        `json:"rules,omitempty"`
	Map        *components.Map          `json:"map,omitempty"`
	Pool       systems.PoolState        `json:"pool"`
	Routing    systems.Snapshot         `json:"routing"`
	Persistent *systems.PersistentStore `json:"persistent"`
}

// Capture builds a save from a live run. includeMap stores the full
// structure instead of relying on regeneration.
func Capture(seed generation.Seed, rules *generation.Rules, m *components.Map, pool *systems.BossPool, rc *systems.RoutingContext, includeMap bool) SaveGame {
	g := SaveGame{
		Version:    Version,
		Seed:       seed.Text,
		Rules:      rules,
		Pool:       pool.State(),
		Routing:    rc.Snapshot(),
		Persistent: rc.Persistent(),
	}
	if includeMap {
		g.Map = m
	}
	return g
}

// Encode serializes g
func Encode(g SaveGame) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// Decode parses a save written by Encode
func Decode(blob []byte) (SaveGame, error) {
	g := SaveGame{Persistent: systems.NewPersistentStore()}
	if err := json.Unmarshal(blob, &g); err != nil {
		return SaveGame{}, fmt.Errorf("decode save: %w", err)
	}
	if g.Version != Version {
		return SaveGame{}, fmt.Errorf("decode save: unsupported version %d", g.Version)
	}
	if g.Persistent == nil {
		g.Persistent = systems.NewPersistentStore()
	}
	return g, nil
}

// ResolveMap returns the stored map, or regenerates it from the seed when
// the save only kept the seed
func (g SaveGame) ResolveMap(source generation.MapSource) (*components.Map, error) {
	if g.Map != nil {
		return g.Map, nil
	}
	m, _, err := source.Generate(generation.ParseSeed(g.Seed), g.Rules)
	if err != nil {
		return nil, fmt.Errorf("regenerate map for seed %q: %w", g.Seed, err)
	}
	return m, nil
}

// Restore rebuilds the pool and routing context of a save. The active route
// is rebuilt from m through router before the snapshot is applied, so the
// player resumes on the node they saved on. A nil router uses the built-in
// catalog.
func (g SaveGame) Restore(m *components.Map, router *systems.SceneRouter, logger zerolog.Logger, opts ...systems.PoolOption) (*systems.BossPool, *systems.RoutingContext, error) {
	pool, err := systems.RestoreBossPool(g.Pool, opts...)
	if err != nil {
		return nil, nil, err
	}
	if router == nil {
		router = systems.NewSceneRouter()
	}

	route, err := router.Route(g.Routing.Route, m)
	if err != nil {
		return nil, nil, fmt.Errorf("restore route: %w", err)
	}
	rc := systems.NewRoutingContext(logger)
	rc.SetRoute(g.Routing.Route, route)
	rc.Restore(g.Routing)

	for _, key := range g.Persistent.Keys() {
		v, _ := g.Persistent.Get(key)
		if err := rc.SetPersistent(key, v); err != nil {
			return nil, nil, err
		}
	}
	return pool, rc, nil
}

// Manager saves and loads runs through a Store
type Manager struct {
	store  Store
	logger zerolog.Logger
}

// NewManager creates a manager over store
func NewManager(store Store, logger zerolog.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// Save encodes and writes g under key
func (m *Manager) Save(ctx context.Context, key string, g SaveGame) error {
	blob, err := Encode(g)
	if err != nil {
		return fmt.Errorf("encode save %q: %w", key, err)
	}
	if err := m.store.Save(ctx, key, blob); err != nil {
		return err
	}
	m.logger.Info().Str("key", key).Str("seed", g.Seed).Bool("with_map", g.Map != nil).Int("bytes", len(blob)).Msg("run saved")
	return nil
}

// Load reads and decodes the save under key
func (m *Manager) Load(ctx context.Context, key string) (SaveGame, error) {
	blob, err := m.store.Load(ctx, key)
	if err != nil {
		return SaveGame{}, err
	}
	g, err := Decode(blob)
	if err != nil {
		return SaveGame{}, fmt.Errorf("%s: %w", key, err)
	}
	m.logger.Info().Str("key", key).Str("seed", g.Seed).Msg("run loaded")
	return g, nil
}
