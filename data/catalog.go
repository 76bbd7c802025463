package data

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Canonical boss identifiers of the default catalog
const (
	BossPride    = "Pride"
	BossGreed    = "Greed"
	BossLust     = "Lust"
	BossEnvy     = "Envy"
	BossGluttony = "Gluttony"
	BossWrath    = "Wrath"
	BossSloth    = "Sloth"
	BossFinale   = "Lucifer"
)

// ErrInvalidCatalog is wrapped by every catalog validation failure
var ErrInvalidCatalog = errors.New("invalid catalog")

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// BossDefinition describes one boss and the arena scene it lives in
type BossDefinition struct {
	ID          string `json:"id" yaml:"id"`                   // Unique identifier, also the connector base name
	Name        string `json:"name" yaml:"name"`               // Display name
	Location    string `json:"location" yaml:"location"`       // Display name of the boss's layer
	Description string `json:"description" yaml:"description"` // Text shown on the boss node
	Scene       string `json:"scene" yaml:"scene"`             // Destination identifier of the arena
	Finale      bool   `json:"finale" yaml:"finale"`           // Reserved last boss, never shuffled
}

// EventDefinition maps an event kind to its scene
type EventDefinition struct {
	Kind  string `json:"kind" yaml:"kind"`
	Name  string `json:"name" yaml:"name"`
	Scene string `json:"scene" yaml:"scene"`
}

// EncounterDefinition maps an encounter tier to its combat scene
type EncounterDefinition struct {
	Kind  string `json:"kind" yaml:"kind"`
	Scene string `json:"scene" yaml:"scene"`
}

// Catalog is the static content the generator and router look things up in
type Catalog struct {
	Hub        string                `json:"hub" yaml:"hub"`             // Scene of the branch hub
	Shop       string                `json:"shop" yaml:"shop"`           // Service scene, shop variant
	RestArea   string                `json:"rest_area" yaml:"rest_area"` // Service scene, rest variant
	Bosses     []BossDefinition      `json:"bosses" yaml:"bosses"`
	Events     []EventDefinition     `json:"events" yaml:"events"`
	Encounters []EncounterDefinition `json:"encounters" yaml:"encounters"` // Optional combat scenes per tier
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML, "yaml")
})

// DefaultCatalog returns a copy of the built-in seven sins catalog. The
// embedded file is parsed once.
func DefaultCatalog() *Catalog {
	catalog, err := defaultCatalog()
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is broken: %v", err))
	}
	return catalog.Clone()
}

// Clone returns a copy that shares nothing with c
func (c *Catalog) Clone() *Catalog {
	out := *c
	out.Bosses = slices.Clone(c.Bosses)
	out.Events = slices.Clone(c.Events)
	out.Encounters = slices.Clone(c.Encounters)
	return &out
}

// LoadCatalogFromFile loads a catalog from a .yaml, .yml or .json file
func LoadCatalogFromFile(filePath string) (*Catalog, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")
	catalog, err := ParseCatalog(raw, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", filepath.Base(filePath), err)
	}
	return catalog, nil
}

// ParseCatalog decodes and validates a catalog. format is "json" or
// "yaml"/"yml".
func ParseCatalog(raw []byte, format string) (*Catalog, error) {
	var catalog Catalog
	switch format {
	case "json":
		if err := json.Unmarshal(raw, &catalog); err != nil {
			return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(raw, &catalog); err != nil {
			return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidCatalog, format)
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Validate checks the catalog for the fields every consumer relies on
func (c *Catalog) Validate() error {
	if c.Hub == "" || c.Shop == "" || c.RestArea == "" {
		return fmt.Errorf("%w: hub, shop and rest_area scenes are required", ErrInvalidCatalog)
	}

	seen := make(map[string]bool)
	finales := 0
	for i, boss := range c.Bosses {
		if boss.ID == "" {
			return fmt.Errorf("%w: boss %d is missing an id", ErrInvalidCatalog, i)
		}
		if seen[boss.ID] {
			return fmt.Errorf("%w: duplicate boss id %q", ErrInvalidCatalog, boss.ID)
		}
		seen[boss.ID] = true
		if boss.Scene == "" {
			return fmt.Errorf("%w: boss %q has no scene", ErrInvalidCatalog, boss.ID)
		}
		if boss.Finale {
			finales++
		}
	}
	if finales != 1 {
		return fmt.Errorf("%w: expected exactly one finale boss, found %d", ErrInvalidCatalog, finales)
	}
	if len(c.Bosses)-finales == 0 {
		return fmt.Errorf("%w: at least one non-finale boss is required", ErrInvalidCatalog)
	}

	kinds := make(map[string]bool)
	for i, event := range c.Events {
		if event.Kind == "" || event.Scene == "" {
			return fmt.Errorf("%w: event %d needs a kind and a scene", ErrInvalidCatalog, i)
		}
		if kinds[event.Kind] {
			return fmt.Errorf("%w: duplicate event kind %q", ErrInvalidCatalog, event.Kind)
		}
		kinds[event.Kind] = true
	}
	if len(c.Events) == 0 {
		return fmt.Errorf("%w: at least one event kind is required", ErrInvalidCatalog)
	}

	tiers := make(map[string]bool)
	for i, enc := range c.Encounters {
		if enc.Kind == "" || enc.Scene == "" {
			return fmt.Errorf("%w: encounter %d needs a kind and a scene", ErrInvalidCatalog, i)
		}
		if tiers[enc.Kind] {
			return fmt.Errorf("%w: duplicate encounter kind %q", ErrInvalidCatalog, enc.Kind)
		}
		tiers[enc.Kind] = true
	}
	return nil
}

// SinIDs returns the shuffleable bosses in catalog order
func (c *Catalog) SinIDs() []string {
	ids := make([]string, 0, len(c.Bosses))
	for _, boss := range c.Bosses {
		if !boss.Finale {
			ids = append(ids, boss.ID)
		}
	}
	return ids
}

// FinaleID returns the reserved last boss
func (c *Catalog) FinaleID() string {
	for _, boss := range c.Bosses {
		if boss.Finale {
			return boss.ID
		}
	}
	return ""
}

// Boss looks up a boss definition by id
func (c *Catalog) Boss(id string) (BossDefinition, bool) {
	for _, boss := range c.Bosses {
		if boss.ID == id {
			return boss, true
		}
	}
	return BossDefinition{}, false
}

// BossScene is the pure boss id to arena lookup
func (c *Catalog) BossScene(id string) (string, bool) {
	boss, ok := c.Boss(id)
	if !ok {
		return "", false
	}
	return boss.Scene, true
}

// EventKinds returns the event kinds in catalog order
func (c *Catalog) EventKinds() []string {
	kinds := make([]string, len(c.Events))
	for i, event := range c.Events {
		kinds[i] = event.Kind
	}
	return kinds
}

// EventScene looks up the scene of an event kind
func (c *Catalog) EventScene(kind string) (string, bool) {
	for _, event := range c.Events {
		if event.Kind == kind {
			return event.Scene, true
		}
	}
	return "", false
}

// EncounterScene looks up the combat scene of an encounter tier
func (c *Catalog) EncounterScene(kind string) (string, bool) {
	for _, enc := range c.Encounters {
		if enc.Kind == kind {
			return enc.Scene, true
		}
	}
	return "", false
}
