package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	assert.Equal(t, []string{BossPride, BossGreed, BossLust, BossEnvy, BossGluttony, BossWrath, BossSloth}, c.SinIDs())
	assert.Equal(t, BossFinale, c.FinaleID())

	scene, ok := c.BossScene(BossWrath)
	require.True(t, ok)
	assert.Equal(t, "Boss_Wrath", scene)
	_, ok = c.BossScene("Vanity")
	assert.False(t, ok)

	scene, ok = c.EventScene("shrine")
	require.True(t, ok)
	assert.Equal(t, "Event_Shrine", scene)
	assert.Len(t, c.EventKinds(), 5)

	scene, ok = c.EncounterScene("major_enemy")
	require.True(t, ok)
	assert.Equal(t, "Combat_Major", scene)

	boss, ok := c.Boss(BossFinale)
	require.True(t, ok)
	assert.True(t, boss.Finale)
}

func TestDefaultCatalogIsACopy(t *testing.T) {
	a := DefaultCatalog()
	a.Bosses[0].Scene = "changed"
	a.Events[0].Scene = "changed"
	a.Encounters = a.Encounters[:0]
	a.Hub = "changed"

	b := DefaultCatalog()
	assert.Equal(t, "Boss_Pride", b.Bosses[0].Scene)
	assert.Equal(t, "Event_Shrine", b.Events[0].Scene)
	assert.Len(t, b.Encounters, 2)
	assert.Equal(t, "Hub", b.Hub)
}

func TestCatalogClone(t *testing.T) {
	c, err := ParseCatalog([]byte(minimalJSON), "json")
	require.NoError(t, err)

	clone := c.Clone()
	assert.Equal(t, c, clone)
	clone.Bosses = append(clone.Bosses[:1], BossDefinition{ID: "B", Scene: "Boss_B"})
	assert.Equal(t, "Z", c.Bosses[1].ID)
}

const minimalJSON = `{
  "hub": "H", "shop": "S", "rest_area": "R",
  "bosses": [
    {"id": "A", "scene": "Boss_A"},
    {"id": "Z", "scene": "Boss_Z", "finale": true}
  ],
  "events": [{"kind": "e", "scene": "Event_E"}]
}`

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog([]byte(minimalJSON), "json")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, c.SinIDs())
	assert.Equal(t, "Z", c.FinaleID())

	_, err = ParseCatalog([]byte(minimalJSON), "toml")
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = ParseCatalog([]byte("{"), "json")
	assert.Error(t, err)
}

func TestCatalogValidate(t *testing.T) {
	cases := map[string]func(c *Catalog){
		"no hub":          func(c *Catalog) { c.Hub = "" },
		"duplicate boss":  func(c *Catalog) { c.Bosses = append(c.Bosses, c.Bosses[0]) },
		"boss no scene":   func(c *Catalog) { c.Bosses[1].Scene = "" },
		"two finales":     func(c *Catalog) { c.Bosses[0].Finale = true },
		"no finale":       func(c *Catalog) { c.Bosses[len(c.Bosses)-1].Finale = false },
		"no events":       func(c *Catalog) { c.Events = nil },
		"duplicate event": func(c *Catalog) { c.Events = append(c.Events, c.Events[0]) },
		"encounter blank": func(c *Catalog) { c.Encounters = append(c.Encounters, EncounterDefinition{Kind: "x"}) },
		"only the finale": func(c *Catalog) { c.Bosses = c.Bosses[len(c.Bosses)-1:] },
		"boss without id": func(c *Catalog) { c.Bosses[2].ID = "" },
		"duplicate tier":  func(c *Catalog) { c.Encounters = append(c.Encounters, c.Encounters[0]) },
		"event no scene":  func(c *Catalog) { c.Events[0].Scene = "" },
		"no rest area":    func(c *Catalog) { c.RestArea = "" },
		"no shop":         func(c *Catalog) { c.Shop = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := DefaultCatalog()
			mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidCatalog)
		})
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(minimalJSON), 0644))
	c, err := LoadCatalogFromFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "H", c.Hub)

	yamlPath := filepath.Join(dir, "catalog.yml")
	require.NoError(t, os.WriteFile(yamlPath, defaultCatalogYAML, 0644))
	c, err = LoadCatalogFromFile(yamlPath)
	require.NoError(t, err)
	assert.Len(t, c.SinIDs(), 7)

	_, err = LoadCatalogFromFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
