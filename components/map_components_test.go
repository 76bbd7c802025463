package components

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLayer() Layer {
	nodes := []Node{
		NewEncounterNode(EncounterMinor, 2, 1),
		NewBossNode("Pride", "crowned"),
		NewEventNode("shrine"),
		NewRestShopNode(),
		NewBossNode("Pride", "crowned"),
	}
	// Deliberately unordered
	pos := [][2]int{{1, 0}, {1, 1}, {0, 0}, {0, 1}, {0, 2}}
	for i := range nodes {
		nodes[i].PathIndex, nodes[i].NodeIndex = pos[i][0], pos[i][1]
		nodes[i].ID = string(rune('a' + i))
	}
	return Layer{Index: 0, BossID: "Pride", Location: "Spire", Nodes: nodes}
}

func TestLayerPaths(t *testing.T) {
	l := sampleLayer()

	assert.Equal(t, 2, l.PathCount())
	assert.Equal(t, []int{0, 1}, l.PathIndexes())

	p0 := l.Path(0)
	require.Len(t, p0, 3)
	assert.Equal(t, []NodeType{NodeEvent, NodeRestShop, NodeBoss}, []NodeType{p0[0].Type, p0[1].Type, p0[2].Type})

	paths := l.Paths()
	require.Len(t, paths, 2)
	assert.Len(t, paths[1], 2)
	assert.Empty(t, l.Path(7))

	assert.Equal(t, 2, l.CountType(NodeBoss))
	assert.Equal(t, 1, l.CountEncounters(EncounterMinor))
	assert.Zero(t, l.CountEncounters(EncounterMajor))
}

func TestLayerPathIsCopy(t *testing.T) {
	l := sampleLayer()
	p := l.Path(0)
	p[0].Type = NodeMystery
	assert.Equal(t, NodeEvent, l.Path(0)[0].Type)
}

func TestMapEqual(t *testing.T) {
	a := &Map{Seed: "s", Layers: []Layer{sampleLayer()}}
	b := &Map{Seed: "s", Layers: []Layer{sampleLayer()}}
	assert.True(t, a.Equal(b))

	b.Layers[0].Nodes[0].Encounter.EnemyCount = 3
	assert.False(t, a.Equal(b))

	assert.True(t, (&Map{Layers: []Layer{{Nodes: nil}}}).Equal(&Map{Layers: []Layer{{Nodes: []Node{}}}}))

	var nilMap *Map
	assert.True(t, nilMap.Equal(nil))
	assert.False(t, a.Equal(nil))
}

func TestMapLookups(t *testing.T) {
	m := &Map{Seed: "s", Layers: []Layer{sampleLayer()}}

	l, ok := m.LayerForBoss("Pride")
	require.True(t, ok)
	assert.Equal(t, "Spire", l.Location)

	_, ok = m.LayerForBoss("Envy")
	assert.False(t, ok)
	_, ok = m.Layer(3)
	assert.False(t, ok)
	assert.Equal(t, 5, m.NodeCount())
	assert.NoError(t, m.Validate())
}

func TestMapJSONRoundTrip(t *testing.T) {
	m := &Map{Seed: "s", Layers: []Layer{sampleLayer()}}
	raw, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"rest_shop"`)

	var decoded Map
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, m.Equal(&decoded))
}

func TestMapValidateRejectsBadNodes(t *testing.T) {
	l := sampleLayer()
	l.Nodes[0].Encounter = nil
	m := &Map{Layers: []Layer{l}}
	assert.Error(t, m.Validate())

	l = sampleLayer()
	l.Index = 4
	assert.Error(t, (&Map{Layers: []Layer{l}}).Validate())
}
