package components

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeTypeText(t *testing.T) {
	for typ := NodeStart; typ <= NodeMystery; typ++ {
		text, err := typ.MarshalText()
		require.NoError(t, err)

		var back NodeType
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, typ, back)
	}

	_, err := ParseNodeType("dragon")
	assert.Error(t, err)
	assert.Equal(t, "node_type(99)", NodeType(99).String())
}

func TestNodeValidate(t *testing.T) {
	valid := []Node{
		NewStartNode(),
		NewEncounterNode(EncounterMajor, 1, 1.5),
		NewEventNode("shrine"),
		NewRestShopNode(),
		NewBossNode("Wrath", ""),
		NewConnectorNode(""),
	}
	for _, n := range valid {
		assert.NoError(t, n.Validate(), n.Type.String())
	}

	mismatched := NewEventNode("shrine")
	mismatched.Type = NodeBoss
	assert.Error(t, mismatched.Validate())

	doubled := NewBossNode("Wrath", "")
	doubled.Event = &EventInfo{Kind: "shrine"}
	assert.Error(t, doubled.Validate())

	start := NewStartNode()
	start.Boss = &BossInfo{BossID: "Wrath"}
	assert.Error(t, start.Validate())
}

func TestNodeIsCombat(t *testing.T) {
	assert.True(t, NewEncounterNode(EncounterMinor, 1, 1).IsCombat())
	assert.True(t, NewBossNode("Pride", "").IsCombat())
	assert.False(t, NewRestShopNode().IsCombat())
	assert.False(t, NewEventNode("x").IsCombat())
}

func TestTransitionDirectionText(t *testing.T) {
	raw, err := json.Marshal(struct {
		D TransitionDirection `json:"d"`
	}{DirectionBranch})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"branch"}`, string(raw))

	var d TransitionDirection
	require.NoError(t, d.UnmarshalText([]byte("backward")))
	assert.Equal(t, DirectionBackward, d)
	assert.Error(t, d.UnmarshalText([]byte("sideways")))

	tr := NewTransition("Hub", "Boss_Pride", DirectionForward, nil)
	assert.Equal(t, "Hub", tr.From)
	assert.Equal(t, DirectionForward, tr.Direction)
}
