package systems

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sinpath/components"
	"sinpath/data"
)

func fixedPicker(i int) func(int) int {
	return func(int) int { return i }
}

func TestResolveNodeTypes(t *testing.T) {
	router := NewSceneRouter(WithServicePicker(fixedPicker(0)))
	rc := NewRoutingContext(zerolog.Nop())

	cases := []struct {
		node components.Node
		want string
	}{
		{components.NewStartNode(), "Hub"},
		{components.NewBossNode(data.BossGluttony, ""), "Boss_Gluttony"},
		{components.NewBossNode(data.BossFinale, ""), "Boss_Lucifer"},
		{components.NewEventNode("fountain"), "Event_Fountain"},
		{components.NewEncounterNode(components.EncounterMinor, 2, 1), "Combat_Minor"},
		{components.NewRestShopNode(), "Shop"},
	}
	for _, tc := range cases {
		got, err := router.Resolve(tc.node, rc)
		require.NoError(t, err, tc.node.Type.String())
		assert.Equal(t, tc.want, got)
	}

	rest := NewSceneRouter(WithServicePicker(fixedPicker(1)))
	got, err := rest.Resolve(components.NewRestShopNode(), rc)
	require.NoError(t, err)
	assert.Equal(t, "RestArea", got)
}

func TestResolveRestShopDefaultPicker(t *testing.T) {
	router := NewSceneRouter()
	for i := 0; i < 20; i++ {
		got, err := router.Resolve(components.NewRestShopNode(), nil)
		require.NoError(t, err)
		assert.Contains(t, []string{"Shop", "RestArea"}, got)
	}
}

func TestResolveUnresolved(t *testing.T) {
	router := NewSceneRouter()
	rc := NewRoutingContext(zerolog.Nop())

	unknownBoss := components.NewBossNode("Vanity", "")
	unknownEvent := components.NewEventNode("dragon")
	noPayload := components.Node{Type: components.NodeBoss}
	reserved := components.Node{Type: components.NodeTreasure}
	noEncounter := components.Node{Type: components.NodeEncounter}

	for _, n := range []components.Node{unknownBoss, unknownEvent, noPayload, reserved, noEncounter} {
		_, err := router.Resolve(n, rc)
		assert.ErrorIs(t, err, ErrUnresolved, n.Type.String())
	}
}

func TestConnectorNumbering(t *testing.T) {
	router := NewSceneRouter()
	rc := NewRoutingContext(zerolog.Nop())
	rc.SetPath(router.BranchRoute(data.BossLust))
	connector := rc.Peek(1)
	require.NotNil(t, connector)

	first, err := router.Resolve(*connector, rc)
	require.NoError(t, err)
	assert.Equal(t, "Lust_Connection1", first)

	rc.MoveTo(first, components.DirectionBranch)
	second, err := router.Resolve(*connector, rc)
	require.NoError(t, err)
	assert.Equal(t, "Lust_Connection2", second)

	rc.MoveTo(second, components.DirectionBranch)
	third, err := router.Resolve(*connector, rc)
	require.NoError(t, err)
	assert.Equal(t, "Lust_Connection2", third, "only two connector scenes exist")
}

func TestConnectorBossSources(t *testing.T) {
	router := NewSceneRouter()

	// Node property when the route has no boss
	rc := NewRoutingContext(zerolog.Nop())
	got, err := router.Resolve(components.NewConnectorNode(data.BossSloth), rc)
	require.NoError(t, err)
	assert.Equal(t, "Sloth_Connection1", got)

	// The path boss wins over the node property
	rc.SetPath([]components.Node{components.NewStartNode(), components.NewConnectorNode(data.BossSloth), components.NewBossNode(data.BossWrath, "")})
	got, err = router.Resolve(components.NewConnectorNode(data.BossSloth), rc)
	require.NoError(t, err)
	assert.Equal(t, "Wrath_Connection1", got)

	// Deterministic fallback
	got, err = router.Resolve(components.NewConnectorNode(""), nil)
	require.NoError(t, err)
	assert.Equal(t, "Pride_Connection1", got)
}

func TestResolveChoice(t *testing.T) {
	router := NewSceneRouter()
	rc := NewRoutingContext(zerolog.Nop())

	choices := Choices{Left: data.BossPride, Right: data.BossEnvy, Kind: ChoiceDistinct}
	left, err := router.ResolveChoice(choices, SideLeft, rc)
	require.NoError(t, err)
	assert.Equal(t, "Pride_Connection1", left)

	right, err := router.ResolveChoice(choices, SideRight, rc)
	require.NoError(t, err)
	assert.Equal(t, "Envy_Connection1", right)

	_, err = router.ResolveChoice(Choices{Kind: ChoiceExhausted}, SideLeft, rc)
	assert.ErrorIs(t, err, ErrNoBossAvailable)

	_, err = router.ResolveChoice(Choices{Left: "Vanity", Right: "Vanity", Kind: ChoiceConverged}, SideLeft, rc)
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestRouteOverrides(t *testing.T) {
	router := NewSceneRouter()
	router.AddOverride("hub_burned", "Hub", "Hub_Ruined")
	rc := NewRoutingContext(zerolog.Nop())

	got, err := router.Resolve(components.NewStartNode(), rc)
	require.NoError(t, err)
	assert.Equal(t, "Hub", got)

	require.NoError(t, rc.SetPersistent("hub_burned", true))
	got, err = router.Resolve(components.NewStartNode(), rc)
	require.NoError(t, err)
	assert.Equal(t, "Hub_Ruined", got)

	// A non-bool flag is a mismatch and counts as unset
	require.NoError(t, rc.SetPersistent("hub_burned", "yes"))
	got, err = router.Resolve(components.NewStartNode(), rc)
	require.NoError(t, err)
	assert.Equal(t, "Hub", got)
}

func TestRoutes(t *testing.T) {
	router := NewSceneRouter()
	layer := components.Layer{Index: 2, BossID: data.BossEnvy, Nodes: []components.Node{
		{ID: "b", Type: components.NodeBoss, PathIndex: 0, NodeIndex: 1, Boss: &components.BossInfo{BossID: data.BossEnvy}},
		{ID: "a", Type: components.NodeRestShop, PathIndex: 0, NodeIndex: 0, RestShop: &components.RestShopInfo{}},
	}}

	route, err := router.LayerRoute(layer, 0)
	require.NoError(t, err)
	require.Len(t, route, 3)
	assert.Equal(t, components.NodeStart, route[0].Type)
	assert.Equal(t, "a", route[1].ID)
	assert.Equal(t, "b", route[2].ID)

	_, err = router.LayerRoute(layer, 4)
	assert.ErrorIs(t, err, ErrUnresolved)

	branch := router.BranchRoute(data.BossEnvy)
	require.Len(t, branch, 3)
	assert.Equal(t, []components.NodeType{components.NodeStart, components.NodeConnector, components.NodeBoss},
		[]components.NodeType{branch[0].Type, branch[1].Type, branch[2].Type})
	assert.Equal(t, data.BossEnvy, branch[2].Boss.BossID)
	assert.NotEmpty(t, branch[2].Boss.Description)
}

func TestRouteRebuild(t *testing.T) {
	router := NewSceneRouter()
	m := &components.Map{Layers: []components.Layer{{Index: 0, BossID: data.BossEnvy, Nodes: []components.Node{
		{ID: "a", Type: components.NodeRestShop, PathIndex: 0, NodeIndex: 0, RestShop: &components.RestShopInfo{}},
		{ID: "b", Type: components.NodeBoss, PathIndex: 0, NodeIndex: 1, Boss: &components.BossInfo{BossID: data.BossEnvy}},
	}}}}

	route, err := router.Route(RouteRef{Kind: RouteLayer, Layer: 0, Path: 0}, m)
	require.NoError(t, err)
	want, err := router.LayerRoute(m.Layers[0], 0)
	require.NoError(t, err)
	assert.Equal(t, want, route)

	route, err = router.Route(RouteRef{Kind: RouteBranch, Boss: data.BossGreed}, nil)
	require.NoError(t, err)
	assert.Equal(t, router.BranchRoute(data.BossGreed), route)

	route, err = router.Route(RouteRef{Kind: RouteHub}, nil)
	require.NoError(t, err)
	require.Len(t, route, 1)
	assert.Equal(t, components.NodeStart, route[0].Type)

	route, err = router.Route(RouteRef{}, nil)
	require.NoError(t, err)
	assert.Nil(t, route)

	for _, ref := range []RouteRef{
		{Kind: RouteLayer, Layer: 0, Path: 0},
		{Kind: RouteBranch, Boss: "Vanity"},
		{Kind: "detour"},
	} {
		_, err := router.Route(ref, nil)
		assert.ErrorIs(t, err, ErrUnresolved, string(ref.Kind))
	}
	_, err = router.Route(RouteRef{Kind: RouteLayer, Layer: 5}, m)
	assert.ErrorIs(t, err, ErrUnresolved)
}
