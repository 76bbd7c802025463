package systems

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"sinpath/components"
	"sinpath/data"
)

var (
	// ErrUnresolved is wrapped by every routing failure. Callers must not
	// transition when they see it.
	ErrUnresolved = errors.New("scene unresolved")
	// ErrNoBossAvailable is returned for branch offers of an exhausted pool
	ErrNoBossAvailable = errors.New("no boss available")
)

// connectorScenes is how many connector scenes each boss has
const connectorScenes = 2

// override swaps one destination for another while a persistent flag is set
type override struct {
	flag string
	from string
	to   string
}

// SceneRouter turns nodes and branch offers into scene identifiers
type SceneRouter struct {
	catalog   *data.Catalog
	intn      func(n int) int
	overrides []override
	logger    zerolog.Logger
}

// RouterOption configures a SceneRouter
type RouterOption func(*SceneRouter)

// WithRouterCatalog overrides the built-in catalog
func WithRouterCatalog(catalog *data.Catalog) RouterOption {
	return func(r *SceneRouter) {
		if catalog != nil {
			r.catalog = catalog
		}
	}
}

// WithServicePicker replaces the unseeded draw that picks between the shop
// and the rest area. intn must return a value in [0, n).
func WithServicePicker(intn func(n int) int) RouterOption {
	return func(r *SceneRouter) {
		if intn != nil {
			r.intn = intn
		}
	}
}

// WithRouterLogger sets the router's logger
func WithRouterLogger(logger zerolog.Logger) RouterOption {
	return func(r *SceneRouter) {
		r.logger = logger
	}
}

// NewSceneRouter creates a new scene router
func NewSceneRouter(opts ...RouterOption) *SceneRouter {
	r := &SceneRouter{
		catalog: data.DefaultCatalog(),
		intn:    rand.Intn,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddOverride makes every resolution to from land on to while the persistent
// bool flag is true
func (r *SceneRouter) AddOverride(flag, from, to string) {
	r.overrides = append(r.overrides, override{flag: flag, from: from, to: to})
}

// Resolve returns the scene node leads to. rc supplies the path boss and the
// visit history for connectors and the flags for overrides; it is not
// modified.
func (r *SceneRouter) Resolve(node components.Node, rc *RoutingContext) (string, error) {
	var scene string

	switch node.Type {
	case components.NodeStart:
		scene = r.catalog.Hub

	case components.NodeBoss:
		if node.Boss == nil || node.Boss.BossID == "" {
			return "", fmt.Errorf("%w: boss node %s has no boss id", ErrUnresolved, node.ID)
		}
		s, ok := r.catalog.BossScene(node.Boss.BossID)
		if !ok {
			return "", fmt.Errorf("%w: no arena for boss %q", ErrUnresolved, node.Boss.BossID)
		}
		scene = s

	case components.NodeEncounter:
		if node.Encounter == nil {
			return "", fmt.Errorf("%w: encounter node %s has no payload", ErrUnresolved, node.ID)
		}
		s, ok := r.catalog.EncounterScene(string(node.Encounter.Kind))
		if !ok {
			return "", fmt.Errorf("%w: no combat scene for %q", ErrUnresolved, node.Encounter.Kind)
		}
		scene = s

	case components.NodeRestShop:
		services := []string{r.catalog.Shop, r.catalog.RestArea}
		scene = services[r.intn(len(services))]

	case components.NodeEvent:
		if node.Event == nil || node.Event.Kind == "" {
			return "", fmt.Errorf("%w: event node %s has no kind", ErrUnresolved, node.ID)
		}
		s, ok := r.catalog.EventScene(node.Event.Kind)
		if !ok {
			return "", fmt.Errorf("%w: no scene for event %q", ErrUnresolved, node.Event.Kind)
		}
		scene = s

	case components.NodeConnector:
		boss, err := r.connectorBoss(node, rc)
		if err != nil {
			return "", err
		}
		scene = r.connectorScene(boss, rc)

	default:
		return "", fmt.Errorf("%w: no route for %s node %s", ErrUnresolved, node.Type, node.ID)
	}

	if scene == "" {
		return "", fmt.Errorf("%w: empty scene for %s node %s", ErrUnresolved, node.Type, node.ID)
	}
	return r.applyOverrides(scene, rc), nil
}

// ResolveChoice returns the connector scene for one side of a branch offer
func (r *SceneRouter) ResolveChoice(choices Choices, side Side, rc *RoutingContext) (string, error) {
	boss := choices.Side(side)
	if !choices.Available() || boss == "" {
		return "", ErrNoBossAvailable
	}
	if _, ok := r.catalog.Boss(boss); !ok {
		return "", fmt.Errorf("%w: unknown boss %q on the %s", ErrUnresolved, boss, side)
	}
	return r.applyOverrides(r.connectorScene(boss, rc), rc), nil
}

// connectorBoss picks the boss a connector belongs to: the active path's
// boss, then the node's own, then the first catalog sin
func (r *SceneRouter) connectorBoss(node components.Node, rc *RoutingContext) (string, error) {
	if rc != nil {
		if boss, ok := rc.PathBoss(); ok {
			return boss, nil
		}
	}
	if node.Connector != nil && node.Connector.BossID != "" {
		return node.Connector.BossID, nil
	}
	if sins := r.catalog.SinIDs(); len(sins) > 0 {
		r.logger.Warn().Str("node", node.ID).Str("fallback", sins[0]).Msg("connector without boss, using fallback")
		return sins[0], nil
	}
	return "", fmt.Errorf("%w: connector %s has no boss", ErrUnresolved, node.ID)
}

// connectorScene numbers connectors by how many of the boss's connectors are
// already in the history
func (r *SceneRouter) connectorScene(boss string, rc *RoutingContext) string {
	n := 1
	for rc != nil && n < connectorScenes && rc.HasVisited(ConnectorScene(boss, n)) {
		n++
	}
	return ConnectorScene(boss, n)
}

func (r *SceneRouter) applyOverrides(scene string, rc *RoutingContext) string {
	if rc == nil {
		return scene
	}
	for _, o := range r.overrides {
		if o.from == scene && GetPersistent(rc, o.flag, false) {
			r.logger.Debug().Str("flag", o.flag).Str("from", o.from).Str("to", o.to).Msg("route overridden")
			scene = o.to
		}
	}
	return scene
}

// ConnectorScene names the nth connector scene of boss
func ConnectorScene(boss string, n int) string {
	return fmt.Sprintf("%s_Connection%d", boss, n)
}

// LayerRoute is the walk through one path of a layer: the hub followed by
// the path's nodes
func (r *SceneRouter) LayerRoute(layer components.Layer, pathIndex int) ([]components.Node, error) {
	path := layer.Path(pathIndex)
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: layer %d has no path %d", ErrUnresolved, layer.Index, pathIndex)
	}
	return append([]components.Node{components.NewStartNode()}, path...), nil
}

// BranchRoute is the short walk from the hub to a boss through its connector
func (r *SceneRouter) BranchRoute(boss string) []components.Node {
	description := ""
	if def, ok := r.catalog.Boss(boss); ok {
		description = def.Description
	}

	route := []components.Node{
		components.NewStartNode(),
		components.NewConnectorNode(boss),
		components.NewBossNode(boss, description),
	}
	for i := range route {
		route[i].NodeIndex = i
		route[i].PathIndex = -1
		route[i].ID = fmt.Sprintf("branch/%s/%d", boss, i)
	}
	return route
}

// Route rebuilds the path ref names. m is only needed for layer routes. A
// custom ref has nothing to rebuild and returns nil.
func (r *SceneRouter) Route(ref RouteRef, m *components.Map) ([]components.Node, error) {
	switch ref.Kind {
	case RouteCustom:
		return nil, nil
	case RouteHub:
		return []components.Node{components.NewStartNode()}, nil
	case RouteLayer:
		if m == nil {
			return nil, fmt.Errorf("%w: layer route %d/%d without a map", ErrUnresolved, ref.Layer, ref.Path)
		}
		layer, ok := m.Layer(ref.Layer)
		if !ok {
			return nil, fmt.Errorf("%w: map has no layer %d", ErrUnresolved, ref.Layer)
		}
		return r.LayerRoute(layer, ref.Path)
	case RouteBranch:
		if _, ok := r.catalog.Boss(ref.Boss); !ok {
			return nil, fmt.Errorf("%w: branch route to unknown boss %q", ErrUnresolved, ref.Boss)
		}
		return r.BranchRoute(ref.Boss), nil
	default:
		return nil, fmt.Errorf("%w: unknown route kind %q", ErrUnresolved, ref.Kind)
	}
}
