package systems

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"sinpath/components"
	"sinpath/events"
)

// ErrEndOfPath is returned when moving past either end of the active route
var ErrEndOfPath = errors.New("end of path")

// DefeatedFlag is the persistent key set once a boss is beaten
func DefeatedFlag(boss string) string {
	return "defeated:" + boss
}

// Navigator drives transitions between scenes. Each transition reads the
// routing context, resolves a destination, waits for the host and only then
// updates the context, all under one lock. A failed resolve or load leaves
// the context untouched.
type Navigator struct {
	mu      sync.Mutex
	host    SceneHost
	router  *SceneRouter
	routing *RoutingContext
	pool    *BossPool
	bus     *events.Bus
	logger  zerolog.Logger
}

// NavigatorOption configures a Navigator
type NavigatorOption func(*Navigator)

// WithNavigatorEvents publishes transitions on bus
func WithNavigatorEvents(bus *events.Bus) NavigatorOption {
	return func(n *Navigator) {
		n.bus = bus
	}
}

// WithNavigatorLogger sets the navigator's logger
func WithNavigatorLogger(logger zerolog.Logger) NavigatorOption {
	return func(n *Navigator) {
		n.logger = logger
	}
}

// NewNavigator wires a host to a run's router, context and pool
func NewNavigator(host SceneHost, router *SceneRouter, routing *RoutingContext, pool *BossPool, opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		host:    host,
		router:  router,
		routing: routing,
		pool:    pool,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Routing returns the context the navigator mutates
func (n *Navigator) Routing() *RoutingContext {
	return n.routing
}

// Pool returns the run's boss pool
func (n *Navigator) Pool() *BossPool {
	return n.pool
}

// EnterHub loads the hub scene and clears the active path
func (n *Navigator) EnterHub(ctx context.Context) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	start := components.NewStartNode()
	scene, err := n.resolve(start, components.DirectionNone)
	if err != nil {
		return "", err
	}
	if err := n.load(ctx, scene); err != nil {
		return "", err
	}

	n.routing.SetRoute(RouteRef{Kind: RouteHub}, []components.Node{start})
	n.arrive(scene, components.DirectionNone, &start)
	return scene, nil
}

// FollowPath makes a generated path the active route. The player stays on
// the route's first node, the hub.
func (n *Navigator) FollowPath(layer components.Layer, pathIndex int) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	route, err := n.router.LayerRoute(layer, pathIndex)
	if err != nil {
		return err
	}
	n.routing.SetRoute(RouteRef{Kind: RouteLayer, Layer: layer.Index, Path: pathIndex}, route)
	n.logger.Debug().Int("layer", layer.Index).Int("path", pathIndex).Int("nodes", len(route)).Msg("following path")
	return nil
}

// Forward moves to the next node of the active route
func (n *Navigator) Forward(ctx context.Context) (string, error) {
	return n.stepTo(ctx, 1, components.DirectionForward)
}

// Backward moves to the previous node of the active route
func (n *Navigator) Backward(ctx context.Context) (string, error) {
	return n.stepTo(ctx, -1, components.DirectionBackward)
}

func (n *Navigator) stepTo(ctx context.Context, delta int, dir components.TransitionDirection) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	next := n.routing.Peek(delta)
	if next == nil {
		return "", fmt.Errorf("%s from index %d: %w", dir, n.routing.PathIndex(), ErrEndOfPath)
	}

	scene, err := n.resolve(*next, dir)
	if err != nil {
		return "", err
	}
	if err := n.load(ctx, scene); err != nil {
		return "", err
	}

	if delta > 0 {
		n.routing.Advance()
	} else {
		n.routing.Retreat()
	}
	n.arrive(scene, dir, next)
	return scene, nil
}

// Offer returns the pool's next branch offer and announces it
func (n *Navigator) Offer() Choices {
	n.mu.Lock()
	defer n.mu.Unlock()

	choices := n.pool.SelectNextChoices()
	n.bus.Emit(events.ChoicesOfferedEvent{Left: choices.Left, Right: choices.Right, Kind: string(choices.Kind)})
	return choices
}

// Branch takes one side of the current offer: the route becomes hub,
// connector, boss and the player moves onto the connector
func (n *Navigator) Branch(ctx context.Context, side Side) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	choices := n.pool.SelectNextChoices()
	scene, err := n.router.ResolveChoice(choices, side, n.routing)
	if err != nil {
		if !errors.Is(err, ErrNoBossAvailable) {
			n.bus.Emit(events.RouteUnresolvedEvent{Direction: components.DirectionBranch, Err: err})
		}
		return "", err
	}
	if err := n.load(ctx, scene); err != nil {
		return "", err
	}

	boss := choices.Side(side)
	n.routing.SetRoute(RouteRef{Kind: RouteBranch, Boss: boss}, n.router.BranchRoute(boss))
	connector := n.routing.Advance()
	n.arrive(scene, components.DirectionBranch, connector)
	return scene, nil
}

// CompleteBoss marks boss defeated in the pool and sets its persistent flag
func (n *Navigator) CompleteBoss(boss string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.pool.MarkDefeated(boss); err != nil {
		return err
	}
	return n.routing.SetPersistent(DefeatedFlag(boss), true)
}

func (n *Navigator) resolve(node components.Node, dir components.TransitionDirection) (string, error) {
	scene, err := n.router.Resolve(node, n.routing)
	if err != nil {
		n.logger.Error().Err(err).Stringer("type", node.Type).Str("node", node.ID).Msg("route unresolved")
		n.bus.Emit(events.RouteUnresolvedEvent{Node: node, Direction: dir, Err: err})
		return "", err
	}
	return scene, nil
}

func (n *Navigator) load(ctx context.Context, scene string) error {
	if err := n.host.LoadScene(ctx, scene); err != nil {
		n.logger.Error().Err(err).Str("scene", scene).Msg("scene load failed")
		return fmt.Errorf("load scene %q: %w", scene, err)
	}
	return nil
}

func (n *Navigator) arrive(scene string, dir components.TransitionDirection, node *components.Node) {
	from := n.routing.CurrentLocation()
	n.routing.MoveTo(scene, dir)
	n.bus.Emit(events.TransitionEvent{Transition: components.NewTransition(from, scene, dir, node)})
}
