package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"sinpath/components"
	"sinpath/data"
	"sinpath/events"
	"sinpath/generation"
	"sinpath/save"
	"sinpath/systems"
)

// gameRun bundles the caller-owned state of one run
type gameRun struct {
	seed     generation.Seed
	rules    *generation.Rules
	runMap   *components.Map
	report   generation.Report
	bus      *events.Bus
	messages *systems.MessageLog
	pool     *systems.BossPool
	routing  *systems.RoutingContext
	router   *systems.SceneRouter
	log      zerolog.Logger
}

func newRun(seed generation.Seed, rules *generation.Rules, m *components.Map, report generation.Report, catalog *data.Catalog, log zerolog.Logger) *gameRun {
	bus := events.NewBus()
	messages := systems.NewMessageLog(200)
	messages.Attach(bus)

	r := &gameRun{
		seed:     seed,
		rules:    rules,
		runMap:   m,
		report:   report,
		bus:      bus,
		messages: messages,
		pool: systems.NewBossPool(seed,
			systems.WithPoolCatalog(catalog),
			systems.WithPoolLogger(log.With().Str("component", "pool").Logger()),
			systems.WithPoolEvents(bus)),
		routing: systems.NewRoutingContext(log.With().Str("component", "routing").Logger()),
		router: systems.NewSceneRouter(
			systems.WithRouterCatalog(catalog),
			systems.WithRouterLogger(log.With().Str("component", "router").Logger())),
		log: log,
	}

	bus.Emit(events.MapGeneratedEvent{
		Seed:       m.Seed,
		Layers:     len(m.Layers),
		Nodes:      m.NodeCount(),
		Violations: report.Violations(),
	})
	return r
}

func (r *gameRun) navigator(host systems.SceneHost) *systems.Navigator {
	return systems.NewNavigator(host, r.router, r.routing, r.pool,
		systems.WithNavigatorEvents(r.bus),
		systems.WithNavigatorLogger(r.log.With().Str("component", "navigator").Logger()))
}

// walk plays the run headless: the first layer's first path, then every
// branch the pool offers, always taking the left side
func (r *gameRun) walk(ctx context.Context, w io.Writer) error {
	host := systems.NewLogHost(r.log.With().Str("component", "host").Logger())
	nav := r.navigator(host)

	if _, err := nav.EnterHub(ctx); err != nil {
		return err
	}

	if len(r.runMap.Layers) > 0 {
		layer := r.runMap.Layers[0]
		if err := nav.FollowPath(layer, layer.PathIndexes()[0]); err != nil {
			return err
		}
		if err := r.walkToBoss(ctx, nav); err != nil {
			return err
		}
	}

	for {
		choices := nav.Offer()
		if !choices.Available() {
			break
		}
		if _, err := nav.Branch(ctx, systems.SideLeft); err != nil {
			return err
		}
		if err := r.walkToBoss(ctx, nav); err != nil {
			return err
		}
		if _, err := nav.EnterHub(ctx); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "visited %d scenes: %s\n", len(host.History()), strings.Join(host.History(), ", "))
	fmt.Fprintf(w, "defeated: %s\n", strings.Join(r.pool.Defeated(), ", "))
	return nil
}

// walkToBoss moves forward to the end of the active route and defeats the
// boss found there
func (r *gameRun) walkToBoss(ctx context.Context, nav *systems.Navigator) error {
	for {
		_, err := nav.Forward(ctx)
		if errors.Is(err, systems.ErrEndOfPath) {
			break
		}
		if err != nil {
			return err
		}
	}

	node := r.routing.CurrentNode()
	if node == nil || node.Boss == nil {
		return fmt.Errorf("route ended on %v, not a boss", node)
	}
	return nav.CompleteBoss(node.Boss.BossID)
}

// save writes the run's state, seed only, under key in dir
func (r *gameRun) save(ctx context.Context, dir, key string) error {
	mgr := save.NewManager(save.NewFileStore(dir), r.log.With().Str("component", "save").Logger())
	return mgr.Save(ctx, key, save.Capture(r.seed, r.rules, r.runMap, r.pool, r.routing, false))
}
