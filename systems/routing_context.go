package systems

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"sinpath/components"
)

// RouteKind tells where the active path came from
type RouteKind string

const (
	RouteCustom RouteKind = ""       // Set directly with SetPath, cannot be rebuilt
	RouteHub    RouteKind = "hub"    // The hub alone
	RouteLayer  RouteKind = "layer"  // One generated path of a layer
	RouteBranch RouteKind = "branch" // Hub, connector and boss of a branch offer
)

// RouteRef identifies the active path well enough to rebuild it from the map
type RouteRef struct {
	Kind  RouteKind `json:"kind,omitempty"`
	Layer int       `json:"layer,omitempty"`
	Path  int       `json:"path,omitempty"`
	Boss  string    `json:"boss,omitempty"`
}

// Snapshot is the transient part of a RoutingContext. The persistent store
// is saved separately.
type Snapshot struct {
	CurrentLocation  string                         `json:"current_location"`
	PreviousLocation string                         `json:"previous_location"`
	Route            RouteRef                       `json:"route"`
	PathIndex        int                            `json:"path_index"`
	Visited          []string                       `json:"visited"`
	LastDirection    components.TransitionDirection `json:"last_direction"`
}

// RoutingContext is the traversal state of one run: where the player is,
// where they came from, the path they are walking and where they have been.
// It is owned by the caller; a Navigator serializes access during transitions.
type RoutingContext struct {
	currentLocation  string
	previousLocation string
	route            RouteRef
	path             []components.Node
	pathIndex        int
	visited          []string
	lastDirection    components.TransitionDirection
	persistent       *PersistentStore
	logger           zerolog.Logger
}

// NewRoutingContext creates an empty context with its own persistent store
func NewRoutingContext(logger zerolog.Logger) *RoutingContext {
	return &RoutingContext{
		persistent: NewPersistentStore(),
		logger:     logger,
	}
}

// CurrentLocation returns the scene the player is in
func (rc *RoutingContext) CurrentLocation() string {
	return rc.currentLocation
}

// PreviousLocation returns the scene the player left last
func (rc *RoutingContext) PreviousLocation() string {
	return rc.previousLocation
}

// LastDirection returns the direction of the last move
func (rc *RoutingContext) LastDirection() components.TransitionDirection {
	return rc.lastDirection
}

// SetPath replaces the active path and puts the player on its first node.
// The path has no RouteRef and is not rebuilt on restore.
func (rc *RoutingContext) SetPath(path []components.Node) {
	rc.SetRoute(RouteRef{}, path)
}

// SetRoute is SetPath for a path that ref can rebuild
func (rc *RoutingContext) SetRoute(ref RouteRef, path []components.Node) {
	rc.route = ref
	rc.path = slices.Clone(path)
	rc.pathIndex = 0
}

// Route returns the identity of the active path
func (rc *RoutingContext) Route() RouteRef {
	return rc.route
}

// Path returns a copy of the active path
func (rc *RoutingContext) Path() []components.Node {
	return slices.Clone(rc.path)
}

// PathIndex returns the player's position on the active path
func (rc *RoutingContext) PathIndex() int {
	return rc.pathIndex
}

// CurrentNode returns the node under the player, nil without a path
func (rc *RoutingContext) CurrentNode() *components.Node {
	return rc.nodeAt(rc.pathIndex)
}

// Peek returns the node offset steps away without moving, nil past either end
func (rc *RoutingContext) Peek(offset int) *components.Node {
	return rc.nodeAt(rc.pathIndex + offset)
}

// PathBoss returns the boss the active path ends in
func (rc *RoutingContext) PathBoss() (string, bool) {
	for i := len(rc.path) - 1; i >= 0; i-- {
		if n := rc.path[i]; n.Type == components.NodeBoss && n.Boss != nil && n.Boss.BossID != "" {
			return n.Boss.BossID, true
		}
	}
	return "", false
}

// Advance steps one node forward. At the end of the path the index stays put
// and nil is returned.
func (rc *RoutingContext) Advance() *components.Node {
	return rc.step(1)
}

// Retreat steps one node back. At the start of the path the index stays put
// and nil is returned.
func (rc *RoutingContext) Retreat() *components.Node {
	return rc.step(-1)
}

func (rc *RoutingContext) step(delta int) *components.Node {
	next := rc.nodeAt(rc.pathIndex + delta)
	if next == nil {
		return nil
	}
	rc.pathIndex += delta
	return next
}

func (rc *RoutingContext) nodeAt(i int) *components.Node {
	if i < 0 || i >= len(rc.path) {
		return nil
	}
	n := rc.path[i]
	return &n
}

// RecordVisit appends location to the history unless it is already there
func (rc *RoutingContext) RecordVisit(location string) {
	if location == "" || slices.Contains(rc.visited, location) {
		return
	}
	rc.visited = append(rc.visited, location)
}

// HasVisited reports whether location is in the history
func (rc *RoutingContext) HasVisited(location string) bool {
	return slices.Contains(rc.visited, location)
}

// Visited returns the history in first-visit order
func (rc *RoutingContext) Visited() []string {
	return slices.Clone(rc.visited)
}

// MoveTo records arrival at location
func (rc *RoutingContext) MoveTo(location string, direction components.TransitionDirection) {
	rc.previousLocation = rc.currentLocation
	rc.currentLocation = location
	rc.lastDirection = direction
	rc.RecordVisit(location)

	rc.logger.Debug().
		Str("from", rc.previousLocation).
		Str("to", location).
		Stringer("direction", direction).
		Int("path_index", rc.pathIndex).
		Msg("moved")
}

// Snapshot captures the transient fields
func (rc *RoutingContext) Snapshot() Snapshot {
	return Snapshot{
		CurrentLocation:  rc.currentLocation,
		PreviousLocation: rc.previousLocation,
		Route:            rc.route,
		PathIndex:        rc.pathIndex,
		Visited:          slices.Clone(rc.visited),
		LastDirection:    rc.lastDirection,
	}
}

// Restore rolls the transient fields back to s. The persistent store and the
// active path are left alone; s.PathIndex is clamped to that path, so set the
// route s.Route names before restoring.
func (rc *RoutingContext) Restore(s Snapshot) {
	rc.currentLocation = s.CurrentLocation
	rc.previousLocation = s.PreviousLocation
	rc.pathIndex = max(0, min(s.PathIndex, len(rc.path)-1))
	if rc.pathIndex != s.PathIndex {
		rc.logger.Warn().
			Int("saved", s.PathIndex).
			Int("clamped", rc.pathIndex).
			Int("path_len", len(rc.path)).
			Msg("restored path index out of range")
	}
	rc.visited = slices.Clone(s.Visited)
	rc.lastDirection = s.LastDirection
}

// Persistent returns the run's key/value store
func (rc *RoutingContext) Persistent() *PersistentStore {
	return rc.persistent
}

// SetPersistent stores value under key
func (rc *RoutingContext) SetPersistent(key string, value any) error {
	return rc.persistent.Set(key, value)
}

// GetPersistent returns the value under key as a T. A missing key returns def;
// a value of another type also returns def and logs a warning.
func GetPersistent[T any](rc *RoutingContext, key string, def T) T {
	raw, ok := rc.persistent.Get(key)
	if !ok {
		return def
	}
	v, ok := raw.(T)
	if !ok {
		rc.logger.Warn().
			Str("key", key).
			Str("stored", fmt.Sprintf("%T", raw)).
			Str("requested", fmt.Sprintf("%T", def)).
			Msg("persistent value type mismatch, using default")
		return def
	}
	return v
}
