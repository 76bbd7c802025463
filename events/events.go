package events

import "sinpath/components"

// Event type constants
const (
	EventTransition      EventType = "transition"
	EventBossDefeated    EventType = "boss_defeated"
	EventChoicesOffered  EventType = "choices_offered"
	EventRouteUnresolved EventType = "route_unresolved"
	EventMapGenerated    EventType = "map_generated"
)

// TransitionEvent is emitted after the host finished loading a new scene
type TransitionEvent struct {
	Transition components.Transition
}

// Type returns the event type
func (e TransitionEvent) Type() EventType {
	return EventTransition
}

// BossDefeatedEvent is emitted when a boss is marked defeated for the first time
type BossDefeatedEvent struct {
	BossID    string
	Remaining []string // Bosses still ahead, finale included once it is the last
	Converged bool
}

// Type returns the event type
func (e BossDefeatedEvent) Type() EventType {
	return EventBossDefeated
}

// ChoicesOfferedEvent is emitted when the hub asks the pool for its next offer
type ChoicesOfferedEvent struct {
	Left  string
	Right string
	Kind  string
}

// Type returns the event type
func (e ChoicesOfferedEvent) Type() EventType {
	return EventChoicesOffered
}

// RouteUnresolvedEvent is emitted when no destination could be found for a node
type RouteUnresolvedEvent struct {
	Node      components.Node
	Direction components.TransitionDirection
	Err       error
}

// Type returns the event type
func (e RouteUnresolvedEvent) Type() EventType {
	return EventRouteUnresolved
}

// MapGeneratedEvent is emitted once a run's map is built
type MapGeneratedEvent struct {
	Seed       string
	Layers     int
	Nodes      int
	Violations []string
}

// Type returns the event type
func (e MapGeneratedEvent) Type() EventType {
	return EventMapGenerated
}
