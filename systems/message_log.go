package systems

import (
	"fmt"
	"strings"
	"sync"

	"sinpath/events"
)

// MessageLog stores player-facing run messages
type MessageLog struct {
	mu          sync.Mutex
	messages    []ColoredMessage
	maxMessages int
}

// NewMessageLog creates a new message log
func NewMessageLog(maxMessages int) *MessageLog {
	if maxMessages <= 0 {
		maxMessages = 100
	}
	return &MessageLog{maxMessages: maxMessages}
}

// Add adds a normal message to the log
func (ml *MessageLog) Add(message string) {
	ml.AddTyped(message, MessageTypeNormal)
}

// AddTyped adds a message with an explicit type
func (ml *MessageLog) AddTyped(message string, msgType MessageType) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	ml.messages = append(ml.messages, ColoredMessage{Text: message, Type: msgType})

	// Truncate if we have too many messages
	if len(ml.messages) > ml.maxMessages {
		ml.messages = ml.messages[len(ml.messages)-ml.maxMessages:]
	}
}

// RecentMessages gets the n most recent messages, newest first
func (ml *MessageLog) RecentMessages(n int) []ColoredMessage {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if n > len(ml.messages) {
		n = len(ml.messages)
	}

	result := make([]ColoredMessage, n)
	for i := 0; i < n; i++ {
		result[i] = ml.messages[len(ml.messages)-1-i]
	}
	return result
}

// Len returns the number of stored messages
func (ml *MessageLog) Len() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.messages)
}

// Clear clears all messages
func (ml *MessageLog) Clear() {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	ml.messages = nil
}

// Attach subscribes the log to the run's events
func (ml *MessageLog) Attach(bus *events.Bus) {
	bus.Subscribe(events.EventTransition, func(e events.Event) {
		t := e.(events.TransitionEvent).Transition
		ml.AddTyped(fmt.Sprintf("%s -> %s (%s)", orHub(t.From), t.To, t.Direction), MessageTypeTransition)
	})
	bus.Subscribe(events.EventBossDefeated, func(e events.Event) {
		ev := e.(events.BossDefeatedEvent)
		msg := fmt.Sprintf("%s has fallen. Ahead: %s", ev.BossID, strings.Join(ev.Remaining, ", "))
		if len(ev.Remaining) == 0 {
			msg = fmt.Sprintf("%s has fallen. Nothing remains.", ev.BossID)
		}
		ml.AddTyped(msg, MessageTypeBoss)
	})
	bus.Subscribe(events.EventChoicesOffered, func(e events.Event) {
		ev := e.(events.ChoicesOfferedEvent)
		if ev.Left == "" {
			ml.AddTyped("No boss remains to be challenged.", MessageTypeAlert)
			return
		}
		if ev.Left == ev.Right {
			ml.AddTyped(fmt.Sprintf("Both roads lead to %s.", ev.Left), MessageTypeAlert)
			return
		}
		ml.AddTyped(fmt.Sprintf("Left: %s, right: %s.", ev.Left, ev.Right), MessageTypeNormal)
	})
	bus.Subscribe(events.EventRouteUnresolved, func(e events.Event) {
		ml.AddTyped(fmt.Sprintf("Route unresolved: %v", e.(events.RouteUnresolvedEvent).Err), MessageTypeSystem)
	})
	bus.Subscribe(events.EventMapGenerated, func(e events.Event) {
		ev := e.(events.MapGeneratedEvent)
		ml.AddTyped(fmt.Sprintf("Seed %q: %d layers, %d nodes, %d violations",
			ev.Seed, ev.Layers, ev.Nodes, len(ev.Violations)), MessageTypeSystem)
	})
}

func orHub(location string) string {
	if location == "" {
		return "(start)"
	}
	return location
}
