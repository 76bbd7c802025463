package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sinpath/components"
	"sinpath/events"
)

func TestMessageLogTruncates(t *testing.T) {
	ml := NewMessageLog(3)
	for _, msg := range []string{"one", "two", "three", "four"} {
		ml.Add(msg)
	}
	assert.Equal(t, 3, ml.Len())

	recent := ml.RecentMessages(10)
	require.Len(t, recent, 3)
	assert.Equal(t, "four", recent[0].Text)
	assert.Equal(t, "two", recent[2].Text)

	ml.Clear()
	assert.Zero(t, ml.Len())
	assert.Empty(t, ml.RecentMessages(2))
}

func TestMessageLogAttach(t *testing.T) {
	bus := events.NewBus()
	ml := NewMessageLog(0)
	ml.Attach(bus)

	bus.Emit(events.TransitionEvent{Transition: components.NewTransition("", "Hub", components.DirectionNone, nil)})
	bus.Emit(events.ChoicesOfferedEvent{Left: "Envy", Right: "Envy", Kind: string(ChoiceConverged)})
	bus.Emit(events.BossDefeatedEvent{BossID: "Lucifer"})

	recent := ml.RecentMessages(3)
	require.Len(t, recent, 3)
	assert.Equal(t, "Lucifer has fallen. Nothing remains.", recent[0].Text)
	assert.Equal(t, MessageTypeBoss, recent[0].Type)
	assert.Equal(t, "Both roads lead to Envy.", recent[1].Text)
	assert.Contains(t, recent[2].Text, "Hub")
	assert.Equal(t, MessageTypeTransition, recent[2].Type)
}
