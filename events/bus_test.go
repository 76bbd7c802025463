package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusSubscribeEmitUnsubscribe(t *testing.T) {
	bus := NewBus()
	var got []string

	first := bus.Subscribe(EventBossDefeated, func(e Event) {
		got = append(got, "first:"+e.(BossDefeatedEvent).BossID)
	})
	bus.Subscribe(EventBossDefeated, func(e Event) {
		got = append(got, "second:"+e.(BossDefeatedEvent).BossID)
	})
	bus.Subscribe(EventChoicesOffered, func(Event) {
		got = append(got, "offer")
	})

	bus.Emit(BossDefeatedEvent{BossID: "Envy"})
	assert.Equal(t, []string{"first:Envy", "second:Envy"}, got)

	bus.Unsubscribe(first)
	bus.Unsubscribe(first)
	got = nil
	bus.Emit(BossDefeatedEvent{BossID: "Wrath"})
	assert.Equal(t, []string{"second:Wrath"}, got)
}

func TestBusHandlerMaySubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	bus.Subscribe(EventMapGenerated, func(Event) {
		calls++
		bus.Subscribe(EventMapGenerated, func(Event) { calls++ })
	})

	bus.Emit(MapGeneratedEvent{Seed: "ABC"})
	assert.Equal(t, 1, calls, "handlers added during dispatch wait for the next emit")
}

func TestNilBusDropsEvents(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() { bus.Emit(TransitionEvent{}) })
}
