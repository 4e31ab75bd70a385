package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishDeliversInSubscriptionOrder(t *testing.T) {
	b := New()

	var order []string
	b.Subscribe("dashboard", func(c Change) {
		order = append(order, "dashboard")
	})
	b.Subscribe("eventList", func(c Change) {
		order = append(order, "eventList")
	})
	b.Subscribe("dashboard", func(c Change) {
		order = append(order, "dashboard2")
	})

	b.Publish(Change{Type: EventAdded})

	assert.Equal(t, []string{"dashboard", "eventList", "dashboard2"}, order)
}

func TestPublishDeliversPayload(t *testing.T) {
	b := New()

	var got Change
	b.Subscribe("listener", func(c Change) { got = c })

	b.Publish(Change{Type: ActivityUpdated, Payload: "ACT001"})

	assert.Equal(t, ActivityUpdated, got.Type)
	assert.Equal(t, "ACT001", got.Payload)
}

func TestUnsubscribeRemovesAllListenersForKey(t *testing.T) {
	b := New()

	calls := 0
	b.Subscribe("detail", func(c Change) { calls++ })
	b.Subscribe("detail", func(c Change) { calls++ })
	b.Subscribe("other", func(c Change) { calls++ })

	b.Unsubscribe("detail")
	b.Publish(Change{Type: DataLoaded})

	assert.Equal(t, 1, calls)
}

func TestPanickingListenerDoesNotStopDispatch(t *testing.T) {
	b := New()

	delivered := false
	b.Subscribe("broken", func(c Change) { panic("listener bug") })
	b.Subscribe("healthy", func(c Change) { delivered = true })

	assert.NotPanics(t, func() {
		b.Publish(Change{Type: EventDeleted})
	})
	assert.True(t, delivered)
}

func TestPublishWithNoListeners(t *testing.T) {
	b := New()
	assert.NotPanics(t, func() {
		b.Publish(Change{Type: UserLoggedOut})
	})
}
