package hub

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vigilanceos.dev/telemetry-service/pkg/common"
	_ "vigilanceos.dev/telemetry-service/pkg/testing"
)

func receiveEvent(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case payload, ok := <-sub.Events():
		require.True(t, ok, "subscription closed unexpectedly")
		var event Event
		require.NoError(t, json.Unmarshal(payload, &event))
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestPublishDelivers(t *testing.T) {
	common.SetTestLoggerNop()

	h := New(4)
	go h.Run()
	defer h.Close()

	sub := h.Subscribe()
	h.Publish(Event{Type: EventReadingIngested, Data: map[string]any{"device_id": "dev-1"}})

	event := receiveEvent(t, sub)
	assert.Equal(t, EventReadingIngested, event.Type)
	data := event.Data.(map[string]any)
	assert.Equal(t, "dev-1", data["device_id"])
}

func TestUnsubscribeClosesQueue(t *testing.T) {
	common.SetTestLoggerNop()

	h := New(4)
	go h.Run()
	defer h.Close()

	sub := h.Subscribe()
	h.Unsubscribe(sub)

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for queue close")
	}
}

func TestSlowSubscriberIsolation(t *testing.T) {
	common.SetTestLoggerNop()

	h := New(16)
	go h.Run()
	defer h.Close()

	stuck := h.Subscribe() // never reads its queue
	active := h.Subscribe()

	const total = 10
	for i := 0; i < total; i++ {
		h.Publish(Event{Type: EventReadingIngested, Data: map[string]any{"seq": i}})
	}

	// the active subscriber sees every event in publish order; the stuck
	// one never delays or blocks delivery
	for i := 0; i < total; i++ {
		event := receiveEvent(t, active)
		assert.EqualValues(t, i, event.Data.(map[string]any)["seq"])
	}

	_ = stuck
}

func TestOverflowDropsOldest(t *testing.T) {
	common.SetTestLoggerNop()

	h := New(2)
	go h.Run()
	defer h.Close()

	sub := h.Subscribe()
	for i := 0; i < 5; i++ {
		h.Publish(Event{Type: EventReadingIngested, Data: map[string]any{"seq": i}})
	}

	// allow the fan-out loop to process everything before draining
	time.Sleep(200 * time.Millisecond)

	first := receiveEvent(t, sub)
	second := receiveEvent(t, sub)
	assert.EqualValues(t, 3, first.Data.(map[string]any)["seq"])
	assert.EqualValues(t, 4, second.Data.(map[string]any)["seq"])
}

func TestCloseClosesAllSubscriptions(t *testing.T) {
	common.SetTestLoggerNop()

	h := New(4)
	go h.Run()

	subs := make([]*Subscription, 3)
	for i := range subs {
		subs[i] = h.Subscribe()
	}

	h.Close()

	for _, sub := range subs {
		select {
		case _, ok := <-sub.Events():
			assert.False(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for close")
		}
	}
}

func TestPublishAfterCloseIsNoop(t *testing.T) {
	common.SetTestLoggerNop()

	h := New(4)
	go h.Run()
	h.Close()

	// must not panic or block
	h.Publish(Event{Type: EventAnomalyResolved, Data: map[string]any{"anomaly_id": 1}})
}

func TestEventPayloadShapes(t *testing.T) {
	for _, tc := range []struct {
		event Event
		want  string
	}{
		{Event{Type: EventReadingIngested}, EventReadingIngested},
		{Event{Type: EventAnomalyDetected}, EventAnomalyDetected},
		{Event{Type: EventAnomalyResolved}, EventAnomalyResolved},
	} {
		payload, err := json.Marshal(tc.event)
		require.NoError(t, err)
		assert.Contains(t, string(payload), fmt.Sprintf("%q", tc.want))
	}
}
