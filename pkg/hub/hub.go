package hub

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"vigilanceos.dev/telemetry-service/pkg/common"
)

const (
	// DefaultQueueSize bounds each subscriber's unsent event queue.
	DefaultQueueSize = 64

	// publishBuffer decouples Publish from the fan-out loop so ingestion
	// never waits on subscriber delivery.
	publishBuffer = 512
)

// Subscription is one live viewer connection. Events carries serialized
// events in publish order; it is closed when the subscription ends.
type Subscription struct {
	events  chan []byte
	dropped uint64 // oldest events discarded, touched only by the hub loop
}

func (s *Subscription) Events() <-chan []byte {
	return s.events
}

// Hub fans published events out to every live subscription. Each
// subscription has its own bounded queue and failure domain: a slow or dead
// subscriber loses its own oldest events, never anyone else's, and never
// applies backpressure to the publisher.
type Hub struct {
	register    chan *Subscription
	unregister  chan *Subscription
	broadcast   chan []byte
	subscribers map[*Subscription]bool

	queueSize int
	dropLog   rate.Sometimes
	logger    *zap.Logger

	stop    chan struct{}
	stopped chan struct{}
}

func New(queueSize int) *Hub {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Hub{
		register:    make(chan *Subscription),
		unregister:  make(chan *Subscription),
		broadcast:   make(chan []byte, publishBuffer),
		subscribers: make(map[*Subscription]bool),
		queueSize:   queueSize,
		dropLog:     rate.Sometimes{Interval: 10 * time.Second},
		logger: common.GetLoggerWith(
			common.LoggerNameBroadcastHub,
			zap.String(common.LoggerFieldCategory, common.LoggerCategorySubscriber),
		),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Run owns the subscriber set. Call it in its own goroutine; it returns
// after Close, with every subscription closed.
func (h *Hub) Run() {
	defer close(h.stopped)
	for {
		select {
		case sub := <-h.register:
			h.subscribers[sub] = true
			h.logger.Info("Subscriber registered", zap.Int("subscribers", len(h.subscribers)))

		case sub := <-h.unregister:
			h.remove(sub)

		case message := <-h.broadcast:
			for sub := range h.subscribers {
				h.deliver(sub, message)
			}

		case <-h.stop:
			for sub := range h.subscribers {
				delete(h.subscribers, sub)
				close(sub.events)
			}
			return
		}
	}
}

// deliver enqueues without blocking. A full queue loses its oldest entry;
// a subscriber that still cannot accept is disconnected.
func (h *Hub) deliver(sub *Subscription, message []byte) {
	select {
	case sub.events <- message:
		return
	default:
	}

	select {
	case <-sub.events:
		sub.dropped++
	default:
	}

	select {
	case sub.events <- message:
		h.dropLog.Do(func() {
			h.logger.Warn("Subscriber queue overflow, dropping oldest events",
				zap.Uint64("dropped", sub.dropped))
		})
	default:
		h.logger.Warn("Subscriber stalled, disconnecting",
			zap.Uint64("dropped", sub.dropped))
		h.remove(sub)
	}
}

func (h *Hub) remove(sub *Subscription) {
	if _, ok := h.subscribers[sub]; ok {
		delete(h.subscribers, sub)
		close(sub.events)
		h.logger.Info("Subscriber unregistered", zap.Int("subscribers", len(h.subscribers)))
	}
}

// Subscribe registers a new subscription with its own event queue.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{events: make(chan []byte, h.queueSize)}
	select {
	case h.register <- sub:
	case <-h.stopped:
		close(sub.events)
	}
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscription) {
	select {
	case h.unregister <- sub:
	case <-h.stopped:
	}
}

// Publish serializes the event once and hands it to the fan-out loop.
// It never blocks; if the hub itself is saturated the event is dropped.
func (h *Hub) Publish(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal event", zap.String("type", event.Type), zap.Error(err))
		return
	}

	select {
	case h.broadcast <- payload:
	case <-h.stopped:
	default:
		h.dropLog.Do(func() {
			h.logger.Warn("Broadcast buffer full, dropping event", zap.String("type", event.Type))
		})
	}
}

// Close shuts the hub down and closes every subscription. Safe to call once.
func (h *Hub) Close() {
	close(h.stop)
	<-h.stopped
}
