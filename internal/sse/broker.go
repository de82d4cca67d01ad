// Package sse streams cache invalidation notices to connected clients as
// Server-Sent Events.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/starford/daybook/internal/identity"
)

// Event is one message on the stream. An empty Principal broadcasts to
// every client; otherwise only that principal's clients receive it.
type Event struct {
	Principal string `json:"-"`
	Type      string `json:"type"`
	Data      any    `json:"data"`
}

// Invalidation tells clients which reads went stale.
type Invalidation struct {
	Kind  string   `json:"kind"`
	Dates []string `json:"dates,omitempty"`
}

type invalidationReq struct {
	principal string
	inv       Invalidation
}

type subscription struct {
	ch        chan []byte
	principal string
}

// Broker fans events out to subscribers.
//
// A single internal loop owns the client set and the per-principal
// dashboard throttle; public methods talk to it over channels.
type Broker struct {
	dashboardMin time.Duration
	keepAlive    time.Duration

	subscribeCh    chan subscription
	unsubscribeCh  chan chan []byte
	publishCh      chan Event
	invalidationCh chan invalidationReq
	countReqCh     chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewBroker creates a broker that emits at most one dashboard.updated per
// principal every throttle.
func NewBroker(throttle time.Duration) *Broker {
	if throttle <= 0 {
		throttle = 2 * time.Second
	}

	b := &Broker{
		dashboardMin:   throttle,
		keepAlive:      25 * time.Second,
		subscribeCh:    make(chan subscription),
		unsubscribeCh:  make(chan chan []byte),
		publishCh:      make(chan Event, 256),
		invalidationCh: make(chan invalidationReq, 256),
		countReqCh:     make(chan chan int),
		stopCh:         make(chan struct{}),
		stopped:        make(chan struct{}),
	}

	go b.run()
	return b
}

func (b *Broker) run() {
	defer close(b.stopped)

	clients := make(map[chan []byte]string)
	lastDashboard := make(map[string]time.Time)

	broadcast := func(event Event) {
		payload, err := json.Marshal(event.Data)
		if err != nil {
			return
		}
		raw := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, payload))

		for ch, owner := range clients {
			if event.Principal != "" && owner != event.Principal {
				continue
			}
			select {
			case ch <- raw:
			default:
				// Slow client; drop rather than stall the loop.
			}
		}
	}

	for {
		select {
		case <-b.stopCh:
			for ch := range clients {
				close(ch)
			}
			return

		case sub := <-b.subscribeCh:
			clients[sub.ch] = sub.principal

		case ch := <-b.unsubscribeCh:
			if _, ok := clients[ch]; ok {
				delete(clients, ch)
				close(ch)
			}

		case event := <-b.publishCh:
			broadcast(event)

		case req := <-b.invalidationCh:
			broadcast(Event{Principal: req.principal, Type: "cache.invalidated", Data: req.inv})

			now := time.Now()
			if now.Sub(lastDashboard[req.principal]) >= b.dashboardMin {
				lastDashboard[req.principal] = now
				broadcast(Event{Principal: req.principal, Type: "dashboard.updated", Data: map[string]string{}})
			}

		case resp := <-b.countReqCh:
			resp <- len(clients)
		}
	}
}

// Close stops the loop and closes every client channel.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.stopped
}

// Subscribe registers a client for principal's events.
func (b *Broker) Subscribe(principal string) chan []byte {
	ch := make(chan []byte, 64)
	if b.closed.Load() {
		close(ch)
		return ch
	}

	select {
	case b.subscribeCh <- subscription{ch: ch, principal: principal}:
	case <-b.stopped:
		close(ch)
	}

	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	if b.closed.Load() {
		return
	}
	select {
	case b.unsubscribeCh <- ch:
	case <-b.stopped:
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	if b.closed.Load() {
		return 0
	}

	resp := make(chan int, 1)
	select {
	case b.countReqCh <- resp:
	case <-b.stopped:
		return 0
	}

	select {
	case n := <-resp:
		return n
	case <-b.stopped:
		return 0
	}
}

// Publish sends an event to its audience.
func (b *Broker) Publish(event Event) {
	if b.closed.Load() {
		return
	}
	select {
	case b.publishCh <- event:
	case <-b.stopped:
	}
}

// PublishInvalidation announces stale reads for principal, followed by a
// throttled dashboard.updated.
func (b *Broker) PublishInvalidation(principal, kind string, dates ...string) {
	if b.closed.Load() {
		return
	}
	select {
	case b.invalidationCh <- invalidationReq{principal: principal, inv: Invalidation{Kind: kind, Dates: dates}}:
	case <-b.stopped:
	}
}

// ServeHTTP is the SSE endpoint handler (GET /api/events). The stream is
// scoped to the principal on the request context.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := b.Subscribe(identity.FromContext(r.Context()).ID)
	defer b.Unsubscribe(ch)

	ping := time.NewTicker(b.keepAlive)
	defer ping.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			_, _ = w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
