package pubsub

import (
	"sync"

	"github.com/Astemirdum/lending-service/pkg/kafka"
)

// Broker is an in-process fan-out of transition events to per-request subscribers.
// Delivery is advisory: a slow subscriber loses events rather than blocking the
// publisher, and consumers are expected to reconcile against the query API.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[int]chan kafka.TransitionEvent
	next int
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[int]chan kafka.TransitionEvent),
	}
}

const subscriberBuffer = 16

// Subscribe registers a handler channel for one request uid and returns a cancel func.
// Cancel is idempotent and closes the returned channel.
func (b *Broker) Subscribe(requestUid string) (<-chan kafka.TransitionEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan kafka.TransitionEvent, subscriberBuffer)
	if b.subs[requestUid] == nil {
		b.subs[requestUid] = make(map[int]chan kafka.TransitionEvent)
	}
	b.subs[requestUid][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if set, ok := b.subs[requestUid]; ok {
				delete(set, id)
				if len(set) == 0 {
					delete(b.subs, requestUid)
				}
			}
			close(ch)
		})
	}
	return ch, cancel
}

func (b *Broker) Publish(event kafka.TransitionEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[event.RequestUid] {
		select {
		case ch <- event:
		default: // drop for slow consumers
		}
	}
}
