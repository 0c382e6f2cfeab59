package realtime

import (
	"sync"

	"mosaicBackend/types"

	"github.com/charmbracelet/log"
)

type (
	// ChangeEvent A row-level change notification. New is set for INSERT and UPDATE,
	// Old for UPDATE and DELETE.
	ChangeEvent[T any] struct {
		Type types.ChangeEventType `json:"type"`
		New  *T                    `json:"new,omitempty"`
		Old  *T                    `json:"old,omitempty"`
	}

	// Subscription A handle to an active feed subscription. Unsubscribe is idempotent.
	Subscription interface {
		Unsubscribe()
	}

	// Feed A push-based change feed delivering row events filtered by scope.
	// Subscribers also receive status transitions through their status callback.
	Feed[T any] interface {
		Publish(scope string, event ChangeEvent[T])
		Subscribe(scope string, onEvent func(ChangeEvent[T]), onStatus func(types.SubscriptionStatus)) Subscription
	}

	hub[T any] struct {
		subscribers      map[string][]*subscription[T]
		subscribersMutex *sync.Mutex
	}

	subscription[T any] struct {
		hub      *hub[T]
		scope    string
		onEvent  func(ChangeEvent[T])
		onStatus func(types.SubscriptionStatus)
		closed   bool
	}
)

// CreateHub Creates an in-process change feed. Services publish row changes into the
// hub, consumers (the display engine and the socket namespace mirror) subscribe to
// a single scope each.
func CreateHub[T any]() Feed[T] {
	return &hub[T]{
		subscribers:      make(map[string][]*subscription[T]),
		subscribersMutex: &sync.Mutex{},
	}
}

func (h *hub[T]) Publish(scope string, event ChangeEvent[T]) {
	h.subscribersMutex.Lock()
	receivers := make([]*subscription[T], len(h.subscribers[scope]))
	copy(receivers, h.subscribers[scope])
	h.subscribersMutex.Unlock()

	for _, receiver := range receivers {
		receiver.onEvent(event)
	}
}

func (h *hub[T]) Subscribe(
	scope string,
	onEvent func(ChangeEvent[T]),
	onStatus func(types.SubscriptionStatus),
) Subscription {
	sub := &subscription[T]{
		hub:      h,
		scope:    scope,
		onEvent:  onEvent,
		onStatus: onStatus,
	}

	h.subscribersMutex.Lock()
	h.subscribers[scope] = append(h.subscribers[scope], sub)
	h.subscribersMutex.Unlock()

	if onStatus != nil {
		onStatus(types.Connecting)
		onStatus(types.Subscribed)
	}

	log.Debug("Feed subscription opened", "scope", scope)
	return sub
}

func (s *subscription[T]) Unsubscribe() {
	s.hub.subscribersMutex.Lock()

	if s.closed {
		s.hub.subscribersMutex.Unlock()
		return
	}
	s.closed = true

	scoped := s.hub.subscribers[s.scope]
	for i, sub := range scoped {
		if sub == s {
			s.hub.subscribers[s.scope] = append(scoped[:i], scoped[i+1:]...)
			break
		}
	}
	s.hub.subscribersMutex.Unlock()

	if s.onStatus != nil {
		s.onStatus(types.Closed)
	}
}
