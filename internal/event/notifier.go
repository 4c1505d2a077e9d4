// Package event carries the input controller's one-way notifications.
//
// The pipeline is single-threaded and event-driven, so delivery is
// synchronous: Publish runs every matching handler before returning and
// there is no queueing. Handlers must not re-enter the publisher.
package event

import (
	"sync"
	"time"

	"github.com/easelkit/easel/internal/logging"
)

// Topic identifies a notification stream.
type Topic string

// Topics emitted by the tool manager.
const (
	TopicToolRegistered   Topic = "tool.registered"
	TopicToolUnregistered Topic = "tool.unregistered"
	TopicToolChanged      Topic = "tool.changed"
	TopicRedraw           Topic = "canvas.redraw"
	TopicObjectAdded      Topic = "object.added"
	TopicObjectRemoved    Topic = "object.removed"
	TopicActionBegun      Topic = "action.begun"
	TopicActionCommitted  Topic = "action.committed"
	TopicActionEnded      Topic = "action.ended"
	TopicContextMenu      Topic = "input.contextmenu"
)

// TopicAll subscribes a handler to every topic.
const TopicAll Topic = "*"

// Envelope wraps a notification for delivery.
type Envelope struct {
	// Topic is the notification stream.
	Topic Topic

	// Payload is the topic-specific data; may be nil.
	Payload any

	// Timestamp is when the notification was published.
	Timestamp time.Time
}

// HandlerFunc receives published notifications.
type HandlerFunc func(Envelope)

// Subscription identifies a registered handler so it can be removed.
type Subscription struct {
	id    uint64
	topic Topic
}

type subscriber struct {
	id uint64
	fn HandlerFunc
}

// Notifier delivers notifications synchronously to subscribers.
// The zero value is not usable; call NewNotifier.
type Notifier struct {
	mu     sync.RWMutex
	subs   map[Topic][]subscriber
	nextID uint64
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		subs: make(map[Topic][]subscriber),
	}
}

// Subscribe registers fn for the given topic. Use TopicAll to receive
// every notification. Returns a subscription token for Unsubscribe.
func (n *Notifier) Subscribe(topic Topic, fn HandlerFunc) Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	n.subs[topic] = append(n.subs[topic], subscriber{id: n.nextID, fn: fn})
	return Subscription{id: n.nextID, topic: topic}
}

// Unsubscribe removes a previously registered handler.
// Unknown subscriptions are ignored.
func (n *Notifier) Unsubscribe(sub Subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()

	list := n.subs[sub.topic]
	for i, s := range list {
		if s.id == sub.id {
			n.subs[sub.topic] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Publish delivers a notification to every subscriber of the topic and
// of TopicAll, in registration order. A panicking handler is recovered
// and logged; remaining handlers still run. Fire-and-forget: there is
// no error return.
func (n *Notifier) Publish(topic Topic, payload any) {
	env := Envelope{
		Topic:     topic,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	n.mu.RLock()
	handlers := make([]subscriber, 0, len(n.subs[topic])+len(n.subs[TopicAll]))
	handlers = append(handlers, n.subs[topic]...)
	handlers = append(handlers, n.subs[TopicAll]...)
	n.mu.RUnlock()

	for _, s := range handlers {
		deliver(s.fn, env)
	}
}

// Clear drops all subscriptions.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = make(map[Topic][]subscriber)
}

// SubscriberCount returns the number of handlers registered for a topic.
func (n *Notifier) SubscriberCount(topic Topic) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs[topic])
}

func deliver(fn HandlerFunc, env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			logging.Logger().Error("notification handler panicked",
				"topic", string(env.Topic), "panic", r)
		}
	}()
	fn(env)
}
