package event

import "testing"

func TestNotifierPublishSubscribe(t *testing.T) {
	n := NewNotifier()

	var got []Envelope
	n.Subscribe(TopicRedraw, func(env Envelope) {
		got = append(got, env)
	})

	n.Publish(TopicRedraw, nil)
	n.Publish(TopicToolChanged, "ignored") // different topic

	if len(got) != 1 {
		t.Fatalf("delivered %d notifications, want 1", len(got))
	}
	if got[0].Topic != TopicRedraw {
		t.Errorf("Topic = %q, want %q", got[0].Topic, TopicRedraw)
	}
	if got[0].Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestNotifierTopicAll(t *testing.T) {
	n := NewNotifier()

	count := 0
	n.Subscribe(TopicAll, func(Envelope) { count++ })

	n.Publish(TopicRedraw, nil)
	n.Publish(TopicObjectAdded, nil)
	n.Publish(TopicActionCommitted, "move")

	if count != 3 {
		t.Errorf("wildcard handler ran %d times, want 3", count)
	}
}

func TestNotifierUnsubscribe(t *testing.T) {
	n := NewNotifier()

	count := 0
	sub := n.Subscribe(TopicRedraw, func(Envelope) { count++ })

	n.Publish(TopicRedraw, nil)
	n.Unsubscribe(sub)
	n.Publish(TopicRedraw, nil)

	if count != 1 {
		t.Errorf("handler ran %d times, want 1", count)
	}

	// Unsubscribing twice is harmless.
	n.Unsubscribe(sub)
}

func TestNotifierDeliveryOrder(t *testing.T) {
	n := NewNotifier()

	var order []int
	n.Subscribe(TopicRedraw, func(Envelope) { order = append(order, 1) })
	n.Subscribe(TopicRedraw, func(Envelope) { order = append(order, 2) })
	n.Subscribe(TopicRedraw, func(Envelope) { order = append(order, 3) })

	n.Publish(TopicRedraw, nil)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("delivery order = %v, want [1 2 3]", order)
	}
}

func TestNotifierPanicRecovery(t *testing.T) {
	n := NewNotifier()

	ran := false
	n.Subscribe(TopicRedraw, func(Envelope) { panic("boom") })
	n.Subscribe(TopicRedraw, func(Envelope) { ran = true })

	n.Publish(TopicRedraw, nil) // must not propagate the panic

	if !ran {
		t.Error("handler after a panicking handler should still run")
	}
}

func TestNotifierClear(t *testing.T) {
	n := NewNotifier()
	n.Subscribe(TopicRedraw, func(Envelope) {})

	if n.SubscriberCount(TopicRedraw) != 1 {
		t.Fatal("expected one subscriber")
	}

	n.Clear()

	if n.SubscriberCount(TopicRedraw) != 0 {
		t.Error("Clear should drop all subscriptions")
	}
}

func TestNotifierPayload(t *testing.T) {
	n := NewNotifier()

	var payload any
	n.Subscribe(TopicActionCommitted, func(env Envelope) { payload = env.Payload })

	n.Publish(TopicActionCommitted, "resize objects")

	if payload != "resize objects" {
		t.Errorf("Payload = %v, want %q", payload, "resize objects")
	}
}
