package component

import (
	"reflect"
	"testing"
)

func TestDispatcherOrderAndUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	var got []string

	d.Subscribe(OnLand, func(MovementEvent) { got = append(got, "a") })
	b := d.Subscribe(OnLand, func(MovementEvent) { got = append(got, "b") })
	d.Subscribe(OnLand, func(MovementEvent) { got = append(got, "c") })
	d.Subscribe(OnFall, func(MovementEvent) { got = append(got, "fall") })

	d.Emit(OnLand)
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	got = nil
	d.Unsubscribe(b)
	d.Unsubscribe(b)
	d.Emit(OnLand)
	if want := []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if d.Count(OnLand) != 2 {
		t.Fatalf("expected 2 handlers, got %d", d.Count(OnLand))
	}
}

func TestDispatcherUnsubscribeDuringEmit(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	var second Subscription
	d.Subscribe(OnCeilingCollision, func(MovementEvent) {
		calls++
		d.Unsubscribe(second)
	})
	second = d.Subscribe(OnCeilingCollision, func(MovementEvent) { calls += 10 })

	d.Emit(OnCeilingCollision)
	if calls != 1 {
		t.Fatalf("handler removed mid-emit should not run, calls=%d", calls)
	}
}

func TestDispatcherSubscribeDuringEmit(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	d.Subscribe(OnLateralCollision, func(MovementEvent) {
		calls++
		d.Subscribe(OnLateralCollision, func(MovementEvent) { calls += 10 })
	})

	d.Emit(OnLateralCollision)
	if calls != 1 {
		t.Fatalf("handler added mid-emit should wait for the next emit, calls=%d", calls)
	}
	d.Emit(OnLateralCollision)
	if calls != 12 {
		t.Fatalf("calls=%d", calls)
	}
}

func TestDispatcherClose(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	d.Subscribe(OnFall, func(MovementEvent) { calls++ })
	d.Close()
	d.Emit(OnFall)
	if calls != 0 || d.Count(OnFall) != 0 {
		t.Fatalf("closed dispatcher still dispatching")
	}
	if sub := d.Subscribe(OnFall, func(MovementEvent) {}); sub.Valid() {
		t.Fatalf("subscribe on closed dispatcher should be invalid")
	}
}

func TestDispatcherRejectsBadInput(t *testing.T) {
	var nilDispatcher *Dispatcher
	nilDispatcher.Emit(OnFall)
	if nilDispatcher.Subscribe(OnFall, func(MovementEvent) {}).Valid() {
		t.Fatalf("nil dispatcher returned a valid subscription")
	}

	d := NewDispatcher()
	if d.Subscribe(OnFall, nil).Valid() {
		t.Fatalf("nil handler accepted")
	}
	if d.Subscribe(MovementEvent(99), func(MovementEvent) {}).Valid() {
		t.Fatalf("unknown event accepted")
	}
	d.Unsubscribe(Subscription{})
}

func TestMovementEventString(t *testing.T) {
	for ev, want := range map[MovementEvent]string{
		OnFall:             "OnFall",
		OnLand:             "OnLand",
		OnLateralCollision: "OnLateralCollision",
		OnCeilingCollision: "OnCeilingCollision",
	} {
		if got := ev.String(); got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}
