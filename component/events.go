package component

// MovementEvent names a movement transition observers can subscribe to.
type MovementEvent int

const (
	OnFall MovementEvent = iota
	OnLand
	OnLateralCollision
	OnCeilingCollision
	movementEventCount
)

func (e MovementEvent) String() string {
	switch e {
	case OnFall:
		return "OnFall"
	case OnLand:
		return "OnLand"
	case OnLateralCollision:
		return "OnLateralCollision"
	case OnCeilingCollision:
		return "OnCeilingCollision"
	}
	return "MovementEvent(?)"
}

// MovementEventHandler is invoked synchronously by Dispatcher.Emit.
type MovementEventHandler func(ev MovementEvent)

// Subscription identifies a handler registered on a Dispatcher. The zero
// value is not a valid subscription.
type Subscription struct {
	event MovementEvent
	id    uint64
}

func (s Subscription) Valid() bool {
	return s.id != 0
}

type subscriber struct {
	id     uint64
	fn     MovementEventHandler
	active bool
}

// Dispatcher keeps an ordered observer list per movement event.
type Dispatcher struct {
	nextID   uint64
	handlers [movementEventCount][]*subscriber
	closed   bool
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe appends fn to the observer list of ev. Subscribing to a closed
// dispatcher returns an invalid subscription.
func (d *Dispatcher) Subscribe(ev MovementEvent, fn MovementEventHandler) Subscription {
	if d == nil || d.closed || fn == nil || ev < 0 || ev >= movementEventCount {
		return Subscription{}
	}
	d.nextID++
	d.handlers[ev] = append(d.handlers[ev], &subscriber{id: d.nextID, fn: fn, active: true})
	return Subscription{event: ev, id: d.nextID}
}

// Unsubscribe removes the handler. Unknown or already removed subscriptions
// are ignored. A handler removed while an Emit is running is not called for
// the rest of that Emit.
func (d *Dispatcher) Unsubscribe(sub Subscription) {
	if d == nil || !sub.Valid() || sub.event < 0 || sub.event >= movementEventCount {
		return
	}
	list := d.handlers[sub.event]
	for i, s := range list {
		if s.id != sub.id {
			continue
		}
		s.active = false
		d.handlers[sub.event] = append(list[:i:i], list[i+1:]...)
		return
	}
}

// Emit calls every handler of ev in subscription order.
func (d *Dispatcher) Emit(ev MovementEvent) {
	if d == nil || d.closed || ev < 0 || ev >= movementEventCount {
		return
	}
	list := d.handlers[ev]
	if len(list) == 0 {
		return
	}
	snapshot := make([]*subscriber, len(list))
	copy(snapshot, list)
	for _, s := range snapshot {
		if s.active {
			s.fn(ev)
		}
	}
}

// Count returns the number of live handlers for ev.
func (d *Dispatcher) Count(ev MovementEvent) int {
	if d == nil || ev < 0 || ev >= movementEventCount {
		return 0
	}
	return len(d.handlers[ev])
}

// Close drops every handler. Later Subscribe and Emit calls do nothing.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	for i := range d.handlers {
		for _, s := range d.handlers[i] {
			s.active = false
		}
		d.handlers[i] = nil
	}
	d.closed = true
}
