package progress

import "slices"

// EventKind identifies a tracker transition.
type EventKind int

const (
	// EventStarted is sent once by Start.
	EventStarted EventKind = iota
	// EventUpdated is sent by every Update while running.
	EventUpdated
	// EventFinished is sent once by Finish.
	EventFinished
	// EventCancelled is sent once by Cancel.
	EventCancelled
)

// String returns the lower-case event name.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventUpdated:
		return "updated"
	case EventFinished:
		return "finished"
	case EventCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Event is delivered to observers after the tracker lock is released.
type Event struct {
	Kind   EventKind
	Status Status
	// Success is set for EventFinished.
	Success bool
	// Seq orders events of one tracker; it increases with every transition.
	Seq uint64
}

// Observer receives tracker events.
//
// Events are delivered on the goroutine that caused them. An EventUpdated
// that loses a race with a later event is dropped, so an observer never sees
// an update after EventFinished or EventCancelled. Deliveries are serialized:
// OnProgress may call Status, Subscribe or the unsubscribe function, but must
// not call Start, Update, Finish or Cancel on the same tracker.
type Observer interface {
	OnProgress(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnProgress calls f(e).
func (f ObserverFunc) OnProgress(e Event) { f(e) }

// Subscribe registers o and returns a function that removes it.
// The returned function may be called more than once.
func (t *Tracker) Subscribe(o Observer) (unsubscribe func()) {
	t.obsMu.Lock()
	t.nextObsID++
	id := t.nextObsID
	t.observers[id] = o
	t.obsMu.Unlock()

	return func() {
		t.obsMu.Lock()
		delete(t.observers, id)
		t.obsMu.Unlock()
	}
}

func (t *Tracker) dispatch(e Event) {
	// emitMu serializes delivery so the staleness check and the calls
	// happen as one step.
	t.emitMu.Lock()
	defer t.emitMu.Unlock()

	if e.Kind == EventUpdated && e.Seq < t.delivered {
		logger().Debug("stale update dropped", "seq", e.Seq, "delivered", t.delivered)
		return
	}
	t.delivered = max(t.delivered, e.Seq)

	t.obsMu.Lock()
	if len(t.observers) == 0 {
		t.obsMu.Unlock()
		return
	}
	ids := make([]uint64, 0, len(t.observers))
	for id := range t.observers {
		ids = append(ids, id)
	}
	t.obsMu.Unlock()
	slices.Sort(ids)

	for _, id := range ids {
		t.obsMu.Lock()
		o, ok := t.observers[id]
		t.obsMu.Unlock()
		// Removed since the snapshot was taken.
		if !ok {
			continue
		}
		o.OnProgress(e)
	}
}
