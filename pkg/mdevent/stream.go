package mdevent

// Stream is a finite, pull-based sequence of events. Next returns false once
// the stream is exhausted; a consumed stream cannot be restarted.
type Stream interface {
	Next() (Event, bool)
}

// Slice is a Stream over events that are already in memory.
type Slice struct {
	events []Event
	pos    int
}

// Events returns a Stream yielding events in order.
func Events(events ...Event) *Slice {
	return &Slice{events: events}
}

// Next returns the next event of the slice.
func (s *Slice) Next() (Event, bool) {
	if s.pos >= len(s.events) {
		return Event{}, false
	}

	ev := s.events[s.pos]
	s.pos++

	return ev, true
}

// Remaining reports how many events have not been pulled yet.
func (s *Slice) Remaining() int {
	return len(s.events) - s.pos
}

// Collect drains stream and returns every event it produced.
func Collect(stream Stream) []Event {
	var events []Event

	for {
		ev, ok := stream.Next()
		if !ok {
			return events
		}

		events = append(events, ev)
	}
}
