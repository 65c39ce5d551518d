package wavefront

// Message is the payload of Error and Comment notifications. Line is 1-based;
// line 0 is used for errors that happen before any line is read.
type Message struct {
	Line int
	Text string
}

// Signal delivers values of type T to connected slots. Slots are invoked
// synchronously, in the order they were connected, on the goroutine that
// emits the value.
type Signal[T any] struct {
	slots []func(T)
}

// Connect a slot to the signal.
func (s *Signal[T]) Connect(slot func(T)) {
	s.slots = append(s.slots, slot)
}

// Returns the number of connected slots.
func (s *Signal[T]) Len() int {
	return len(s.slots)
}

func (s *Signal[T]) emit(v T) {
	for _, slot := range s.slots {
		slot(v)
	}
}

// Trigger is a Signal without a payload.
type Trigger struct {
	slots []func()
}

// Connect a slot to the trigger.
func (t *Trigger) Connect(slot func()) {
	t.slots = append(t.slots, slot)
}

// Returns the number of connected slots.
func (t *Trigger) Len() int {
	return len(t.slots)
}

func (t *Trigger) emit() {
	for _, slot := range t.slots {
		slot()
	}
}
