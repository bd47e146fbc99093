package handle

// Handle is an opaque reference to an object in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// None is the reserved "no handle" value.
const None Handle = 0

// Valid reports whether h may refer to an allocated object.
func (h Handle) Valid() bool {
	return h != None
}

// EventType identifies a table lifecycle notification.
type EventType uint8

const (
	EventAllocated EventType = iota
	EventReused
)

// Event represents a table lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Type   EventType
}

// Observer receives notifications about table lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnHandleEvent calls f(e).
func (f ObserverFunc) OnHandleEvent(e Event) {
	f(e)
}
