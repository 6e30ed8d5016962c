package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind is the type of an input event.
type Kind int

const (
	SelectStart Kind = iota
	SelectEnd
	Connected
	Disconnected
	Aim
	Start
)

var kindNames = [...]string{"select-start", "select-end", "connected", "disconnected", "aim", "start"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Head addresses the viewer's head rather than a hand in Aim events.
const Head = -1

// Event is a discrete input signal for the game tick.
type Event struct {
	Kind        Kind
	Controller  int
	Mode        string     // target ray mode, for Connected
	Orientation mgl64.Quat // for Aim
}

// Queue collects events from any goroutine until the tick drains them.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// Push appends e.
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// Drain appends every queued event to dst in arrival order, empties the
// queue and returns the extended slice.
func (q *Queue) Drain(dst []Event) []Event {
	q.mu.Lock()
	dst = append(dst, q.events...)
	q.events = q.events[:0]
	q.mu.Unlock()
	return dst
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
