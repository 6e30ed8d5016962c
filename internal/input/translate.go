package input

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Look speeds for keyboard aiming.
const (
	YawSpeed   = 1.8 // radians per second
	PitchSpeed = 1.2
	MaxPitch   = 1.2
)

// Hands emulated by the keyboard.
const (
	Primary   = 0
	Secondary = 1
)

// Translator turns held-key snapshots from a terminal into controller events.
// Terminals only report presses, so a trigger counts as held for as long as
// its key keeps repeating.
type Translator struct {
	yaw, pitch float64
	selecting  [2]bool
	connected  [2]bool
	gaze       bool
	lastGaze   bool
	lastNumber int
}

// NewTranslator returns a translator with both hands connected in
// tracked-pointer mode. Call Connect to emit the initial events.
func NewTranslator() *Translator {
	return &Translator{lastNumber: -1}
}

// Connect pushes Connected events for both hands.
func (t *Translator) Connect(q *Queue) {
	for hand := range t.connected {
		t.connected[hand] = true
		q.Push(Event{Kind: Connected, Controller: hand, Mode: t.mode()})
	}
}

func (t *Translator) mode() string {
	if t.gaze {
		return "gaze"
	}
	return "tracked-pointer"
}

// Translate compares in with the previous frame and pushes the resulting
// events into q. dt scales keyboard aiming.
func (t *Translator) Translate(in Input, dt time.Duration, q *Queue) {
	if in.Enter {
		q.Push(Event{Kind: Start})
	}

	// number keys toggle a hand's connection
	if in.Number != t.lastNumber && (in.Number == 1 || in.Number == 2) {
		hand := in.Number - 1
		t.connected[hand] = !t.connected[hand]
		if t.connected[hand] {
			q.Push(Event{Kind: Connected, Controller: hand, Mode: t.mode()})
		} else {
			t.selecting[hand] = false
			q.Push(Event{Kind: Disconnected, Controller: hand})
		}
	}
	t.lastNumber = in.Number

	if in.Gaze && !t.lastGaze {
		t.gaze = !t.gaze
		for hand, ok := range t.connected {
			if ok {
				q.Push(Event{Kind: Connected, Controller: hand, Mode: t.mode()})
			}
		}
	}

	t.lastGaze = in.Gaze

	t.trigger(Primary, in.Fire, q)
	t.trigger(Secondary, in.AltFire, q)

	s := dt.Seconds()
	yaw, pitch := t.yaw, t.pitch
	if in.Left {
		yaw += YawSpeed * s
	}
	if in.Right {
		yaw -= YawSpeed * s
	}
	if in.Up {
		pitch += PitchSpeed * s
	}
	if in.Down {
		pitch -= PitchSpeed * s
	}
	pitch = mgl64.Clamp(pitch, -MaxPitch, MaxPitch)
	yaw = math.Remainder(yaw, 2*math.Pi)
	if yaw != t.yaw || pitch != t.pitch {
		t.yaw, t.pitch = yaw, pitch
		q.Push(Event{Kind: Aim, Controller: Head, Orientation: LookRotation(yaw, pitch)})
	}
}

func (t *Translator) trigger(hand int, held bool, q *Queue) {
	if !t.connected[hand] || held == t.selecting[hand] {
		return
	}
	t.selecting[hand] = held
	kind := SelectEnd
	if held {
		kind = SelectStart
	}
	q.Push(Event{Kind: kind, Controller: hand})
}

// LookRotation is yaw about +Y followed by pitch about the rotated +X.
func LookRotation(yaw, pitch float64) mgl64.Quat {
	return mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0}).Mul(mgl64.QuatRotate(pitch, mgl64.Vec3{1, 0, 0}))
}
