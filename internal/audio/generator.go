// Package audio plays short sound effects from fixed pools of pre-buffered voices.
package audio

import "errors"

// ErrNoVoices is returned by Preflight for a generator without handles.
var ErrNoVoices = errors.New("audio: generator has no voices")

// Handle is one pre-allocated playback voice. Play restarts it from the beginning.
type Handle interface {
	Play()
}

// checker is implemented by handles that can report a broken source.
type checker interface {
	Err() error
}

// SoundGenerator round-robins a fixed pool of handles so overlapping effects
// do not cut each other off. A handle that is still playing when its turn
// comes round is restarted; the pool size is the tuning knob.
type SoundGenerator struct {
	handles []Handle
	pos     int
}

// NewSoundGenerator creates a generator over handles. The slice is not copied.
func NewSoundGenerator(handles []Handle) *SoundGenerator {
	return &SoundGenerator{handles: handles}
}

// Play plays the handle at the cursor and advances the cursor, wrapping at the pool size.
func (g *SoundGenerator) Play() {
	if len(g.handles) == 0 {
		return
	}
	g.handles[g.pos].Play()
	g.pos++
	if g.pos >= len(g.handles) {
		g.pos = 0
	}
}

// Len returns the pool size.
func (g *SoundGenerator) Len() int {
	return len(g.handles)
}

// Cursor returns the index of the handle the next Play will use.
func (g *SoundGenerator) Cursor() int {
	return g.pos
}

// Preflight checks that the generator can play at all.
func (g *SoundGenerator) Preflight() error {
	if len(g.handles) == 0 {
		return ErrNoVoices
	}
	for _, h := range g.handles {
		if c, ok := h.(checker); ok {
			if err := c.Err(); err != nil {
				return err
			}
		}
	}
	return nil
}
