package audio

import (
	"sync/atomic"

	"github.com/gopxl/beep"
)

// Silent is a Backend that only counts plays. SSH sessions and headless
// machines use it.
type Silent struct {
	plays atomic.Int64
}

var _ Backend = (*Silent)(nil)

// SampleRate implements Backend.
func (s *Silent) SampleRate() beep.SampleRate {
	return DefaultSampleRate
}

// Voices implements Backend.
func (s *Silent) Voices(_ *beep.Buffer, n int, _ float64) []Handle {
	return SilentVoices(n, &s.plays)
}

// Plays returns how many times any voice of this backend was played.
func (s *Silent) Plays() int {
	return int(s.plays.Load())
}

// SilentVoices returns n handles that bump counter on every Play.
// counter may be nil.
func SilentVoices(n int, counter *atomic.Int64) []Handle {
	handles := make([]Handle, n)
	for i := range handles {
		handles[i] = &silentVoice{total: counter}
	}
	return handles
}

type silentVoice struct {
	plays int
	total *atomic.Int64
}

func (v *silentVoice) Play() {
	v.plays++
	if v.total != nil {
		v.total.Add(1)
	}
}
