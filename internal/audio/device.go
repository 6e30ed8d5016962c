package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// DefaultSampleRate is used by the speaker and by decoders that resample to it.
const DefaultSampleRate = beep.SampleRate(44100)

// Backend builds voices for a decoded sound.
type Backend interface {
	SampleRate() beep.SampleRate
	Voices(buf *beep.Buffer, n int, gain float64) []Handle
}

// Device is a Backend playing through the system speaker. All voices feed
// one mixer that is handed to the speaker once.
type Device struct {
	sr    beep.SampleRate
	mixer *beep.Mixer
}

var _ Backend = (*Device)(nil)

// OpenDevice initializes the speaker. It fails on machines without a sound card;
// callers fall back to Silent.
func OpenDevice(sr beep.SampleRate) (*Device, error) {
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	d := newDevice(sr)
	speaker.Play(d.mixer)
	return d, nil
}

func newDevice(sr beep.SampleRate) *Device {
	return &Device{sr: sr, mixer: &beep.Mixer{}}
}

// SampleRate implements Backend.
func (d *Device) SampleRate() beep.SampleRate {
	return d.sr
}

// Voices creates n voices over buf. Each voice owns its own seeker over the
// shared samples, so playing does not allocate.
func (d *Device) Voices(buf *beep.Buffer, n int, gain float64) []Handle {
	handles := make([]Handle, n)
	for i := range handles {
		src := buf.Streamer(0, buf.Len())
		v := &voice{mixer: d.mixer, src: src}
		v.vol = &effects.Volume{
			Streamer: src,
			Base:     2,
			Volume:   math.Log2(math.Max(gain, 1e-6)),
			Silent:   gain <= 0,
		}
		handles[i] = v
	}
	return handles
}

// Close stops playback and releases the speaker.
func (d *Device) Close() {
	speaker.Clear()
	speaker.Close()
}

// voice rewinds its seeker on Play and sits in the mixer until it drains.
type voice struct {
	mixer  *beep.Mixer
	src    beep.StreamSeeker
	vol    *effects.Volume
	queued bool // guarded by the speaker lock
}

func (v *voice) Play() {
	speaker.Lock()
	defer speaker.Unlock()

	_ = v.src.Seek(0)
	if !v.queued {
		v.queued = true
		v.mixer.Add(v)
	}
}

// Stream is called by the mixer with the speaker lock held. A short read
// ends the voice right away, so queued is false exactly when the mixer has
// let go of it and Play never adds it twice.
func (v *voice) Stream(samples [][2]float64) (int, bool) {
	n, ok := v.vol.Stream(samples)
	if !ok || n < len(samples) {
		v.queued = false
		return n, false
	}
	return n, true
}

func (v *voice) Err() error {
	return v.src.Err()
}
