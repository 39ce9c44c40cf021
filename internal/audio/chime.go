package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	chimeNote    = 60 * time.Millisecond
	chimeAttack  = 4 * time.Millisecond
	chimeRelease = 40 * time.Millisecond
	chimeLow     = 880.0  // A5
	chimeHigh    = 1318.5 // E6
)

// sine is a fixed-length sine oscillator.
type sine struct {
	freq     float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
}

func newSine(freq float64, d time.Duration, rate beep.SampleRate) *sine {
	return &sine{freq: freq, duration: rate.N(d), rate: rate}
}

func (o *sine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *sine) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. math.Log2(0) is -Inf, so zero is
// handled with Silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// PickupChime is the rising two-note chime played when a star is collected.
func PickupChime(rate beep.SampleRate, vol float64) beep.Streamer {
	note := func(freq float64) beep.Streamer {
		return newEnvelope(newSine(freq, chimeNote, rate), chimeNote, chimeAttack, chimeRelease, rate)
	}
	return newVolume(beep.Seq(note(chimeLow), note(chimeHigh)), vol)
}
