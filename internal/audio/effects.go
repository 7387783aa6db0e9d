package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// oscillator generates a fixed-length tone, optionally sliding in pitch.
type oscillator struct {
	from, to float64 // start and end frequency
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a constant-pitch oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator whose pitch slides linearly from one
// frequency to another over its duration.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		from:     from,
		to:       to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.from + (o.to-o.from)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	releaseStart int
	total        int
}

// NewEnvelope shapes s with an attack ramp and a release ramp.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: max(total-rel, att),
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.position >= e.releaseStart && e.release > 0 {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note is a shaped tone.
func note(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// arpeggio plays the frequencies one after another.
func arpeggio(freqs []float64, step time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	notes := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		notes[i] = note(f, step, wave, rate)
	}
	return beep.Seq(notes...)
}

// recipes build the streamer of each cue.
var recipes = map[Cue]func(rate beep.SampleRate) beep.Streamer{
	CueJump: func(rate beep.SampleRate) beep.Streamer {
		d := 120 * time.Millisecond
		return NewEnvelope(NewSweep(300, 700, d, WaveSquare, rate), d, 2*time.Millisecond, 60*time.Millisecond, rate)
	},
	CueBlockHit: func(rate beep.SampleRate) beep.Streamer {
		return beep.Seq(note(523.25, 60*time.Millisecond, WaveSquare, rate), note(783.99, 90*time.Millisecond, WaveSquare, rate))
	},
	CueCorrectAnswer: func(rate beep.SampleRate) beep.Streamer {
		return arpeggio([]float64{523.25, 659.25, 783.99, 1046.5}, 80*time.Millisecond, WaveTriangle, rate)
	},
	CueIncorrectAnswer: func(rate beep.SampleRate) beep.Streamer {
		d := 300 * time.Millisecond
		return NewEnvelope(NewSweep(220, 110, d, WaveSquare, rate), d, 5*time.Millisecond, 150*time.Millisecond, rate)
	},
	CueEnemyStomp: func(rate beep.SampleRate) beep.Streamer {
		d := 90 * time.Millisecond
		thud := NewEnvelope(NewSweep(400, 80, d, WaveSquare, rate), d, time.Millisecond, 60*time.Millisecond, rate)
		crunch := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, time.Millisecond, 80*time.Millisecond, rate)
		return beep.Mix(newVolume(thud, 0.7), newVolume(crunch, 0.3))
	},
	CueGemCollected: func(rate beep.SampleRate) beep.Streamer {
		return beep.Seq(note(987.77, 50*time.Millisecond, WaveSine, rate), note(1318.51, 120*time.Millisecond, WaveSine, rate))
	},
	CueBonusStart: func(rate beep.SampleRate) beep.Streamer {
		d := 600 * time.Millisecond
		return NewEnvelope(NewSweep(880, 110, d, WaveTriangle, rate), d, 10*time.Millisecond, 200*time.Millisecond, rate)
	},
	CueVictory: func(rate beep.SampleRate) beep.Streamer {
		return arpeggio([]float64{392, 523.25, 659.25, 783.99, 1046.5, 783.99, 1046.5}, 110*time.Millisecond, WaveSquare, rate)
	},
	CueGameOver: func(rate beep.SampleRate) beep.Streamer {
		return arpeggio([]float64{392, 349.23, 329.63, 261.63}, 220*time.Millisecond, WaveTriangle, rate)
	},
	CueStageStart: func(rate beep.SampleRate) beep.Streamer {
		return arpeggio([]float64{659.25, 659.25, 783.99}, 90*time.Millisecond, WaveSquare, rate)
	},
}

// Effect returns the streamer for c at the given volume, or nil for an
// unknown cue.
func Effect(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	build, ok := recipes[c]
	if !ok {
		return nil
	}
	return newVolume(build(rate), volume)
}
