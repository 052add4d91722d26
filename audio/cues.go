package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// tone returns d of a sine at freq scaled by gain; nil if the generator rejects freq
func tone(sr beep.SampleRate, freq float64, d time.Duration, gain float64) beep.Streamer {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil
	}
	return beep.Take(sr.N(d), &envelope{Streamer: sine, total: sr.N(d), gain: gain})
}

// seq joins streamers, skipping nil parts
func seq(parts ...beep.Streamer) beep.Streamer {
	kept := parts[:0]
	for _, p := range parts {
		if p != nil {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return beep.Seq(kept...)
}

// Splash is a short decaying noise burst with a low thump
func Splash(sr beep.SampleRate) beep.Streamer {
	return beep.Take(sr.N(time.Millisecond*250), NewSplashGenerator(sr))
}

// Bite is two quick high plinks
func Bite(sr beep.SampleRate) beep.Streamer {
	return seq(
		tone(sr, 1320, 60*time.Millisecond, 0.3),
		beep.Silence(sr.N(40*time.Millisecond)),
		tone(sr, 1760, 80*time.Millisecond, 0.3),
	)
}

// Fanfare is a rising major arpeggio
func Fanfare(sr beep.SampleRate) beep.Streamer {
	return seq(
		tone(sr, 523.25, 90*time.Millisecond, 0.25),
		tone(sr, 659.25, 90*time.Millisecond, 0.25),
		tone(sr, 783.99, 90*time.Millisecond, 0.25),
		tone(sr, 1046.5, 220*time.Millisecond, 0.25),
	)
}

// Escape is a falling buzz
func Escape(sr beep.SampleRate) beep.Streamer {
	return beep.Take(sr.N(time.Millisecond*400), NewSweepGenerator(sr, 220, 90))
}

// envelope applies a linear attack and release to avoid clicks
type envelope struct {
	beep.Streamer
	pos   int
	total int
	gain  float64
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.Streamer.Stream(samples)
	ramp := max(1, e.total/10)
	for i := 0; i < n; i++ {
		amp := e.gain
		if e.pos < ramp {
			amp *= float64(e.pos) / float64(ramp)
		} else if rest := e.total - e.pos; rest < ramp {
			amp *= float64(max(rest, 0)) / float64(ramp)
		}
		samples[i][0] *= amp
		samples[i][1] *= amp
		e.pos++
	}
	return n, ok
}

// ReelGenerator is the endless hum of line being reeled, a wobbling low tone
type ReelGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
}

// NewReelGenerator creates a reel hum generator
func NewReelGenerator(sr beep.SampleRate) *ReelGenerator {
	return &ReelGenerator{
		sr:      sr,
		samples: sr.N(time.Millisecond * 250), // wobble cycle
	}
}

func (g *ReelGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		cyclePos := float64(g.pos%g.samples) / float64(g.samples)
		freq := 140 + 25*math.Sin(cyclePos*math.Pi*2)

		// Ratchet clicks ride on the hum
		click := 0.0
		if g.pos%g.samples < g.sr.N(4*time.Millisecond) {
			click = 0.08
		}

		sample := 0.08*math.Sin(2*math.Pi*freq*t) + click

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ReelGenerator) Err() error {
	return nil
}

// SplashGenerator generates water noise with a fast decay
type SplashGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
	prev float64
}

// NewSplashGenerator creates a splash generator
func NewSplashGenerator(sr beep.SampleRate) *SplashGenerator {
	return &SplashGenerator{
		sr:   sr,
		seed: time.Now().UnixNano(),
	}
}

func (g *SplashGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Envelope - quick attack, fast decay
		envelope := math.Exp(-t * 14)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		// One-pole low-pass softens the hiss into water
		g.prev += 0.35 * (noise - g.prev)

		thump := 0.3 * math.Sin(2*math.Pi*70*t)
		sample := envelope * (0.4*g.prev + thump)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SplashGenerator) Err() error {
	return nil
}

// SweepGenerator glides a harsh tone between two frequencies over one second
type SweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	phase    float64
	pos      int
}

// NewSweepGenerator creates a sweep from one frequency to another
func NewSweepGenerator(sr beep.SampleRate, from, to float64) *SweepGenerator {
	return &SweepGenerator{sr: sr, from: from, to: to}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		k := math.Min(t, 1)
		freq := g.from + (g.to-g.from)*k

		g.phase += 2 * math.Pi * freq / float64(g.sr)

		// Square-ish wave with harmonics for a buzz
		sample := 0.3*math.Sin(g.phase) + 0.15*math.Sin(2*g.phase) + 0.075*math.Sin(3*g.phase)

		envelope := math.Min(t/0.02, 1.0) * math.Exp(-t*2)
		sample *= envelope * 0.5

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}
