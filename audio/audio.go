// Package audio loads and plays the short sounds that accompany petalfx
// effects (a chime on a light burst, for instance).
//
// Loading is a one-shot gate: [Load] decodes a clip in the background and
// the game loop polls [Loader.Ready] each frame instead of blocking. Playback
// goes through a [Player] wrapping the beep speaker.
package audio

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// DefaultSampleRate is the rate the Player runs the speaker at.
const DefaultSampleRate = beep.SampleRate(44100)

// Clip is a fully decoded sound held in memory.
type Clip struct {
	buf *beep.Buffer
}

// Decode reads a whole WAV stream into a Clip.
func Decode(r io.Reader) (*Clip, error) {
	s, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	defer s.Close()
	buf := beep.NewBuffer(format)
	buf.Append(s)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	return &Clip{buf: buf}, nil
}

// Format returns the clip's sample format.
func (c *Clip) Format() beep.Format {
	return c.buf.Format()
}

// Len returns the clip length in samples.
func (c *Clip) Len() int {
	return c.buf.Len()
}

// Duration returns the clip length.
func (c *Clip) Duration() time.Duration {
	return c.buf.Format().SampleRate.D(c.buf.Len())
}

// Streamer returns a fresh streamer over the whole clip. Each call can be
// played independently.
func (c *Clip) Streamer() beep.StreamSeeker {
	return c.buf.Streamer(0, c.buf.Len())
}

// Chime synthesizes a soft sine chime: a tone at freq Hz with an exponential
// decay over d.
func Chime(sr beep.SampleRate, freq float64, d time.Duration) (*Clip, error) {
	tone, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("chime %.0f Hz: %w", freq, err)
	}
	n := sr.N(d)
	format := beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(format)
	buf.Append(beep.Take(n, &decay{s: tone, n: n, gain: 0.3}))
	return &Clip{buf: buf}, nil
}

// decay scales a streamer by an exponential envelope that reaches about 1%
// of its gain after n samples.
type decay struct {
	s    beep.Streamer
	n    int
	pos  int
	gain float64
}

func (e *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	k := 4.6 / float64(max(e.n, 1))
	for i := range samples[:n] {
		a := e.gain * math.Exp(-k*float64(e.pos))
		samples[i][0] *= a
		samples[i][1] *= a
		e.pos++
	}
	return n, ok
}

func (e *decay) Err() error { return e.s.Err() }

// Loader is a one-shot, asynchronous clip load. It is safe to poll from the
// game loop while the load runs on its own goroutine.
type Loader struct {
	done chan struct{}
	clip *Clip
	err  error
}

// Load starts decoding the stream returned by open in the background.
// Cancelling ctx abandons the load with ctx's error.
func Load(ctx context.Context, open func() (io.ReadCloser, error)) *Loader {
	l := &Loader{done: make(chan struct{})}
	go func() {
		defer close(l.done)
		if err := ctx.Err(); err != nil {
			l.err = err
			return
		}
		rc, err := open()
		if err != nil {
			l.err = fmt.Errorf("open clip: %w", err)
			return
		}
		defer rc.Close()
		clip, err := Decode(rc)
		if err != nil {
			l.err = err
			return
		}
		if err := ctx.Err(); err != nil {
			l.err = err
			return
		}
		l.clip = clip
	}()
	return l
}

// LoadFile starts loading a WAV file in the background.
func LoadFile(ctx context.Context, path string) *Loader {
	return Load(ctx, func() (io.ReadCloser, error) {
		return os.Open(path)
	})
}

// Ready returns a completed clip, or nil while the load is still running or
// if it failed.
func (l *Loader) Ready() *Clip {
	select {
	case <-l.done:
		return l.clip
	default:
		return nil
	}
}

// Done is closed when the load finishes, successfully or not.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Wait blocks until the load finishes or ctx is done.
func (l *Loader) Wait(ctx context.Context) (*Clip, error) {
	select {
	case <-l.done:
		return l.clip, l.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Player mixes clips onto the system speaker.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates a player that will run the speaker at rate. Zero uses
// DefaultSampleRate.
func NewPlayer(rate beep.SampleRate) *Player {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &Player{rate: rate, mixer: &beep.Mixer{}}
}

// Init opens the speaker. Calling it again is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play mixes c in, resampling when its rate differs from the speaker's.
// No-op before Init or for a nil clip.
func (p *Player) Play(c *Clip) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || c == nil {
		return
	}
	var s beep.Streamer = c.Streamer()
	if sr := c.Format().SampleRate; sr != p.rate {
		s = beep.Resample(3, sr, p.rate, s)
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops every sound and closes the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
