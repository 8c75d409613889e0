package host

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/justyntemme/whisper/pkg/framework/debug"
)

// Streamer adapts a Driver to beep. Beep streams stereo, so a mono driver
// is duplicated into both sides and only the first two channels of a wider
// one are heard.
type Streamer struct {
	driver *Driver
}

var _ beep.Streamer = (*Streamer)(nil)

// NewStreamer creates a beep streamer over d.
func NewStreamer(d *Driver) *Streamer {
	return &Streamer{driver: d}
}

// Stream fills samples block by block. It never ends.
func (s *Streamer) Stream(samples [][2]float64) (int, bool) {
	n := 0
	for n < len(samples) {
		out := s.driver.Pull(len(samples) - n)
		frames := 0
		if len(out) > 0 {
			frames = len(out[0])
		}
		if frames == 0 {
			break
		}
		left, right := out[0], out[0]
		if len(out) > 1 {
			right = out[1]
		}
		for i := 0; i < frames; i++ {
			samples[n+i][0] = float64(left[i])
			samples[n+i][1] = float64(right[i])
		}
		n += frames
	}
	return n, true
}

// Err always returns nil.
func (s *Streamer) Err() error {
	return nil
}

// OtoPlayer adapts a Driver to oto as an io.Reader of interleaved
// little-endian float32 samples.
type OtoPlayer struct {
	driver  *Driver
	scratch []float32

	ctx    *oto.Context
	player *oto.Player
}

var _ io.Reader = (*OtoPlayer)(nil)

// NewOtoReader creates the reader side without opening a device.
func NewOtoReader(d *Driver) *OtoPlayer {
	return &OtoPlayer{
		driver:  d,
		scratch: make([]float32, d.BlockSize()*d.Channels()),
	}
}

// Read renders as many whole frames as fit in p.
func (o *OtoPlayer) Read(p []byte) (int, error) {
	channels := o.driver.Channels()
	if channels == 0 {
		return 0, io.EOF
	}
	frameBytes := 4 * channels
	frames := len(p) / frameBytes

	n := 0
	for frames > 0 {
		o.driver.Pull(frames)
		samples := o.driver.Context().Interleave(o.scratch)
		if samples == 0 {
			break
		}
		for _, s := range o.scratch[:samples] {
			binary.LittleEndian.PutUint32(p[n:], math.Float32bits(s))
			n += 4
		}
		frames -= samples / channels
	}
	return n, nil
}

// Close stops playback.
func (o *OtoPlayer) Close() error {
	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	return err
}

// Output is a running audio back end.
type Output interface {
	io.Closer
}

type beepOutput struct{}

func (beepOutput) Close() error {
	speaker.Clear()
	speaker.Close()
	return nil
}

type nullOutput struct {
	stop chan struct{}
	done chan struct{}
}

func (n *nullOutput) Close() error {
	close(n.stop)
	<-n.done
	return nil
}

// Open starts the back end selected in cfg pulling from d.
func Open(cfg Config, d *Driver) (Output, error) {
	switch cfg.Backend {
	case BackendBeep:
		sr := beep.SampleRate(cfg.SampleRate)
		if err := speaker.Init(sr, sr.N(cfg.Latency)); err != nil {
			return nil, fmt.Errorf("init speaker: %w", err)
		}
		speaker.Play(NewStreamer(d))
		debug.Info("host: beep output at %d Hz, %v buffer", cfg.SampleRate, cfg.Latency)
		return beepOutput{}, nil

	case BackendOto:
		op := &oto.NewContextOptions{
			SampleRate:   cfg.SampleRate,
			ChannelCount: d.Channels(),
			Format:       oto.FormatFloat32LE,
			BufferSize:   cfg.Latency,
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			return nil, fmt.Errorf("open oto context: %w", err)
		}
		<-ready
		r := NewOtoReader(d)
		r.ctx = ctx
		r.player = ctx.NewPlayer(r)
		r.player.Play()
		debug.Info("host: oto output at %d Hz, %d channels", cfg.SampleRate, d.Channels())
		return r, nil

	case BackendNone:
		n := &nullOutput{stop: make(chan struct{}), done: make(chan struct{})}
		go n.run(d, cfg.BlockDuration())
		debug.Info("host: no audio output, rendering in real time")
		return n, nil
	}
	return nil, fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, cfg.Backend)
}

func (n *nullOutput) run(d *Driver, period time.Duration) {
	defer close(n.done)
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-n.stop:
			return
		case <-ticker.C:
			d.Pull(d.BlockSize())
		}
	}
}
