// Package host runs an instrument outside a plugin host: it pulls blocks
// from the processor into an audio back end and feeds it note messages from
// MIDI devices, the terminal or the editor window.
package host

import (
	"errors"
	"fmt"
	"time"

	"github.com/justyntemme/whisper/pkg/framework/bus"
	"github.com/justyntemme/whisper/pkg/framework/debug"
)

// Backend selects the audio output library.
type Backend string

const (
	BackendBeep Backend = "beep"
	BackendOto  Backend = "oto"
	// BackendNone renders nothing; useful with -profile on machines
	// without an audio device.
	BackendNone Backend = "none"
)

// MIDI device selectors. Other non-negative values are portmidi device IDs.
const (
	NoMIDIDevice      = -1
	DefaultMIDIDevice = -2
)

var (
	// ErrInvalidConfig is wrapped by every Validate failure.
	ErrInvalidConfig = errors.New("invalid host config")
	// ErrNoMIDIDevice is returned when the requested MIDI input is missing.
	ErrNoMIDIDevice = errors.New("no MIDI input device")
)

// Config holds the standalone host settings.
type Config struct {
	SampleRate int
	BlockSize  int
	Channels   int
	Latency    time.Duration
	Backend    Backend
	MIDIDevice int
	Keys       bool
	Window     bool
	RingSize   int
	LogLevel   string
	Profile    bool
}

// DefaultConfig returns settings that work on most desktop machines.
func DefaultConfig() Config {
	return Config{
		SampleRate: 44100,
		BlockSize:  512,
		Channels:   2,
		Latency:    time.Second / 20,
		Backend:    BackendBeep,
		MIDIDevice: NoMIDIDevice,
		Window:     true,
		RingSize:   1024,
		LogLevel:   "info",
	}
}

// Validate checks the config and reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	if c.SampleRate < 8000 || c.SampleRate > 384000 {
		errs = append(errs, fmt.Errorf("sample rate %d out of range 8000..384000", c.SampleRate))
	}
	if c.BlockSize < 16 || c.BlockSize > 8192 {
		errs = append(errs, fmt.Errorf("block size %d out of range 16..8192", c.BlockSize))
	}
	if c.Channels < 1 || c.Channels > bus.MaxChannels {
		errs = append(errs, fmt.Errorf("channel count %d out of range 1..%d", c.Channels, bus.MaxChannels))
	}
	if c.Latency <= 0 {
		errs = append(errs, fmt.Errorf("latency %v must be positive", c.Latency))
	}
	switch c.Backend {
	case BackendBeep, BackendOto, BackendNone:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if c.MIDIDevice < DefaultMIDIDevice {
		errs = append(errs, fmt.Errorf("MIDI device %d", c.MIDIDevice))
	}
	if c.RingSize < 2 {
		errs = append(errs, fmt.Errorf("ring size %d below 2", c.RingSize))
	}
	if _, err := debug.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// BlockDuration returns the real-time length of one block.
func (c Config) BlockDuration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(c.BlockSize) * time.Second / time.Duration(c.SampleRate)
}
