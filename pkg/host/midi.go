package host

import (
	"context"
	"fmt"
	"time"

	"github.com/rakyll/portmidi"

	"github.com/justyntemme/whisper/pkg/framework/debug"
	"github.com/justyntemme/whisper/pkg/midi"
)

// Tuning for the portmidi read loop.
const (
	midiBufferSize   = 1024
	midiPollInterval = time.Millisecond
)

// MIDIInput reads a portmidi input stream and pushes every message into an
// event ring.
type MIDIInput struct {
	stream *portmidi.Stream
	events *midi.Ring
	name   string
}

// MIDIDevice describes one portmidi input.
type MIDIDevice struct {
	ID        int
	Name      string
	Interface string
}

// ListMIDIInputs returns the available input devices.
func ListMIDIInputs() ([]MIDIDevice, error) {
	if err := portmidi.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portmidi: %w", err)
	}
	defer portmidi.Terminate()

	var devices []MIDIDevice
	for i := 0; i < portmidi.CountDevices(); i++ {
		info := portmidi.Info(portmidi.DeviceID(i))
		if info == nil || !info.IsInputAvailable {
			continue
		}
		devices = append(devices, MIDIDevice{ID: i, Name: info.Name, Interface: info.Interface})
	}
	return devices, nil
}

// OpenMIDIInput opens the device with the given ID, or the system default
// for DefaultMIDIDevice.
func OpenMIDIInput(deviceID int, events *midi.Ring) (*MIDIInput, error) {
	if deviceID == NoMIDIDevice {
		return nil, ErrNoMIDIDevice
	}
	if err := portmidi.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portmidi: %w", err)
	}

	id := portmidi.DeviceID(deviceID)
	if deviceID == DefaultMIDIDevice {
		id = portmidi.DefaultInputDeviceID()
	}
	var info *portmidi.DeviceInfo
	if id >= 0 {
		info = portmidi.Info(id)
	}
	if info == nil || !info.IsInputAvailable {
		portmidi.Terminate()
		return nil, fmt.Errorf("device %d: %w", deviceID, ErrNoMIDIDevice)
	}

	stream, err := portmidi.NewInputStream(id, midiBufferSize)
	if err != nil {
		portmidi.Terminate()
		return nil, fmt.Errorf("open %s: %w", info.Name, err)
	}
	debug.Info("host: MIDI input %q (%s)", info.Name, info.Interface)
	return &MIDIInput{stream: stream, events: events, name: info.Name}, nil
}

// Name returns the device name.
func (m *MIDIInput) Name() string {
	return m.name
}

// Run forwards messages until ctx is cancelled or the stream fails.
func (m *MIDIInput) Run(ctx context.Context) error {
	ticker := time.NewTicker(midiPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		ready, err := m.stream.Poll()
		if err != nil {
			return fmt.Errorf("poll %s: %w", m.name, err)
		}
		if !ready {
			continue
		}
		events, err := m.stream.Read(midiBufferSize)
		if err != nil {
			return fmt.Errorf("read %s: %w", m.name, err)
		}
		if dropped := forward(events, m.events); dropped > 0 {
			debug.Warn("host: event ring full, dropped %d MIDI messages", dropped)
		}
	}
}

// Close closes the stream and shuts portmidi down.
func (m *MIDIInput) Close() error {
	err := m.stream.Close()
	portmidi.Terminate()
	return err
}

// forward pushes events into ring and returns how many did not fit.
// Portmidi timestamps are not sample accurate, so every message lands at
// the start of the next block.
func forward(events []portmidi.Event, ring *midi.Ring) int {
	dropped := 0
	for _, ev := range events {
		if !ring.Push(messageFromEvent(ev)) {
			dropped++
		}
	}
	return dropped
}

func messageFromEvent(ev portmidi.Event) midi.Message {
	return midi.Message{
		Status: uint8(ev.Status),
		Data1:  uint8(ev.Data1),
		Data2:  uint8(ev.Data2),
	}
}
