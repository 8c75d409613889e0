// Package plugin defines the capability set an instrument exposes to a host
// bridge: its descriptor, event delivery, rendering and parameter access.
package plugin

import (
	"errors"
	"fmt"

	"github.com/justyntemme/whisper/pkg/framework/bus"
)

// ErrInvalidInfo is returned by Info.Validate.
var ErrInvalidInfo = errors.New("invalid plugin info")

// Category classifies a plugin for host browsers.
type Category int32

const (
	CategoryUnknown Category = iota
	CategoryEffect
	CategorySynth
	CategoryAnalysis
	CategoryGenerator
)

func (c Category) String() string {
	switch c {
	case CategoryEffect:
		return "Fx"
	case CategorySynth:
		return "Instrument"
	case CategoryAnalysis:
		return "Analyzer"
	case CategoryGenerator:
		return "Generator"
	default:
		return "Unknown"
	}
}

// Info contains plugin metadata
type Info struct {
	Name       string // Display name
	Vendor     string // Company/developer name
	Version    int32  // Packed as major*1000 + minor*100 + patch
	UniqueID   int32  // Stable identifier hosts use to recall the plugin
	Inputs     int32  // Audio input channels
	Outputs    int32  // Audio output channels
	Category   Category
	Parameters int32 // Number of automatable parameters
}

// NewInfo fills the channel counts of an Info from a bus configuration.
func NewInfo(name, vendor string, uniqueID int32, buses *bus.Configuration) Info {
	return Info{
		Name:     name,
		Vendor:   vendor,
		UniqueID: uniqueID,
		Inputs:   buses.ChannelCount(bus.DirectionInput),
		Outputs:  buses.ChannelCount(bus.DirectionOutput),
	}
}

// Validate checks that the descriptor is usable by a host.
func (i Info) Validate() error {
	switch {
	case i.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidInfo)
	case i.UniqueID == 0:
		return fmt.Errorf("%w: %s: unique id must be non-zero", ErrInvalidInfo, i.Name)
	case i.Inputs < 0 || i.Outputs < 0:
		return fmt.Errorf("%w: %s: negative channel count", ErrInvalidInfo, i.Name)
	case i.Inputs == 0 && i.Outputs == 0:
		return fmt.Errorf("%w: %s: no audio channels", ErrInvalidInfo, i.Name)
	case i.Parameters < 0:
		return fmt.Errorf("%w: %s: negative parameter count", ErrInvalidInfo, i.Name)
	}
	return nil
}

// UID packs the unique id big-endian, the form four-character plugin ids
// are stored in.
func (i Info) UID() [4]byte {
	id := uint32(i.UniqueID)
	return [4]byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
}

// VersionString formats Version as major.minor.patch.
func (i Info) VersionString() string {
	return fmt.Sprintf("%d.%d.%d", i.Version/1000, i.Version/100%10, i.Version%100)
}
