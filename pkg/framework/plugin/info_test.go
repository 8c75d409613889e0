package plugin

import (
	"errors"
	"testing"

	"github.com/justyntemme/whisper/pkg/framework/bus"
)

func TestNewInfoFromBuses(t *testing.T) {
	info := NewInfo("Whisper", "whisper", 1337, bus.NewGenerator())

	if info.Inputs != 0 || info.Outputs != 2 {
		t.Errorf("Expected 0 in / 2 out, got %d / %d", info.Inputs, info.Outputs)
	}
	if err := info.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestInfoValidate(t *testing.T) {
	valid := Info{Name: "Whisper", UniqueID: 1337, Outputs: 2, Parameters: 1, Category: CategorySynth}

	tests := []struct {
		name    string
		modify  func(*Info)
		wantErr bool
	}{
		{"valid", func(*Info) {}, false},
		{"empty name", func(i *Info) { i.Name = "" }, true},
		{"zero id", func(i *Info) { i.UniqueID = 0 }, true},
		{"negative outputs", func(i *Info) { i.Outputs = -1 }, true},
		{"no channels", func(i *Info) { i.Outputs = 0 }, true},
		{"effect with inputs", func(i *Info) { i.Inputs = 2 }, false},
		{"negative parameters", func(i *Info) { i.Parameters = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := valid
			tt.modify(&info)
			err := info.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInfo) {
				t.Errorf("Validate() error %v does not wrap ErrInvalidInfo", err)
			}
		})
	}
}

func TestInfoUID(t *testing.T) {
	tests := []struct {
		id   int32
		want [4]byte
	}{
		{1337, [4]byte{0x00, 0x00, 0x05, 0x39}},
		{0x57687370, [4]byte{'W', 'h', 's', 'p'}},
		{-1, [4]byte{0xFF, 0xFF, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		if got := (Info{UniqueID: tt.id}).UID(); got != tt.want {
			t.Errorf("UID(%d) = %x, want %x", tt.id, got, tt.want)
		}
	}
}

func TestVersionString(t *testing.T) {
	if got := (Info{Version: 1203}).VersionString(); got != "1.2.3" {
		t.Errorf("VersionString() = %q, want %q", got, "1.2.3")
	}
}

func TestCanDoNames(t *testing.T) {
	tests := []struct {
		name string
		want CanDo
	}{
		{"receiveVstEvents", CanReceiveEvents},
		{"receiveVstMidiEvent", CanReceiveMIDIEvent},
		{"receiveVstTimeInfo", CanReceiveTimeInfo},
		{"bypass", CanBypass},
		{"somethingElse", CanUnknown},
		{"", CanUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCanDo(tt.name)
			if got != tt.want {
				t.Errorf("ParseCanDo(%q) = %v, want %v", tt.name, got, tt.want)
			}
			if got != CanUnknown && got.String() != tt.name {
				t.Errorf("String() = %q, want %q", got.String(), tt.name)
			}
		})
	}
}

func TestSupportedString(t *testing.T) {
	if Yes.String() != "yes" || No.String() != "no" || Maybe.String() != "maybe" {
		t.Error("unexpected Supported strings")
	}
	if CategorySynth.String() != "Instrument" {
		t.Errorf("CategorySynth.String() = %q", CategorySynth.String())
	}
}
