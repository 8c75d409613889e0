package whisper

import (
	"math"
	"sync"
	"testing"

	"github.com/justyntemme/whisper/pkg/framework/debug"
	"github.com/justyntemme/whisper/pkg/framework/plugin"
	"github.com/justyntemme/whisper/pkg/midi"
)

func newTestProcessor() *Processor {
	return NewProcessorWith(NewParameters(), NewGeneratorSeeded(21, 22))
}

func TestProcessorInfo(t *testing.T) {
	p := newTestProcessor()
	info := p.Info()

	if info.Name != "Whisper" || info.UniqueID != 1337 {
		t.Errorf("unexpected identity %+v", info)
	}
	if info.Inputs != 0 || info.Outputs != 2 {
		t.Errorf("channels = %d in / %d out, want 0 / 2", info.Inputs, info.Outputs)
	}
	if info.Category != plugin.CategorySynth {
		t.Errorf("category = %v, want synth", info.Category)
	}
	if info.Parameters != 1 {
		t.Errorf("parameters = %d, want 1", info.Parameters)
	}
	if got := p.Parameters().Count(); got != info.Parameters {
		t.Errorf("registry holds %d parameters, info reports %d", got, info.Parameters)
	}
	if err := info.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if !p.Buses().AcceptsEvents() {
		t.Error("bus layout should accept events")
	}
}

func TestProcessorCanDo(t *testing.T) {
	p := newTestProcessor()

	tests := []struct {
		query string
		want  plugin.Supported
	}{
		{"receiveVstEvents", plugin.Yes},
		{"receiveVstMidiEvent", plugin.Yes},
		{"receiveVstTimeInfo", plugin.Maybe},
		{"sendVstEvents", plugin.Maybe},
		{"offline", plugin.Maybe},
		{"bypass", plugin.Maybe},
		{"something new", plugin.Maybe},
	}

	for _, tt := range tests {
		if got := p.CanDo(plugin.ParseCanDo(tt.query)); got != tt.want {
			t.Errorf("CanDo(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestVolumeParameter(t *testing.T) {
	params := newTestProcessor().Parameters()

	if params.Value(ParamVolume) != 1 {
		t.Errorf("default volume = %v, want 1", params.Value(ParamVolume))
	}
	if params.Name(ParamVolume) != "volume" {
		t.Errorf("name = %q", params.Name(ParamVolume))
	}
	if params.Label(ParamVolume) != "x" {
		t.Errorf("label = %q", params.Label(ParamVolume))
	}
	params.SetValue(ParamVolume, 0.5)
	if params.DisplayText(ParamVolume) != "0.500" {
		t.Errorf("display text = %q", params.DisplayText(ParamVolume))
	}

	params.SetValue(1, 0.1)
	params.SetValue(-1, 0.1)
	if params.Value(ParamVolume) != 0.5 {
		t.Errorf("write to unknown index changed volume to %v", params.Value(ParamVolume))
	}
	if params.Value(1) != 0 || params.Name(1) != "" || params.Label(1) != "" || params.DisplayText(1) != "" {
		t.Error("unknown index should be neutral")
	}
}

func TestScenarioNoteOnRendersNoise(t *testing.T) {
	p := newTestProcessor()
	out := makeBuffer(1, 4, 0)

	p.Process([]midi.Message{midi.NewNoteOn(0, 60, 100)}, out)

	if p.Held() != 1 {
		t.Fatalf("held = %d, want 1", p.Held())
	}
	allZero := true
	for _, s := range out[0] {
		if s < -1 || s > 1 {
			t.Errorf("sample %v outside [-1, 1]", s)
		}
		if s != 0 {
			allZero = false
		}
	}
	if allZero {
		t.Error("all samples zero while a note is held")
	}
}

func TestScenarioNoteOnOffSameCycle(t *testing.T) {
	p := newTestProcessor()
	p.Parameters().SetValue(ParamVolume, 0.5)
	out := makeBuffer(1, 4, 0.3)

	p.Process([]midi.Message{midi.NewNoteOn(0, 60, 100), midi.NewNoteOff(0, 60, 0)}, out)

	if p.Held() != 0 {
		t.Errorf("held = %d, want 0", p.Held())
	}
	for i, s := range out[0] {
		if s != 0 {
			t.Errorf("out[%d] = %v, want 0", i, s)
		}
	}
}

func TestScenarioUnmatchedNoteOff(t *testing.T) {
	p := newTestProcessor()
	out := makeBuffer(2, 16, 0.7)

	p.Process([]midi.Message{midi.NewNoteOff(0, 60, 0)}, out)

	if p.Held() != 0 || p.State() != StateSilent {
		t.Errorf("held = %d state = %v, want 0 / silent", p.Held(), p.State())
	}
	for ch := range out {
		if !debug.AnalyzeBuffer(out[ch]).Exact {
			t.Errorf("channel %d is not exact silence", ch)
		}
	}
}

func TestScenarioStatistics(t *testing.T) {
	p := newTestProcessor()
	p.DeliverEvents([]midi.Message{midi.NewNoteOn(0, 60, 100)})

	out := makeBuffer(1, 10000, 0)
	p.Render(out)

	result := debug.AnalyzeBuffer(out[0])
	if math.Abs(float64(result.DC)) > 0.03 {
		t.Errorf("mean = %v, want ~0", result.DC)
	}
	if result.Peak > 1 {
		t.Errorf("peak = %v, want <= 1", result.Peak)
	}

	// Uniform on [-1, 1]: each of 10 bins expects 1000 samples.
	for i, c := range debug.Histogram(out[0], 10, -1, 1) {
		if c < 850 || c > 1150 {
			t.Errorf("bin %d has %d samples, want ~1000", i, c)
		}
	}
}

func TestEventsAppliedBeforeRenderInSameCycle(t *testing.T) {
	p := newTestProcessor()
	out := makeBuffer(2, 32, 0)

	p.DeliverEvents([]midi.Message{midi.NewNoteOn(0, 60, 100)})
	p.Render(out)
	if p.State() != StateNotesHeld || debug.AnalyzeBuffer(out[0]).Exact {
		t.Fatal("note-on should sound in the cycle it was delivered")
	}

	// Nothing delivered: the gate stays open across cycles.
	p.Render(out)
	if debug.AnalyzeBuffer(out[1]).Exact {
		t.Error("held note should keep sounding")
	}

	p.DeliverEvents([]midi.Message{midi.NewNoteOff(0, 60, 0)})
	p.Render(out)
	for ch := range out {
		if !debug.AnalyzeBuffer(out[ch]).Exact {
			t.Errorf("channel %d should be silent after note-off", ch)
		}
	}
}

func TestDeliverEventsOverflowKeepsOrder(t *testing.T) {
	p := newTestProcessor()

	// More than the pending capacity: every note-on before the final
	// note-offs must still be counted.
	batch := make([]midi.Message, 0, MaxPendingEvents*3)
	for i := 0; i < MaxPendingEvents*2; i++ {
		batch = append(batch, midi.NewNoteOn(0, 60, 100))
	}
	for i := 0; i < MaxPendingEvents*2-1; i++ {
		batch = append(batch, midi.NewNoteOff(0, 60, 0))
	}

	p.DeliverEvents(batch[:7])
	p.DeliverEvents(batch[7:])
	p.Render(makeBuffer(2, 8, 0))

	if p.Held() != 1 {
		t.Errorf("held = %d, want 1", p.Held())
	}
}

func TestProcessorReset(t *testing.T) {
	p := newTestProcessor()
	p.Parameters().SetValue(ParamVolume, 0.25)
	p.Process([]midi.Message{midi.NewNoteOn(0, 60, 100), midi.NewNoteOn(0, 62, 100)}, makeBuffer(2, 4, 0))
	p.DeliverEvents([]midi.Message{midi.NewNoteOn(0, 64, 100)})

	p.Reset()
	out := makeBuffer(2, 4, 0.5)
	p.Render(out)

	if p.Held() != 0 {
		t.Errorf("held after Reset = %d, want 0", p.Held())
	}
	if !debug.AnalyzeBuffer(out[0]).Exact {
		t.Error("output after Reset should be silent")
	}
	if p.Parameters().Value(ParamVolume) != 0.25 {
		t.Error("Reset must not touch parameters")
	}
}

func TestVolumeChangeTakesEffectNextCycle(t *testing.T) {
	p := newTestProcessor()
	out := makeBuffer(1, 2048, 0)

	p.Process([]midi.Message{midi.NewNoteOn(0, 60, 100)}, out)
	if peak := debug.AnalyzeBuffer(out[0]).Peak; peak < 0.9 {
		t.Fatalf("peak at volume 1 = %v", peak)
	}

	p.Parameters().SetValue(ParamVolume, 0.2)
	p.Render(out)
	if peak := debug.AnalyzeBuffer(out[0]).Peak; peak > 0.2 {
		t.Errorf("peak after volume change = %v, want <= 0.2", peak)
	}

	p.Parameters().SetValue(ParamVolume, 0)
	p.Render(out)
	if !debug.AnalyzeBuffer(out[0]).Exact {
		t.Error("volume 0 with held note should be exact silence")
	}
}

func TestConcurrentParameterWrites(t *testing.T) {
	p := newTestProcessor()
	p.DeliverEvents([]midi.Message{midi.NewNoteOn(0, 60, 100)})
	out := makeBuffer(2, 256, 0)

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			p.Parameters().SetValue(ParamVolume, float32(i%2)*0.5+0.25)
		}
	}()

	for cycle := 0; cycle < 500; cycle++ {
		p.Render(out)
		for ch := range out {
			if peak := debug.AnalyzeBuffer(out[ch]).Peak; peak > 1 {
				t.Fatalf("cycle %d: peak %v beyond any volume written", cycle, peak)
			}
		}
	}
	close(done)
	wg.Wait()
}

func TestProcessZeroAllocations(t *testing.T) {
	p := newTestProcessor()
	out := makeBuffer(2, 512, 0)
	batch := []midi.Message{
		midi.NewNoteOn(0, 60, 100),
		{Status: midi.StatusControlChange, Data1: 7, Data2: 100},
		midi.NewNoteOff(0, 60, 0),
		midi.NewNoteOn(0, 64, 100),
	}

	allocs := testing.AllocsPerRun(200, func() {
		p.Process(batch, out)
	})
	if allocs != 0 {
		t.Errorf("Process allocated %v times per cycle", allocs)
	}
}

func BenchmarkProcess(b *testing.B) {
	p := NewProcessor()
	out := makeBuffer(2, 512, 0)
	batch := []midi.Message{midi.NewNoteOn(0, 60, 100)}
	p.Process(batch, out)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Process(nil, out)
	}
}
