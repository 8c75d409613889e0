package whisper

import (
	"math"
	"testing"

	"github.com/justyntemme/whisper/pkg/framework/debug"
)

func makeBuffer(channels, frames int, fill float32) [][]float32 {
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, frames)
		for i := range out[ch] {
			out[ch][i] = fill
		}
	}
	return out
}

func TestGeneratorSilentWithoutNotes(t *testing.T) {
	gen := NewGeneratorSeeded(1, 2)

	for _, volume := range []float32{0, 0.5, 1, 4} {
		for _, shape := range [][2]int{{1, 1}, {2, 64}, {8, 3}, {2, 0}} {
			out := makeBuffer(shape[0], shape[1], 0.25)
			gen.Render(out, 0, volume)

			for ch := range out {
				for i, s := range out[ch] {
					if s != 0 {
						t.Fatalf("volume %v shape %v: out[%d][%d] = %v, want 0", volume, shape, ch, i, s)
					}
				}
			}
		}
	}
}

func TestGeneratorSilentAtZeroVolume(t *testing.T) {
	gen := NewGeneratorSeeded(3, 4)
	out := makeBuffer(2, 128, 0.9)
	gen.Render(out, 3, 0)

	for ch := range out {
		for i, s := range out[ch] {
			if s != 0 || math.Signbit(float64(s)) {
				t.Fatalf("out[%d][%d] = %v, want +0", ch, i, s)
			}
		}
	}
}

func TestGeneratorBoundedByVolume(t *testing.T) {
	tests := []struct {
		name   string
		volume float32
	}{
		{"quiet", 0.1},
		{"half", 0.5},
		{"unity", 1},
		{"above unity", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGeneratorSeeded(5, 6)
			out := makeBuffer(2, 4096, 0)
			gen.Render(out, 1, tt.volume)

			for ch := range out {
				result := debug.AnalyzeBuffer(out[ch])
				if result.Peak > tt.volume {
					t.Errorf("channel %d peak %v exceeds volume %v", ch, result.Peak, tt.volume)
				}
				if result.Peak < tt.volume*0.9 {
					t.Errorf("channel %d peak %v suspiciously low for volume %v", ch, result.Peak, tt.volume)
				}
			}
		})
	}
}

func TestGeneratorEmptyBuffers(t *testing.T) {
	gen := NewGeneratorSeeded(7, 8)
	gen.Render(nil, 1, 1)
	gen.Render([][]float32{}, 1, 1)
	gen.Render([][]float32{{}, {}}, 1, 1)
}

func TestGeneratorChannelsIndependent(t *testing.T) {
	gen := NewGeneratorSeeded(9, 10)
	out := makeBuffer(2, 8192, 0)
	gen.Render(out, 1, 1)

	var num, l2, r2 float64
	for i := range out[0] {
		l, r := float64(out[0][i]), float64(out[1][i])
		num += l * r
		l2 += l * l
		r2 += r * r
	}
	if corr := num / math.Sqrt(l2*r2); math.Abs(corr) > 0.05 {
		t.Errorf("cross-channel correlation %v, want ~0", corr)
	}
}

func TestGeneratorSuccessiveRendersDiffer(t *testing.T) {
	gen := NewGeneratorSeeded(11, 12)
	a := makeBuffer(1, 256, 0)
	b := makeBuffer(1, 256, 0)
	gen.Render(a, 1, 1)
	gen.Render(b, 1, 1)

	same := 0
	for i := range a[0] {
		if a[0][i] == b[0][i] {
			same++
		}
	}
	if same > 2 {
		t.Errorf("%d of 256 samples repeated between renders", same)
	}
}

func TestGeneratorSpectrumIsFlat(t *testing.T) {
	gen := NewGeneratorSeeded(13, 14)
	out := makeBuffer(1, 1<<15, 0)
	gen.Render(out, 1, 1)

	if flatness := debug.SpectralFlatness(out[0], 256); flatness < 0.8 {
		t.Errorf("spectral flatness %v, want > 0.8 for white noise", flatness)
	}
	for _, lag := range []int{1, 2, 3, 64} {
		if r := debug.Autocorrelation(out[0], lag); math.Abs(r) > 0.03 {
			t.Errorf("autocorrelation at lag %d = %v", lag, r)
		}
	}
}

func BenchmarkGeneratorRender(b *testing.B) {
	gen := NewGeneratorSeeded(1, 1)
	out := makeBuffer(2, 512, 0)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen.Render(out, 1, 0.8)
	}
}
