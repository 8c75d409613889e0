package noise

import (
	"math"
	"testing"
)

func TestWhiteRange(t *testing.T) {
	w := NewWhiteSeeded(1, 2)

	for i := 0; i < 100000; i++ {
		if u := w.Uniform(); u < 0 || u >= 1 {
			t.Fatalf("Uniform() = %v, outside [0, 1)", u)
		}
		if s := w.Next(); s < -1 || s >= 1 {
			t.Fatalf("Next() = %v, outside [-1, 1)", s)
		}
	}
}

func TestWhiteFillGain(t *testing.T) {
	tests := []struct {
		name string
		gain float32
	}{
		{"unity", 1},
		{"half", 0.5},
		{"above unity", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWhiteSeeded(3, 4)
			buf := make([]float32, 4096)
			w.Fill(buf, tt.gain)

			var peak float32
			for _, s := range buf {
				if s < -tt.gain || s > tt.gain {
					t.Fatalf("sample %v outside [-%v, %v]", s, tt.gain, tt.gain)
				}
				if a := float32(math.Abs(float64(s))); a > peak {
					peak = a
				}
			}
			if peak < tt.gain*0.9 {
				t.Errorf("peak %v too low for gain %v", peak, tt.gain)
			}
		})
	}
}

func TestWhiteFillZeroGain(t *testing.T) {
	w := NewWhiteSeeded(5, 6)
	buf := []float32{0.3, -0.2, 0.9}
	w.Fill(buf, 0)

	for i, s := range buf {
		if s != 0 {
			t.Errorf("buf[%d] = %v, want 0", i, s)
		}
	}
}

func TestWhiteSeedReproducible(t *testing.T) {
	a := NewWhiteSeeded(42, 43)
	b := NewWhiteSeeded(42, 43)

	for i := 0; i < 64; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("sample %d differs between equally seeded generators", i)
		}
	}

	c := NewWhite()
	d := NewWhite()
	same := 0
	for i := 0; i < 64; i++ {
		if c.Next() == d.Next() {
			same++
		}
	}
	if same == 64 {
		t.Error("independently seeded generators produced identical output")
	}
}

func TestWhiteStatistics(t *testing.T) {
	w := NewWhiteSeeded(9, 10)
	const n = 100000

	var sum, sumSq float64
	var bins [10]int
	for i := 0; i < n; i++ {
		s := float64(w.Next())
		sum += s
		sumSq += s * s
		bins[int((s+1)/2*10)]++
	}

	mean := sum / n
	if math.Abs(mean) > 0.02 {
		t.Errorf("mean = %v, want ~0", mean)
	}

	// Uniform on [-1, 1) has variance 1/3.
	variance := sumSq/n - mean*mean
	if math.Abs(variance-1.0/3) > 0.01 {
		t.Errorf("variance = %v, want ~0.333", variance)
	}

	for i, c := range bins {
		if c < n/10*9/10 || c > n/10*11/10 {
			t.Errorf("bin %d has %d samples, want ~%d", i, c, n/10)
		}
	}
}

func BenchmarkWhiteFill(b *testing.B) {
	w := NewWhiteSeeded(1, 1)
	buf := make([]float32, 512)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		w.Fill(buf, 0.5)
	}
}
