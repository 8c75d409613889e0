package debug

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/maddyblue/go-dsp/fft"
)

// AudioAnalyzer provides utilities for analyzing audio buffers.
type AudioAnalyzer struct {
	clippingThreshold float32
	dcThreshold       float32
	silenceThreshold  float32
}

// NewAudioAnalyzer creates a new audio analyzer with default settings.
func NewAudioAnalyzer() *AudioAnalyzer {
	return &AudioAnalyzer{
		clippingThreshold: 0.99,
		dcThreshold:       0.01,
		silenceThreshold:  0.0001,
	}
}

// AnalysisResult contains the results of audio buffer analysis.
type AnalysisResult struct {
	Samples        int
	Peak           float32
	RMS            float32
	DC             float32
	Clipping       bool
	ClippedSamples int
	Silent         bool
	// Exact is set when every sample is exactly zero.
	Exact         bool
	HasNaN        bool
	NaNCount      int
	ZeroCrossings int
}

// Analyze performs comprehensive analysis on an audio buffer.
func (a *AudioAnalyzer) Analyze(buffer []float32) AnalysisResult {
	result := AnalysisResult{Samples: len(buffer), Exact: true}
	if len(buffer) == 0 {
		result.Silent = true
		return result
	}

	var sum, sumSquares float64
	var last float32
	for i, sample := range buffer {
		if sample != sample {
			result.HasNaN = true
			result.NaNCount++
			result.Exact = false
			continue
		}
		if sample != 0 {
			result.Exact = false
		}

		abs := float32(math.Abs(float64(sample)))
		if abs > result.Peak {
			result.Peak = abs
		}
		if abs >= a.clippingThreshold {
			result.Clipping = true
			result.ClippedSamples++
		}

		sum += float64(sample)
		sumSquares += float64(sample) * float64(sample)

		if i > 0 && (last < 0) != (sample < 0) {
			result.ZeroCrossings++
		}
		last = sample
	}

	result.RMS = float32(math.Sqrt(sumSquares / float64(len(buffer))))
	result.DC = float32(sum / float64(len(buffer)))
	result.Silent = result.RMS < a.silenceThreshold

	return result
}

// CheckBuffer performs basic sanity checks on an audio buffer and returns a
// description of every problem found.
func (a *AudioAnalyzer) CheckBuffer(buffer []float32, name string) []string {
	var issues []string
	result := a.Analyze(buffer)

	if result.HasNaN {
		issues = append(issues, fmt.Sprintf("%s: contains %d NaN values", name, result.NaNCount))
	}
	if result.Clipping {
		issues = append(issues, fmt.Sprintf("%s: clipping detected (%d samples)", name, result.ClippedSamples))
	}
	if math.Abs(float64(result.DC)) > float64(a.dcThreshold) {
		issues = append(issues, fmt.Sprintf("%s: DC offset detected (%.3f)", name, result.DC))
	}
	if result.Peak > 1.0 {
		issues = append(issues, fmt.Sprintf("%s: peak exceeds 1.0 (%.3f)", name, result.Peak))
	}
	return issues
}

// Histogram counts samples of buffer into bins equal-width bins covering
// [lo, hi). Samples outside the range are dropped.
func Histogram(buffer []float32, bins int, lo, hi float32) []int {
	if bins <= 0 || hi <= lo {
		return nil
	}
	counts := make([]int, bins)
	width := (hi - lo) / float32(bins)
	for _, s := range buffer {
		if s < lo || s >= hi {
			continue
		}
		i := int((s - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}
	return counts
}

// Autocorrelation returns the normalized autocorrelation of buffer at lag.
// It is 1 for lag 0 and near 0 for uncorrelated noise.
func Autocorrelation(buffer []float32, lag int) float64 {
	if lag < 0 || lag >= len(buffer) {
		return 0
	}

	var mean float64
	for _, s := range buffer {
		mean += float64(s)
	}
	mean /= float64(len(buffer))

	var num, den float64
	for i, s := range buffer {
		d := float64(s) - mean
		den += d * d
		if i+lag < len(buffer) {
			num += d * (float64(buffer[i+lag]) - mean)
		}
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// SpectralFlatness estimates how evenly the energy of buffer is spread over
// frequency: the geometric over the arithmetic mean of the power spectrum.
// The spectrum is averaged over consecutive segments of segmentSize samples.
// White noise approaches 1, a pure tone approaches 0.
func SpectralFlatness(buffer []float32, segmentSize int) float64 {
	if segmentSize < 4 || len(buffer) < segmentSize {
		return 0
	}

	bins := segmentSize / 2
	power := make([]float64, bins)
	frame := make([]float64, segmentSize)
	segments := 0

	for start := 0; start+segmentSize <= len(buffer); start += segmentSize {
		for i := range frame {
			frame[i] = float64(buffer[start+i])
		}
		spectrum := fft.FFTReal(frame)
		// Skip DC; bins 1..N/2 carry the positive frequencies.
		for k := 1; k <= bins; k++ {
			m := cmplx.Abs(spectrum[k])
			power[k-1] += m * m
		}
		segments++
	}

	var logSum, sum float64
	for _, p := range power {
		p /= float64(segments)
		if p <= 0 {
			return 0
		}
		logSum += math.Log(p)
		sum += p
	}

	n := float64(len(power))
	return math.Exp(logSum/n) / (sum / n)
}

var defaultAnalyzer = NewAudioAnalyzer()

// AnalyzeBuffer performs analysis on a buffer using the default analyzer.
func AnalyzeBuffer(buffer []float32) AnalysisResult {
	return defaultAnalyzer.Analyze(buffer)
}

// LogBufferStats logs statistics about an audio buffer to the default logger.
func LogBufferStats(buffer []float32, name string) {
	result := defaultAnalyzer.Analyze(buffer)

	Info("buffer %q: %d samples, peak %.3f, rms %.3f, dc %.6f",
		name, result.Samples, result.Peak, result.RMS, result.DC)
	WarnIf(result.Clipping, "buffer %q: %d clipped samples", name, result.ClippedSamples)
	if result.HasNaN {
		Error("buffer %q: %d NaN values", name, result.NaNCount)
	}
}
