package debug

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Profiler records timing statistics for named sections. Recording takes a
// lock, so it is only used on the audio thread when profiling is requested.
type Profiler struct {
	mu           sync.RWMutex
	measurements map[string]*Measurement
	enabled      atomic.Bool
	maxSamples   int
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	name        string
	count       uint64
	totalTime   time.Duration
	minTime     time.Duration
	maxTime     time.Duration
	lastTime    time.Duration
	samples     []time.Duration
	sampleIndex int
}

// NewProfiler creates a new profiler keeping the last maxSamples timings of
// each section for percentiles.
func NewProfiler(maxSamples int) *Profiler {
	if maxSamples < 1 {
		maxSamples = 1
	}
	p := &Profiler{
		measurements: make(map[string]*Measurement),
		maxSamples:   maxSamples,
	}
	p.enabled.Store(true)
	return p
}

// SetEnabled enables or disables profiling.
func (p *Profiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// IsEnabled returns whether profiling is enabled.
func (p *Profiler) IsEnabled() bool {
	return p.enabled.Load()
}

// Record stores one timing for name.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	if !p.enabled.Load() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	m, exists := p.measurements[name]
	if !exists {
		m = &Measurement{
			name:    name,
			minTime: elapsed,
			maxTime: elapsed,
			samples: make([]time.Duration, p.maxSamples),
		}
		p.measurements[name] = m
	}

	m.count++
	m.totalTime += elapsed
	m.lastTime = elapsed
	m.minTime = min(m.minTime, elapsed)
	m.maxTime = max(m.maxTime, elapsed)

	m.samples[m.sampleIndex] = elapsed
	m.sampleIndex = (m.sampleIndex + 1) % len(m.samples)
}

// Time measures the execution time of fn.
func (p *Profiler) Time(name string, fn func()) {
	if !p.enabled.Load() {
		fn()
		return
	}
	start := time.Now()
	fn()
	p.Record(name, time.Since(start))
}

// GetMeasurement returns a copy of the measurement for a named section.
func (p *Profiler) GetMeasurement(name string) (*Measurement, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	m, exists := p.measurements[name]
	if !exists {
		return nil, false
	}
	return m.clone(), true
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.measurements = make(map[string]*Measurement)
}

// Report generates a performance report with sections in name order.
func (p *Profiler) Report() string {
	p.mu.RLock()
	names := make([]string, 0, len(p.measurements))
	for name := range p.measurements {
		names = append(names, name)
	}
	p.mu.RUnlock()

	if len(names) == 0 {
		return "No measurements recorded"
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("Performance Report:\n")
	for _, name := range names {
		m, ok := p.GetMeasurement(name)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%s: count %d, avg %v, min %v, max %v, p99 %v\n",
			name, m.count, m.Average(), m.minTime, m.maxTime, m.Percentile(99))
	}
	return sb.String()
}

func (m *Measurement) clone() *Measurement {
	c := *m
	c.samples = slices.Clone(m.samples)
	return &c
}

// Count returns how many timings were recorded.
func (m *Measurement) Count() uint64 {
	return m.count
}

// Max returns the longest recorded timing.
func (m *Measurement) Max() time.Duration {
	return m.maxTime
}

// Average returns the average time for this measurement.
func (m *Measurement) Average() time.Duration {
	if m.count == 0 {
		return 0
	}
	return m.totalTime / time.Duration(m.count)
}

// Percentile returns the p-th percentile (0-100) of the retained timings.
func (m *Measurement) Percentile(p float64) time.Duration {
	n := len(m.samples)
	if uint64(n) > m.count {
		n = int(m.count)
	}
	if n == 0 {
		return 0
	}

	recent := slices.Clone(m.samples[:n])
	slices.Sort(recent)

	p = min(max(p, 0), 100)
	return recent[int(float64(n-1)*p/100)]
}

// ProcessSection is the section name AudioProcessProfiler measures.
const ProcessSection = "process"

// AudioProcessProfiler relates block processing time to the real-time
// budget of a block.
type AudioProcessProfiler struct {
	*Profiler
	bufferSize     int
	sampleRate     float64
	cpuLoadPercent atomic.Uint64
}

// NewAudioProcessProfiler creates a profiler specialized for audio processing.
func NewAudioProcessProfiler(sampleRate float64, bufferSize int) *AudioProcessProfiler {
	return &AudioProcessProfiler{
		Profiler:   NewProfiler(1000),
		sampleRate: sampleRate,
		bufferSize: bufferSize,
	}
}

// RecordBlock stores the processing time of one block.
func (a *AudioProcessProfiler) RecordBlock(elapsed time.Duration) {
	a.Record(ProcessSection, elapsed)
}

// BlockDuration returns the real-time length of one block.
func (a *AudioProcessProfiler) BlockDuration() time.Duration {
	if a.sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(a.bufferSize) * float64(time.Second) / a.sampleRate)
}

// UpdateCPULoad calculates and stores the CPU load percentage.
func (a *AudioProcessProfiler) UpdateCPULoad() {
	m, exists := a.GetMeasurement(ProcessSection)
	budget := a.BlockDuration()
	if !exists || m.count == 0 || budget == 0 {
		return
	}

	cpuLoad := float64(m.Average()) / float64(budget) * 100.0
	// Two decimal places of fixed point
	a.cpuLoadPercent.Store(uint64(cpuLoad * 100))
}

// GetCPULoad returns the last computed CPU load percentage.
func (a *AudioProcessProfiler) GetCPULoad() float64 {
	return float64(a.cpuLoadPercent.Load()) / 100.0
}

// AudioReport generates an audio-specific performance report.
func (a *AudioProcessProfiler) AudioReport() string {
	a.UpdateCPULoad()

	var sb strings.Builder
	sb.WriteString(a.Report())
	fmt.Fprintf(&sb, "Sample rate %.0f Hz, block %d frames (%v), CPU load %.2f%%\n",
		a.sampleRate, a.bufferSize, a.BlockDuration(), a.GetCPULoad())
	return sb.String()
}
