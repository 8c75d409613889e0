package midi

import (
	"sync"
	"sync/atomic"
)

// Ring hands messages from input goroutines to the audio thread. Producers
// are serialized by a mutex; the single consumer never locks and only
// touches atomic positions, so Pop and Drain are safe in the audio callback.
type Ring struct {
	mu   sync.Mutex // producers only
	data []Message
	mask uint64

	readPos  atomic.Uint64
	writePos atomic.Uint64
	dropped  atomic.Uint64
}

// NewRing creates a ring holding at least capacity messages.
func NewRing(capacity int) *Ring {
	if capacity < 2 {
		capacity = 2
	}
	size := nextPowerOf2(uint64(capacity))
	return &Ring{
		data: make([]Message, size),
		mask: size - 1,
	}
}

// Push queues m. It returns false and counts a drop when the ring is full.
func (r *Ring) Push(m Message) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	writePos := r.writePos.Load()
	readPos := r.readPos.Load()
	if writePos-readPos >= uint64(len(r.data)) {
		r.dropped.Add(1)
		return false
	}

	r.data[writePos&r.mask] = m
	r.writePos.Store(writePos + 1)
	return true
}

// Pop removes the oldest message. Consumer side only.
func (r *Ring) Pop() (Message, bool) {
	readPos := r.readPos.Load()
	if readPos == r.writePos.Load() {
		return Message{}, false
	}
	m := r.data[readPos&r.mask]
	r.readPos.Store(readPos + 1)
	return m, true
}

// Drain pops up to len(dst) messages into dst in arrival order and returns
// how many were written. Consumer side only.
func (r *Ring) Drain(dst []Message) int {
	readPos := r.readPos.Load()
	writePos := r.writePos.Load()

	n := 0
	for readPos != writePos && n < len(dst) {
		dst[n] = r.data[readPos&r.mask]
		readPos++
		n++
	}
	r.readPos.Store(readPos)
	return n
}

// Len returns the number of queued messages.
func (r *Ring) Len() int {
	return int(r.writePos.Load() - r.readPos.Load())
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int {
	return len(r.data)
}

// Dropped returns how many pushes failed because the ring was full.
func (r *Ring) Dropped() uint64 {
	return r.dropped.Load()
}

func nextPowerOf2(n uint64) uint64 {
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++
	return n
}
