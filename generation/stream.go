package generation

import (
	"math/rand"
)

// Stream is the single reproducible random stream of one generation run.
// It counts draws so a run can be replayed to an exact position.
//
// A Stream is not safe for concurrent use. Each run owns its own.
type Stream struct {
	seed uint64
	rng  *rand.Rand
	pos  int64
}

// NewStream creates a stream for a resolved seed
func NewStream(seed Seed) *Stream {
	return NewStreamFromInt(seed.Value)
}

// NewStreamFromInt creates a stream directly from an integer seed
func NewStreamFromInt(value uint64) *Stream {
	return &Stream{
		seed: value,
		rng:  rand.New(rand.NewSource(int64(value))),
	}
}

// RestoreStream recreates a stream and advances it to position draws
func RestoreStream(value uint64, position int64) *Stream {
	s := NewStreamFromInt(value)
	for s.pos < position {
		s.Uint64()
	}
	return s
}

// Seed returns the integer the stream was created from
func (s *Stream) Seed() uint64 {
	return s.seed
}

// Position returns the number of draws taken so far
func (s *Stream) Position() int64 {
	return s.pos
}

// Uint64 draws a raw 64-bit value
func (s *Stream) Uint64() uint64 {
	s.pos++
	return s.rng.Uint64()
}

// Intn draws an int in [0, n). n <= 0 returns 0 but still consumes a draw so
// the sequence does not depend on the argument.
func (s *Stream) Intn(n int) int {
	v := s.Uint64()
	if n <= 0 {
		return 0
	}
	return int(v % uint64(n))
}

// IntRange draws an int in [lo, hi], inclusive on both ends
func (s *Stream) IntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + s.Intn(hi-lo+1)
}

// Float64 draws a float in [0, 1)
func (s *Stream) Float64() float64 {
	return float64(s.Uint64()>>11) / (1 << 53)
}

// Chance draws once and reports whether the draw fell under p
func (s *Stream) Chance(p float64) bool {
	return s.Float64() < p
}

// Shuffle permutes n elements with a Fisher-Yates pass, drawing exactly n-1
// times from the last index down
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		swap(i, j)
	}
}
