// Package random provides the uniform random source used by the raffle.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// Source yields uniform floats in [0, 1).
type Source interface {
	Float64() float64
}

// lockedSource makes a *rand.Rand safe to share between request handlers.
type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// New returns a Source seeded with seed. Equal seeds yield equal sequences.
func New(seed int64) Source {
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Fixed replays the given values in order, wrapping around at the end.
// It is meant for tests that need exact draws.
type Fixed struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewFixed returns a Fixed source over values.
func NewFixed(values ...float64) *Fixed {
	return &Fixed{values: values}
}

func (f *Fixed) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}
