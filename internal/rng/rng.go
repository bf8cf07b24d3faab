// Package rng is the single source of randomness for every game.
package rng

import (
	crand "crypto/rand"
	"errors"
	"math/big"
	"math/rand/v2"
	"sync"
)

// Source returns a uniformly distributed integer in [0, n). n must be positive.
type Source func(n int) int

// Secure is the default Source, backed by crypto/rand
func Secure(n int) int {
	if n <= 1 {
		return 0
	}
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		panic("rng: crypto/rand failed: " + err.Error())
	}
	return int(v.Int64())
}

// NewSeeded returns a reproducible Source for tests and replays
func NewSeeded(seed uint64) Source {
	var mu sync.Mutex
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return func(n int) int {
		if n <= 1 {
			return 0
		}
		mu.Lock()
		defer mu.Unlock()
		return r.IntN(n)
	}
}

// Scripted returns a Source that replays values in order (each taken modulo n), then wraps
func Scripted(values ...int) Source {
	var mu sync.Mutex
	i := 0
	return func(n int) int {
		if n <= 1 || len(values) == 0 {
			return 0
		}
		mu.Lock()
		defer mu.Unlock()
		v := values[i%len(values)]
		i++
		return ((v % n) + n) % n
	}
}

// Draw picks one candidate uniformly
func Draw[T any](src Source, candidates []T) T {
	return candidates[src(len(candidates))]
}

// Weighted is one entry of a weight table
type Weighted[T any] struct {
	Value  T
	Weight int
}

// ErrEmptyWeightTable is returned when no entry has positive weight
var ErrEmptyWeightTable = errors.New("weight table has no positive weights")

// DrawWeighted picks an entry with probability proportional to its weight
func DrawWeighted[T any](src Source, table []Weighted[T]) (T, error) {
	var zero T
	total := 0
	for _, w := range table {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	if total == 0 {
		return zero, ErrEmptyWeightTable
	}

	roll := src(total)
	for _, w := range table {
		if w.Weight <= 0 {
			continue
		}
		if roll < w.Weight {
			return w.Value, nil
		}
		roll -= w.Weight
	}
	return zero, ErrEmptyWeightTable
}

// Frames returns n cosmetic draws for a spin animation. They have no economic effect and must
// never be used to decide an outcome.
func Frames[T any](src Source, candidates []T, n int) []T {
	frames := make([]T, n)
	for i := range frames {
		frames[i] = Draw(src, candidates)
	}
	return frames
}
