// Package randsrc is the random source used for cosmetic jitter and
// template selection. Tests swap in a seeded or fixed source.
package randsrc

import (
	"math/rand"
	"sync"
)

type Source interface {
	Intn(n int) int
	Float64() float64
}

// Global returns a source backed by the math/rand top-level functions,
// safe for concurrent use.
func Global() Source { return global{} }

type global struct{}

func (global) Intn(n int) int   { return rand.Intn(n) }
func (global) Float64() float64 { return rand.Float64() }

// Seeded returns a deterministic source guarded by a mutex.
func Seeded(seed int64) Source {
	return &locked{r: rand.New(rand.NewSource(seed))}
}

type locked struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *locked) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}
