package booking

import "math/rand/v2"

// Source is the randomness the booking flow draws from. *rand.Rand from
// math/rand/v2 satisfies it, so tests can pass a seeded generator.
type Source interface {
	Float64() float64
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

// DefaultSource reads the process-wide generator and is safe for concurrent use.
var DefaultSource Source = globalSource{}
