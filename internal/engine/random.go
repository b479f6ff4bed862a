package engine

// IntSource supplies uniform random integers. *rand.Rand satisfies it.
type IntSource interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

// randomWithRange returns a uniform integer in [lo, hi], inclusive.
func randomWithRange(rng IntSource, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
