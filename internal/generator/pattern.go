package generator

// Rand is the random source used for sampling. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Pattern is implemented by every resolved sub-pattern: literals, classes, groups,
// alternations and repeaters alike.
type Pattern interface {
	// AllMatches returns the exhaustive, possibly truncated, list of fragments the
	// pattern produces.
	AllMatches() []Fragment

	// OneMatch returns one freshly sampled fragment.
	OneMatch(r Rand) Fragment
}
