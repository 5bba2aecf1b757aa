package generator

// limiter caps the sum of fragments emitted across the repeat counts of a single
// exhaustive query. It is a value: each call returns the limiter to use next.
type limiter struct {
	remaining int
}

func newLimiter(budget int) limiter {
	return limiter{remaining: budget}
}

// limit returns the prefix of candidates that still fits in the budget.
func (l limiter) limit(candidates []Fragment) ([]Fragment, limiter) {
	if l.remaining <= 0 {
		return nil, l
	}
	kept := Truncate(candidates, l.remaining)
	return kept, limiter{remaining: l.remaining - len(kept)}
}
