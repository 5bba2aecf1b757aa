package generator

// Repeater applies a Quantifier to a sub-pattern. It is itself a Pattern, so
// repeaters nest.
type Repeater struct {
	sub    Pattern
	q      Quantifier
	limits Limits
}

var _ Pattern = (*Repeater)(nil)

// NewRepeater binds q to sub using the limits captured at resolution time.
// It panics when q is malformed.
func NewRepeater(sub Pattern, q Quantifier, limits Limits) *Repeater {
	if err := q.Validate(); err != nil {
		panic("generator: " + err.Error())
	}
	return &Repeater{sub: sub, q: q, limits: limits}
}

// AllMatches enumerates the sub-pattern repeated every count in [Min, Max].
// All repeat counts draw from one limiter budget of MaxGroupResults fragments,
// smallest count first.
func (r *Repeater) AllMatches() []Fragment {
	g := r.limits.MaxGroupResults
	group := Truncate(r.sub.AllMatches(), g)

	lim := newLimiter(g)
	var results []Fragment
	for repeats := r.q.Min; repeats <= r.q.Max; repeats++ {
		var candidate []Fragment
		if repeats == 0 {
			candidate = []Fragment{EmptyFragment()}
		} else {
			slots := make([][]Fragment, repeats)
			for i := range slots {
				slots[i] = group
			}
			candidate = Combine(slots, g)
		}

		var kept []Fragment
		kept, lim = lim.limit(candidate)
		results = append(results, kept...)
	}
	return Dedup(results)
}

// OneMatch draws a repeat count uniformly from [Min, Max] and concatenates that
// many independent samples of the sub-pattern.
func (r *Repeater) OneMatch(rng Rand) Fragment {
	repeats := r.q.Min
	if span := r.q.Max - r.q.Min; span > 0 {
		repeats += rng.IntN(span + 1)
	}
	if repeats == 0 {
		return EmptyFragment()
	}

	draws := make([]Fragment, repeats)
	for i := range draws {
		draws[i] = r.sub.OneMatch(rng)
	}
	return Concat(draws)
}
