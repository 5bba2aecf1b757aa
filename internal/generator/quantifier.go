package generator

import "fmt"

// Quantifier is a resolved repeat request: the pattern repeats between Min and Max
// times inclusive.
type Quantifier struct {
	Min int
	Max int
}

// ExactlyOne is the implicit quantifier of an unquantified sub-pattern.
func ExactlyOne() Quantifier {
	return mustQuantifier(1, 1)
}

// ZeroOrMore resolves `*` to {0, V}.
func ZeroOrMore(l Limits) Quantifier {
	return mustQuantifier(0, l.MaxRepeaterVariance)
}

// OneOrMore resolves `+` to {1, V+1}.
func OneOrMore(l Limits) Quantifier {
	return mustQuantifier(1, l.MaxRepeaterVariance+1)
}

// ZeroOrOne resolves `?` to {0, 1}.
func ZeroOrOne() Quantifier {
	return mustQuantifier(0, 1)
}

// Range resolves `{m,x}`; x is capped to m+V, so `{1,100}` behaves as `{1,3}` with
// the default variance.
func Range(m, x int, l Limits) Quantifier {
	return mustQuantifier(m, min(x, m+l.MaxRepeaterVariance))
}

// AtLeast resolves `{m,}` to {m, m+V}.
func AtLeast(m int, l Limits) Quantifier {
	return mustQuantifier(m, m+l.MaxRepeaterVariance)
}

// Exactly resolves `{m}` to {m, m}.
func Exactly(m int) Quantifier {
	return mustQuantifier(m, m)
}

// Validate reports whether the bounds are well formed.
func (q Quantifier) Validate() error {
	if q.Min < 0 {
		return fmt.Errorf("quantifier minimum %d is negative", q.Min)
	}
	if q.Min > q.Max {
		return fmt.Errorf("quantifier minimum %d exceeds maximum %d", q.Min, q.Max)
	}
	return nil
}

// String renders the quantifier in `{min,max}` form.
func (q Quantifier) String() string {
	return fmt.Sprintf("{%d,%d}", q.Min, q.Max)
}

// Malformed bounds come from a broken parser, so they panic instead of being clamped.
func mustQuantifier(lo, hi int) Quantifier {
	q := Quantifier{Min: lo, Max: hi}
	if err := q.Validate(); err != nil {
		panic("generator: " + err.Error())
	}
	return q
}
