package generator

// Combine returns every concatenation obtained by picking one fragment from each
// slot in order, in slot-major left-to-right order. Each slot is truncated to limit
// fragments before combining and the output never exceeds limit fragments.
//
// Zero slots yield a single empty fragment; any empty slot yields no fragments.
func Combine(slots [][]Fragment, limit int) []Fragment {
	acc := []Fragment{EmptyFragment()}
	for _, slot := range slots {
		slot = Truncate(slot, limit)
		if len(slot) == 0 {
			return nil
		}
		next := make([]Fragment, 0, min(len(acc)*len(slot), limit))
	fill:
		for _, prefix := range acc {
			for _, f := range slot {
				if len(next) == limit {
					break fill
				}
				next = append(next, prefix.Concat(f))
			}
		}
		acc = next
	}
	return acc
}
