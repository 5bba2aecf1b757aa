package backref

import "github.com/KromDaniel/regexamples/internal/generator"

// maxDepth bounds how deeply captured text is re-expanded. A group can only refer
// to groups that closed before the reference, so real chains are short.
const maxDepth = 32

// Substitute renders f with every placeholder replaced by the text its group
// captured. The last capture of a group wins, matching regex semantics under
// repetition; a group that captured nothing renders as the empty string.
func Substitute(f generator.Fragment) string {
	if !HasPlaceholder(f.Text()) {
		return f.Text()
	}
	t := Parse(f.Text())

	captures := make(map[int]string)
	for _, c := range f.Captures() {
		captures[c.Index] = c.Text
	}
	return expand(t, captures, 0)
}

func expand(t *Template, captures map[int]string, depth int) string {
	return t.Expand(func(group int) string {
		text, ok := captures[group]
		if !ok || depth >= maxDepth {
			return ""
		}
		inner := Parse(text)
		if !inner.HasRefs() {
			return text
		}
		return expand(inner, captures, depth+1)
	})
}

// SubstituteAll renders every fragment and drops results that become duplicates
// after substitution, keeping first-seen order.
func SubstituteAll(fragments []generator.Fragment) []string {
	seen := make(map[string]struct{}, len(fragments))
	out := make([]string, 0, len(fragments))
	for _, f := range fragments {
		s := Substitute(f)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
