package node

import (
	"sort"
	"unicode/utf8"

	"github.com/KromDaniel/regexamples/internal/generator"
)

// preferred lists printable ASCII in the order examples are drawn from it:
// letters and digits first, so `.` and `\w` start with readable output.
var preferred = func() []rune {
	var out []rune
	for r := 'a'; r <= 'z'; r++ {
		out = append(out, r)
	}
	for r := 'A'; r <= 'Z'; r++ {
		out = append(out, r)
	}
	for r := '0'; r <= '9'; r++ {
		out = append(out, r)
	}
	out = append(out, '_', ' ')
	for r := rune(0x21); r <= 0x7E; r++ {
		if isASCIILetterOrDigit(r) || r == '_' {
			continue
		}
		out = append(out, r)
	}
	return out
}()

func isASCIILetterOrDigit(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isPrintableASCII(r rune) bool {
	return r >= 0x20 && r <= 0x7E
}

type charClass struct {
	ranges    []rune // sorted lo, hi pairs as produced by regexp/syntax
	printable []rune // members that are printable ASCII, in preferred order
	limit     int
}

// CharClass matches one rune from ranges, given as sorted lo, hi pairs.
// Printable ASCII members come first in the exhaustive list.
func CharClass(ranges []rune, limit int) generator.Pattern {
	c := charClass{ranges: ranges, limit: limit}
	for _, r := range preferred {
		if c.contains(r) {
			c.printable = append(c.printable, r)
		}
	}
	return c
}

// AnyChar matches any printable ASCII character, plus newline when
// includeNewline is set.
func AnyChar(includeNewline bool, limit int) generator.Pattern {
	ranges := []rune{0x20, 0x7E}
	if includeNewline {
		ranges = []rune{'\n', '\n', 0x20, 0x7E}
	}
	return CharClass(ranges, limit)
}

// RuneSet matches one of runes.
func RuneSet(runes []rune, limit int) generator.Pattern {
	sorted := append([]rune(nil), runes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	ranges := make([]rune, 0, 2*len(sorted))
	for _, r := range sorted {
		n := len(ranges)
		if n > 0 && ranges[n-1]+1 >= r {
			ranges[n-1] = max(ranges[n-1], r)
			continue
		}
		ranges = append(ranges, r, r)
	}
	return CharClass(ranges, limit)
}

func (c charClass) contains(r rune) bool {
	i := sort.Search(len(c.ranges)/2, func(i int) bool { return c.ranges[2*i+1] >= r })
	return i < len(c.ranges)/2 && c.ranges[2*i] <= r
}

func (c charClass) AllMatches() []generator.Fragment {
	out := make([]generator.Fragment, 0, c.limit)
	for _, r := range c.printable {
		if len(out) == c.limit {
			return out
		}
		out = append(out, generator.NewFragment(string(r)))
	}
	for i := 0; i+1 < len(c.ranges); i += 2 {
		for r := c.ranges[i]; r <= c.ranges[i+1]; r++ {
			if len(out) == c.limit {
				return out
			}
			if isPrintableASCII(r) || !utf8.ValidRune(r) {
				continue
			}
			out = append(out, generator.NewFragment(string(r)))
		}
	}
	return out
}

func (c charClass) OneMatch(rng generator.Rand) generator.Fragment {
	if len(c.printable) > 0 {
		return generator.NewFragment(string(c.printable[rng.IntN(len(c.printable))]))
	}

	total := 0
	for i := 0; i+1 < len(c.ranges); i += 2 {
		total += int(c.ranges[i+1]-c.ranges[i]) + 1
	}
	if total == 0 {
		return generator.EmptyFragment()
	}

	n := rng.IntN(total)
	for i := 0; i+1 < len(c.ranges); i += 2 {
		size := int(c.ranges[i+1]-c.ranges[i]) + 1
		if n < size {
			r := c.ranges[i] + rune(n)
			if !utf8.ValidRune(r) {
				r = c.ranges[i]
			}
			return generator.NewFragment(string(r))
		}
		n -= size
	}
	return generator.EmptyFragment()
}
