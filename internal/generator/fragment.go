// Package generator implements bounded example generation for resolved regex trees:
// result fragments, the result limiter, the combination composer and repeat resolution.
package generator

import (
	"strconv"
	"strings"
)

// Capture records the text a capture group produced inside a fragment.
type Capture struct {
	Index int    // 1-based group index
	Name  string // group name, empty for unnamed groups
	Text  string // captured text, may still contain back-reference placeholders
}

// Fragment is an immutable piece of generated output along with the captures
// recorded while producing it.
type Fragment struct {
	text     string
	captures []Capture
}

// NewFragment returns a fragment holding text and no captures.
func NewFragment(text string) Fragment {
	return Fragment{text: text}
}

// EmptyFragment returns the identity element for Concat.
func EmptyFragment() Fragment {
	return Fragment{}
}

// Text returns the rendered text of the fragment.
func (f Fragment) Text() string {
	return f.text
}

// Captures returns a copy of the captures recorded in the fragment, in the order
// their groups closed.
func (f Fragment) Captures() []Capture {
	if len(f.captures) == 0 {
		return nil
	}
	out := make([]Capture, len(f.captures))
	copy(out, f.captures)
	return out
}

// Concat returns f followed by other.
func (f Fragment) Concat(other Fragment) Fragment {
	if len(other.captures) == 0 {
		return Fragment{text: f.text + other.text, captures: f.captures}
	}
	if len(f.captures) == 0 {
		return Fragment{text: f.text + other.text, captures: other.captures}
	}
	captures := make([]Capture, 0, len(f.captures)+len(other.captures))
	captures = append(captures, f.captures...)
	captures = append(captures, other.captures...)
	return Fragment{text: f.text + other.text, captures: captures}
}

// Captured returns a copy of f that additionally records its whole text as the
// capture for the given group.
func (f Fragment) Captured(index int, name string) Fragment {
	captures := make([]Capture, 0, len(f.captures)+1)
	captures = append(captures, f.captures...)
	captures = append(captures, Capture{Index: index, Name: name, Text: f.text})
	return Fragment{text: f.text, captures: captures}
}

// Equal reports whether f and other have the same text and capture structure.
func (f Fragment) Equal(other Fragment) bool {
	if f.text != other.text || len(f.captures) != len(other.captures) {
		return false
	}
	for i := range f.captures {
		if f.captures[i] != other.captures[i] {
			return false
		}
	}
	return true
}

// Key renders f into a string that is equal for two fragments exactly when
// Equal reports true.
func (f Fragment) Key() string {
	if len(f.captures) == 0 {
		return strconv.Quote(f.text)
	}
	var b strings.Builder
	b.WriteString(strconv.Quote(f.text))
	for _, c := range f.captures {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(c.Index))
		b.WriteByte(':')
		b.WriteString(strconv.Quote(c.Name))
		b.WriteByte('=')
		b.WriteString(strconv.Quote(c.Text))
	}
	return b.String()
}

// Concat joins fragments left to right.
func Concat(fragments []Fragment) Fragment {
	out := EmptyFragment()
	for _, f := range fragments {
		out = out.Concat(f)
	}
	return out
}

// Dedup removes fragments equal to an earlier one, keeping first-seen order.
func Dedup(fragments []Fragment) []Fragment {
	seen := make(map[string]struct{}, len(fragments))
	out := make([]Fragment, 0, len(fragments))
	for _, f := range fragments {
		k := f.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, f)
	}
	return out
}

// Truncate returns at most n leading fragments.
func Truncate(fragments []Fragment, n int) []Fragment {
	if len(fragments) <= n {
		return fragments
	}
	return fragments[:n]
}

// Texts returns the rendered text of each fragment.
func Texts(fragments []Fragment) []string {
	out := make([]string, len(fragments))
	for i, f := range fragments {
		out[i] = f.text
	}
	return out
}
