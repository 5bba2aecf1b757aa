// Package backref encodes back-reference placeholders into generated text and
// substitutes them with captured group text once generation is done.
package backref

import (
	"strings"
	"unicode/utf8"
)

// PlaceholderBase is the first rune of the placeholder range. Group n is encoded
// as PlaceholderBase+n, which lives in supplementary private use area B.
const PlaceholderBase rune = 0x100000

// MaxGroup is the largest group index a placeholder can encode.
const MaxGroup = 0xFFFD

// Placeholder returns the text standing in for a reference to group index.
func Placeholder(index int) string {
	return string(PlaceholderBase + rune(index))
}

// GroupOf reports the group index encoded by r, if r is a placeholder.
func GroupOf(r rune) (int, bool) {
	if r < PlaceholderBase || r > PlaceholderBase+MaxGroup {
		return 0, false
	}
	return int(r - PlaceholderBase), true
}

// HasPlaceholder reports whether text contains any placeholder.
func HasPlaceholder(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool {
		_, ok := GroupOf(r)
		return ok
	}) >= 0
}

// SegmentType indicates the type of segment in a parsed text.
type SegmentType int

const (
	// SegmentLiteral represents literal text.
	SegmentLiteral SegmentType = iota
	// SegmentGroupRef represents a reference to a capture group by index.
	SegmentGroupRef
)

// Segment represents a parsed segment of generated text.
type Segment struct {
	Type    SegmentType
	Literal string // For SegmentLiteral: the literal text
	Group   int    // For SegmentGroupRef: 1-based group index
}

// Template is generated text split around its placeholders.
type Template struct {
	Original string
	Segments []Segment
}

// Parse splits text into literal and group reference segments.
func Parse(text string) *Template {
	result := &Template{
		Original: text,
		Segments: make([]Segment, 0),
	}

	literalStart := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		group, ok := GroupOf(r)
		if !ok {
			i += size
			continue
		}

		if i > literalStart {
			result.Segments = append(result.Segments, Segment{
				Type:    SegmentLiteral,
				Literal: text[literalStart:i],
			})
		}
		result.Segments = append(result.Segments, Segment{
			Type:  SegmentGroupRef,
			Group: group,
		})
		i += size
		literalStart = i
	}

	if len(text) > literalStart {
		result.Segments = append(result.Segments, Segment{
			Type:    SegmentLiteral,
			Literal: text[literalStart:],
		})
	}

	return result
}

// HasRefs reports whether the template references any group.
func (t *Template) HasRefs() bool {
	for _, seg := range t.Segments {
		if seg.Type == SegmentGroupRef {
			return true
		}
	}
	return false
}

// Expand renders the template, replacing each group reference with lookup(group).
func (t *Template) Expand(lookup func(group int) string) string {
	var b strings.Builder
	b.Grow(len(t.Original))
	for _, seg := range t.Segments {
		switch seg.Type {
		case SegmentLiteral:
			b.WriteString(seg.Literal)
		case SegmentGroupRef:
			b.WriteString(lookup(seg.Group))
		}
	}
	return b.String()
}
