package resolve

import (
	"fmt"
	"strconv"
	"strings"
)

// markerBase is the first rune used to smuggle a back-reference through
// regexp/syntax, which has no back-reference syntax of its own. The i-th
// reference in the pattern becomes the literal rune markerBase+i.
const markerBase rune = 0xF0000

// maxRefs is how many markers fit in supplementary private use area A.
const maxRefs = 0xFFFD

// reference is one back-reference found in the pattern text.
type reference struct {
	Index int    // numeric group, 0 for named references
	Name  string // group name for \k<name> and (?P=name)
}

func (r reference) String() string {
	if r.Name != "" {
		return `\k<` + r.Name + `>`
	}
	return `\` + strconv.Itoa(r.Index)
}

// markerIndex reports which reference r stands for.
func markerIndex(r rune, refs []reference) (int, bool) {
	if r < markerBase || r >= markerBase+rune(len(refs)) {
		return 0, false
	}
	return int(r - markerBase), true
}

// rewriteBackrefs replaces \N, \k<name> and (?P=name) outside character classes
// and \Q...\E quoting with marker escapes, returning the rewritten pattern and the
// references in order of appearance.
func rewriteBackrefs(pattern string) (string, []reference, error) {
	var (
		b       strings.Builder
		refs    []reference
		inClass bool
	)
	b.Grow(len(pattern))

	emit := func(ref reference) error {
		if len(refs) >= maxRefs {
			return fmt.Errorf("too many back-references (max %d)", maxRefs)
		}
		fmt.Fprintf(&b, `\x{%X}`, markerBase+rune(len(refs)))
		refs = append(refs, ref)
		return nil
	}

	for i := 0; i < len(pattern); {
		c := pattern[i]

		switch {
		case c == '\\' && i+1 < len(pattern):
			next := pattern[i+1]
			switch {
			case next == 'Q':
				end := strings.Index(pattern[i+2:], `\E`)
				if end < 0 {
					b.WriteString(pattern[i:])
					return b.String(), refs, nil
				}
				b.WriteString(pattern[i : i+2+end+2])
				i += 2 + end + 2

			case !inClass && next >= '1' && next <= '9':
				j := i + 1
				for j < len(pattern) && pattern[j] >= '0' && pattern[j] <= '9' {
					j++
				}
				n, err := strconv.Atoi(pattern[i+1 : j])
				if err != nil {
					return "", nil, fmt.Errorf("invalid back-reference %q: %w", pattern[i:j], err)
				}
				if err := emit(reference{Index: n}); err != nil {
					return "", nil, err
				}
				i = j

			case !inClass && next == 'k' && i+2 < len(pattern) && pattern[i+2] == '<':
				end := strings.IndexByte(pattern[i+3:], '>')
				if end <= 0 {
					return "", nil, fmt.Errorf("unterminated named back-reference at position %d", i)
				}
				if err := emit(reference{Name: pattern[i+3 : i+3+end]}); err != nil {
					return "", nil, err
				}
				i += 3 + end + 1

			default:
				b.WriteByte(c)
				b.WriteByte(next)
				i += 2
			}

		case !inClass && strings.HasPrefix(pattern[i:], "(?P="):
			end := strings.IndexByte(pattern[i+4:], ')')
			if end <= 0 {
				return "", nil, fmt.Errorf("unterminated named back-reference at position %d", i)
			}
			if err := emit(reference{Name: pattern[i+4 : i+4+end]}); err != nil {
				return "", nil, err
			}
			i += 4 + end + 1

		case !inClass && c == '[':
			inClass = true
			b.WriteByte(c)
			i++
			// A leading ] (after an optional ^) is a literal member.
			if i < len(pattern) && pattern[i] == '^' {
				b.WriteByte('^')
				i++
			}
			if i < len(pattern) && pattern[i] == ']' {
				b.WriteByte(']')
				i++
			}

		case inClass && strings.HasPrefix(pattern[i:], "[:"):
			end := strings.Index(pattern[i+2:], ":]")
			if end < 0 {
				b.WriteByte(c)
				i++
				continue
			}
			b.WriteString(pattern[i : i+2+end+2])
			i += 2 + end + 2

		case inClass && c == ']':
			inClass = false
			b.WriteByte(c)
			i++

		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String(), refs, nil
}
