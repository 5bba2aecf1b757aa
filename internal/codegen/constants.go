// Package codegen provides code generation helpers and constants.
package codegen

import (
	"strings"
	"unicode"
)

// Identifier suffixes and names used in generated fixture code
const (
	PatternSuffix  = "Pattern"
	ExamplesSuffix = "Examples"
	TestPrefix     = "Test"
	TestingName    = "t"
	RegexpName     = "re"
	ExampleName    = "example"
)

// PatternName returns the identifier of the pattern constant for name.
func PatternName(name string) string {
	return name + PatternSuffix
}

// ExamplesName returns the identifier of the examples variable for name.
func ExamplesName(name string) string {
	return name + ExamplesSuffix
}

// TestName returns the name of the generated test function for name.
func TestName(name string) string {
	return TestPrefix + ExamplesName(name)
}

// UpperFirst converts the first character of a string to uppercase.
// Only ASCII letters are changed.
func UpperFirst(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}

// Identifier turns name into an exported Go identifier: characters that cannot
// appear in an identifier act as word breaks and each word is capitalised.
// It returns "" when nothing usable remains.
func Identifier(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !(r < 0x80 && (unicode.IsLetter(r) || unicode.IsDigit(r)))
	})
	var b strings.Builder
	for _, w := range words {
		b.WriteString(UpperFirst(w))
	}
	id := b.String()
	if id == "" {
		return ""
	}
	if id[0] >= '0' && id[0] <= '9' {
		id = "X" + id
	}
	return id
}
