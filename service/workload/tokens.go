package workload

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota
	integerCode
	nameCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	integerToken    = parsly.NewToken(integerCode, "Integer", &integerMatcher{})
	nameToken       = parsly.NewToken(nameCode, "Name", &nameMatcher{})
)

// integerMatcher matches an optionally negative decimal integer followed by a
// blank or the end of input
type integerMatcher struct{}

func (m *integerMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize
	if pos >= size {
		return 0
	}
	matched := 0
	if input[pos] == '-' {
		matched++
	}
	digits := 0
	for i := pos + matched; i < size; i++ {
		if !isDigit(input[i]) {
			break
		}
		digits++
	}
	if digits == 0 {
		return 0
	}
	matched += digits
	if end := pos + matched; end < size && !isBlank(input[end]) {
		return 0
	}
	return matched
}

// nameMatcher matches a run of non blank characters
type nameMatcher struct{}

func (m *nameMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize
	matched := 0
	for i := pos; i < size; i++ {
		if isBlank(input[i]) {
			break
		}
		matched++
	}
	return matched
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isBlank(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}
