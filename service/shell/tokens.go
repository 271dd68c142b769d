package shell

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceCode = iota
	argumentCode
)

var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	argumentToken   = parsly.NewToken(argumentCode, "Argument", &argumentMatcher{})
)

// argumentMatcher matches a run of non blank bytes where single or double
// quoted sections may contain blanks. An unterminated quote does not match.
type argumentMatcher struct{}

func (m *argumentMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	matched := 0
	var quote byte
	for i := pos; i < size; i++ {
		c := input[i]
		switch {
		case quote != 0:
			if c == '\\' && quote == '"' && i+1 < size {
				i++
				matched += 2
				continue
			}
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case isBlank(c):
			return matched
		}
		matched++
	}
	if quote != 0 {
		return 0
	}
	return matched
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// unquote removes quotes; inside double quotes a backslash escapes the next byte
func unquote(text string) string {
	ret := make([]byte, 0, len(text))
	var quote byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote == 0 && (c == '\'' || c == '"'):
			quote = c
		case quote != 0 && c == quote:
			quote = 0
		case quote == '"' && c == '\\' && i+1 < len(text):
			i++
			ret = append(ret, text[i])
		default:
			ret = append(ret, c)
		}
	}
	return string(ret)
}
