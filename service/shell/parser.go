package shell

import (
	"fmt"

	"github.com/viant/parsly"
)

// Split breaks a command line into arguments the way a POSIX shell does for
// plain words and quoted strings.
func Split(line string) ([]string, error) {
	cursor := parsly.NewCursor("", []byte(line), 0)
	var args []string
	for {
		cursor.MatchOne(whitespaceToken)
		if cursor.Pos >= cursor.InputSize {
			return args, nil
		}
		matched := cursor.MatchOne(argumentToken)
		if matched.Code != argumentToken.Code {
			return nil, fmt.Errorf("%w: %v", ErrSyntax, cursor.NewError(argumentToken))
		}
		args = append(args, unquote(matched.Text(cursor)))
	}
}
