package lexer

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// Error is a fatal scanning diagnostic. Pos.Line is the line where the
// offending construct began.
type Error struct {
	Pos lexer.Position
	Msg string
	Err error
}

func (e *Error) Error() string {
	if e.Pos.Filename != "" {
		return fmt.Sprintf("%s:%d: %s", e.Pos.Filename, e.Pos.Line, e.Msg)
	}
	return fmt.Sprintf("%d. %s", e.Pos.Line, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}
