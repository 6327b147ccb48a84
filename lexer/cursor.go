// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Character cursor shared by every scanning routine.
// Tracks the line number, one character of lookahead and the last
// significant character, and echoes consumed characters to the sink.

package lexer

import (
	"bufio"
	"io"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// EOF is returned by Get and Peek once the source is exhausted.
const EOF = -1

// Cursor is the scanning state for one pass over one input stream.
type Cursor struct {
	in  io.ByteReader
	out *bufio.Writer

	filename string
	line     int
	cr       bool

	preview    int
	hasPreview bool
	readErr    error
	last       int

	// Left is the most recent significant character to the left of the
	// current position. Zero means none.
	Left int
}

// NewCursor reads from r and echoes to w. The filename is only used in
// diagnostics.
func NewCursor(filename string, r io.Reader, w io.Writer) *Cursor {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}
	return &Cursor{in: br, out: bw, filename: filename, line: 1, last: EOF}
}

// Line is the current 1-based line number.
func (c *Cursor) Line() int {
	return c.line
}

// Pos returns the position of line in the cursor's source.
func (c *Cursor) Pos(line int) lexer.Position {
	return lexer.Position{Filename: c.filename, Line: line}
}

// Lines counts the lines consumed so far. A trailing line break does not
// start a new line.
func (c *Cursor) Lines() int {
	if c.last == EOF || c.last == '\n' || c.last == '\r' {
		return c.line - 1
	}
	return c.line
}

// read returns EOF at the end of the source and after a failed read; the
// failure is kept and reported by Get.
func (c *Cursor) read() int {
	if c.readErr != nil {
		return EOF
	}
	b, err := c.in.ReadByte()
	if err != nil {
		if err != io.EOF {
			c.readErr = err
		}
		return EOF
	}
	return int(b)
}

// Peek returns the next character without consuming it.
func (c *Cursor) Peek() int {
	if !c.hasPreview {
		c.preview = c.read()
		c.hasPreview = true
	}
	return c.preview
}

// Get consumes the next character, counting lines as it goes. When echo is
// set the character is also written to the output.
func (c *Cursor) Get(echo bool) (int, error) {
	var ch int
	if c.hasPreview {
		ch = c.preview
		c.hasPreview = false
	} else {
		ch = c.read()
	}
	if ch == EOF {
		if c.readErr != nil {
			return EOF, &Error{Pos: c.Pos(c.line), Msg: "read error.", Err: errors.Wrap(c.readErr, "read error")}
		}
		return EOF, nil
	}
	c.last = ch
	if ch == '\r' {
		c.cr = true
		c.line++
	} else {
		// CR LF is one line.
		if ch == '\n' && !c.cr {
			c.line++
		}
		c.cr = false
	}
	if echo {
		if err := c.Emit(ch); err != nil {
			return ch, err
		}
	}
	return ch, nil
}

// Emit writes one character to the output.
func (c *Cursor) Emit(ch int) error {
	if ch == EOF {
		return nil
	}
	if err := c.out.WriteByte(byte(ch)); err != nil {
		return c.writeError(err)
	}
	return nil
}

// Emits writes a string to the output.
func (c *Cursor) Emits(s string) error {
	if _, err := c.out.WriteString(s); err != nil {
		return c.writeError(err)
	}
	return nil
}

// Flush pushes buffered output to the underlying writer.
func (c *Cursor) Flush() error {
	if err := c.out.Flush(); err != nil {
		return c.writeError(err)
	}
	return nil
}

func (c *Cursor) writeError(err error) error {
	return &Error{Pos: c.Pos(c.line), Msg: "write error.", Err: errors.Wrap(err, "write error")}
}

// ErrorAt builds a diagnostic at the given line.
func (c *Cursor) ErrorAt(line int, msg string) error {
	return &Error{Pos: c.Pos(line), Msg: msg}
}
