// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Pattern expansion over a JavaScript source stream.
// The source is copied verbatim except for slashstar comments whose leading
// identifier is a declared trigger; those are replaced by executable blocks.

package preprocessor

import (
	"io"
	"strings"

	"jsdev/commands"
	"jsdev/lexer"
	"jsdev/renderer"

	"github.com/sirupsen/logrus"
)

// Options tune a single run.
type Options struct {
	// Filename is reported in diagnostics. Empty for stdin.
	Filename string
	// Banners are written as line comments before the program.
	Banners []string
	Log     logrus.FieldLogger
}

// Stats describe a finished run.
type Stats struct {
	Lines      int
	Expansions int
}

type engine struct {
	cur   *lexer.Cursor
	table *commands.Table
	log   logrus.FieldLogger
	stats Stats
}

// Process copies r to w, expanding every pattern found in table. Output
// written before a fatal error is flushed and stands.
func Process(r io.Reader, w io.Writer, table *commands.Table, opts Options) (Stats, error) {
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	e := &engine{
		cur:   lexer.NewCursor(opts.Filename, r, w),
		table: table,
		log:   log.WithField("file", opts.Filename),
	}

	err := InsertBanner(e.cur, opts.Banners)
	if err == nil {
		err = e.run()
	}
	if ferr := e.cur.Flush(); err == nil {
		err = ferr
	}
	e.stats.Lines = e.cur.Lines()
	return e.stats, err
}

// ProcessString runs Process over an in-memory source.
func ProcessString(source string, table *commands.Table) (string, error) {
	var out strings.Builder
	_, err := Process(strings.NewReader(source), &out, table, Options{})
	return out.String(), err
}

// InsertBanner writes one line comment per banner.
func InsertBanner(c *lexer.Cursor, banners []string) error {
	for _, b := range banners {
		if err := c.Emits(renderer.Banner(b)); err != nil {
			return err
		}
	}
	return nil
}

func (e *engine) run() error {
	c := e.cur
	for {
		ch, err := c.Get(false)
		if err != nil {
			return err
		}
		if ch == lexer.EOF {
			return nil
		}
		switch {
		case lexer.IsQuote(ch):
			if err = c.Emit(ch); err == nil {
				err = c.SkipString(ch, false)
			}
			c.Left = ch
		case ch == '/':
			// A slash is division, a regexp, a line comment or a block
			// comment, and a block comment may be a pattern.
			switch c.Peek() {
			case '/':
				err = e.lineComment()
			case '*':
				err = e.blockComment()
			default:
				err = e.slash()
			}
		default:
			err = c.Emit(ch)
			if lexer.IsSignificant(ch) {
				c.Left = ch
			}
		}
		if err != nil {
			return err
		}
	}
}

// slash handles a lone slash at the top level.
func (e *engine) slash() error {
	c := e.cur
	if err := c.Emit('/'); err != nil {
		return err
	}
	if lexer.PreRegexp(c.Left) {
		if err := c.SkipRegex(false); err != nil {
			return err
		}
	}
	c.Left = '/'
	return nil
}

// lineComment echoes through the end of the line.
func (e *engine) lineComment() error {
	c := e.cur
	if err := c.Emit('/'); err != nil {
		return err
	}
	for {
		ch, err := c.Get(true)
		if err != nil {
			return err
		}
		if ch == '\n' || ch == '\r' || ch == lexer.EOF {
			return nil
		}
	}
}

// blockComment reads the trigger of a slashstar comment and either expands
// it or echoes the comment unchanged.
func (e *engine) blockComment() error {
	c := e.cur
	was := c.Line()
	if _, err := c.Get(false); err != nil {
		return err
	}

	var trigger strings.Builder
	for trigger.Len() < commands.MaxLength && commands.IsTriggerChar(c.Peek()) {
		ch, err := c.Get(false)
		if err != nil {
			return err
		}
		trigger.WriteByte(byte(ch))
	}

	if trigger.Len() > 0 {
		if entry, ok := e.table.Lookup(trigger.String()); ok {
			return e.expand(entry, was)
		}
	}

	if err := c.Emits("/*" + trigger.String()); err != nil {
		return err
	}
	return e.echoComment(was)
}

// echoComment copies an ordinary comment body through its star-slash.
func (e *engine) echoComment(was int) error {
	c := e.cur
	for {
		ch, err := c.Get(true)
		if err != nil {
			return err
		}
		switch {
		case ch == lexer.EOF:
			return c.ErrorAt(was, "unterminated comment.")
		case ch == '/' && c.Peek() == '*':
			return c.ErrorAt(c.Line(), "nested comment.")
		case ch == '*' && c.Peek() == '/':
			_, err = c.Get(true)
			return err
		}
	}
}

// expand replaces a pattern with its executable form. The cursor is just
// past the trigger.
func (e *engine) expand(entry commands.Entry, was int) error {
	c := e.cur
	if c.Peek() == '(' {
		if err := c.Emits(renderer.ConditionOpen); err != nil {
			return err
		}
		if err := c.SkipCondition(); err != nil {
			return err
		}
		if err := c.Emits(renderer.ConditionClose); err != nil {
			return err
		}
	}
	// One blank separates the trigger or condition from the stuff.
	if p := c.Peek(); p == ' ' || p == '\t' {
		if _, err := c.Get(false); err != nil {
			return err
		}
	}
	if err := c.Emits(renderer.Open(entry.Command)); err != nil {
		return err
	}
	if err := c.SkipStuff(); err != nil {
		return err
	}
	if err := c.Emits(renderer.Close(entry.Command)); err != nil {
		return err
	}
	c.Left = '}'
	e.stats.Expansions++
	e.log.WithFields(logrus.Fields{
		"line":    was,
		"trigger": entry.Trigger,
	}).Debug("expanded pattern")
	return nil
}
