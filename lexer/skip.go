// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Skippers for string literals, regexp literals, pattern conditions and
// pattern bodies. Everything consumed is echoed.

package lexer

// PreRegexp reports whether a slash with left to its left starts a regexp
// literal rather than a division operator. A full parse would be needed to
// tell for sure, so the convention is that a regexp literal must follow one
// of a small set of punctuators.
func PreRegexp(left int) bool {
	switch left {
	case '(', ',', '=', ':', '[', '!', '&', '|', '?', '{', '}', ';':
		return true
	}
	return false
}

// IsQuote reports whether ch opens a string literal.
func IsQuote(ch int) bool {
	return ch == '\'' || ch == '"' || ch == '`'
}

// IsSignificant reports whether ch counts as left context.
func IsSignificant(ch int) bool {
	return ch > ' '
}

// SkipString consumes a string literal up to and including the closing
// quote. The opening quote must already be consumed.
func (c *Cursor) SkipString(quote int, inComment bool) error {
	was := c.line
	for {
		ch, err := c.Get(true)
		if err != nil {
			return err
		}
		if ch == quote {
			return nil
		}
		if ch == '\\' {
			if ch, err = c.Get(true); err != nil {
				return err
			}
		}
		if inComment && ch == '*' && c.Peek() == '/' {
			return c.ErrorAt(c.line, "unexpected close comment in string.")
		}
		if ch == EOF {
			return c.ErrorAt(was, "unterminated string literal.")
		}
	}
}

// SkipRegex consumes a regexp literal up to and including the closing
// slash. The opening slash must already be consumed.
func (c *Cursor) SkipRegex(inComment bool) error {
	was := c.line
	for {
		ch, err := c.Get(true)
		if err != nil {
			return err
		}
		switch ch {
		case '[':
			if err := c.skipClass(was, inComment); err != nil {
				return err
			}
			continue
		case '/':
			if p := c.Peek(); inComment && (p == '/' || p == '*') {
				return c.ErrorAt(c.line, "unexpected comment.")
			}
			return nil
		case '\\':
			if ch, err = c.Get(true); err != nil {
				return err
			}
		}
		if inComment && ch == '*' && c.Peek() == '/' {
			return c.ErrorAt(c.line, "unexpected comment.")
		}
		if ch == EOF {
			return c.ErrorAt(was, "unterminated regexp literal.")
		}
	}
}

// skipClass consumes a bracketed character class inside a regexp.
func (c *Cursor) skipClass(was int, inComment bool) error {
	for {
		ch, err := c.Get(true)
		if err != nil {
			return err
		}
		if ch == ']' {
			return nil
		}
		if ch == '\\' {
			if ch, err = c.Get(true); err != nil {
				return err
			}
		}
		if inComment && ch == '*' && c.Peek() == '/' {
			return c.ErrorAt(c.line, "unexpected close comment in regexp.")
		}
		if ch == EOF {
			return c.ErrorAt(was, "unterminated set in Regular Expression literal.")
		}
	}
}

// slash handles a slash found inside a pattern comment. It has already been
// echoed.
func (c *Cursor) slash(left int) error {
	if p := c.Peek(); p == '/' || p == '*' {
		return c.ErrorAt(c.line, "unexpected comment.")
	}
	if PreRegexp(left) {
		return c.SkipRegex(true)
	}
	return nil
}

// SkipCondition consumes a balanced condition. The cursor must be on the
// opening parenthesis; scanning stops after the bracket that closes it.
func (c *Cursor) SkipCondition() error {
	was := c.line
	depth, left := 0, 0
	for {
		ch, err := c.Get(true)
		if err != nil {
			return err
		}
		switch {
		case ch == '(' || ch == '{' || ch == '[':
			depth++
		case ch == ')' || ch == '}' || ch == ']':
			depth--
			if depth == 0 {
				return nil
			}
		case ch == EOF:
			return c.ErrorAt(was, "Unterminated condition.")
		case IsQuote(ch):
			err = c.SkipString(ch, true)
		case ch == '/':
			err = c.slash(left)
		case ch == '*' && c.Peek() == '/':
			err = c.ErrorAt(c.line, "unclosed condition.")
		}
		if err != nil {
			return err
		}
		if IsSignificant(ch) {
			left = ch
		}
	}
}

// SkipStuff consumes a pattern body through the closing star-slash. The
// body is echoed; the star-slash is not.
func (c *Cursor) SkipStuff() error {
	was := c.line
	left := int('{')
	for {
		for c.Peek() == '*' {
			if _, err := c.Get(false); err != nil {
				return err
			}
			if c.Peek() == '/' {
				_, err := c.Get(false)
				return err
			}
			if err := c.Emit('*'); err != nil {
				return err
			}
			left = '*'
		}
		ch, err := c.Get(true)
		if err != nil {
			return err
		}
		switch {
		case ch == EOF:
			return c.ErrorAt(was, "Unterminated stuff.")
		case IsQuote(ch):
			err = c.SkipString(ch, true)
		case ch == '/':
			err = c.slash(left)
		}
		if err != nil {
			return err
		}
		if IsSignificant(ch) {
			left = ch
		}
	}
}
