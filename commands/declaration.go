// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Parsing of command declarations from the command line, the environment
// and config files.

package commands

import (
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// CommentFlag introduces a banner comment in an argument list.
const CommentFlag = "-comment"

var declLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z0-9_$.]+`},
	{Name: "Colon", Pattern: `:`},
})

// Declaration is `trigger` or `trigger:command`. No spaces are allowed.
type Declaration struct {
	Trigger string  `parser:"@Ident"`
	Command *string `parser:"( \":\" @Ident )?"`
}

var declParser = participle.MustBuild[Declaration](participle.Lexer(declLexer))

// Error is a configuration failure. It has no source position.
type Error struct {
	Arg string
	Err error
}

func (e *Error) Error() string {
	return "bad command line " + e.Arg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ParseDeclaration parses a single declaration into an entry.
func ParseDeclaration(arg string) (Entry, error) {
	decl, err := declParser.ParseString("", arg)
	if err != nil {
		return Entry{}, &Error{Arg: arg, Err: err}
	}
	e := Entry{Trigger: decl.Trigger}
	if decl.Command != nil {
		e.Command = *decl.Command
	}
	if len(e.Trigger) > MaxLength || len(e.Command) > MaxLength {
		return Entry{}, &Error{Arg: arg, Err: errors.Errorf("names are limited to %d characters", MaxLength)}
	}
	return e, nil
}

// ParseArgs reads a command line style list: declarations, each optionally
// interleaved with `-comment <text>` pairs. Banner texts are returned in
// order.
func ParseArgs(args []string) (*Table, []string, error) {
	var (
		table   = NewTable()
		banners []string
	)
	for i := 0; i < len(args); i++ {
		if args[i] == CommentFlag {
			if i+1 >= len(args) {
				return nil, nil, &Error{Arg: args[i], Err: errors.New("missing comment text")}
			}
			i++
			banners = append(banners, args[i])
			continue
		}
		e, err := ParseDeclaration(args[i])
		if err != nil {
			return nil, nil, err
		}
		table.Add(e)
	}
	return table, banners, nil
}

// ParseString splits a shell-quoted list and parses it like ParseArgs.
func ParseString(s string) (*Table, []string, error) {
	words, err := shellquote.Split(s)
	if err != nil {
		return nil, nil, &Error{Arg: s, Err: err}
	}
	return ParseArgs(words)
}

// LoadFile reads an ini config file. Repeated `comment` keys in the default
// section are banners; keys of the [commands] section are triggers and their
// values the optional commands.
//
//	comment = Devel Edition
//
//	[commands]
//	debug =
//	log = console.log
func LoadFile(path string) (*Table, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &Error{Arg: path, Err: errors.Wrap(err, "read config")}
	}
	return Load(path, data)
}

// Load parses ini config data; name is only used in errors.
func Load(name string, data []byte) (*Table, []string, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		AllowShadows:       true,
		KeyValueDelimiters: "=",
	}, data)
	if err != nil {
		return nil, nil, &Error{Arg: name, Err: err}
	}

	var banners []string
	if root := cfg.Section(ini.DefaultSection); root.HasKey("comment") {
		banners = root.Key("comment").ValueWithShadows()
	}

	table := NewTable()
	for _, key := range cfg.Section("commands").Keys() {
		decl := key.Name()
		if v := strings.TrimSpace(key.Value()); v != "" {
			decl += ":" + v
		}
		e, err := ParseDeclaration(decl)
		if err != nil {
			return nil, nil, err
		}
		table.Add(e)
	}
	return table, banners, nil
}
