package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runResult struct {
	Stdout string
	Stderr string
}

func runTestApp(input string, args ...string) (runResult, error) {
	app := newApp()
	outBuf := new(strings.Builder)
	errBuf := new(strings.Builder)
	app.Reader = strings.NewReader(input)
	app.Writer = outBuf
	app.ErrWriter = errBuf
	err := app.Run(append([]string{"jsdev"}, args...))
	return runResult{outBuf.String(), errBuf.String()}, err
}

const sample = `function add(a, b) {
    /*log "add", a, b*/
    /*alarm(a < 0) "negative"*/
    /*debug check(a)*/
    /*trace ignored*/
    return a + b;
}
`

func TestCliExpandsDeclaredTriggers(t *testing.T) {
	r, err := runTestApp(sample, "debug", "log:console.log", "alarm:alert", "-comment", "Devel Edition")
	require.NoError(t, err)
	assert.Equal(t, `// Devel Edition
function add(a, b) {
    {console.log("add", a, b);}
    if (a < 0) {alert("negative");}
    {check(a);}
    /*trace ignored*/
    return a + b;
}
`, r.Stdout)
	assert.Empty(t, r.Stderr)
}

func TestCliCommentFlagBeforeTriggers(t *testing.T) {
	r, err := runTestApp("/*debug x*/", "-comment", "first", "--comment", "second, with comma", "debug")
	require.NoError(t, err)
	assert.Equal(t, "// first\n// second, with comma\n{x;}", r.Stdout)
}

func TestCliNoTriggersIsIdentity(t *testing.T) {
	r, err := runTestApp(sample)
	require.NoError(t, err)
	assert.Equal(t, sample, r.Stdout)
}

func TestCliCommandsFromEnv(t *testing.T) {
	t.Setenv("JSDEV_COMMANDS", `log:console.log -comment "from env"`)
	r, err := runTestApp("/*log 1*/ /*debug 2*/", "debug")
	require.NoError(t, err)
	assert.Equal(t, "// from env\n{console.log(1);} {2;}", r.Stdout)
}

func TestCliConfigFile(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "jsdev.ini")
	require.NoError(t, os.WriteFile(config, []byte("comment = Devel Edition\n\n[commands]\nlog = console.log\ndebug =\n"), 0o644))

	r, err := runTestApp("/*log 1*/ /*debug 2*/", "--config", config, "log:print")
	require.NoError(t, err)
	assert.Equal(t, "// Devel Edition\n{print(1);} {2;}", r.Stdout, "positional declarations win")
}

func TestCliFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "app.js")
	out := filepath.Join(dir, "app.dev.js")
	require.NoError(t, os.WriteFile(in, []byte("x();\r\n/*debug y()*/\r\n"), 0o644))

	r, err := runTestApp("", "-i", in, "-o", out, "debug")
	require.NoError(t, err)
	assert.Empty(t, r.Stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "x();\r\n{y();}\r\n", string(data))
}

func TestCliScanError(t *testing.T) {
	_, err := runTestApp("a;\n/*debug 'x*/", "debug")
	require.Error(t, err)
	assert.Equal(t, "2. unexpected close comment in string.", err.Error())

	dir := t.TempDir()
	in := filepath.Join(dir, "app.js")
	require.NoError(t, os.WriteFile(in, []byte("a;\nb = 'open\n"), 0o644))
	_, err = runTestApp("", "--input", in)
	require.Error(t, err)
	assert.Equal(t, in+":2: unterminated string literal.", err.Error())
}

func TestCliBadDeclaration(t *testing.T) {
	r, err := runTestApp("x", "debug", "log:")
	assert.EqualError(t, err, "bad command line log:")
	assert.Empty(t, r.Stdout)
}

func TestCliMissingConfigFile(t *testing.T) {
	config := filepath.Join(t.TempDir(), "missing.ini")
	_, err := runTestApp("x", "--config", config)
	assert.EqualError(t, err, "bad command line "+config)
}

type unclosableFile struct {
	strings.Builder
}

func (*unclosableFile) Close() error {
	return errors.New("quota exceeded")
}

func TestCliOutputCloseError(t *testing.T) {
	out := &unclosableFile{}
	defer func(old func(string) (io.WriteCloser, error)) { createOutput = old }(createOutput)
	createOutput = func(string) (io.WriteCloser, error) { return out, nil }

	_, err := runTestApp("/*debug x*/", "-o", "app.dev.js", "debug")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close output")
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, "{x;}", out.String())
}

func TestCliVerboseLogsExpansions(t *testing.T) {
	r, err := runTestApp("/*debug x*/", "--verbose", "debug")
	require.NoError(t, err)
	assert.Contains(t, r.Stderr, "expanded pattern")
	assert.Contains(t, r.Stderr, "trigger=debug")
	assert.Contains(t, r.Stderr, "expansions=1")
}
