package main

import (
	"fmt"
	"io"
	"os"

	"jsdev/commands"
	"jsdev/meta"
	"jsdev/preprocessor"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "JSDev: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                      meta.Name,
		Usage:                     meta.Usage,
		UsageText:                 meta.Name + " [options] " + meta.ArgsUsage,
		ArgsUsage:                 meta.ArgsUsage,
		Description:               meta.Description,
		Version:                   meta.Version,
		HideHelpCommand:           true,
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "comment",
				Usage: "prepend `TEXT` to the output as a line comment",
			},
			&cli.StringFlag{
				Name:    "commands",
				Usage:   "shell quoted list of trigger declarations",
				EnvVars: []string{"JSDEV_COMMANDS"},
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "ini `FILE` with a [commands] section",
				EnvVars: []string{"JSDEV_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "read the program from `FILE` instead of stdin",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the result to `FILE` instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log every expansion to stderr",
			},
		},
		Action: runTransform,
	}
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// loadTable assembles the command table. Earlier sources win: positional
// arguments, then --commands, then the config file.
func loadTable(c *cli.Context) (*commands.Table, []string, error) {
	banners := append([]string(nil), c.StringSlice("comment")...)

	table, argBanners, err := commands.ParseArgs(c.Args().Slice())
	if err != nil {
		return nil, nil, err
	}
	banners = append(banners, argBanners...)

	if s := c.String("commands"); s != "" {
		more, moreBanners, err := commands.ParseString(s)
		if err != nil {
			return nil, nil, err
		}
		table.Merge(more)
		banners = append(banners, moreBanners...)
	}

	if path := c.String("config"); path != "" {
		more, moreBanners, err := commands.LoadFile(path)
		if err != nil {
			return nil, nil, err
		}
		table.Merge(more)
		banners = append(banners, moreBanners...)
	}
	return table, banners, nil
}

// createOutput opens the --output file.
var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func runTransform(c *cli.Context) (err error) {
	logger := newLogger(c.App.ErrWriter, c.Bool("verbose"))

	table, banners, err := loadTable(c)
	if err != nil {
		return err
	}
	for _, e := range table.Entries() {
		logger.WithFields(logrus.Fields{"trigger": e.Trigger, "command": e.Command}).Debug("declared")
	}

	var (
		in       = c.App.Reader
		out      = c.App.Writer
		filename string
	)
	if path := c.String("input"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrap(err, "open input")
		}
		defer f.Close()
		in, filename = f, path
	} else if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		logger.Warn("reading program from a terminal, end with EOF")
	}
	if path := c.String("output"); path != "" {
		f, cerr := createOutput(path)
		if cerr != nil {
			return errors.Wrap(cerr, "create output")
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = errors.Wrap(cerr, "close output")
			}
		}()
		out = f
	}

	stats, err := preprocessor.Process(in, out, table, preprocessor.Options{
		Filename: filename,
		Banners:  banners,
		Log:      logger,
	})
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"lines":      stats.Lines,
		"expansions": stats.Expansions,
	}).Info("done")
	return nil
}
