package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/babarot/hakai/internal/config"
	"github.com/babarot/hakai/internal/debug"
	"github.com/babarot/hakai/internal/env"
	"github.com/babarot/hakai/internal/shred"
	"github.com/charmbracelet/log"
	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"
)

type Option struct {
	Passes  *int `short:"p" long:"passes" description:"Number of overwrite passes (default: 3)"`
	Recurse bool `short:"r" long:"recursive" description:"Recursively shred directories"`
	Verbose bool `short:"v" long:"verbose" description:"Show detailed progress"`

	Config string `long:"config" description:"Path to config file" default:""`

	Meta MetaOption `group:"Meta Options"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

type CLI struct {
	version  Version
	option   Option
	config   config.Config
	runID    string
	shredder *shred.Shredder
}

var runID = sync.OnceValue(func() string {
	id := xid.New().String()
	return id
})

func Run(v Version) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[OPTIONS] files..."
	args, err := parser.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	logDir := filepath.Dir(env.HAKAI_LOG_PATH)
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		err := os.MkdirAll(logDir, 0755)
		if err != nil {
			return err
		}
	}

	var w io.Writer
	if file, err := os.OpenFile(env.HAKAI_LOG_PATH, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
		w = file
	} else {
		w = os.Stderr
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           log.DebugLevel,
		Formatter:       log.TextFormatter,
	})
	logger.SetOutput(w)
	logger.With("run_id", runID())
	slog.SetDefault(slog.New(logger))

	defer slog.Debug("main function finished\n\n\n")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}

	// Flags override the config file
	passes := cfg.Core.Passes
	if opt.Passes != nil {
		passes = *opt.Passes
	}

	shredConfig := shred.Config{
		Passes:  passes,
		Verbose: opt.Verbose || cfg.Core.Verbose,
		Exclude: shred.ExcludeOptions{
			Files:    cfg.Shred.Exclude.Files,
			Patterns: cfg.Shred.Exclude.Patterns,
			Globs:    cfg.Shred.Exclude.Globs,
			MinSize:  cfg.Shred.Exclude.Size.Min,
			MaxSize:  cfg.Shred.Exclude.Size.Max,
		},
	}

	shredder, err := shred.New(shredConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize shredder: %w", err)
	}

	cli := CLI{
		version:  v,
		option:   opt,
		config:   cfg,
		runID:    runID(),
		shredder: shredder,
	}

	if err := cli.Run(args); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

func (c CLI) Run(args []string) error {
	switch {
	case c.option.Meta.Version:
		fmt.Fprint(os.Stdout, c.version.Print())
		return nil

	default:
		switch c.option.Meta.Debug {
		case "live":
			return debug.Logs(os.Stdout, true)
		case "full":
			return debug.Logs(os.Stdout, false)
		}
		return c.Shred(args)
	}
}
