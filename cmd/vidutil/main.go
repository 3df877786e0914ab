// Package main provides the CLI entry point for vidutil.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/vidutil/pkg/adapters/ggrenderer"
	"github.com/user/vidutil/pkg/adapters/logger"
	"github.com/user/vidutil/pkg/adapters/osfilesystem"
	"github.com/user/vidutil/pkg/config"
	"github.com/user/vidutil/pkg/ports"
)

var version = "dev"

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is the state shared by all subcommands, filled in by the Before hook.
type env struct {
	cfg config.Config
	log ports.Logger
	fs  ports.FileSystem
	eng engineSet

	renderer ports.Renderer
}

func newApp() *cli.App {
	e := &env{fs: osfilesystem.New(), renderer: ggrenderer.New()}

	return &cli.App{
		Name:    "vidutil",
		Usage:   l10n.T("Load, save and merge video frame sequences"),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Category: l10n.T("Configuration"), Usage: l10n.T("YAML configuration file")},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Category: l10n.T("Logging"), Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Category: l10n.T("Logging"), Usage: l10n.T("Suppress all log output")},
			&cli.StringFlag{Name: "ffmpeg-path", Category: l10n.T("Tools"), Usage: l10n.T("Path to the ffmpeg executable"), EnvVars: []string{"FFMPEG_PATH"}},
			&cli.StringFlag{Name: "engine", Category: l10n.T("Tools"), Usage: l10n.T("Decode/encode engine (ffmpeg, gocv)")},
		},
		Before: e.setup,
		Commands: []*cli.Command{
			probeCommand(e),
			listCommand(e),
			transcodeCommand(e),
			mergeCommand(e),
			exportCommand(e),
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Println(l10n.F("vidutil version %s", version))
					return nil
				},
			},
		},
	}
}

// setup loads configuration, applies flag overrides and builds the logger
// and engines.
func (e *env) setup(c *cli.Context) error {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("ffmpeg-path") {
		cfg.FFmpegPath = c.String("ffmpeg-path")
	}
	if c.IsSet("engine") {
		cfg.Engine = c.String("engine")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg

	if c.Bool("quiet") {
		e.log = logger.NewNoop()
	} else {
		e.log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	// Vidio resolves ffmpeg and ffprobe from PATH only.
	prependToolDirs(cfg.FFmpegPath, cfg.FFprobePath)

	build, ok := engines[cfg.Engine]
	if !ok {
		return errors.New(l10n.F("engine %q is not available in this build", cfg.Engine))
	}
	e.eng = build(cfg, e.log)
	return nil
}

func prependToolDirs(paths ...string) {
	var dirs []string
	for _, p := range paths {
		if p != "" {
			dirs = append(dirs, filepath.Dir(p))
		}
	}
	if len(dirs) == 0 {
		return
	}
	dirs = append(dirs, os.Getenv("PATH"))
	os.Setenv("PATH", strings.Join(dirs, string(os.PathListSeparator)))
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func (e *env) signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			e.log.Warn(l10n.T("Interrupted, shutting down..."))
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// prepareOutput creates the parent directory of path and returns a cleanup
// for a failed run. The cleanup removes only a file this run created; an
// output that existed beforehand is left alone.
func (e *env) prepareOutput(path string) (func(), error) {
	existed, err := e.fs.Exists(path)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := e.fs.MkdirAll(dir); err != nil {
			return nil, err
		}
	}

	return func() {
		if existed {
			return
		}
		if created, err := e.fs.Exists(path); err != nil || !created {
			return
		}
		if err := e.fs.Remove(path); err == nil {
			e.log.Info("Removed partial output %s", path)
		}
	}, nil
}

func requireArgs(c *cli.Context, n int, usage string) error {
	if c.NArg() != n {
		return cli.Exit(l10n.F("usage: vidutil %s %s", c.Command.Name, usage), 2)
	}
	return nil
}
