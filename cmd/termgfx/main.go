// ABOUTME: CLI entry point for termgfx: loads config, sets up logging and tracing, runs a scene
// ABOUTME: Logs never go to stderr while a scene runs because stderr shares the terminal

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/termgfx/internal/config"
	"github.com/mauromedda/termgfx/internal/log"
	"github.com/mauromedda/termgfx/internal/perf"
	"github.com/mauromedda/termgfx/internal/scenes"
	"github.com/mauromedda/termgfx/pkg/gfx"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var errorLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		reportError(os.Stderr, err)
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("termgfx %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// run resolves settings, builds the scene and blocks until it stops.
func run(args cliArgs) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	settings, err := config.Load(cwd)
	if err != nil {
		return err
	}
	settings = settings.Merge(args.settings())
	config.ResolveEnvVars(settings)

	cfg, err := settings.AppConfig()
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(settings)
	if err != nil {
		return err
	}
	defer closeLog()

	if settings.Trace != "" {
		p, err := perf.Enable(settings.Trace)
		if err != nil {
			return err
		}
		defer func() {
			if err := p.Close(); err != nil {
				log.Warn("trace: %v", err)
			}
			if n := p.Dropped(); n > 0 {
				log.Warn("trace: dropped %d records", n)
			}
		}()
	}

	scene, err := scenes.New(args.scene, scenes.Options{ImagePath: args.image})
	if err != nil {
		return err
	}

	log.Info("starting scene %s at %d fps", args.scene, cfg.FPS)
	var runErr error
	gfx.Run(scene, cfg, func(err error) { runErr = err })
	return runErr
}

// setupLogging routes logs to the configured file, or discards them.
func setupLogging(s *config.Settings) (func(), error) {
	if s.LogLevel != "" {
		lvl, err := log.ParseLevel(s.LogLevel)
		if err != nil {
			return nil, err
		}
		log.SetLevel(lvl)
	}

	if s.LogFile == "" {
		prev := log.SetOutput(io.Discard)
		return func() { log.SetOutput(prev) }, nil
	}

	f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	prev := log.SetOutput(f)
	return func() {
		log.SetOutput(prev)
		_ = f.Close()
	}, nil
}

func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorLabel.Render("error:"), err)
}
