// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Flags override config files; zero values leave the file settings untouched

package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/mauromedda/termgfx/internal/config"
	"github.com/mauromedda/termgfx/internal/scenes"
)

type cliArgs struct {
	scene      string
	image      string
	fps        int
	background string
	glyph      string
	trace      string
	logFile    string
	logLevel   string
	version    bool
}

func parseFlags(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("termgfx", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&args.scene, "scene", "sandbox", fmt.Sprintf("Scene to run (%s)", strings.Join(scenes.Names(), ", ")))
	fs.StringVar(&args.image, "image", "", "Image file for the image scene")
	fs.IntVar(&args.fps, "fps", 0, "Target frames per second")
	fs.StringVar(&args.background, "background", "", "Background color as #rrggbb")
	fs.StringVar(&args.glyph, "glyph", "", "Text printed for each pixel")
	fs.StringVar(&args.trace, "trace", "", "Write a Chrome trace JSON to this path")
	fs.StringVar(&args.logFile, "log-file", "", "Append logs to this file")
	fs.StringVar(&args.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}
	if fs.NArg() > 0 {
		return cliArgs{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return args, nil
}

// settings returns the flag values as the top configuration layer.
func (a cliArgs) settings() *config.Settings {
	return &config.Settings{
		FPS:        a.fps,
		Background: a.background,
		Glyph:      a.glyph,
		Trace:      a.trace,
		LogFile:    a.logFile,
		LogLevel:   a.logLevel,
	}
}
