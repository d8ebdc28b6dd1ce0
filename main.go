// pitchmatch is a single-note ear-training game: it plays a random pitch,
// you pick the matching key on a terminal piano, and it tracks your
// streaks and accuracy.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"

	"github.com/kelsine/pitchmatch/audio"
	"github.com/kelsine/pitchmatch/game"
	"github.com/kelsine/pitchmatch/pitch"
	"github.com/kelsine/pitchmatch/terminal"
)

// initLogger configures the shared slog logger. The TUI owns the
// terminal, so logs go to a file when requested and nowhere otherwise.
func initLogger(logPath string, debug bool) func() {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var w io.Writer = io.Discard
	closer := func() {}
	if logPath != "" {
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			w = f
			closer = func() { f.Close() }
		}
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	slog.SetDefault(slog.New(h))
	return closer
}

func main() {
	rangeName := pflag.String("range", pitch.DefaultPreset,
		fmt.Sprintf("keyboard range preset (%s)", strings.Join(pitch.PresetNames(), ", ")))
	player := pflag.String("player", "Player", "name stamped on exported score cards")
	samples := pflag.String("samples", "", "sample directory or http(s) base URL (default \"audio\")")
	outDir := pflag.String("out", ".", "directory for exported score cards")
	logPath := pflag.String("log", "", "write logs to this file")
	debug := pflag.Bool("debug", false, "enable debug logging")
	pflag.Parse()

	closeLog := initLogger(*logPath, *debug)
	defer closeLog()

	cfg := audio.LoadConfig()
	if *samples != "" {
		cfg.SampleDir = *samples
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "cannot initialize terminal: %v\n", err)
		os.Exit(1)
	}

	keyRange := pitch.Preset(*rangeName)
	mode := pitch.PresetLabel(*rangeName)

	engine := audio.NewEngine(cfg)
	app := terminal.NewApp(screen, *rangeName, *outDir)
	// Sample fetch+decode happens on first playback; AsyncPlayer keeps
	// it off the event loop so the UI never stalls on a slow download.
	session := game.NewSession(terminal.NewAsyncPlayer(engine, screen), app, keyRange, mode,
		game.WithPlayerName(*player))
	app.SetSession(session)

	slog.Info("starting", "range", *rangeName, "samples", cfg.SampleDir)

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "pitchmatch: %v\n", err)
		os.Exit(1)
	}
}
