// samplesrv serves a directory of note samples over HTTP using the same
// addressing the game fetches: /{stem}{octave}.mp3.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/pflag"

	"github.com/kelsine/pitchmatch/pitch"
)

// samplePattern matches {stem}{octave}.mp3 with a non-negative octave.
var samplePattern = regexp.MustCompile(`^([a-z]+)([0-9]+)\.mp3$`)

// knownStems holds the 12 valid sample stems.
var knownStems = func() map[string]bool {
	m := make(map[string]bool, 12)
	for pc := 0; pc < 12; pc++ {
		m[pitch.SampleStem(pc)] = true
	}
	return m
}()

func sampleHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]

		m := samplePattern.FindStringSubmatch(name)
		if m == nil || !knownStems[m[1]] {
			http.NotFound(w, r)
			return
		}

		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			slog.Warn("sample not found", "name", name)
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			http.Error(w, "stat failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		http.ServeContent(w, r, name, info.ModTime(), f)
	}
}

func main() {
	dir := pflag.String("dir", "audio", "directory holding the note samples")
	addr := pflag.String("addr", ":8080", "listen address")
	debug := pflag.Bool("debug", false, "enable debug logging")
	pflag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if _, err := os.Stat(*dir); err != nil {
		fmt.Fprintf(os.Stderr, "samplesrv: cannot read sample dir %q: %v\n", *dir, err)
		os.Exit(1)
	}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/{name}", sampleHandler(*dir)).Methods("GET")

	handler := cors.Default().Handler(router)

	slog.Info("serving samples", "dir", *dir, "addr", *addr)
	if err := http.ListenAndServe(*addr, handler); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
