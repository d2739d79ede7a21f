package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the formcheck banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"   __                          _               _    ", "#34d399"},
		{"  / _| ___  _ __ _ __ ___   ___| |__   ___  ___| | __", "#2dd4bf"},
		{" | |_ / _ \\| '__| '_ ` _ \\ / __| '_ \\ / _ \\/ __| |/ /", "#22d3ee"},
		{" |  _| (_) | |  | | | | | | (__| | | |  __/ (__|   < ", "#38bdf8"},
		{" |_|  \\___/|_|  |_| |_| |_|\\___|_| |_|\\___|\\___|_|\\_\\", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String(" v"+version).Faint())
	fmt.Fprintln(w)
}

// Verdict colours a valid/invalid label for terminal output.
func Verdict(valid bool) string {
	p := termenv.ColorProfile()
	if valid {
		return termenv.String("valid").Foreground(p.Color("#22c55e")).Bold().String()
	}
	return termenv.String("invalid").Foreground(p.Color("#ef4444")).Bold().String()
}
