package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Pageforge banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct{ text, color string }{
		{"  ___                 __                    ", "#818cf8"},
		{" | _ \\__ _ __ _ ___  / _|___ _ _ __ _ ___  ", "#a78bfa"},
		{" |  _/ _` / _` / -_)|  _/ _ \\ '_/ _` / -_) ", "#c084fc"},
		{" |_| \\__,_\\__, \\___||_| \\___/_| \\__, \\___| ", "#e879f9"},
		{"           |___/                 |___/      ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}

// Status colours a REPL status line: green when ok, red otherwise.
func Status(ok bool, msg string) string {
	p := termenv.ColorProfile()
	if ok {
		return termenv.String("✔ " + msg).Foreground(p.Color("#22c55e")).String()
	}
	return termenv.String("✘ " + msg).Foreground(p.Color("#ef4444")).String()
}
