package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the rivercross ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Blue to teal, like water.
	lines := []termenv.Style{
		termenv.String("  ____  _                                        ").Foreground(p.Color("#1e3a8a")),
		termenv.String(" |  _ \\(_)_   _____ _ __ ___ _ __ ___  ___ ___  ").Foreground(p.Color("#1d4ed8")),
		termenv.String(" | |_) | \\ \\ / / _ \\ '__/ __| '__/ _ \\/ __/ __| ").Foreground(p.Color("#2563eb")),
		termenv.String(" |  _ <| |\\ V /  __/ | | (__| | | (_) \\__ \\__ \\ ").Foreground(p.Color("#0891b2")),
		termenv.String(" |_| \\_\\_| \\_/ \\___|_|  \\___|_|  \\___/|___/___/ ").Foreground(p.Color("#0d9488")),
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w)
}
