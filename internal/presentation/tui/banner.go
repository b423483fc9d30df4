package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for skilltree.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Ember gradient, top to bottom.
	lines := []struct {
		text  string
		color string
	}{
		{`      _    _ _ _ _                 `, "#fde68a"},
		{`  ___| | _(_) | | |_ _ __ ___  ___ `, "#fcd34d"},
		{` / __| |/ / | | | __| '__/ _ \/ _ \`, "#fbbf24"},
		{` \__ \   <| | | | |_| | |  __/  __/`, "#f59e0b"},
		{` |___/_|\_\_|_|_|\__|_|  \___|\___|`, "#ea580c"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
