package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the surveyflow banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`  ___ _   _ _ ____   _____ _   _ / _| | _____      __`, "#818cf8"},
		{` / __| | | | '__\ \ / / _ \ | | | |_| |/ _ \ \ /\ / /`, "#a78bfa"},
		{` \__ \ |_| | |   \ V /  __/ |_| |  _| | (_) \ V  V / `, "#c084fc"},
		{` |___/\__,_|_|    \_/ \___|\__, |_| |_|\___/ \_/\_/  `, "#e879f9"},
		{`                           |___/                     `, "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
