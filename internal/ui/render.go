package ui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"nucleictl/internal/colorseg"
)

// RenderLine turns one line of nuclei output into styled text. Fragments
// that are only whitespace are dropped.
func RenderLine(raw string) string {
	var b strings.Builder
	for _, s := range colorseg.Parse(raw) {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		b.WriteString(SegmentStyle(s.Color).Render(s.Text))
	}
	return b.String()
}

// RenderLines renders a batch of output lines joined by newlines.
func RenderLines(lines []string) string {
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = RenderLine(ln)
	}
	return strings.Join(out, "\n")
}

// renderStatusBar draws a single-line status bar at the given width
// with left/right-aligned content.
func renderStatusBar(width int, left, right []string) string {
	w := width
	if w <= 0 {
		w = 100
	}
	chips := []func(...string) string{
		ChipStyle(Vitesse.Primary).Render,
		ChipStyle(Vitesse.Blue).Render,
		ChipStyle(Vitesse.Yellow).Render,
		ChipStyle(Vitesse.Magenta).Render,
	}
	base := StatusBarBase()
	var l strings.Builder
	for i, s := range left {
		if i == 0 {
			l.WriteString(chips[0](s))
			continue
		}
		l.WriteString(base.Render(" " + s))
	}
	var r strings.Builder
	for i, s := range right {
		r.WriteString(chips[(i+1)%len(chips)](s))
	}
	ls, rs := l.String(), r.String()
	lw, rw := xansi.StringWidth(ls), xansi.StringWidth(rs)
	if lw+rw > w {
		ls = xansi.Truncate(ls, maxInt(0, w-rw-1), "…")
		lw = xansi.StringWidth(ls)
	}
	pad := maxInt(0, w-lw-rw)
	return ls + base.Render(strings.Repeat(" ", pad)) + rs
}
