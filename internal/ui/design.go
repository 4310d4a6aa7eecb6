package ui

import (
	"github.com/charmbracelet/lipgloss"

	"nucleictl/internal/colorseg"
)

// Design centralizes the TUI color palette and common styles.
//
// Palette is based on Vitesse Dark Soft:
// https://github.com/antfu/vscode-theme-vitesse/blob/main/themes/vitesse-dark-soft.json
type designTheme struct {
	// Core brand/semantic colors
	Primary lipgloss.Color // #4d9375
	Blue    lipgloss.Color // #6394bf
	Yellow  lipgloss.Color // #e6cc77
	Magenta lipgloss.Color // #d9739f
	Cyan    lipgloss.Color // #5eaab5
	Red     lipgloss.Color // #cb7676

	// Text colors
	Text      lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color

	Border    lipgloss.Color
	BorderHot lipgloss.Color

	// Text on accent backgrounds (e.g., buttons/chips)
	OnAccent lipgloss.Color

	// Status bar colors
	BarFG lipgloss.AdaptiveColor
	BarBG lipgloss.AdaptiveColor
}

// Vitesse defines the current global design theme for the TUI.
var Vitesse = designTheme{
	Primary: lipgloss.Color("#4d9375"),
	Blue:    lipgloss.Color("#6394bf"),
	Yellow:  lipgloss.Color("#e6cc77"),
	Magenta: lipgloss.Color("#d9739f"),
	Cyan:    lipgloss.Color("#5eaab5"),
	Red:     lipgloss.Color("#cb7676"),

	Text:      lipgloss.Color("#dbd7caee"),
	Secondary: lipgloss.Color("#bfbaaa"),
	Muted:     lipgloss.Color("#dedcd590"),

	Border:    lipgloss.Color("#3a3a3a"),
	BorderHot: lipgloss.Color("#4d9375"),

	OnAccent: lipgloss.Color("#222"),

	BarFG: lipgloss.AdaptiveColor{Light: "#343433", Dark: "#bfbaaa"},
	BarBG: lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#222"},
}

// segmentColors maps parsed output colors onto the theme. Black is absent
// on purpose: it renders in the terminal's default foreground.
var segmentColors = map[colorseg.Color]lipgloss.TerminalColor{
	colorseg.Red:         Vitesse.Red,
	colorseg.Green:       Vitesse.Primary,
	colorseg.Yellow:      Vitesse.Yellow,
	colorseg.Blue:        Vitesse.Blue,
	colorseg.Magenta:     Vitesse.Magenta,
	colorseg.Cyan:        Vitesse.Cyan,
	colorseg.White:       Vitesse.Text,
	colorseg.Gray:        Vitesse.Muted,
	colorseg.LightCoral:  lipgloss.Color("#f08080"),
	colorseg.LightGreen:  lipgloss.Color("#90ee90"),
	colorseg.LightYellow: lipgloss.Color("#ffffe0"),
	colorseg.LightBlue:   lipgloss.Color("#add8e6"),
	colorseg.Pink:        lipgloss.Color("#ffc0cb"),
	colorseg.LightCyan:   lipgloss.Color("#e0ffff"),
}

// SegmentStyle returns the style for one output segment color.
func SegmentStyle(c colorseg.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if fg, ok := segmentColors[c]; ok {
		s = s.Foreground(fg)
	}
	return s
}

// AccentBold returns a bold style using the primary accent color.
func AccentBold() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Primary)
}

// PaneStyle returns the bordered box around a pane.
func PaneStyle(focused bool) lipgloss.Style {
	c := Vitesse.Border
	if focused {
		c = Vitesse.BorderHot
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c)
}

// ChipStyle returns a style for colored nuggets in the status bar.
func ChipStyle(bg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.OnAccent).Background(bg).Padding(0, 1)
}

// StatusBarBase returns the base style for the status bar background/foreground.
func StatusBarBase() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.BarFG).Background(Vitesse.BarBG)
}

func noticeStyle(isErr bool) lipgloss.Style {
	if isErr {
		return lipgloss.NewStyle().Foreground(Vitesse.Red)
	}
	return lipgloss.NewStyle().Foreground(Vitesse.Secondary)
}
