package colorseg

import (
	"regexp"
	"strings"
)

// Color is the named foreground color of a Segment.
type Color string

const (
	Black       Color = "black"
	Red         Color = "red"
	Green       Color = "green"
	Yellow      Color = "yellow"
	Blue        Color = "blue"
	Magenta     Color = "magenta"
	Cyan        Color = "cyan"
	White       Color = "white"
	Gray        Color = "gray"
	LightCoral  Color = "lightcoral"
	LightGreen  Color = "lightgreen"
	LightYellow Color = "lightyellow"
	LightBlue   Color = "lightblue"
	Pink        Color = "pink"
	LightCyan   Color = "lightcyan"
)

// Default is the color every Parse call starts with.
const Default = Black

// codes maps SGR foreground parameters to colors. Anything else, including
// the reset code 0, leaves the current color untouched.
var codes = map[string]Color{
	"30": Black, "31": Red, "32": Green, "33": Yellow,
	"34": Blue, "35": Magenta, "36": Cyan, "37": White,
	"90": Gray, "91": LightCoral, "92": LightGreen,
	"93": LightYellow, "94": LightBlue, "95": Pink, "96": LightCyan,
}

// Colors lists every color in code order.
var Colors = []Color{
	Black, Red, Green, Yellow, Blue, Magenta, Cyan, White,
	Gray, LightCoral, LightGreen, LightYellow, LightBlue, Pink, LightCyan,
}

// FromCode returns the color for a single SGR parameter.
func FromCode(code string) (Color, bool) {
	c, ok := codes[code]
	return c, ok
}

// Segment is a run of text drawn in one color.
type Segment struct {
	Text  string
	Color Color
}

var escRe = regexp.MustCompile(`\x1b\[([0-9;]*)([a-zA-Z])`)

// Parse splits raw into colored segments. Color state starts at Default on
// every call. Text without any escape sequence comes back as a single
// Default segment; otherwise only non-empty spans are returned, whitespace
// included.
func Parse(raw string) []Segment {
	matches := escRe.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return []Segment{{Text: raw, Color: Default}}
	}
	out := make([]Segment, 0, len(matches)+1)
	cur := Default
	last := 0
	for _, m := range matches {
		if m[0] > last {
			out = append(out, Segment{Text: raw[last:m[0]], Color: cur})
		}
		if raw[m[4]:m[5]] == "m" {
			for _, code := range strings.Split(raw[m[2]:m[3]], ";") {
				if c, ok := codes[code]; ok {
					cur = c
					break
				}
			}
		}
		last = m[1]
	}
	if last < len(raw) {
		out = append(out, Segment{Text: raw[last:], Color: cur})
	}
	return out
}

// Strip returns raw with every recognized escape sequence removed.
func Strip(raw string) string {
	var sb strings.Builder
	for _, s := range Parse(raw) {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
