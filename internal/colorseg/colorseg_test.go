package colorseg

import (
	"reflect"
	"regexp"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []Segment
	}{
		{"plain", "plain", []Segment{{"plain", Black}}},
		{"empty", "", []Segment{{"", Black}}},
		{"reset does not restore default", "\x1b[32mOK\x1b[0mdone", []Segment{{"OK", Green}, {"done", Green}}},
		{"color switch", "\x1b[31mA\x1b[34mB", []Segment{{"A", Red}, {"B", Blue}}},
		{"leading literal", "pre\x1b[33mpost", []Segment{{"pre", Black}, {"post", Yellow}}},
		{"first known code wins", "\x1b[1;91;32mX", []Segment{{"X", LightCoral}}},
		{"unknown codes skipped", "\x1b[1;4mX", []Segment{{"X", Black}}},
		{"empty params keep color", "\x1b[36mA\x1b[mB", []Segment{{"A", Cyan}, {"B", Cyan}}},
		{"non-m command consumed", "\x1b[35mA\x1b[2KB", []Segment{{"A", Magenta}, {"B", Magenta}}},
		{"whitespace span kept", "\x1b[92m \x1b[96m\n", []Segment{{" ", LightGreen}, {"\n", LightCyan}}},
		{"only escapes", "\x1b[31m\x1b[0m", []Segment{}},
		{"malformed is literal", "\x1b[31", []Segment{{"\x1b[31", Black}}},
		{"bright table", "\x1b[90ma\x1b[93mb\x1b[94mc\x1b[95md", []Segment{{"a", Gray}, {"b", LightYellow}, {"c", LightBlue}, {"d", Pink}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Parse(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParse_StateIsPerCall(t *testing.T) {
	_ = Parse("\x1b[31mred")
	got := Parse("next")
	if len(got) != 1 || got[0].Color != Black {
		t.Fatalf("color leaked across calls: %#v", got)
	}
}

func TestParse_ConcatenationDropsOnlyEscapes(t *testing.T) {
	re := regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	inputs := []string{
		"[INF] \x1b[34mnuclei\x1b[0m v3.1.0",
		"\x1b[1;31m[critical]\x1b[0m http://a \x1b[92m[matched]\x1b[0m\n",
		"no escapes here",
		"\x1b[2J\x1b[H",
		"tail \x1b[",
	}
	for _, in := range inputs {
		if got, want := Strip(in), re.ReplaceAllString(in, ""); got != want {
			t.Fatalf("Strip(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFromCode(t *testing.T) {
	if c, ok := FromCode("37"); !ok || c != White {
		t.Fatalf("FromCode(37) = %v %v", c, ok)
	}
	if _, ok := FromCode("0"); ok {
		t.Fatalf("reset code must not map to a color")
	}
	if len(Colors) != len(codes) {
		t.Fatalf("Colors lists %d entries, table has %d", len(Colors), len(codes))
	}
}
