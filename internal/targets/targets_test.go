package targets

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"example.com", "http://example.com", true},
		{"  https://foo.bar  ", "https://foo.bar", true},
		{"http://x:8080/a", "http://x:8080/a", true},
		{"#comment", "", false},
		{"   ", "", false},
		{"10.0.0.1:443", "http://10.0.0.1:443", true},
	}
	for _, tc := range cases {
		got, ok := Normalize(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Normalize(%q) = %q,%v want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalizeInput_Empty(t *testing.T) {
	if _, err := NormalizeInput("  "); !errors.Is(err, ErrEmptyURL) {
		t.Fatalf("expected ErrEmptyURL, got %v", err)
	}
	if _, err := NormalizeInput("# not a url"); err == nil {
		t.Fatalf("expected error for comment input")
	}
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "targets.txt")
	body := "example.com\n#comment\n\nhttps://foo.bar\r\nexample.com\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	want := []string{"http://example.com", "https://foo.bar"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("LoadFile = %v, want %v", got, want)
	}
	if _, err := LoadFile(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestTempListFile(t *testing.T) {
	p, err := TempListFile([]string{"http://a", "https://b"})
	if err != nil {
		t.Fatalf("TempListFile error: %v", err)
	}
	defer os.Remove(p)
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "http://a\nhttps://b\n" {
		t.Fatalf("unexpected content %q", b)
	}
	back, err := Parse(strings.NewReader(string(b)))
	if err != nil || len(back) != 2 {
		t.Fatalf("Parse(written) = %v, %v", back, err)
	}
}
