package settings

import (
	"testing"

	"nucleictl/internal/config"
)

func TestValidateProxy(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"", true},
		{"http://127.0.0.1:8080", true},
		{"socks5://proxy:1080", true},
		{"127.0.0.1:8080", false},
		{"not a url", false},
	}
	for _, tc := range cases {
		if err := ValidateProxy(tc.in); (err == nil) != tc.ok {
			t.Fatalf("ValidateProxy(%q) = %v, want ok=%v", tc.in, err, tc.ok)
		}
	}
}

func TestForm_Builds(t *testing.T) {
	c := config.Default()
	if Form(&c) == nil {
		t.Fatalf("Form returned nil")
	}
	if nonEmpty(" ") == nil || nonEmpty("x") != nil {
		t.Fatalf("nonEmpty misbehaves")
	}
}
