package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// WithEnv sets env var to val for the duration of the test scope.
// Returns a cleanup func to restore previous value.
func WithEnv(t *testing.T, key, val string) func() {
	t.Helper()
	old, had := os.LookupEnv(key)
	if val == "" {
		_ = os.Unsetenv(key)
	} else {
		_ = os.Setenv(key, val)
	}
	return func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	}
}

// FakeNuclei writes an executable shell script standing in for nuclei and
// returns its path. The script body receives the real argv as "$@".
// Skips the test on Windows.
func FakeNuclei(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake nuclei needs a POSIX shell")
	}
	p := filepath.Join(t.TempDir(), "nuclei")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(p, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake nuclei: %v", err)
	}
	return p
}
