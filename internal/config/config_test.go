package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tu "nucleictl/internal/testutil"
)

func TestLoad_DefaultWhenMissing(t *testing.T) {
	tmp := t.TempDir()
	defer tu.WithEnv(t, EnvDir, tmp)()

	c, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if c != Default() {
		t.Fatalf("expected defaults, got %+v", c)
	}
	p, err := c.CachePath()
	if err != nil {
		t.Fatalf("CachePath error: %v", err)
	}
	if p != filepath.Join(tmp, "templates_cache.json") {
		t.Fatalf("unexpected cache path %s", p)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	tmp := t.TempDir()
	defer tu.WithEnv(t, EnvDir, filepath.Join(tmp, "nested"))()

	in := Config{Binary: " /opt/nuclei ", Proxy: "http://127.0.0.1:8080", ProxyEnabled: true}
	if err := Save(in); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Binary != "/opt/nuclei" || got.WorkDir != "./work" || !got.ProxyEnabled || got.Proxy != in.Proxy {
		t.Fatalf("unexpected config after round trip: %+v", got)
	}
}

func TestLoadFrom_BadYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte("binary: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFrom(p)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if c != Default() {
		t.Fatalf("expected defaults on error, got %+v", c)
	}
}

func TestSchema_MentionsFields(t *testing.T) {
	b, err := MarshalSchema(Schema())
	if err != nil {
		t.Fatalf("MarshalSchema error: %v", err)
	}
	s := string(b)
	for _, k := range []string{"binary", "work_dir", "proxy", "custom_dir"} {
		if !strings.Contains(s, `"`+k+`"`) {
			t.Fatalf("schema missing %q: %s", k, s)
		}
	}
}
