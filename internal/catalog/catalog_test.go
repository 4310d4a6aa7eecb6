package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"nucleictl/internal/cache"
)

type fakeLister struct {
	out   string
	err   error
	calls int
}

func (f *fakeLister) ListTemplates(context.Context) (string, error) {
	f.calls++
	return f.out, f.err
}

func TestStartup_UsesFreshCacheWithoutTool(t *testing.T) {
	c := cache.New(filepath.Join(t.TempDir(), "c.json"))
	if err := c.Save([]string{"cached.yaml"}, []string{"/c/custom.yml"}); err != nil {
		t.Fatal(err)
	}
	l := &fakeLister{out: "different.yaml\n"}
	res, err := Startup(context.Background(), c, l, nil)
	if err != nil {
		t.Fatalf("Startup error: %v", err)
	}
	if l.calls != 0 {
		t.Fatalf("nuclei must not be consulted while the cache is valid")
	}
	if !res.FromCache || !reflect.DeepEqual(res.Official, []string{"cached.yaml"}) || !reflect.DeepEqual(res.Custom, []string{"/c/custom.yml"}) {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestStartup_RegeneratesStaleCache(t *testing.T) {
	p := filepath.Join(t.TempDir(), "c.json")
	old := time.Now().Add(-48 * time.Hour).Format(time.RFC3339)
	if err := os.WriteFile(p, []byte(`{"timestamp":"`+old+`","templates":["old.yaml"],"custom_templates":["/c/old.yml"]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	c := cache.New(p)
	l := &fakeLister{out: "[INF] header\nnew/a.yaml\nnew/b.yaml\n"}
	res, err := Startup(context.Background(), c, l, nil)
	if err != nil {
		t.Fatalf("Startup error: %v", err)
	}
	if l.calls != 1 || res.FromCache {
		t.Fatalf("expected one regeneration, got calls=%d fromCache=%v", l.calls, res.FromCache)
	}
	if !reflect.DeepEqual(res.Official, []string{"new/a.yaml", "new/b.yaml"}) {
		t.Fatalf("unexpected official %v", res.Official)
	}
	e, err := c.Load()
	if err != nil {
		t.Fatalf("cache should have been rewritten: %v", err)
	}
	if !reflect.DeepEqual(e.Templates, res.Official) || len(e.CustomTemplates) != 0 {
		t.Fatalf("stale custom list must not be carried over, got %+v", e)
	}
	if !c.IsValid() {
		t.Fatalf("rewritten cache should be valid")
	}
}

func TestStartup_ToolFailureLeavesCacheAlone(t *testing.T) {
	c := cache.New(filepath.Join(t.TempDir(), "c.json"))
	boom := errors.New("boom")
	_, err := Startup(context.Background(), c, &fakeLister{err: boom}, []string{"/c/x.yml"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected tool error, got %v", err)
	}
	if c.Exists() {
		t.Fatalf("no cache should be written when listing fails")
	}
}

func TestRescanCustom(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mine.yaml"), []byte("id: mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := cache.New(filepath.Join(t.TempDir(), "c.json"))
	res, err := RescanCustom(c, dir, []string{"off.yaml"})
	if err != nil {
		t.Fatalf("RescanCustom error: %v", err)
	}
	if len(res.Custom) != 1 || filepath.Base(res.Custom[0]) != "mine.yaml" {
		t.Fatalf("unexpected custom %v", res.Custom)
	}
	e, err := c.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(e.Templates, []string{"off.yaml"}) || !reflect.DeepEqual(e.CustomTemplates, res.Custom) {
		t.Fatalf("cache not updated: %+v", e)
	}

	if _, err := RescanCustom(c, t.TempDir(), nil); err == nil {
		t.Fatalf("expected error for folder without templates")
	}
}

func TestStartup_AgeUsesCacheClock(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	now := t0
	c := cache.New(filepath.Join(t.TempDir(), "c.json")).WithClock(func() time.Time { return now })
	if err := c.Save([]string{"a.yaml"}, nil); err != nil {
		t.Fatal(err)
	}
	now = t0.Add(2 * time.Hour)
	res, err := Startup(context.Background(), c, &fakeLister{}, nil)
	if err != nil {
		t.Fatalf("Startup error: %v", err)
	}
	if !res.FromCache || res.Age != 2*time.Hour {
		t.Fatalf("age = %v fromCache=%v, want 2h from cache", res.Age, res.FromCache)
	}
}
