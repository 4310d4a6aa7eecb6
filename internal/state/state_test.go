package state

import (
	"errors"
	"reflect"
	"testing"

	"nucleictl/internal/targets"
)

func TestTargets_AddRemove(t *testing.T) {
	s := New()
	u, added, err := s.AddTarget(" example.com ")
	if err != nil || !added || u != "http://example.com" {
		t.Fatalf("AddTarget = %q %v %v", u, added, err)
	}
	if _, added, _ := s.AddTarget("http://example.com"); added {
		t.Fatalf("duplicate target must not be added")
	}
	if _, _, err := s.AddTarget(""); !errors.Is(err, targets.ErrEmptyURL) {
		t.Fatalf("expected ErrEmptyURL, got %v", err)
	}
	if n := s.AddTargets([]string{"http://example.com", "https://b", "http://c"}); n != 2 {
		t.Fatalf("AddTargets added %d, want 2", n)
	}
	if got := s.TargetsAt([]int{2, 0, 9}); !reflect.DeepEqual(got, []string{"http://example.com", "http://c"}) {
		t.Fatalf("TargetsAt = %v", got)
	}
	removed := s.RemoveTargets([]int{2, 0, 7})
	if !reflect.DeepEqual(removed, []string{"http://example.com", "http://c"}) {
		t.Fatalf("RemoveTargets = %v", removed)
	}
	if got := s.Targets(); !reflect.DeepEqual(got, []string{"https://b"}) {
		t.Fatalf("Targets = %v", got)
	}
	s.ClearTargets()
	if len(s.Targets()) != 0 {
		t.Fatalf("ClearTargets left %v", s.Targets())
	}
}

func TestTemplates_Copies(t *testing.T) {
	s := New()
	in := []string{"a.yaml"}
	s.SetOfficial(in)
	in[0] = "mutated"
	if s.Official()[0] != "a.yaml" {
		t.Fatalf("SetOfficial must copy its input")
	}
	out := s.Official()
	out[0] = "mutated"
	if s.Official()[0] != "a.yaml" {
		t.Fatalf("Official must return a copy")
	}
	s.SetCustom([]string{"/c/x.yml"})
	s.ClearCustom()
	if len(s.Custom()) != 0 {
		t.Fatalf("ClearCustom left %v", s.Custom())
	}
}

func TestProxy(t *testing.T) {
	s := New()
	s.SetProxy(" http://127.0.0.1:8080 ")
	if s.EffectiveProxy() != "" {
		t.Fatalf("disabled proxy must not be used")
	}
	s.EnableProxy(true)
	if got := s.EffectiveProxy(); got != "http://127.0.0.1:8080" {
		t.Fatalf("EffectiveProxy = %q", got)
	}
	if p, on := s.Proxy(); p == "" || !on {
		t.Fatalf("Proxy = %q %v", p, on)
	}
}
