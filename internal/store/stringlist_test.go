package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestStringList_SaveLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "targets.json")

	got, err := LoadStringList(p)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}

	if err := SaveStringList(p, []string{"http://b", " http://a ", "http://b", ""}); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err = LoadStringList(p)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"http://b", "http://a"}) {
		t.Fatalf("order must be kept and duplicates dropped, got %v", got)
	}
}

func TestStringList_Errors(t *testing.T) {
	if err := SaveStringList(" ", nil); err == nil {
		t.Fatalf("expected error for empty path")
	}
	p := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(p, []byte(`{"not":"a list"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStringList(p); err == nil {
		t.Fatalf("expected parse error")
	}
}
