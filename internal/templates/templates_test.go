package templates

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseList(t *testing.T) {
	out := strings.Join([]string{
		"",
		"[INF] Listing available v10.1.0 nuclei templates for /root/nuclei-templates",
		"\x1b[34m[INF]\x1b[0m Templates loaded",
		"http/cves/2021/CVE-2021-44228.yaml",
		"  dns/azure-takeover-detection.yaml  ",
		"workflows/wordpress-workflow.yml",
		"README.md",
		"network/detection/rdp-detect.yaml\r",
		"",
	}, "\n")
	got := ParseList(out)
	want := []string{
		"http/cves/2021/CVE-2021-44228.yaml",
		"dns/azure-takeover-detection.yaml",
		"network/detection/rdp-detect.yaml",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseList = %v, want %v", got, want)
	}
	if got := ParseList(""); len(got) != 0 {
		t.Fatalf("ParseList(\"\") = %v", got)
	}
}

func TestFilter(t *testing.T) {
	list := []string{"http/cves/CVE-2021-44228.yaml", "dns/takeover.yaml", "http/misc/Log4j.yaml"}
	if got := Filter(list, ""); !reflect.DeepEqual(got, list) {
		t.Fatalf("empty term should return list, got %v", got)
	}
	if got := Filter(list, "LOG4J"); !reflect.DeepEqual(got, []string{"http/misc/Log4j.yaml"}) {
		t.Fatalf("case-insensitive filter failed: %v", got)
	}
	if got := Filter(list, "http/"); len(got) != 2 {
		t.Fatalf("expected two http matches, got %v", got)
	}
	if got := FuzzyFilter(list, "cve4428"); len(got) == 0 || got[0] != list[0] {
		t.Fatalf("fuzzy filter should rank the CVE first, got %v", got)
	}
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	files := []string{"a.yaml", "sub/b.yml", "sub/deeper/c.yaml", "notes.txt", "sub/d.YAML.bak"}
	for _, f := range files {
		p := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("id: x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir error: %v", err)
	}
	want := []string{
		filepath.Join(root, "a.yaml"),
		filepath.Join(root, "sub", "b.yml"),
		filepath.Join(root, "sub", "deeper", "c.yaml"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ScanDir = %v, want %v", got, want)
	}
	for _, p := range got {
		if !filepath.IsAbs(p) {
			t.Fatalf("expected absolute path, got %s", p)
		}
	}
}

func TestScanDir_EmptyAndMissing(t *testing.T) {
	if _, err := ScanDir(t.TempDir()); !errors.Is(err, ErrNoTemplates) {
		t.Fatalf("expected ErrNoTemplates, got %v", err)
	}
	if _, err := ScanDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing dir")
	}
	if _, err := ScanDir(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestParseMeta(t *testing.T) {
	src := []byte(`id: CVE-2021-44228
info:
  name: Apache Log4j2 RCE
  author: pdteam, princechaddha
  severity: critical
  tags:
    - cve
    - log4j
  reference: https://logging.apache.org
requests: []
`)
	m, err := ParseMeta(src)
	if err != nil {
		t.Fatalf("ParseMeta error: %v", err)
	}
	if m.ID != "CVE-2021-44228" || m.Info.Severity != "critical" {
		t.Fatalf("unexpected meta %+v", m)
	}
	if !reflect.DeepEqual([]string(m.Info.Author), []string{"pdteam", "princechaddha"}) {
		t.Fatalf("authors = %v", m.Info.Author)
	}
	if !reflect.DeepEqual([]string(m.Info.Tags), []string{"cve", "log4j"}) {
		t.Fatalf("tags = %v", m.Info.Tags)
	}
	md := m.Markdown("/t/log4j.yaml", src)
	for _, want := range []string{"# Apache Log4j2 RCE", "critical", "```yaml", "https://logging.apache.org"} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}
