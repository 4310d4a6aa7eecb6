package nuclei

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tu "nucleictl/internal/testutil"
)

func TestScanRequest_Args(t *testing.T) {
	req := ScanRequest{
		Templates: []string{"a.yaml", "/x/b.yml"},
		Target:    "http://example.com",
		Output:    "./work/result.txt",
		Proxy:     " http://127.0.0.1:8080 ",
	}
	want := []string{"-o", "./work/result.txt", "-u", "http://example.com", "-t", "a.yaml", "-t", "/x/b.yml", "-p", "http://127.0.0.1:8080"}
	if got := req.Args(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Args = %v, want %v", got, want)
	}

	req = ScanRequest{Templates: []string{"a.yaml"}, TargetList: "/tmp/l.txt", Output: "out.txt"}
	want = []string{"-o", "out.txt", "-l", "/tmp/l.txt", "-t", "a.yaml"}
	if got := req.Args(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Args = %v, want %v", got, want)
	}
	if got := req.CommandLine("nuclei"); got != "nuclei -o out.txt -l /tmp/l.txt -t a.yaml" {
		t.Fatalf("CommandLine = %q", got)
	}
}

func TestScanRequest_Validate(t *testing.T) {
	if err := (ScanRequest{Target: "http://a"}).Validate(); !errors.Is(err, ErrNoTemplates) {
		t.Fatalf("expected ErrNoTemplates, got %v", err)
	}
	if err := (ScanRequest{Templates: []string{"a.yaml"}}).Validate(); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("expected ErrNoTarget, got %v", err)
	}
	if err := (ScanRequest{Templates: []string{"a.yaml"}, TargetList: "l"}).Validate(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestParseVersion(t *testing.T) {
	out := "\x1b[34m[INF]\x1b[0m Nuclei Engine Version: v3.1.4\n[INF] Nuclei Config Directory: /root/.config/nuclei\n"
	if got := ParseVersion(out); got != "3.1.4" {
		t.Fatalf("ParseVersion = %q", got)
	}
	if got := ParseVersion("nothing"); got != "" {
		t.Fatalf("ParseVersion = %q", got)
	}
}

func TestRunner_NotInstalled(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "missing-nuclei"), t.TempDir())
	if _, err := r.ListTemplates(context.Background()); !errors.Is(err, ErrNotInstalled) {
		t.Fatalf("expected ErrNotInstalled, got %v", err)
	}
	_, err := r.ScanSingle(context.Background(), "http://a", Options{Templates: []string{"a.yaml"}}, nil)
	if !errors.Is(err, ErrNotInstalled) {
		t.Fatalf("expected ErrNotInstalled, got %v", err)
	}
	if res := r.Check(context.Background()); res.Installed {
		t.Fatalf("Check should report not installed")
	}
}

func TestRunner_StreamLinesAndExitCode(t *testing.T) {
	bin := tu.FakeNuclei(t, `echo "one"
printf '\033[32mtwo\033[0m\n' 1>&2
echo "three"
exit 3`)
	r := New(bin, t.TempDir())
	var lines []string
	err := r.Stream(context.Background(), nil, func(s string) { lines = append(lines, s) })
	var ee *ExitError
	if !errors.As(err, &ee) || ee.Code != 3 {
		t.Fatalf("expected exit status 3, got %v", err)
	}
	if !strings.Contains(ee.Output, "three") {
		t.Fatalf("exit error should carry output tail, got %q", ee.Output)
	}
	want := []string{"one", "\x1b[32mtwo\x1b[0m", "three"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
}

func TestRunner_ListTemplates(t *testing.T) {
	bin := tu.FakeNuclei(t, `if [ "$1" = "-tl" ]; then
  echo "[INF] Listing templates"
  echo "http/a.yaml"
  echo "dns/b.yaml"
  exit 0
fi
exit 1`)
	r := New(bin, t.TempDir())
	out, err := r.ListTemplates(context.Background())
	if err != nil {
		t.Fatalf("ListTemplates error: %v", err)
	}
	if !strings.Contains(out, "http/a.yaml") || !strings.Contains(out, "dns/b.yaml") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := r.UpdateTemplates(context.Background()); err == nil {
		t.Fatalf("expected non-zero exit from update")
	}
}

// argsEcho prints its argv, one per line, and fails for targets containing "bad".
const argsEcho = `for a in "$@"; do echo "arg:$a"; done
case "$*" in *bad*) exit 2;; esac
exit 0`

func TestScanSingle(t *testing.T) {
	work := filepath.Join(t.TempDir(), "work")
	r := New(tu.FakeNuclei(t, argsEcho), work)
	var events []Event
	sum, err := r.ScanSingle(context.Background(), "http://a", Options{Templates: []string{"x.yaml"}, Proxy: "http://p"}, func(e Event) { events = append(events, e) })
	if err != nil {
		t.Fatalf("ScanSingle error: %v", err)
	}
	if sum.Succeeded != 1 || sum.Output != filepath.Join(work, "result.txt") || sum.ID == "" {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if st, err := os.Stat(work); err != nil || !st.IsDir() {
		t.Fatalf("work dir not created")
	}
	if events[0].Kind != EventCommand || !strings.Contains(events[0].Text, "-u http://a -t x.yaml -p http://p") {
		t.Fatalf("first event should be the command line, got %+v", events[0])
	}
	var sawArg bool
	for _, e := range events {
		if e.Kind == EventOutput && e.Text == "arg:-u" {
			sawArg = true
		}
	}
	if !sawArg || events[len(events)-1].Kind != EventSuccess {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestScanSingle_Validation(t *testing.T) {
	r := New("nuclei", t.TempDir())
	if _, err := r.ScanSingle(context.Background(), "", Options{Templates: []string{"a.yaml"}}, nil); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("expected ErrNoTarget, got %v", err)
	}
	if _, err := r.ScanBatch(context.Background(), []string{"http://a"}, Options{}, nil); !errors.Is(err, ErrNoTemplates) {
		t.Fatalf("expected ErrNoTemplates, got %v", err)
	}
}

func TestScanEach_CountsFailures(t *testing.T) {
	work := t.TempDir()
	r := New(tu.FakeNuclei(t, argsEcho), work)
	var progress []int
	sum, err := r.ScanEach(context.Background(), []string{"http://ok1", "http://bad", "http://ok2"}, Options{Templates: []string{"t.yaml"}}, func(e Event) {
		if e.Kind == EventProgress {
			progress = append(progress, e.Index)
		}
		if e.Kind == EventOutput && e.Text == "arg:"+filepath.Join(work, "result_selected_2.txt") {
			progress = append(progress, -2)
		}
	})
	if err != nil {
		t.Fatalf("ScanEach error: %v", err)
	}
	if sum.Succeeded != 2 || sum.Failed != 1 || sum.Total != 3 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if !reflect.DeepEqual(progress, []int{1, 2, -2, 3}) {
		t.Fatalf("unexpected progress/output order %v", progress)
	}
}

func TestScanBatch_UsesListFile(t *testing.T) {
	bin := tu.FakeNuclei(t, `while [ $# -gt 0 ]; do
  if [ "$1" = "-l" ]; then cat "$2"; fi
  shift
done`)
	r := New(bin, t.TempDir())
	var out []string
	sum, err := r.ScanBatch(context.Background(), []string{"http://a", "https://b"}, Options{Templates: []string{"t.yaml"}}, func(e Event) {
		if e.Kind == EventOutput {
			out = append(out, e.Text)
		}
	})
	if err != nil {
		t.Fatalf("ScanBatch error: %v", err)
	}
	if sum.Succeeded != 2 || filepath.Base(sum.Output) != "result_batch.txt" {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if !reflect.DeepEqual(out, []string{Separator, "http://a", "https://b"}) {
		t.Fatalf("nuclei should read targets from -l file, got %q", out)
	}
}
