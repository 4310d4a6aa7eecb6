package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestTracker_CountsAndFinishes(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracker(&buf, "scan", 3)
	tr.Increment()
	tr.Increment()
	if tr.Current() != 2 {
		t.Fatalf("Current = %d", tr.Current())
	}
	tr.SetDescription("scan [3/3]")
	tr.Finish()
	if tr.Current() != 3 {
		t.Fatalf("Finish should fill the bar, got %d", tr.Current())
	}
	tr.Increment()
	if tr.Current() != 3 {
		t.Fatalf("Increment past total changed count")
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Fatalf("Finish should end the line")
	}
}

func TestTracker_Disabled(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracker(&buf, "scan", 2)
	tr.Disable()
	buf.Reset()
	tr.Increment()
	tr.Finish()
	if buf.Len() != 0 || tr.Current() != 0 {
		t.Fatalf("disabled tracker wrote %q", buf.String())
	}
}
