// Package progress draws a terminal progress bar for headless scans.
package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Tracker counts finished targets of a multi-target scan.
type Tracker struct {
	bar     *progressbar.ProgressBar
	out     io.Writer
	total   int
	current int
	mu      sync.Mutex
	enabled bool
}

// NewTracker creates a tracker writing to w.
func NewTracker(w io.Writer, description string, total int) *Tracker {
	if total <= 0 {
		total = 1
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionEnableColorCodes(true),
	)
	return &Tracker{bar: bar, out: w, total: total, enabled: true}
}

// Increment advances the bar by one target.
func (t *Tracker) Increment() {
	if !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current >= t.total {
		return
	}
	t.current++
	_ = t.bar.Add(1)
}

// SetDescription updates the label in front of the bar.
func (t *Tracker) SetDescription(desc string) {
	if !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bar.Describe(desc)
}

// Current returns the number of finished steps.
func (t *Tracker) Current() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Finish fills the bar and ends the line.
func (t *Tracker) Finish() {
	if !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current < t.total {
		_ = t.bar.Add(t.total - t.current)
		t.current = t.total
	}
	_ = t.bar.Finish()
	fmt.Fprintln(t.out)
}

// Clear erases the bar so other output can be printed on its line.
func (t *Tracker) Clear() {
	if !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.bar.Clear()
}

// Disable stops all drawing (non-TTY output, tests).
func (t *Tracker) Disable() {
	t.enabled = false
}
