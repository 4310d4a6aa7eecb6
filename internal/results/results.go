// Package results inspects the result files nuclei writes into the work
// directory.
package results

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// File is one result file.
type File struct {
	Path     string    `json:"path"`
	Findings int       `json:"findings"` // non-blank lines; nuclei writes one finding per line
	ModTime  time.Time `json:"mod_time"`
}

// IsResultFile reports whether name looks like a file this tool asked
// nuclei to write.
func IsResultFile(name string) bool {
	return strings.HasPrefix(name, "result") && strings.HasSuffix(name, ".txt")
}

// List returns the result files in dir, newest first. A missing dir is
// not an error.
func List(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []File{}, nil
		}
		return nil, err
	}
	out := make([]File, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsResultFile(e.Name()) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		info, err := e.Info()
		if err != nil {
			continue
		}
		n, err := countLines(p)
		if err != nil {
			continue
		}
		out = append(out, File{Path: p, Findings: n, ModTime: info.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ModTime.Equal(out[j].ModTime) {
			return out[i].Path < out[j].Path
		}
		return out[i].ModTime.After(out[j].ModTime)
	})
	return out, nil
}

// Total sums findings across files.
func Total(files []File) int {
	n := 0
	for _, f := range files {
		n += f.Findings
	}
	return n
}

func countLines(p string) (int, error) {
	f, err := os.Open(p)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	n := 0
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n, sc.Err()
}

// Watch signals on the returned channel whenever a result file in dir is
// created or written. Signals coalesce; the channel closes when ctx ends.
// dir is created if missing so it can be watched before the first scan.
func Watch(ctx context.Context, dir string) (<-chan struct{}, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !IsResultFile(filepath.Base(ev.Name)) {
					continue
				}
				if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) {
					continue
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return ch, nil
}
