package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Expiry is how long a saved template list stays authoritative.
const Expiry = 24 * time.Hour

var (
	ErrNotFound  = errors.New("cache file not found")
	ErrParse     = errors.New("cache file unreadable")
	ErrTimestamp = errors.New("cache timestamp missing or malformed")
)

// CacheError reports why a cache file could not be used.
type CacheError struct {
	Path string
	Kind error // one of ErrNotFound, ErrParse, ErrTimestamp
	Err  error
}

func (e *CacheError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Kind)
}

func (e *CacheError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Entry is one snapshot of discovered template identifiers.
type Entry struct {
	Timestamp       time.Time
	Templates       []string
	CustomTemplates []string
}

// Age is the time elapsed since the snapshot was taken.
func (e Entry) Age(now time.Time) time.Duration { return now.Sub(e.Timestamp) }

// file is the on-disk shape.
type file struct {
	Timestamp       string   `json:"timestamp"`
	Templates       []string `json:"templates"`
	CustomTemplates []string `json:"custom_templates"`
}

// Manager is the sole reader and writer of one cache file.
type Manager struct {
	path   string
	expiry time.Duration
	now    func() time.Time
}

// New returns a Manager for path using the standard expiry and wall clock.
func New(path string) *Manager {
	return &Manager{path: path, expiry: Expiry, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Path returns the cache file location.
func (m *Manager) Path() string { return m.path }

// Now reports the manager's clock.
func (m *Manager) Now() time.Time { return m.now() }

// IsValid reports whether the cache exists, parses, and is younger than the
// expiry window. Any problem counts as invalid.
func (m *Manager) IsValid() bool {
	e, err := m.Load()
	if err != nil {
		return false
	}
	return e.Age(m.now()) < m.expiry
}

// Load reads and parses the cache file. It does not check expiry.
func (m *Manager) Load() (Entry, error) {
	b, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, &CacheError{Path: m.path, Kind: ErrNotFound}
		}
		return Entry{}, &CacheError{Path: m.path, Kind: ErrParse, Err: err}
	}
	var f file
	if err := json.Unmarshal(b, &f); err != nil {
		return Entry{}, &CacheError{Path: m.path, Kind: ErrParse, Err: err}
	}
	ts, err := parseTimestamp(f.Timestamp)
	if err != nil {
		return Entry{}, &CacheError{Path: m.path, Kind: ErrTimestamp, Err: err}
	}
	return Entry{
		Timestamp:       ts,
		Templates:       nonNil(f.Templates),
		CustomTemplates: nonNil(f.CustomTemplates),
	}, nil
}

// Save overwrites the cache with the given lists and the current time.
func (m *Manager) Save(official, custom []string) error {
	f := file{
		Timestamp:       m.now().Format(time.RFC3339Nano),
		Templates:       nonNil(official),
		CustomTemplates: nonNil(custom),
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".templates_cache-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, m.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Clear deletes the cache file. A missing file is not an error.
func (m *Manager) Clear() error {
	err := os.Remove(m.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Exists reports whether a cache file is present, valid or not.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// naive layouts cover ISO-8601 timestamps written without a zone.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func nonNil(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
