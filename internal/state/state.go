// Package state holds the in-memory lists the front-end works on. An
// AppState belongs to one controller and is only touched from its control
// loop; it does no locking.
package state

import (
	"sort"
	"strings"

	"nucleictl/internal/targets"
)

// AppState is the mutable session state.
type AppState struct {
	targets  []string
	official []string
	custom   []string
	proxy    string
	proxyOn  bool
}

// New returns an empty state.
func New() *AppState { return &AppState{} }

// Targets returns a copy of the target list.
func (s *AppState) Targets() []string { return clone(s.targets) }

// HasTarget reports whether u is already listed.
func (s *AppState) HasTarget(u string) bool {
	for _, t := range s.targets {
		if t == u {
			return true
		}
	}
	return false
}

// AddTarget normalizes raw and appends it. added is false when the target
// was already present.
func (s *AppState) AddTarget(raw string) (url string, added bool, err error) {
	u, err := targets.NormalizeInput(raw)
	if err != nil {
		return "", false, err
	}
	if s.HasTarget(u) {
		return u, false, nil
	}
	s.targets = append(s.targets, u)
	return u, true, nil
}

// AddTargets appends already-normalized targets that are not yet present
// and returns how many were added.
func (s *AppState) AddTargets(list []string) int {
	n := 0
	for _, u := range list {
		if u == "" || s.HasTarget(u) {
			continue
		}
		s.targets = append(s.targets, u)
		n++
	}
	return n
}

// RemoveTargets deletes the targets at the given indices and returns them
// in list order. Out-of-range indices are ignored.
func (s *AppState) RemoveTargets(indices []int) []string {
	drop := map[int]bool{}
	for _, i := range indices {
		if i >= 0 && i < len(s.targets) {
			drop[i] = true
		}
	}
	if len(drop) == 0 {
		return nil
	}
	keep := make([]string, 0, len(s.targets)-len(drop))
	removed := make([]string, 0, len(drop))
	for i, t := range s.targets {
		if drop[i] {
			removed = append(removed, t)
		} else {
			keep = append(keep, t)
		}
	}
	s.targets = keep
	return removed
}

// ClearTargets empties the target list.
func (s *AppState) ClearTargets() { s.targets = nil }

// TargetsAt returns the targets at indices in ascending index order.
func (s *AppState) TargetsAt(indices []int) []string {
	idx := append([]int(nil), indices...)
	sort.Ints(idx)
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		if i >= 0 && i < len(s.targets) {
			out = append(out, s.targets[i])
		}
	}
	return out
}

// Official returns the official template list.
func (s *AppState) Official() []string { return clone(s.official) }

// SetOfficial replaces the official template list.
func (s *AppState) SetOfficial(list []string) { s.official = clone(list) }

// Custom returns the custom template list.
func (s *AppState) Custom() []string { return clone(s.custom) }

// SetCustom replaces the custom template list.
func (s *AppState) SetCustom(list []string) { s.custom = clone(list) }

// ClearCustom empties the custom template list.
func (s *AppState) ClearCustom() { s.custom = nil }

// Proxy returns the configured proxy and whether it is enabled.
func (s *AppState) Proxy() (string, bool) { return s.proxy, s.proxyOn }

// SetProxy stores the proxy URL.
func (s *AppState) SetProxy(u string) { s.proxy = strings.TrimSpace(u) }

// EnableProxy toggles use of the proxy.
func (s *AppState) EnableProxy(on bool) { s.proxyOn = on }

// EffectiveProxy is the proxy to pass to nuclei, or "".
func (s *AppState) EffectiveProxy() string {
	if !s.proxyOn {
		return ""
	}
	return s.proxy
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
