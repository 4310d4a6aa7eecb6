package templates

import (
	"path/filepath"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"
)

// ParseList extracts template paths from `nuclei -tl` output. Log lines
// such as "[INF] ..." and anything not ending in .yaml are skipped.
func ParseList(output string) []string {
	out := []string{}
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(xansi.Strip(line))
		if line == "" || strings.HasPrefix(line, "[") || !strings.HasSuffix(line, ".yaml") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Filter keeps entries containing term, case-insensitively.
// An empty term returns list as is.
func Filter(list []string, term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return list
	}
	out := make([]string, 0, len(list))
	for _, s := range list {
		if strings.Contains(strings.ToLower(s), term) {
			out = append(out, s)
		}
	}
	return out
}

// FuzzyFilter ranks entries by fuzzy match against term, best first.
func FuzzyFilter(list []string, term string) []string {
	term = strings.TrimSpace(term)
	if term == "" {
		return list
	}
	matches := fuzzy.Find(term, list)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}

// DisplayName is the short label for a custom template path.
func DisplayName(path string) string { return filepath.Base(path) }
