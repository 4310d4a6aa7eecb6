package nuclei

import (
	"context"
	"regexp"
	"strings"

	"nucleictl/internal/colorseg"
)

// CheckResult is the installation status of nuclei.
type CheckResult struct {
	Installed bool   `json:"installed"`
	Path      string `json:"path,omitempty"`
	Version   string `json:"version,omitempty"`
	Err       string `json:"error,omitempty"`
}

var verRe = regexp.MustCompile(`(?i)\bv?(\d+\.\d+\.\d+(?:[\w\.-]+)?)\b`)

// ParseVersion pulls a semantic version out of `nuclei -version` output,
// which nuclei prints as a colored log line.
func ParseVersion(s string) string {
	s = strings.TrimSpace(colorseg.Strip(s))
	if s == "" {
		return ""
	}
	for _, line := range strings.Split(s, "\n") {
		if !strings.Contains(strings.ToLower(line), "version") {
			continue
		}
		if m := verRe.FindStringSubmatch(line); len(m) > 1 {
			return m[1]
		}
	}
	if m := verRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}

// Version runs `nuclei -version`.
func (r *Runner) Version(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "-version")
	if err != nil {
		return "", err
	}
	return ParseVersion(out), nil
}

// Check reports whether nuclei is available and which version it is.
func (r *Runner) Check(ctx context.Context) CheckResult {
	path, err := r.LookPath()
	if err != nil {
		return CheckResult{Err: err.Error()}
	}
	res := CheckResult{Installed: true, Path: path}
	ver, err := r.Version(ctx)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	res.Version = ver
	return res
}
