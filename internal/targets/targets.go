package targets

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmptyURL is returned when a blank target is submitted.
var ErrEmptyURL = errors.New("目标 URL 为空")

// Normalize turns one input line into a target URL. Blank lines and
// #-comments are not targets. Anything not starting with http:// or
// https:// gets an http:// prefix.
func Normalize(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.HasPrefix(s, "#") {
		return "", false
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s, true
	}
	return "http://" + s, true
}

// NormalizeInput is Normalize for a single user-typed URL, reporting
// ErrEmptyURL instead of a bool.
func NormalizeInput(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyURL
	}
	u, ok := Normalize(raw)
	if !ok {
		return "", fmt.Errorf("不是有效目标：%q", strings.TrimSpace(raw))
	}
	return u, nil
}

// Parse reads newline-delimited targets. Order is kept and repeats within
// the input are dropped.
func Parse(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	seen := map[string]bool{}
	out := []string{}
	for sc.Scan() {
		u, ok := Normalize(sc.Text())
		if !ok || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadFile parses the target list file at path.
func LoadFile(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("未选择目标文件")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Write emits one target per line.
func Write(w io.Writer, list []string) error {
	bw := bufio.NewWriter(w)
	for _, t := range list {
		if _, err := bw.WriteString(t + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// TempListFile writes list to a new temporary file for nuclei -l and
// returns its path. The caller removes it.
func TempListFile(list []string) (string, error) {
	f, err := os.CreateTemp("", "nucleictl-targets-*.txt")
	if err != nil {
		return "", err
	}
	if err := Write(f, list); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
