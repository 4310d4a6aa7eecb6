package nuclei

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"nucleictl/internal/system"
)

var (
	// ErrNotInstalled means the nuclei binary could not be found.
	ErrNotInstalled = errors.New("未找到 nuclei 命令，请确保已安装 Nuclei")
	ErrNoTarget     = errors.New("请至少选择一个目标地址")
	ErrNoTemplates  = errors.New("请选择至少一个 POC 模板（标准或自定义）")
)

// ExitError is a nuclei run that terminated with a non-zero status.
type ExitError struct {
	Code   int
	Output string // tail of the combined output
}

func (e *ExitError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("nuclei exited with status %d", e.Code)
	}
	return fmt.Sprintf("nuclei exited with status %d: %s", e.Code, e.Output)
}

// Runner invokes the nuclei binary.
type Runner struct {
	Binary  string
	WorkDir string
}

// New returns a Runner for binary writing results under workDir.
func New(binary, workDir string) *Runner {
	if strings.TrimSpace(binary) == "" {
		binary = "nuclei"
	}
	if strings.TrimSpace(workDir) == "" {
		workDir = "./work"
	}
	return &Runner{Binary: binary, WorkDir: workDir}
}

// LookPath resolves the binary, mapping "not found" to ErrNotInstalled.
func (r *Runner) LookPath() (string, error) {
	p, err := exec.LookPath(r.Binary)
	if err != nil {
		return "", fmt.Errorf("%w (%s)", ErrNotInstalled, r.Binary)
	}
	return p, nil
}

// run executes nuclei and returns its combined output.
func (r *Runner) run(ctx context.Context, args ...string) (string, error) {
	path, err := r.LookPath()
	if err != nil {
		return "", err
	}
	cmd := exec.CommandContext(ctx, path, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), exitErr(err, string(out))
	}
	return string(out), nil
}

// ListTemplates runs `nuclei -tl` and returns the raw output.
func (r *Runner) ListTemplates(ctx context.Context) (string, error) {
	system.Logger.Debug("listing templates", "binary", r.Binary)
	return r.run(ctx, "-tl")
}

// UpdateTemplates runs `nuclei -update-templates`.
func (r *Runner) UpdateTemplates(ctx context.Context) (string, error) {
	system.Logger.Info("updating templates", "binary", r.Binary)
	return r.run(ctx, "-update-templates")
}

// Stream runs nuclei with args, merging stderr into stdout, and calls
// onLine for every output line (newline stripped) as it arrives. Lines are
// delivered from a single goroutine in order. A non-zero exit yields
// *ExitError.
func (r *Runner) Stream(ctx context.Context, args []string, onLine func(string)) error {
	path, err := r.LookPath()
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, path, args...)
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		pw.Close()
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w (%s)", ErrNotInstalled, path)
		}
		return err
	}
	system.Logger.Debug("nuclei started", "pid", cmd.Process.Pid, "args", strings.Join(args, " "))

	tail := newTail(20)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		rd := bufio.NewReader(pr)
		for {
			line, err := rd.ReadString('\n')
			if line != "" {
				line = strings.TrimRight(line, "\r\n")
				tail.add(line)
				if onLine != nil {
					onLine(line)
				}
			}
			if err != nil {
				// drain so the child never blocks on a full pipe
				_, _ = io.Copy(io.Discard, pr)
				return
			}
		}
	}()
	waitErr := cmd.Wait()
	pw.Close()
	wg.Wait()
	if waitErr != nil {
		return exitErr(waitErr, tail.String())
	}
	return nil
}

func exitErr(err error, out string) error {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return &ExitError{Code: ee.ExitCode(), Output: strings.TrimSpace(out)}
	}
	return err
}

// tail keeps the last n lines of output for error reports.
type tail struct {
	n     int
	lines []string
}

func newTail(n int) *tail { return &tail{n: n} }

func (t *tail) add(s string) {
	t.lines = append(t.lines, s)
	if len(t.lines) > t.n {
		t.lines = t.lines[len(t.lines)-t.n:]
	}
}

func (t *tail) String() string { return strings.Join(t.lines, "\n") }
