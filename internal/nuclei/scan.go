package nuclei

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"nucleictl/internal/system"
	"nucleictl/internal/targets"
)

// Mode is the shape of a scan run.
type Mode string

const (
	ModeSingle Mode = "single" // one target, -u
	ModeEach   Mode = "each"   // several targets, one -u run each
	ModeBatch  Mode = "batch"  // several targets in one -l run
)

// EventKind classifies scan progress reports.
type EventKind int

const (
	EventOutput   EventKind = iota // a line printed by nuclei
	EventCommand                   // the command about to run
	EventNote                      // informational
	EventSuccess                   // a run finished with status 0
	EventFailure                   // a run failed
	EventProgress                  // Index of Total targets started
)

// Event is reported while a scan runs.
type Event struct {
	Kind  EventKind
	Text  string
	Index int
	Total int
}

// Handler receives scan events in order.
type Handler func(Event)

// Options are shared by all scan modes.
type Options struct {
	Templates []string
	Proxy     string
}

// Summary describes a finished scan.
type Summary struct {
	ID        string
	Mode      Mode
	Output    string // result file, or the work dir for ModeEach
	Succeeded int
	Failed    int
	Total     int
}

// Separator is printed before nuclei output starts.
var Separator = strings.Repeat("-", 50)

func (r *Runner) prepare(opts Options, n int) (string, error) {
	if n == 0 {
		return "", ErrNoTarget
	}
	if len(opts.Templates) == 0 {
		return "", ErrNoTemplates
	}
	if err := os.MkdirAll(r.WorkDir, 0o755); err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	return uuid.NewString(), nil
}

func emit(h Handler, e Event) {
	if h != nil {
		h(e)
	}
}

func (r *Runner) streamTo(ctx context.Context, req ScanRequest, h Handler) error {
	return r.Stream(ctx, req.Args(), func(line string) {
		emit(h, Event{Kind: EventOutput, Text: line})
	})
}

// ScanSingle scans one target, writing results to <work>/result.txt.
func (r *Runner) ScanSingle(ctx context.Context, target string, opts Options, h Handler) (Summary, error) {
	id, err := r.prepare(opts, len(strings.TrimSpace(target)))
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{ID: id, Mode: ModeSingle, Output: filepath.Join(r.WorkDir, "result.txt"), Total: 1}
	req := ScanRequest{Templates: opts.Templates, Target: target, Output: sum.Output, Proxy: opts.Proxy}
	log := system.Logger.With("run", id, "mode", sum.Mode)
	log.Info("scan started", "target", target, "templates", len(opts.Templates))

	emit(h, Event{Kind: EventCommand, Text: req.CommandLine(r.Binary)})
	emit(h, Event{Kind: EventOutput, Text: Separator})
	if err := r.streamTo(ctx, req, h); err != nil {
		sum.Failed = 1
		log.Error("scan failed", "err", err)
		return sum, err
	}
	sum.Succeeded = 1
	emit(h, Event{Kind: EventSuccess, Text: fmt.Sprintf("扫描完成！结果已保存到 %s", sum.Output)})
	log.Info("scan finished", "output", sum.Output)
	return sum, nil
}

// ScanEach runs one nuclei process per target, one after another, each
// writing <work>/result_selected_<i>.txt. A failed target is counted and the
// loop continues; only setup problems are returned as errors.
func (r *Runner) ScanEach(ctx context.Context, list []string, opts Options, h Handler) (Summary, error) {
	id, err := r.prepare(opts, len(list))
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{ID: id, Mode: ModeEach, Output: r.WorkDir, Total: len(list)}
	log := system.Logger.With("run", id, "mode", sum.Mode)
	log.Info("scan started", "targets", len(list), "templates", len(opts.Templates))

	for i, target := range list {
		n := i + 1
		emit(h, Event{Kind: EventProgress, Index: n, Total: sum.Total})
		emit(h, Event{Kind: EventNote, Text: fmt.Sprintf("[%d/%d] 扫描目标: %s", n, sum.Total, target), Index: n, Total: sum.Total})
		emit(h, Event{Kind: EventOutput, Text: Separator})
		req := ScanRequest{
			Templates: opts.Templates,
			Target:    target,
			Output:    filepath.Join(r.WorkDir, fmt.Sprintf("result_selected_%d.txt", n)),
			Proxy:     opts.Proxy,
		}
		emit(h, Event{Kind: EventCommand, Text: req.CommandLine(r.Binary)})
		if err := r.streamTo(ctx, req, h); err != nil {
			sum.Failed++
			var ee *ExitError
			if errors.As(err, &ee) {
				emit(h, Event{Kind: EventFailure, Text: fmt.Sprintf("[%d/%d] 扫描失败 ✗", n, sum.Total), Index: n, Total: sum.Total})
			} else {
				emit(h, Event{Kind: EventFailure, Text: fmt.Sprintf("[%d/%d] 扫描异常: %v", n, sum.Total, err), Index: n, Total: sum.Total})
			}
			log.Warn("target failed", "target", target, "err", err)
			if errors.Is(err, ErrNotInstalled) {
				// every later target would fail the same way
				sum.Failed += sum.Total - n
				return sum, err
			}
			continue
		}
		sum.Succeeded++
		emit(h, Event{Kind: EventSuccess, Text: fmt.Sprintf("[%d/%d] 扫描完成 ✓", n, sum.Total), Index: n, Total: sum.Total})
	}
	emit(h, Event{Kind: EventSuccess, Text: fmt.Sprintf("选中目标扫描完成！成功: %d, 失败: %d, 总计: %d", sum.Succeeded, sum.Failed, sum.Total)})
	log.Info("scan finished", "ok", sum.Succeeded, "failed", sum.Failed)
	return sum, nil
}

// ScanBatch hands all targets to a single nuclei process through a
// temporary -l file and writes <work>/result_batch.txt.
func (r *Runner) ScanBatch(ctx context.Context, list []string, opts Options, h Handler) (Summary, error) {
	id, err := r.prepare(opts, len(list))
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{ID: id, Mode: ModeBatch, Output: filepath.Join(r.WorkDir, "result_batch.txt"), Total: len(list)}
	log := system.Logger.With("run", id, "mode", sum.Mode)

	listFile, err := targets.TempListFile(list)
	if err != nil {
		return sum, fmt.Errorf("write target list: %w", err)
	}
	defer os.Remove(listFile)

	req := ScanRequest{Templates: opts.Templates, TargetList: listFile, Output: sum.Output, Proxy: opts.Proxy}
	log.Info("scan started", "targets", len(list), "templates", len(opts.Templates), "list", listFile)
	emit(h, Event{Kind: EventCommand, Text: req.CommandLine(r.Binary)})
	emit(h, Event{Kind: EventNote, Text: fmt.Sprintf("扫描目标数量: %d", len(list))})
	emit(h, Event{Kind: EventOutput, Text: Separator})
	if err := r.streamTo(ctx, req, h); err != nil {
		sum.Failed = sum.Total
		log.Error("scan failed", "err", err)
		return sum, err
	}
	sum.Succeeded = sum.Total
	emit(h, Event{Kind: EventSuccess, Text: fmt.Sprintf("批量扫描完成！结果已保存到 %s", sum.Output)})
	log.Info("scan finished", "output", sum.Output)
	return sum, nil
}
