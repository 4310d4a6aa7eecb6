package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"nucleictl/internal/cache"
	"nucleictl/internal/catalog"
	"nucleictl/internal/nuclei"
	"nucleictl/internal/results"
	"nucleictl/internal/targets"
)

// Commands

func startupCmd(ctx context.Context, c *cache.Manager, l catalog.Lister, custom []string) tea.Cmd {
	return func() tea.Msg {
		res, err := catalog.Startup(ctx, c, l, custom)
		return catalogMsg{action: "startup", res: res, err: err}
	}
}

func refreshCmd(ctx context.Context, c *cache.Manager, l catalog.Lister, custom []string) tea.Cmd {
	return func() tea.Msg {
		res, err := catalog.Refresh(ctx, c, l, custom)
		return catalogMsg{action: "refresh", res: res, err: err}
	}
}

func customCmd(c *cache.Manager, dir string, official []string) tea.Cmd {
	return func() tea.Msg {
		res, err := catalog.RescanCustom(c, dir, official)
		return catalogMsg{action: "custom", dir: dir, res: res, err: err}
	}
}

func updateTemplatesCmd(ctx context.Context, r *nuclei.Runner) tea.Cmd {
	return func() tea.Msg {
		out, err := r.UpdateTemplates(ctx)
		return updateDoneMsg{out: out, err: err}
	}
}

func loadTargetsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		list, err := targets.LoadFile(path)
		return targetsLoadedMsg{path: path, list: list, err: err}
	}
}

func clearCacheCmd(c *cache.Manager) tea.Cmd {
	return func() tea.Msg { return cacheClearedMsg{err: c.Clear()} }
}

func listResultsCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		files, err := results.List(dir)
		return resultsMsg{files: files, err: err}
	}
}

func startWatchCmd(ctx context.Context, dir string) tea.Cmd {
	return func() tea.Msg {
		ch, err := results.Watch(ctx, dir)
		return watchStartedMsg{ch: ch, err: err}
	}
}

// watchSubscribeCmd waits for the next change and debounces bursts of
// writes from a running scan.
func watchSubscribeCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		time.Sleep(120 * time.Millisecond)
		return resultsChangedMsg{ch: ch}
	}
}

// runTask starts fn on its own goroutine. Everything fn sends arrives in
// Update as taskMsg, in order, one at a time.
func runTask(fn func(send func(any))) tea.Cmd {
	return func() tea.Msg {
		ch := make(chan any, 64)
		go func() {
			defer close(ch)
			fn(func(m any) { ch <- m })
		}()
		return nextTask(ch)
	}
}

func waitTask(ch <-chan any) tea.Cmd {
	return func() tea.Msg { return nextTask(ch) }
}

func nextTask(ch <-chan any) tea.Msg {
	m, ok := <-ch
	if !ok {
		return nil
	}
	return taskMsg{ch: ch, msg: m}
}

// scanCmd runs one scan in the background and streams its events.
func scanCmd(ctx context.Context, r *nuclei.Runner, mode nuclei.Mode, list []string, opts nuclei.Options) tea.Cmd {
	return runTask(func(send func(any)) {
		h := func(e nuclei.Event) { send(scanEventMsg{ev: e}) }
		var (
			sum nuclei.Summary
			err error
		)
		switch mode {
		case nuclei.ModeSingle:
			sum, err = r.ScanSingle(ctx, list[0], opts, h)
		case nuclei.ModeEach:
			sum, err = r.ScanEach(ctx, list, opts, h)
		default:
			sum, err = r.ScanBatch(ctx, list, opts, h)
		}
		send(scanDoneMsg{sum: sum, err: err})
	})
}
