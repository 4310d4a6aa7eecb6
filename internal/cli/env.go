package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"nucleictl/internal/cache"
	"nucleictl/internal/config"
	"nucleictl/internal/nuclei"
	"nucleictl/internal/ui"
)

// env bundles what most subcommands need.
type env struct {
	cfg    config.Config
	runner *nuclei.Runner
	cache  *cache.Manager
}

func loadEnv() (*env, error) {
	c, err := config.Load()
	if err != nil {
		return nil, err
	}
	p, err := c.CachePath()
	if err != nil {
		return nil, err
	}
	return &env{cfg: c, runner: nuclei.New(c.Binary, c.WorkDir), cache: cache.New(p)}, nil
}

// cachedCustom returns the custom list a fresh cache holds. A stale or
// unreadable cache yields nil, the same list the TUI has after startup.
func (e *env) cachedCustom() []string {
	if !e.cache.IsValid() {
		return nil
	}
	ent, err := e.cache.Load()
	if err != nil {
		return nil
	}
	return ent.CustomTemplates
}

var (
	okStyle   = lipgloss.NewStyle().Foreground(ui.Vitesse.Primary)
	errStyle  = lipgloss.NewStyle().Foreground(ui.Vitesse.Red)
	dimStyle  = lipgloss.NewStyle().Foreground(ui.Vitesse.Secondary)
	headStyle = ui.AccentBold()
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printOutput writes raw nuclei output through the segment renderer.
func printOutput(w io.Writer, out string) {
	out = strings.TrimRight(out, "\r\n")
	if out == "" {
		return
	}
	for _, ln := range strings.Split(out, "\n") {
		fmt.Fprintln(w, ui.RenderLine(strings.TrimRight(ln, "\r")))
	}
}
