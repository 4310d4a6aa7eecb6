package app

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"nucleictl/internal/cache"
	"nucleictl/internal/config"
	"nucleictl/internal/nuclei"
	"nucleictl/internal/state"
	"nucleictl/internal/system"
	"nucleictl/internal/ui"
)

// Start runs the TUI program and returns any error.
func Start() error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	if lp, err := config.LogPath(); err == nil {
		if err := os.MkdirAll(filepath.Dir(lp), 0o755); err == nil {
			if closer, err := system.LogToFile(lp); err == nil {
				defer closer.Close()
			}
		}
	}
	cachePath, err := c.CachePath()
	if err != nil {
		return err
	}
	targetsPath, err := config.TargetsPath()
	if err != nil {
		return err
	}
	system.Logger.Info("starting tui", "binary", c.Binary, "work", c.WorkDir, "cache", cachePath)

	// Initialize global bubblezone manager for mouse-aware zones.
	zone.NewGlobal()
	m := ui.New(ui.Options{
		Config:      c,
		State:       state.New(),
		Runner:      nuclei.New(c.Binary, c.WorkDir),
		Cache:       cache.New(cachePath),
		TargetsPath: targetsPath,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return err
	}
	return nil
}
