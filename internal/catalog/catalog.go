// Package catalog decides where the template lists come from: the cache
// file while it is fresh, the nuclei binary otherwise.
package catalog

import (
	"context"
	"time"

	"nucleictl/internal/cache"
	"nucleictl/internal/system"
	"nucleictl/internal/templates"
)

// Lister produces raw `nuclei -tl` output.
type Lister interface {
	ListTemplates(ctx context.Context) (string, error)
}

// Result is the outcome of loading the template lists.
type Result struct {
	Official  []string
	Custom    []string
	FromCache bool
	Age       time.Duration // cache age when FromCache
	SaveErr   error         // cache write failure, not fatal
}

// Startup applies the start-of-process policy. A valid cache is used as is
// and nuclei is not consulted. Otherwise the official list is regenerated
// and saved together with custom, the caller's in-memory custom list.
func Startup(ctx context.Context, c *cache.Manager, l Lister, custom []string) (Result, error) {
	if c.IsValid() {
		e, err := c.Load()
		if err == nil {
			system.Logger.Info("template lists loaded from cache", "path", c.Path(), "official", len(e.Templates), "custom", len(e.CustomTemplates))
			return Result{
				Official:  e.Templates,
				Custom:    e.CustomTemplates,
				FromCache: true,
				Age:       e.Age(c.Now()),
			}, nil
		}
		system.Logger.Warn("cache became unreadable", "err", err)
	}
	return Refresh(ctx, c, l, custom)
}

// Refresh always queries nuclei for the official list and rewrites the cache.
func Refresh(ctx context.Context, c *cache.Manager, l Lister, custom []string) (Result, error) {
	out, err := l.ListTemplates(ctx)
	if err != nil {
		return Result{Custom: custom}, err
	}
	res := Result{Official: templates.ParseList(out), Custom: custom}
	if err := c.Save(res.Official, res.Custom); err != nil {
		system.Logger.Warn("cache save failed", "path", c.Path(), "err", err)
		res.SaveErr = err
	}
	return res, nil
}

// RescanCustom reloads custom templates from dir and saves them alongside
// the current official list. On error nothing is saved.
func RescanCustom(c *cache.Manager, dir string, official []string) (Result, error) {
	custom, err := templates.ScanDir(dir)
	if err != nil {
		return Result{Official: official}, err
	}
	res := Result{Official: official, Custom: custom}
	if err := c.Save(official, custom); err != nil {
		system.Logger.Warn("cache save failed", "path", c.Path(), "err", err)
		res.SaveErr = err
	}
	return res, nil
}
