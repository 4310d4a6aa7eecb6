package ui

import (
	"nucleictl/internal/catalog"
	"nucleictl/internal/nuclei"
	"nucleictl/internal/results"
)

// Bubble Tea messages

// catalogMsg carries a template list load.
type catalogMsg struct {
	action string // startup, refresh, custom
	dir    string // custom folder, for action custom
	res    catalog.Result
	err    error
}

// updateDoneMsg follows `nuclei -update-templates`.
type updateDoneMsg struct {
	out string
	err error
}

// targetsLoadedMsg carries a parsed target file.
type targetsLoadedMsg struct {
	path string
	list []string
	err  error
}

// cacheClearedMsg follows a cache delete.
type cacheClearedMsg struct{ err error }

// taskMsg wraps a message produced by a background task together with the
// channel it came from, so the next one can be awaited.
type taskMsg struct {
	ch  <-chan any
	msg any
}

// scanEventMsg is one progress report from a running scan.
type scanEventMsg struct{ ev nuclei.Event }

// scanDoneMsg ends a scan task.
type scanDoneMsg struct {
	sum nuclei.Summary
	err error
}

// resultsMsg carries a fresh listing of result files.
type resultsMsg struct {
	files []results.File
	err   error
}

// resultsChangedMsg signals a change in the work dir; ch is waited on next.
type resultsChangedMsg struct{ ch <-chan struct{} }

// watchStartedMsg hands over the result watcher channel.
type watchStartedMsg struct {
	ch  <-chan struct{}
	err error
}
