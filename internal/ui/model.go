package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nucleictl/internal/cache"
	"nucleictl/internal/config"
	"nucleictl/internal/nuclei"
	"nucleictl/internal/results"
	"nucleictl/internal/state"
	"nucleictl/internal/store"
	"nucleictl/internal/system"
	"nucleictl/internal/templates"
)

type focusKind int

const (
	focusTargets focusKind = iota
	focusOfficial
	focusCustom
	focusOutput
	focusCount
)

type promptKind int

const (
	promptNone promptKind = iota
	promptURL
	promptTargetFile
	promptCustomDir
	promptProxy
	promptSearch
)

// maxOutputLines bounds the output buffer kept for the viewport.
const maxOutputLines = 5000

// Options wires the model to its collaborators.
type Options struct {
	Config      config.Config
	State       *state.AppState
	Runner      *nuclei.Runner
	Cache       *cache.Manager
	TargetsPath string // persisted target list; empty disables persistence
}

// Model for TUI
type model struct {
	cfg         config.Config
	st          *state.AppState
	runner      *nuclei.Runner
	cache       *cache.Manager
	targetsPath string

	// watcher lifetime
	ctx    context.Context
	cancel context.CancelFunc

	panes [3]pane
	focus focusKind

	out []string
	vp  viewport.Model

	ti     textinput.Model
	prompt promptKind

	confirmBatch bool

	// background work
	loading  bool // template list / update / custom scan in flight
	scanning bool
	spin     spinner.Model
	prog     progress.Model
	progDone int
	progAll  int

	keys     keyMap
	help     help.Model
	showHelp bool

	notice    string
	noticeErr bool

	fromCache bool
	cacheAge  time.Duration
	files     []results.File

	width    int
	height   int
	quitting bool
}

func newModel(opts Options) model {
	st := opts.State
	if st == nil {
		st = state.New()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := model{
		cfg:         opts.Config,
		st:          st,
		runner:      opts.Runner,
		cache:       opts.Cache,
		targetsPath: opts.TargetsPath,
		ctx:         ctx,
		cancel:      cancel,
		keys:        defaultKeys(),
		help:        help.New(),
	}
	m.panes[focusTargets] = newPane("目标", IconTargets(), nil)
	m.panes[focusOfficial] = newPane("官方模板", IconTemplates(), nil)
	m.panes[focusCustom] = newPane("自定义模板", IconCustom(), templates.DisplayName)

	ti := textinput.New()
	ti.Prompt = " > "
	ti.CharLimit = 4096
	ti.Blur()
	m.ti = ti

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Vitesse.Primary)
	m.spin = sp
	m.prog = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage())
	m.vp = viewport.New(80, 10)

	if p, _ := st.Proxy(); p == "" && opts.Config.Proxy != "" {
		st.SetProxy(opts.Config.Proxy)
		st.EnableProxy(opts.Config.ProxyEnabled)
	}
	if m.targetsPath != "" {
		list, err := store.LoadStringList(m.targetsPath)
		if err != nil {
			system.Logger.Warn("load saved targets failed", "path", m.targetsPath, "err", err)
		}
		for _, t := range list {
			_, _, _ = st.AddTarget(t)
		}
	}
	m.syncTargets()
	m.panes[focusOfficial].setItems(st.Official())
	m.panes[focusCustom].setItems(st.Custom())
	return m
}

// New returns the TUI model.
func New(opts Options) tea.Model { return newModel(opts) }

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spin.Tick,
		startWatchCmd(m.ctx, m.cfg.WorkDir),
		listResultsCmd(m.cfg.WorkDir),
	}
	if m.runner != nil && m.cache != nil {
		cmds = append(cmds, startupCmd(context.Background(), m.cache, m.runner, m.st.Custom()))
	}
	return tea.Batch(cmds...)
}

func (m *model) syncTargets() {
	m.panes[focusTargets].setItems(m.st.Targets())
}

func (m *model) saveTargets() {
	if m.targetsPath == "" {
		return
	}
	if err := store.SaveStringList(m.targetsPath, m.st.Targets()); err != nil {
		system.Logger.Warn("save targets failed", "path", m.targetsPath, "err", err)
	}
}

func (m *model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

// appendOutput adds raw lines to the output buffer and keeps the viewport
// pinned to the bottom.
func (m *model) appendOutput(lines ...string) {
	m.out = append(m.out, lines...)
	if over := len(m.out) - maxOutputLines; over > 0 {
		m.out = append([]string(nil), m.out[over:]...)
	}
	m.vp.SetContent(RenderLines(m.out))
	m.vp.GotoBottom()
}

func (m *model) clearOutput() {
	m.out = nil
	m.vp.SetContent("")
}

func (m model) busy() bool { return m.loading || m.scanning }
