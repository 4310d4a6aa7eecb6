package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"nucleictl/internal/nuclei"
	"nucleictl/internal/system"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.prompt != promptNone {
			return m.handlePromptKey(msg)
		}
		if m.confirmBatch {
			return m.handleConfirmKey(msg)
		}
		return m.handleKey(msg)
	case taskMsg:
		next, cmd := m.Update(msg.msg)
		return next, tea.Batch(cmd, waitTask(msg.ch))
	case scanEventMsg:
		return m.handleScanEvent(msg.ev)
	case scanDoneMsg:
		return m.handleScanDone(msg)
	case catalogMsg:
		return m.handleCatalog(msg)
	case updateDoneMsg:
		m.loading = false
		if msg.out != "" {
			m.appendOutput(strings.Split(strings.TrimRight(msg.out, "\n"), "\n")...)
		}
		if msg.err != nil {
			m.setNotice(fmt.Sprintf("模板更新失败: %v", msg.err), true)
			return m, nil
		}
		m.setNotice("模板更新完成，正在刷新模板列表…", false)
		m.loading = true
		return m, tea.Batch(m.spin.Tick, refreshCmd(context.Background(), m.cache, m.runner, m.st.Custom()))
	case targetsLoadedMsg:
		if msg.err != nil {
			m.setNotice(fmt.Sprintf("读取目标文件失败: %v", msg.err), true)
			return m, nil
		}
		n := m.st.AddTargets(msg.list)
		m.syncTargets()
		m.saveTargets()
		m.setNotice(fmt.Sprintf("已从 %s 导入 %d 个目标（共 %d）", msg.path, n, len(m.st.Targets())), false)
		return m, nil
	case cacheClearedMsg:
		if msg.err != nil {
			m.setNotice(fmt.Sprintf("清除缓存失败: %v", msg.err), true)
			return m, nil
		}
		m.fromCache = false
		m.st.ClearCustom()
		m.panes[focusCustom].setItems(nil)
		m.setNotice("缓存已清除", false)
		return m, nil
	case resultsMsg:
		if msg.err != nil {
			system.Logger.Warn("list results failed", "err", msg.err)
			return m, nil
		}
		m.files = msg.files
		return m, nil
	case watchStartedMsg:
		if msg.err != nil {
			system.Logger.Warn("watch work dir failed", "dir", m.cfg.WorkDir, "err", msg.err)
			return m, nil
		}
		return m, watchSubscribeCmd(msg.ch)
	case resultsChangedMsg:
		return m, tea.Batch(listResultsCmd(m.cfg.WorkDir), watchSubscribeCmd(msg.ch))
	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		nm, cmd := m.prog.Update(msg)
		if p, ok := nm.(progress.Model); ok {
			m.prog = p
		}
		return m, cmd
	}
	return m, nil
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	m.quitting = true
	return m, tea.Quit
}

func (m *model) layout() {
	w := maxInt(20, m.width)
	paneH := maxInt(6, (m.height-4)/2)
	outH := maxInt(4, m.height-paneH-4)
	m.vp.Width = w - 2
	m.vp.Height = outH - 2
	m.help.Width = w
	m.prog.Width = maxInt(10, w/4)
	m.ti.Width = maxInt(10, w-24)
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
		for f := focusTargets; f < focusCount; f++ {
			if zone.Get(paneZone(f)).InBounds(msg) {
				m.focus = f
				return m, nil
			}
		}
	}
	if zone.Get(paneZone(focusOutput)).InBounds(msg) {
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func paneZone(f focusKind) string { return fmt.Sprintf("pane.%d", f) }

func (m *model) openPrompt(kind promptKind, placeholder, value string) {
	m.prompt = kind
	m.ti.Placeholder = placeholder
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Focus()
}

func (m *model) closePrompt() {
	m.prompt = promptNone
	m.ti.Blur()
	m.ti.SetValue("")
}

func (m model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.prompt == promptSearch {
			if p := m.searchPane(); p != nil {
				p.setQuery("")
			}
		}
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		kind, val := m.prompt, m.ti.Value()
		m.closePrompt()
		return m.submitPrompt(kind, val)
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	if m.prompt == promptSearch {
		if p := m.searchPane(); p != nil {
			p.setQuery(m.ti.Value())
		}
	}
	return m, cmd
}

func (m *model) searchPane() *pane {
	if m.focus == focusOutput {
		return nil
	}
	return &m.panes[m.focus]
}

func (m model) submitPrompt(kind promptKind, val string) (tea.Model, tea.Cmd) {
	val = strings.TrimSpace(val)
	switch kind {
	case promptURL:
		u, added, err := m.st.AddTarget(val)
		if err != nil {
			m.setNotice(err.Error(), true)
			return m, nil
		}
		if !added {
			m.setNotice(fmt.Sprintf("目标已存在: %s", u), false)
			return m, nil
		}
		m.syncTargets()
		m.saveTargets()
		m.setNotice(fmt.Sprintf("已添加目标: %s", u), false)
		return m, nil
	case promptTargetFile:
		if val == "" {
			m.setNotice("未选择文件", true)
			return m, nil
		}
		return m, loadTargetsCmd(val)
	case promptCustomDir:
		if val == "" {
			m.setNotice("未选择文件夹", true)
			return m, nil
		}
		if m.loading {
			m.setNotice("模板任务进行中，请稍候", true)
			return m, nil
		}
		m.loading = true
		m.setNotice(fmt.Sprintf("正在扫描 %s …", val), false)
		return m, tea.Batch(m.spin.Tick, customCmd(m.cache, val, m.st.Official()))
	case promptProxy:
		m.st.SetProxy(val)
		m.st.EnableProxy(val != "")
		if val == "" {
			m.setNotice("代理已清除", false)
		} else {
			m.setNotice(fmt.Sprintf("代理已启用: %s", val), false)
		}
		return m, nil
	}
	return m, nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y", "enter":
		m.confirmBatch = false
		return m.startScan(nuclei.ModeBatch, m.st.Targets())
	case "n", "esc", "q":
		m.confirmBatch = false
		m.setNotice("已取消批量扫描", false)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m.quit()
	case key.Matches(msg, k.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, k.NextPane):
		m.focus = (m.focus + 1) % focusCount
		return m, nil
	case key.Matches(msg, k.PrevPane):
		m.focus = (m.focus + focusCount - 1) % focusCount
		return m, nil
	}

	if m.focus == focusOutput {
		switch {
		case key.Matches(msg, k.ClearOutput):
			m.clearOutput()
			return m, nil
		case key.Matches(msg, k.Up, k.Down, k.Top, k.Bottom), msg.Type == tea.KeyPgUp, msg.Type == tea.KeyPgDown:
			switch {
			case key.Matches(msg, k.Top):
				m.vp.GotoTop()
				return m, nil
			case key.Matches(msg, k.Bottom):
				m.vp.GotoBottom()
				return m, nil
			}
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	} else {
		p := &m.panes[m.focus]
		switch {
		case key.Matches(msg, k.Up):
			p.move(-1)
			return m, nil
		case key.Matches(msg, k.Down):
			p.move(1)
			return m, nil
		case key.Matches(msg, k.Top):
			p.home()
			return m, nil
		case key.Matches(msg, k.Bottom):
			p.end()
			return m, nil
		case key.Matches(msg, k.Toggle):
			p.toggle()
			return m, nil
		case key.Matches(msg, k.SelectAll):
			p.selectAll()
			return m, nil
		case key.Matches(msg, k.SelectNone):
			p.selectNone()
			return m, nil
		case key.Matches(msg, k.Search):
			m.openPrompt(promptSearch, "搜索…", p.query)
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, k.AddTarget):
		m.openPrompt(promptURL, "http://example.com", "")
	case key.Matches(msg, k.LoadTargets):
		m.openPrompt(promptTargetFile, "目标文件路径 (每行一个 URL)", "")
	case key.Matches(msg, k.DeleteTargets):
		idx := m.panes[focusTargets].indices()
		if len(idx) == 0 {
			m.setNotice("未选择要删除的目标", true)
			return m, nil
		}
		removed := m.st.RemoveTargets(idx)
		m.syncTargets()
		m.saveTargets()
		m.setNotice(fmt.Sprintf("已删除 %d 个目标", len(removed)), false)
	case key.Matches(msg, k.ClearTargets):
		m.st.ClearTargets()
		m.syncTargets()
		m.saveTargets()
		m.setNotice("目标列表已清空", false)
	case key.Matches(msg, k.LoadCustom):
		m.openPrompt(promptCustomDir, "自定义模板文件夹", m.cfg.CustomDir)
	case key.Matches(msg, k.ClearCustom):
		m.st.ClearCustom()
		m.panes[focusCustom].setItems(nil)
		m.setNotice("自定义模板已清空", false)
	case key.Matches(msg, k.Refresh):
		return m.startLoading("正在刷新模板列表…", refreshCmd(context.Background(), m.cache, m.runner, m.st.Custom()))
	case key.Matches(msg, k.Update):
		return m.startLoading("正在更新模板…", updateTemplatesCmd(context.Background(), m.runner))
	case key.Matches(msg, k.ClearCache):
		if m.cache == nil {
			return m, nil
		}
		return m, clearCacheCmd(m.cache)
	case key.Matches(msg, k.Proxy):
		p, _ := m.st.Proxy()
		m.openPrompt(promptProxy, "http://127.0.0.1:8080", p)
	case key.Matches(msg, k.ToggleProxy):
		p, on := m.st.Proxy()
		if p == "" {
			m.setNotice("尚未设置代理", true)
			return m, nil
		}
		m.st.EnableProxy(!on)
		if on {
			m.setNotice("代理已停用", false)
		} else {
			m.setNotice(fmt.Sprintf("代理已启用: %s", p), false)
		}
	case key.Matches(msg, k.Scan):
		list := m.panes[focusTargets].values()
		mode := nuclei.ModeEach
		if len(list) == 1 {
			mode = nuclei.ModeSingle
		}
		return m.startScan(mode, list)
	case key.Matches(msg, k.ScanBatch):
		if err := m.validateScan(m.st.Targets()); err != nil {
			m.setNotice(err.Error(), true)
			return m, nil
		}
		m.confirmBatch = true
		m.setNotice(fmt.Sprintf("确定批量扫描全部 %d 个目标？(y/n)", len(m.st.Targets())), false)
	}
	return m, nil
}

func (m model) startLoading(note string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.runner == nil || m.cache == nil {
		return m, nil
	}
	if m.loading {
		m.setNotice("模板任务进行中，请稍候", true)
		return m, nil
	}
	m.loading = true
	m.setNotice(note, false)
	return m, tea.Batch(m.spin.Tick, cmd)
}

// selectedTemplates returns the checked official and custom templates.
func (m model) selectedTemplates() []string {
	out := m.panes[focusOfficial].values()
	return append(out, m.panes[focusCustom].values()...)
}

func (m model) validateScan(list []string) error {
	if m.scanning {
		return errors.New("扫描进行中，请等待当前扫描结束")
	}
	if len(list) == 0 {
		return nuclei.ErrNoTarget
	}
	if len(m.selectedTemplates()) == 0 {
		return nuclei.ErrNoTemplates
	}
	return nil
}

func (m model) startScan(mode nuclei.Mode, list []string) (tea.Model, tea.Cmd) {
	if err := m.validateScan(list); err != nil {
		m.setNotice(err.Error(), true)
		return m, nil
	}
	if m.runner == nil {
		return m, nil
	}
	opts := nuclei.Options{Templates: m.selectedTemplates(), Proxy: m.st.EffectiveProxy()}
	m.scanning = true
	m.progDone, m.progAll = 0, len(list)
	m.clearOutput()
	m.setNotice(fmt.Sprintf("开始扫描 %d 个目标…", len(list)), false)
	return m, tea.Batch(m.spin.Tick, m.prog.SetPercent(0), scanCmd(context.Background(), m.runner, mode, list, opts))
}

func (m model) handleScanEvent(ev nuclei.Event) (tea.Model, tea.Cmd) {
	switch ev.Kind {
	case nuclei.EventCommand:
		m.appendOutput("执行命令: " + ev.Text)
	case nuclei.EventFailure:
		m.appendOutput("\x1b[31m" + ev.Text + "\x1b[0m")
	case nuclei.EventSuccess:
		m.appendOutput("\x1b[32m" + ev.Text + "\x1b[0m")
		if ev.Total > 0 {
			m.progDone = ev.Index
			return m, m.prog.SetPercent(float64(m.progDone) / float64(ev.Total))
		}
	case nuclei.EventProgress:
		m.progAll = ev.Total
		m.progDone = ev.Index - 1
		return m, m.prog.SetPercent(float64(m.progDone) / float64(maxInt(1, ev.Total)))
	default:
		m.appendOutput(ev.Text)
	}
	return m, nil
}

func (m model) handleScanDone(msg scanDoneMsg) (tea.Model, tea.Cmd) {
	m.scanning = false
	m.progDone = m.progAll
	cmds := []tea.Cmd{m.prog.SetPercent(1), listResultsCmd(m.cfg.WorkDir)}
	if msg.err != nil {
		var ee *nuclei.ExitError
		if errors.As(msg.err, &ee) {
			m.appendOutput(fmt.Sprintf("\x1b[31m扫描失败，退出码: %d\x1b[0m", ee.Code))
			m.setNotice(fmt.Sprintf("扫描失败，退出码: %d", ee.Code), true)
		} else {
			m.appendOutput("\x1b[31m扫描错误: " + msg.err.Error() + "\x1b[0m")
			m.setNotice(fmt.Sprintf("扫描错误: %v", msg.err), true)
		}
		return m, tea.Batch(cmds...)
	}
	m.setNotice(fmt.Sprintf("扫描结束：成功 %d，失败 %d，共 %d", msg.sum.Succeeded, msg.sum.Failed, msg.sum.Total), msg.sum.Failed > 0)
	return m, tea.Batch(cmds...)
}

func (m model) handleCatalog(msg catalogMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		switch msg.action {
		case "custom":
			m.setNotice(msg.err.Error(), true)
		default:
			m.setNotice(fmt.Sprintf("获取模板列表失败: %v", msg.err), true)
		}
		return m, nil
	}
	res := msg.res
	switch msg.action {
	case "custom":
		m.st.SetCustom(res.Custom)
		m.panes[focusCustom].setItems(m.st.Custom())
		m.cfg.CustomDir = msg.dir
		m.setNotice(fmt.Sprintf("已加载 %d 个自定义模板", len(res.Custom)), false)
	default:
		m.st.SetOfficial(res.Official)
		m.panes[focusOfficial].setItems(m.st.Official())
		if res.FromCache {
			m.st.SetCustom(res.Custom)
			m.panes[focusCustom].setItems(m.st.Custom())
			m.setNotice(fmt.Sprintf("已从缓存加载 %d 个官方模板，%d 个自定义模板（缓存时长: %s）", len(res.Official), len(res.Custom), shortAge(res.Age)), false)
		} else {
			m.setNotice(fmt.Sprintf("已加载 %d 个官方模板", len(res.Official)), false)
		}
		m.fromCache = res.FromCache
		m.cacheAge = res.Age
	}
	if res.SaveErr != nil {
		m.setNotice(m.notice+fmt.Sprintf("（缓存写入失败: %v）", res.SaveErr), true)
	}
	return m, nil
}
