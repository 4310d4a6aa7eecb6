package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"nucleictl/internal/results"
	appver "nucleictl/internal/version"
)

func (m model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	w := maxInt(20, m.width)
	h := m.height
	if h <= 0 {
		h = 30
	}
	paneH := maxInt(6, (h-4)/2)

	// three list panes side by side
	colW := w / 3
	cols := make([]string, 0, 3)
	for f := focusTargets; f < focusOutput; f++ {
		cw := colW
		if f == focusCustom {
			cw = w - 2*colW
		}
		p := m.panes[f]
		cols = append(cols, zone.Mark(paneZone(f), p.view(cw, paneH, m.focus == f)))
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	// output viewport
	title := AccentBold().Render(fmt.Sprintf("%s 输出", IconOutput()))
	if m.scanning {
		title += "  " + m.spin.View() + " " + m.prog.View() + fmt.Sprintf(" %d/%d", m.progDone, m.progAll)
	}
	out := PaneStyle(m.focus == focusOutput).Width(w - 2).Render(title + "\n" + m.vp.View())
	out = zone.Mark(paneZone(focusOutput), out)

	b := &strings.Builder{}
	b.WriteString(top)
	b.WriteString("\n")
	b.WriteString(out)
	b.WriteString("\n")
	b.WriteString(m.renderPromptLine(w))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBarLine(w))
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return zone.Scan(b.String())
}

// renderPromptLine shows the active input, the batch confirmation or the
// latest notice.
func (m model) renderPromptLine(width int) string {
	if m.prompt != promptNone {
		return promptLabel(m.prompt) + m.ti.View()
	}
	text := m.notice
	if m.busy() && !m.scanning {
		text = m.spin.View() + " " + text
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(noticeStyle(m.noticeErr).Render(text))
}

func promptLabel(k promptKind) string {
	l := map[promptKind]string{
		promptURL:        "添加目标",
		promptTargetFile: "目标文件",
		promptCustomDir:  "模板文件夹",
		promptProxy:      "代理",
		promptSearch:     "搜索",
	}[k]
	return AccentBold().Render(l)
}

func (m model) renderStatusBarLine(width int) string {
	left := []string{"nucleictl"}
	if m.fromCache {
		left = append(left, fmt.Sprintf("%s 缓存 %s", IconCache(), shortAge(m.cacheAge)))
	}
	left = append(left, fmt.Sprintf("目标 %d · 模板 %d/%d", len(m.st.Targets()), len(m.selectedTemplates()), len(m.st.Official())+len(m.st.Custom())))

	right := []string{}
	if p, on := m.st.Proxy(); p != "" {
		state := "off"
		if on {
			state = "on"
		}
		right = append(right, fmt.Sprintf("%s %s", IconProxy(), state))
	}
	if len(m.files) > 0 {
		right = append(right, fmt.Sprintf("%s %d", IconResults(), results.Total(m.files)))
	}
	right = append(right, IconVersion()+" v"+appver.AppVersion)
	return renderStatusBar(width, left, right)
}

// shortAge formats a cache age for the status bar.
func shortAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "刚刚"
	case d < time.Hour:
		return fmt.Sprintf("%d 分钟", int(d.Minutes()))
	default:
		return fmt.Sprintf("%.1f 小时", d.Hours())
	}
}
