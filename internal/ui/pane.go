package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"nucleictl/internal/templates"
)

// pane is a searchable multi-select list. Selection is kept by value so it
// survives filtering.
type pane struct {
	title    string
	icon     string
	items    []string
	selected map[string]bool
	query    string
	cursor   int // index into visible()
	offset   int
	label    func(string) string
}

func newPane(title, icon string, label func(string) string) pane {
	if label == nil {
		label = func(s string) string { return s }
	}
	return pane{title: title, icon: icon, selected: map[string]bool{}, label: label}
}

// setItems replaces the list, dropping selections that no longer exist.
func (p *pane) setItems(items []string) {
	p.items = append([]string(nil), items...)
	keep := make(map[string]bool, len(p.selected))
	for _, it := range p.items {
		if p.selected[it] {
			keep[it] = true
		}
	}
	p.selected = keep
	p.clamp()
}

func (p *pane) visible() []string {
	if strings.TrimSpace(p.query) == "" {
		return p.items
	}
	return templates.Filter(p.items, p.query)
}

func (p *pane) setQuery(q string) {
	p.query = q
	p.cursor = 0
	p.offset = 0
}

func (p *pane) clamp() {
	n := len(p.visible())
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.offset > p.cursor {
		p.offset = p.cursor
	}
}

func (p *pane) move(d int) {
	p.cursor += d
	p.clamp()
}

func (p *pane) home() { p.cursor = 0; p.offset = 0 }

func (p *pane) end() {
	p.cursor = len(p.visible()) - 1
	p.clamp()
}

func (p *pane) current() (string, bool) {
	v := p.visible()
	if p.cursor < 0 || p.cursor >= len(v) {
		return "", false
	}
	return v[p.cursor], true
}

func (p *pane) toggle() {
	it, ok := p.current()
	if !ok {
		return
	}
	if p.selected[it] {
		delete(p.selected, it)
	} else {
		p.selected[it] = true
	}
}

// selectAll selects every visible item.
func (p *pane) selectAll() {
	for _, it := range p.visible() {
		p.selected[it] = true
	}
}

func (p *pane) selectNone() { p.selected = map[string]bool{} }

// values returns the selected items in list order.
func (p *pane) values() []string {
	out := make([]string, 0, len(p.selected))
	for _, it := range p.items {
		if p.selected[it] {
			out = append(out, it)
		}
	}
	return out
}

// indices returns the list positions of the selected items.
func (p *pane) indices() []int {
	out := make([]int, 0, len(p.selected))
	for i, it := range p.items {
		if p.selected[it] {
			out = append(out, i)
		}
	}
	return out
}

func (p *pane) header() string {
	h := fmt.Sprintf("%s %s (%d/%d)", p.icon, p.title, len(p.selected), len(p.items))
	if p.query != "" {
		h += "  /" + p.query
	}
	return h
}

// view renders the pane box at the given outer size.
func (p *pane) view(width, height int, focused bool) string {
	inner := maxInt(4, width-2)
	rows := maxInt(1, height-3) // border top/bottom + header
	vis := p.visible()

	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+rows {
		p.offset = p.cursor - rows + 1
	}

	var b strings.Builder
	b.WriteString(AccentBold().Render(runewidth.Truncate(p.header(), inner, "…")))
	dim := lipgloss.NewStyle().Foreground(Vitesse.Muted)
	hot := lipgloss.NewStyle().Foreground(Vitesse.Primary).Bold(true)
	if len(vis) == 0 {
		b.WriteString("\n" + dim.Render("(空)"))
	}
	for i := p.offset; i < len(vis) && i < p.offset+rows; i++ {
		mark := IconUnchecked()
		if p.selected[vis[i]] {
			mark = IconChecked()
		}
		line := runewidth.Truncate(mark+" "+p.label(vis[i]), inner, "…")
		if focused && i == p.cursor {
			line = hot.Render(line)
		}
		b.WriteString("\n" + line)
	}
	return PaneStyle(focused).Width(inner).Height(height - 2).Render(b.String())
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
