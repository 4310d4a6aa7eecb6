package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Top, Bottom key.Binding
	NextPane, PrevPane    key.Binding
	Toggle                key.Binding
	SelectAll, SelectNone key.Binding
	Search                key.Binding

	AddTarget, LoadTargets, DeleteTargets, ClearTargets key.Binding

	LoadCustom, ClearCustom key.Binding
	Refresh, Update         key.Binding
	ClearCache              key.Binding
	Proxy, ToggleProxy      key.Binding

	Scan, ScanBatch key.Binding
	ClearOutput     key.Binding
	Help, Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "上移")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "下移")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "顶部")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "底部")),
		NextPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "下一栏")),
		PrevPane: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "上一栏")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "选择")),

		SelectAll:  key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "全选")),
		SelectNone: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "取消全选")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "搜索")),

		AddTarget:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "添加目标")),
		LoadTargets:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "导入目标文件")),
		DeleteTargets: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "删除选中目标")),
		ClearTargets:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "清空目标")),

		LoadCustom:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "加载自定义模板")),
		ClearCustom: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "清空自定义模板")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "刷新模板列表")),
		Update:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "更新模板")),
		ClearCache:  key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "清除缓存")),
		Proxy:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "设置代理")),
		ToggleProxy: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "启用/停用代理")),

		Scan:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "扫描选中目标")),
		ScanBatch:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "批量扫描全部")),
		ClearOutput: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "清空输出")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "帮助")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "退出")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.Toggle, k.AddTarget, k.Scan, k.ScanBatch, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.NextPane, k.PrevPane},
		{k.Toggle, k.SelectAll, k.SelectNone, k.Search, k.ClearOutput},
		{k.AddTarget, k.LoadTargets, k.DeleteTargets, k.ClearTargets},
		{k.LoadCustom, k.ClearCustom, k.Refresh, k.Update, k.ClearCache},
		{k.Proxy, k.ToggleProxy, k.Scan, k.ScanBatch, k.Help, k.Quit},
	}
}
