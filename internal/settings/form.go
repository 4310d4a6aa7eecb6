package settings

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"nucleictl/internal/config"
)

// Theme returns the form theme shared by interactive prompts.
// Light theme tweaks inspired by freeze/interactive.go
func Theme() *huh.Theme {
	green := lipgloss.Color("#03BF87")
	theme := huh.ThemeCharm()
	theme.FieldSeparator = lipgloss.NewStyle()
	theme.Blurred.Title = theme.Blurred.Title.Width(18).Foreground(lipgloss.Color("7"))
	theme.Focused.Title = theme.Focused.Title.Width(18).Foreground(green).Bold(true)
	theme.Blurred.SelectedOption = theme.Blurred.SelectedOption.Foreground(lipgloss.Color("243"))
	theme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green)
	theme.Focused.Base.BorderForeground(green)
	return theme
}

// Form builds the config edit form bound to c.
func Form(c *config.Config) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Settings").Description("编辑 nucleictl 配置并保存到 config.yaml"),
			huh.NewInput().Title("nuclei").Placeholder("nuclei").Value(&c.Binary).Validate(nonEmpty),
			huh.NewInput().Title("结果目录").Placeholder("./work").Value(&c.WorkDir).Validate(nonEmpty),
			huh.NewInput().Title("缓存文件").Placeholder("(默认)").Value(&c.CacheFile),
			huh.NewInput().Title("自定义模板").Placeholder("文件夹路径").Value(&c.CustomDir),
		),
		huh.NewGroup(
			huh.NewInput().Title("代理").Placeholder("http://127.0.0.1:8080").Value(&c.Proxy).Validate(ValidateProxy),
			huh.NewConfirm().Title("启用代理").Value(&c.ProxyEnabled),
		),
	).WithTheme(Theme()).WithWidth(60)
}

// Run launches the interactive form and saves config.yaml on submit.
func Run() error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	if err := Form(&c).Run(); err != nil {
		return err // form canceled or failed
	}
	if err := config.Save(c); err != nil {
		return err
	}
	p, _ := config.Path()
	fmt.Printf("\n✓ 已保存 %s\n\n", p)
	return nil
}

// Confirm asks a yes/no question.
func Confirm(title, desc string) (bool, error) {
	ok := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Description(desc).Affirmative("是").Negative("否").Value(&ok),
		),
	).WithTheme(Theme()).Run()
	return ok, err
}

func nonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("不能为空")
	}
	return nil
}

// ValidateProxy accepts an empty value or an absolute URL with a host.
func ValidateProxy(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("无效的代理地址: %s", s)
	}
	return nil
}
