package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"nucleictl/internal/catalog"
	"nucleictl/internal/config"
	"nucleictl/internal/templates"
)

var (
	tplRefresh bool
	tplCustom  bool
	tplJSON    bool
	tplFuzzy   bool
)

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesLsCmd, templatesSearchCmd, templatesInfoCmd, templatesCustomCmd, templatesUpdateCmd)

	templatesLsCmd.Flags().BoolVar(&tplRefresh, "refresh", false, "忽略缓存，重新调用 nuclei -tl")
	templatesLsCmd.Flags().BoolVar(&tplCustom, "custom", false, "只列出自定义模板")
	templatesLsCmd.Flags().BoolVar(&tplJSON, "json", false, "output JSON")
	templatesSearchCmd.Flags().BoolVar(&tplFuzzy, "fuzzy", false, "模糊匹配（默认子串匹配，忽略大小写）")
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "模板列表与缓存",
}

func loadCatalog(cmd *cobra.Command, e *env, refresh bool) (catalog.Result, error) {
	if refresh {
		return catalog.Refresh(cmd.Context(), e.cache, e.runner, e.cachedCustom())
	}
	return catalog.Startup(cmd.Context(), e.cache, e.runner, e.cachedCustom())
}

var templatesLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "列出官方与自定义模板（24 小时内使用缓存）",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		res, err := loadCatalog(cmd, e, tplRefresh)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if tplJSON {
			return printJSON(out, map[string]any{
				"official":   res.Official,
				"custom":     res.Custom,
				"from_cache": res.FromCache,
			})
		}
		if !tplCustom {
			for _, t := range res.Official {
				fmt.Fprintln(out, t)
			}
		}
		for _, t := range res.Custom {
			fmt.Fprintln(out, t)
		}
		src := "nuclei -tl"
		if res.FromCache {
			src = "缓存 " + e.cache.Path()
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", dimStyle.Render(fmt.Sprintf("官方 %d，自定义 %d（来源：%s）", len(res.Official), len(res.Custom), src)))
		if res.SaveErr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), errStyle.Render(fmt.Sprintf("缓存写入失败: %v", res.SaveErr)))
		}
		return nil
	},
}

var templatesSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "按名称搜索模板",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		res, err := loadCatalog(cmd, e, false)
		if err != nil {
			return err
		}
		all := append(append([]string(nil), res.Official...), res.Custom...)
		var hits []string
		if tplFuzzy {
			hits = templates.FuzzyFilter(all, args[0])
		} else {
			hits = templates.Filter(all, args[0])
		}
		for _, h := range hits {
			fmt.Fprintln(cmd.OutOrStdout(), h)
		}
		if len(hits) == 0 {
			return fmt.Errorf("没有匹配 %q 的模板", args[0])
		}
		return nil
	},
}

var templatesInfoCmd = &cobra.Command{
	Use:   "info <template>",
	Short: "显示模板元信息",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resolveTemplate(args[0])
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		meta, err := templates.ParseMeta(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		md := meta.Markdown(p, raw)
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err != nil {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		s, err := r.Render(md)
		if err != nil {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), s)
		return nil
	},
}

// resolveTemplate accepts a file path, or a path relative to the
// nuclei-templates checkout in the home directory as printed by -tl.
func resolveTemplate(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, "nuclei-templates", name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("找不到模板文件: %s", name)
}

var templatesCustomCmd = &cobra.Command{
	Use:   "custom <dir>",
	Short: "扫描文件夹中的自定义模板并写入缓存",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		var official []string
		if ent, err := e.cache.Load(); err == nil {
			official = ent.Templates
		}
		res, err := catalog.RescanCustom(e.cache, args[0], official)
		if err != nil {
			return err
		}
		e.cfg.CustomDir = args[0]
		if err := config.Save(e.cfg); err != nil {
			return err
		}
		for _, t := range res.Custom {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), okStyle.Render(fmt.Sprintf("✓ 已加载 %d 个自定义模板", len(res.Custom))))
		if res.SaveErr != nil {
			return fmt.Errorf("缓存写入失败: %w", res.SaveErr)
		}
		return nil
	},
}

var templatesUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "更新 nuclei 模板并刷新缓存",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		out, err := e.runner.UpdateTemplates(cmd.Context())
		printOutput(cmd.OutOrStdout(), out)
		if err != nil {
			return err
		}
		res, err := catalog.Refresh(cmd.Context(), e.cache, e.runner, e.cachedCustom())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), okStyle.Render(fmt.Sprintf("✓ 模板已更新，共 %d 个官方模板", len(res.Official))))
		return nil
	},
}
