package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nucleictl/internal/cache"
)

var cacheJSON bool

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheShowCmd, cacheClearCmd)
	cacheShowCmd.Flags().BoolVar(&cacheJSON, "json", false, "output JSON")
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "查看或清除模板缓存",
}

type cacheReport struct {
	Path      string    `json:"path"`
	Exists    bool      `json:"exists"`
	Valid     bool      `json:"valid"`
	Timestamp time.Time `json:"timestamp,omitempty"`
	Age       string    `json:"age,omitempty"`
	Official  int       `json:"official"`
	Custom    int       `json:"custom"`
	Error     string    `json:"error,omitempty"`
}

func inspectCache(c *cache.Manager, now time.Time) cacheReport {
	rep := cacheReport{Path: c.Path(), Exists: c.Exists(), Valid: c.IsValid()}
	if !rep.Exists {
		return rep
	}
	ent, err := c.Load()
	if err != nil {
		rep.Error = err.Error()
		return rep
	}
	rep.Timestamp = ent.Timestamp
	rep.Age = ent.Age(now).Round(time.Second).String()
	rep.Official = len(ent.Templates)
	rep.Custom = len(ent.CustomTemplates)
	return rep
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "显示缓存位置与状态",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		rep := inspectCache(e.cache, time.Now())
		out := cmd.OutOrStdout()
		if cacheJSON {
			return printJSON(out, rep)
		}
		fmt.Fprintf(out, "路径: %s\n", rep.Path)
		switch {
		case !rep.Exists:
			fmt.Fprintln(out, "状态: 不存在")
		case rep.Error != "":
			fmt.Fprintln(out, errStyle.Render("状态: 无法读取 ("+rep.Error+")"))
		default:
			state := okStyle.Render("有效")
			if !rep.Valid {
				state = errStyle.Render("已过期")
			}
			fmt.Fprintf(out, "状态: %s\n时间: %s（%s 前）\n官方模板: %d\n自定义模板: %d\n",
				state, rep.Timestamp.Local().Format("2006-01-02 15:04:05"), rep.Age, rep.Official, rep.Custom)
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "删除缓存文件",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		if !e.cache.Exists() {
			fmt.Fprintln(cmd.OutOrStdout(), "缓存不存在")
			return nil
		}
		if err := e.cache.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("✓ 缓存已清除"))
		return nil
	},
}
