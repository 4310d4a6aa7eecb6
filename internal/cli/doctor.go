package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"nucleictl/internal/config"
	"nucleictl/internal/nuclei"
)

var doctorJSON bool

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output JSON report")
}

type doctorReport struct {
	Config  string             `json:"config"`
	Nuclei  nuclei.CheckResult `json:"nuclei"`
	Cache   cacheReport        `json:"cache"`
	WorkDir string             `json:"work_dir"`
	WorkErr string             `json:"work_err,omitempty"`
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "诊断 nuclei 安装、缓存与结果目录",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		p, _ := config.Path()
		rep := doctorReport{
			Config:  p,
			Nuclei:  e.runner.Check(cmd.Context()),
			Cache:   inspectCache(e.cache, time.Now()),
			WorkDir: e.cfg.WorkDir,
		}
		if err := os.MkdirAll(e.cfg.WorkDir, 0o755); err != nil {
			rep.WorkErr = err.Error()
		}

		out := cmd.OutOrStdout()
		if doctorJSON {
			if err := printJSON(out, rep); err != nil {
				return err
			}
		} else {
			mark := func(ok bool) string {
				if ok {
					return okStyle.Render("✓")
				}
				return errStyle.Render("✗")
			}
			fmt.Fprintf(out, "%s 配置      %s\n", mark(true), rep.Config)
			if rep.Nuclei.Installed {
				ver := rep.Nuclei.Version
				if ver == "" {
					ver = "(未知版本)"
				}
				fmt.Fprintf(out, "%s nuclei    %s  %s\n", mark(true), ver, dimStyle.Render(rep.Nuclei.Path))
			} else {
				fmt.Fprintf(out, "%s nuclei    %s\n", mark(false), rep.Nuclei.Err)
			}
			switch {
			case !rep.Cache.Exists:
				fmt.Fprintf(out, "%s 缓存      不存在 %s\n", mark(true), dimStyle.Render(rep.Cache.Path))
			case rep.Cache.Error != "":
				fmt.Fprintf(out, "%s 缓存      %s\n", mark(false), rep.Cache.Error)
			default:
				fmt.Fprintf(out, "%s 缓存      %d 官方 / %d 自定义，%s 前  %s\n", mark(rep.Cache.Valid), rep.Cache.Official, rep.Cache.Custom, rep.Cache.Age, dimStyle.Render(rep.Cache.Path))
			}
			if rep.WorkErr != "" {
				fmt.Fprintf(out, "%s 结果目录  %s\n", mark(false), rep.WorkErr)
			} else {
				fmt.Fprintf(out, "%s 结果目录  %s\n", mark(true), rep.WorkDir)
			}
		}
		if !rep.Nuclei.Installed {
			return nuclei.ErrNotInstalled
		}
		return nil
	},
}
