package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"nucleictl/internal/nuclei"
	"nucleictl/internal/progress"
	"nucleictl/internal/settings"
	"nucleictl/internal/state"
	"nucleictl/internal/targets"
	"nucleictl/internal/templates"
	"nucleictl/internal/ui"
)

var (
	scanTargets   []string
	scanList      string
	scanTemplates []string
	scanCustomDir string
	scanProxy     string
	scanEach      bool
	scanYes       bool
)

func init() {
	rootCmd.AddCommand(scanCmd)
	f := scanCmd.Flags()
	f.StringArrayVarP(&scanTargets, "target", "u", nil, "扫描目标 URL（可重复）")
	f.StringVarP(&scanList, "list", "l", "", "目标文件，每行一个 URL")
	f.StringArrayVarP(&scanTemplates, "template", "t", nil, "模板路径（可重复）")
	f.StringVar(&scanCustomDir, "custom-dir", "", "把该文件夹下的 .yaml/.yml 模板全部加入扫描")
	f.StringVarP(&scanProxy, "proxy", "p", "", "代理地址（默认使用配置中已启用的代理）")
	f.BoolVar(&scanEach, "each", false, "逐个目标扫描，每个目标单独输出结果文件")
	f.BoolVar(&scanYes, "yes", false, "批量扫描前不再确认")
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "调用 nuclei 扫描目标",
	Long: "不启动 TUI 直接扫描。单个目标写入 result.txt；多个目标默认一次批量扫描写入 result_batch.txt，" +
		"使用 --each 时逐个扫描写入 result_selected_<n>.txt。",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		st := state.New()
		for _, raw := range scanTargets {
			if _, _, err := st.AddTarget(raw); err != nil {
				return err
			}
		}
		if strings.TrimSpace(scanList) != "" {
			list, err := targets.LoadFile(scanList)
			if err != nil {
				return err
			}
			st.AddTargets(list)
		}
		list := st.Targets()

		tpls := append([]string(nil), scanTemplates...)
		if strings.TrimSpace(scanCustomDir) != "" {
			custom, err := templates.ScanDir(scanCustomDir)
			if err != nil {
				return err
			}
			tpls = append(tpls, custom...)
		}

		proxy := strings.TrimSpace(scanProxy)
		if proxy == "" && e.cfg.ProxyEnabled {
			proxy = e.cfg.Proxy
		}
		opts := nuclei.Options{Templates: tpls, Proxy: proxy}

		mode := scanMode(len(list), scanEach)
		if mode == nuclei.ModeBatch && !scanYes {
			ok, err := confirmBatch(len(list))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.ErrOrStderr(), "已取消")
				return nil
			}
		}

		out := cmd.OutOrStdout()
		var tr *progress.Tracker
		if mode == nuclei.ModeEach {
			tr = progress.NewTracker(cmd.ErrOrStderr(), "扫描", len(list))
		}
		h := scanPrinter(out, tr)

		var sum nuclei.Summary
		switch mode {
		case nuclei.ModeSingle:
			sum, err = e.runner.ScanSingle(cmd.Context(), firstOr(list), opts, h)
		case nuclei.ModeEach:
			sum, err = e.runner.ScanEach(cmd.Context(), list, opts, h)
			tr.Finish()
		default:
			sum, err = e.runner.ScanBatch(cmd.Context(), list, opts, h)
		}
		if err != nil {
			var ee *nuclei.ExitError
			if errors.As(err, &ee) {
				return fmt.Errorf("扫描失败，退出码: %d", ee.Code)
			}
			return err
		}
		if sum.Failed > 0 {
			return fmt.Errorf("%d/%d 个目标扫描失败", sum.Failed, sum.Total)
		}
		return nil
	},
}

func scanMode(n int, each bool) nuclei.Mode {
	switch {
	case n <= 1:
		return nuclei.ModeSingle
	case each:
		return nuclei.ModeEach
	default:
		return nuclei.ModeBatch
	}
}

func firstOr(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}

func confirmBatch(n int) (bool, error) {
	if fi, err := os.Stdin.Stat(); err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		return false, errors.New("批量扫描需要确认：非交互环境请使用 --yes")
	}
	return settings.Confirm("批量扫描", fmt.Sprintf("确定批量扫描全部 %d 个目标？", n))
}

// scanPrinter renders scan events to w and drives the optional tracker.
func scanPrinter(w io.Writer, tr *progress.Tracker) nuclei.Handler {
	return func(ev nuclei.Event) {
		if tr != nil && ev.Kind != nuclei.EventProgress {
			tr.Clear()
		}
		switch ev.Kind {
		case nuclei.EventProgress:
			if tr != nil {
				tr.SetDescription(fmt.Sprintf("扫描 [%d/%d]", ev.Index, ev.Total))
			}
		case nuclei.EventCommand:
			fmt.Fprintln(w, dimStyle.Render("执行命令: "+ev.Text))
		case nuclei.EventNote:
			fmt.Fprintln(w, headStyle.Render(ev.Text))
		case nuclei.EventSuccess:
			fmt.Fprintln(w, okStyle.Render(ev.Text))
			if tr != nil && ev.Index > 0 {
				tr.Increment()
			}
		case nuclei.EventFailure:
			fmt.Fprintln(w, errStyle.Render(ev.Text))
			if tr != nil && ev.Index > 0 {
				tr.Increment()
			}
		default:
			fmt.Fprintln(w, ui.RenderLine(ev.Text))
		}
	}
}
