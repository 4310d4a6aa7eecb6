package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"nucleictl/internal/results"
)

var resultsJSON bool

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.AddCommand(resultsLsCmd)
	resultsLsCmd.Flags().BoolVar(&resultsJSON, "json", false, "output JSON")
}

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "扫描结果文件",
}

var resultsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "列出结果目录中的结果文件",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		files, err := results.List(e.cfg.WorkDir)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if resultsJSON {
			return printJSON(out, files)
		}
		if len(files) == 0 {
			fmt.Fprintf(out, "%s 中还没有结果文件\n", e.cfg.WorkDir)
			return nil
		}
		for _, f := range files {
			fmt.Fprintf(out, "%-28s %5d  %s\n", filepath.Base(f.Path), f.Findings, dimStyle.Render(f.ModTime.Format("2006-01-02 15:04:05")))
		}
		fmt.Fprintf(out, "\n共 %d 个文件，%d 条结果\n", len(files), results.Total(files))
		return nil
	},
}
