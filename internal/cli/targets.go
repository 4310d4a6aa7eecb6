package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nucleictl/internal/targets"
)

var targetsOut string

func init() {
	rootCmd.AddCommand(targetsCmd)
	targetsCmd.AddCommand(targetsCheckCmd)
	targetsCheckCmd.Flags().StringVarP(&targetsOut, "output", "o", "", "把规范化后的目标写入文件")
}

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "目标列表工具",
}

var targetsCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "读取目标文件并输出规范化后的 URL",
	Long:  "跳过空行，为缺少 http:// 或 https:// 的条目补全 http://，并去除重复项。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := targets.LoadFile(args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if targetsOut != "" {
			f, err := os.Create(targetsOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if err := targets.Write(w, list); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render(fmt.Sprintf("%d 个目标", len(list))))
		return nil
	},
}
