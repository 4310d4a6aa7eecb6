package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nucleictl/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "nucleictl",
	Short: "nucleictl – nuclei 扫描前端",
	Long:  "nucleictl 提供一个 TUI 和若干子命令，用于管理扫描目标、模板缓存并调用 nuclei 执行扫描。",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default action: launch the TUI
		return app.Start()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
