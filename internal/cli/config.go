package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"nucleictl/internal/config"
	"nucleictl/internal/settings"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configEditCmd, configSchemaCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "查看与编辑配置",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "显示配置文件位置与生效的配置",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.Path()
		if err != nil {
			return err
		}
		c, err := config.LoadFrom(p)
		if err != nil {
			return err
		}
		b, err := yaml.Marshal(c)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", p)
		if cp, err := c.CachePath(); err == nil && c.CacheFile == "" {
			fmt.Fprintf(out, "# cache: %s\n", cp)
		}
		fmt.Fprint(out, string(b))
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "交互式编辑 config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		return settings.Run()
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print JSON Schema for config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := config.MarshalSchema(config.Schema())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}
