package main

import (
	"fmt"
	"os"

	"vida-fed/internal/config"
	"vida-fed/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vidactl",
		Short:         "视频分发描述运维工具",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "configs/config.yaml", "配置文件路径")

	root.AddCommand(
		newRenderCmd(),
		newTokenCmd(),
		newRefederateCmd(),
		newReindexCmd(),
	)
	return root
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// initLogger 批处理命令输出到 stderr，stdout 留给结果
func initLogger(cfg *config.Config) error {
	return logger.Init(logger.Options{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		Output:   "stderr",
		FilePath: cfg.Log.FilePath,
	})
}
