package cmd

import (
	"github.com/spf13/cobra"

	"cb9-core/internal/version"
)

func newVersionCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show detailed version information including build time and git commit.

Example:
  cb9 version`,
		Args: cobra.NoArgs,
		// 版本信息不依赖配置
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			o.setupOutput(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			o.out.Banner("cb9 " + info.String())
			o.out.KeyValue("Version", info.Version)
			if info.BuildTime != "" {
				o.out.KeyValue("Built", info.BuildTime)
			}
			if info.GitCommit != "" {
				o.out.KeyValue("Commit", info.GitCommit)
			}
			o.out.KeyValue("Go", info.GoVersion)
			o.out.KeyValue("Platform", info.Platform)
		},
	}
}
