package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cb9-core/internal/config/schema"
	"cb9-core/internal/config/source"
	coreerrors "cb9-core/internal/core/errors"
	"cb9-core/internal/utils"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage cb9 configuration.

Commands:
  init      Generate a configuration file template
  show      Show the effective configuration
  validate  Check the configuration and report every problem`,
	}
	cmd.AddCommand(newConfigInitCmd(o), newConfigShowCmd(o), newConfigValidateCmd(o))
	return cmd
}

func newConfigShowCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the configuration after merging defaults, the config file,
CB9_* environment variables and command-line flags.

Example:
  cb9 config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(o.cfg)
			if err != nil {
				return coreerrors.Wrap(err, coreerrors.CodeInternal, "failed to encode configuration")
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigValidateCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.requireValid(); err != nil {
				return err
			}
			o.out.Success("Configuration is valid")
			return nil
		},
	}
}

func newConfigInitCmd(o *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a configuration file template",
		Long: `Generate a configuration file template with default values and an
example retention task.

Example:
  cb9 config init                         # Create cb9.yaml in current directory
  cb9 config init ~/.config/cb9/cb9.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := source.ConfigFileName
			if len(args) > 0 {
				path = args[0]
			}
			expanded, err := utils.ExpandPath(path)
			if err != nil {
				return coreerrors.Wrap(err, coreerrors.CodeInvalidArgument, "invalid config path")
			}

			if utils.FileExists(expanded) && !force {
				o.out.Warning("Configuration file already exists: %s", expanded)
				return nil
			}

			data, err := yaml.Marshal(templateConfig())
			if err != nil {
				return coreerrors.Wrap(err, coreerrors.CodeInternal, "failed to encode configuration")
			}
			if _, err := utils.EnsureFolder(filepath.Dir(expanded)); err != nil {
				return err
			}
			if err := os.WriteFile(expanded, data, 0644); err != nil {
				return coreerrors.FromIO(err, expanded, "failed to write config file")
			}

			o.out.Success("Configuration file created: %s", expanded)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

// templateConfig 默认配置加一个示例保留任务
func templateConfig() *schema.Root {
	cfg := source.GetDefaultConfig()
	cfg.Retention.Tasks = []schema.TaskConfig{{
		Name:     "temp-files",
		Root:     cfg.Paths.TempDir(),
		Patterns: []string{"*.tmp"},
		DryRun:   true,
	}}
	return cfg
}
