// Package cmd 提供 cb9 命令行入口
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"cb9-core/internal/config/loader"
	"cb9-core/internal/config/schema"
	"cb9-core/internal/config/source"
	"cb9-core/internal/config/validator"
	"cb9-core/internal/console"
	"cb9-core/internal/constants"
	coreerrors "cb9-core/internal/core/errors"
	corelog "cb9-core/internal/core/log"
	"cb9-core/internal/journal"
	"cb9-core/internal/utils"
	"cb9-core/internal/version"
)

// rootOptions 全局标志与按需构建的运行环境
type rootOptions struct {
	configFile string
	logDir     string
	noColor    bool
	verbose    bool

	cfg        *schema.Root
	validation *validator.ValidationResult
	out        *console.Output
	resolved   string // 解析后的日志目录
}

// Execute 执行根命令
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			corelog.Errorf("FATAL: panic recovered: %v", r)
			fmt.Fprintf(os.Stderr, "\nPANIC: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", string(debug.Stack()))
			os.Exit(2)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		console.NewOutput(os.Stderr).Error("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "cb9",
		Short: "cb9 - job logging, log rotation and file retention for scripts",
		Long: `cb9 brackets script runs in log files, rotates them and cleans up old files.

Quick Start:
  cb9 job open Backup 1.0          Start a job, prints the log file path
  cb9 write "copied 3 files" -f F  Append a timestamped line
  cb9 job close Backup 1.0 -f F    End the job
  cb9 clean ~/tmp -p "*.tmp" -n    Show what a cleanup would delete`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Config file path (default: ./cb9.yaml or the user config dir)")
	flags.StringVar(&opts.logDir, "log-dir", "", "Log directory (overrides paths.logs)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print diagnostic messages")

	cmd.AddCommand(
		newJobCmd(opts),
		newWriteCmd(opts),
		newRotateCmd(opts),
		newLogCmd(opts),
		newCleanCmd(opts),
		newConfigCmd(opts),
		newInitCmd(opts),
		newVersionCmd(opts),
	)
	return cmd
}

// setupOutput 只初始化控制台输出
func (o *rootOptions) setupOutput(cmd *cobra.Command) {
	o.out = console.NewOutput(cmd.OutOrStdout())
	if o.noColor {
		console.SetEnabled(false)
	}
}

// setup 加载配置并初始化诊断日志
func (o *rootOptions) setup(cmd *cobra.Command) error {
	o.setupOutput(cmd)

	cfg, err := loader.NewLoaderBuilder().
		WithConfigFile(o.configFile).
		WithSource(source.NewCLISource(o.applyFlags)).
		Build().
		Load()
	if err != nil {
		return err
	}

	diag := corelog.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
		File:   cfg.Log.File,
	}
	if o.verbose {
		diag.Level = constants.LogLevelDebug
	}
	if err := corelog.Init(&diag); err != nil {
		return coreerrors.Wrap(err, coreerrors.CodeConfigError, "invalid diagnostic log settings")
	}

	corelog.Debugf("%s starting", version.UserAgent())
	o.cfg = cfg
	o.validation = validator.ValidateConfig(cfg)
	return nil
}

// applyFlags 命令行标志覆盖配置（最高优先级）
func (o *rootOptions) applyFlags(cfg *schema.Root) {
	if o.logDir != "" {
		cfg.Paths.Logs = o.logDir
	}
	if o.noColor {
		cfg.Logger.Color = false
	}
}

// requireValid 配置无效时返回全部校验错误
func (o *rootOptions) requireValid() error {
	if o.validation != nil && !o.validation.IsValid() {
		return coreerrors.New(coreerrors.CodeConfigError, o.validation.Error())
	}
	return nil
}

// logDirectory 返回第一个可写的日志目录；配置目录不可写时退回到默认候选
func (o *rootOptions) logDirectory() (string, error) {
	if o.resolved != "" {
		return o.resolved, nil
	}
	if err := o.requireValid(); err != nil {
		return "", err
	}

	configured := o.cfg.Paths.LogDir()
	candidates := append([]string{configured}, utils.DefaultLogDirCandidates()...)
	dir, err := utils.ResolveLogDir(candidates)
	if err != nil {
		return "", coreerrors.Wrap(err, coreerrors.CodeIO, "no usable log directory")
	}

	if expanded, err := utils.ExpandPath(configured); err == nil && expanded != dir {
		corelog.WithField(constants.LogFieldPath, expanded).Warnf("log directory not writable, using %s", dir)
	}
	o.resolved = dir
	return dir, nil
}

// journal 构建作业日志写入器
func (o *rootOptions) journal() (*journal.Journal, error) {
	dir, err := o.logDirectory()
	if err != nil {
		return nil, err
	}
	return journal.New(dir,
		journal.WithOutput(o.out),
		journal.WithLogger(corelog.Default()),
	), nil
}
