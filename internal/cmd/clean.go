package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cb9-core/internal/config/schema"
	"cb9-core/internal/constants"
	coreerrors "cb9-core/internal/core/errors"
	corelog "cb9-core/internal/core/log"
	"cb9-core/internal/retention"
	"cb9-core/internal/utils"
)

// errCleanupFailed 至少一个任务出现错误
var errCleanupFailed = coreerrors.New(coreerrors.CodeIO, "cleanup finished with errors")

type cleanOptions struct {
	patterns []string
	task     string
	all      bool
	dryRun   bool
	noAudit  bool
}

func newCleanCmd(o *rootOptions) *cobra.Command {
	co := &cleanOptions{}

	cmd := &cobra.Command{
		Use:   "clean [ROOT]",
		Short: "Delete files matching patterns under a directory",
		Long: `Recursively delete regular files whose names match glob patterns.
Use --dry-run to list matches without deleting. Configured tasks can be run
with --task NAME or --all. Every deletion is written to an audit log in the
log directory unless --no-audit is given.

Example:
  cb9 clean ~/Downloads -p "*.tmp" -p "*.part" --dry-run
  cb9 clean --task temp-files`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.requireValid(); err != nil {
				return err
			}
			tasks, err := co.tasks(o.cfg, args)
			if err != nil {
				return err
			}
			return o.runClean(tasks)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&co.patterns, "pattern", "p", nil, "Glob pattern matched against file names (repeatable)")
	flags.StringVar(&co.task, "task", "", "Run a configured retention task")
	flags.BoolVar(&co.all, "all", false, "Run every configured retention task")
	flags.BoolVarP(&co.dryRun, "dry-run", "n", false, "Only report what would be deleted")
	flags.BoolVar(&co.noAudit, "no-audit", false, "Do not write an audit log")
	cmd.MarkFlagsMutuallyExclusive("task", "all")
	return cmd
}

// tasks 根据参数与配置组装要执行的任务
func (co *cleanOptions) tasks(cfg *schema.Root, args []string) ([]retention.Task, error) {
	var configured []schema.TaskConfig
	// 配置文件中的根目录是模板，展开 ~ 与环境变量；命令行 ROOT 按字面传递
	fromConfig := true

	switch {
	case co.all:
		if len(args) > 0 || len(co.patterns) > 0 {
			return nil, coreerrors.New(coreerrors.CodeInvalidArgument, "--all cannot be combined with ROOT or --pattern")
		}
		if len(cfg.Retention.Tasks) == 0 {
			return nil, coreerrors.New(coreerrors.CodeInvalidArgument, "no retention tasks configured")
		}
		configured = cfg.Retention.Tasks
	case co.task != "":
		if len(args) > 0 || len(co.patterns) > 0 {
			return nil, coreerrors.New(coreerrors.CodeInvalidArgument, "--task cannot be combined with ROOT or --pattern")
		}
		t, ok := cfg.Retention.FindTask(co.task)
		if !ok {
			return nil, coreerrors.Newf(coreerrors.CodeInvalidArgument, "unknown retention task %q", co.task)
		}
		configured = []schema.TaskConfig{t}
	default:
		if len(args) == 0 {
			return nil, coreerrors.New(coreerrors.CodeInvalidArgument, "ROOT is required (or use --task/--all)")
		}
		if len(co.patterns) == 0 {
			return nil, coreerrors.New(coreerrors.CodeInvalidArgument, "at least one --pattern is required")
		}
		configured = []schema.TaskConfig{{Name: args[0], Root: args[0], Patterns: co.patterns}}
		fromConfig = false
	}

	logDeletions := cfg.Retention.LogDeletions && !co.noAudit
	tasks := make([]retention.Task, 0, len(configured))
	for _, t := range configured {
		root := t.Root
		if fromConfig {
			expanded, err := utils.ExpandPath(root)
			if err != nil {
				return nil, coreerrors.Wrapf(err, coreerrors.CodeConfigError, "invalid root for retention task %q", t.Name)
			}
			root = expanded
		}
		tasks = append(tasks, retention.Task{
			Name:         t.Name,
			Root:         root,
			Patterns:     t.Patterns,
			DryRun:       t.DryRun || co.dryRun,
			LogDeletions: logDeletions,
		})
	}
	return tasks, nil
}

// runClean 依次执行任务；单个任务失败不影响后续任务
func (o *rootOptions) runClean(tasks []retention.Task) error {
	dir, err := o.logDirectory()
	if err != nil {
		return err
	}
	engine := retention.NewEngine(dir,
		retention.WithOutput(o.out),
		retention.WithLogger(corelog.Default()),
	)

	failed := false
	for _, task := range tasks {
		o.out.Banner(fmt.Sprintf("Cleanup: %s", task.Name))
		res, err := engine.Run(task)
		if err != nil {
			corelog.WithField(constants.LogFieldRoot, task.Root).WithError(err).Warn("retention task failed")
			failed = true
			continue
		}
		if !res.Success() {
			failed = true
		}
	}

	if failed {
		return errCleanupFailed
	}
	return nil
}
