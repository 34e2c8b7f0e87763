// Package retention 按 glob 模式清理根目录下的文件
// 支持演练模式（只报告不删除）和可选的审计日志
package retention

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"cb9-core/internal/console"
	"cb9-core/internal/constants"
	coreerrors "cb9-core/internal/core/errors"
	corelog "cb9-core/internal/core/log"
	"cb9-core/internal/utils"
)

// Engine 保留策略执行器
type Engine struct {
	logDir string
	sink   AuditSink
	now    func() time.Time
	out    *console.Output
	log    corelog.Logger
}

// Option Engine 配置选项
type Option func(*Engine)

// WithAuditSink 将审计记录写入 sink，而不是新建审计文件
func WithAuditSink(sink AuditSink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

// WithClock 替换时间源（测试用）
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithOutput 设置运行摘要的控制台输出
func WithOutput(out *console.Output) Option {
	return func(e *Engine) {
		if out != nil {
			e.out = out
		}
	}
}

// WithLogger 设置诊断日志
func WithLogger(l corelog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine 创建执行器，审计文件写入 logDir
func NewEngine(logDir string, opts ...Option) *Engine {
	e := &Engine{
		logDir: logDir,
		now:    time.Now,
		out:    console.NewOutput(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = corelog.OrDefault(e.log)
	return e
}

// run 单次执行的状态
type run struct {
	engine    *Engine
	task      Task
	audit     AuditSink
	seen      map[string]struct{}
	result    *Result
	log       corelog.Logger
	auditPath string // 审计文件解析符号链接后的路径，遍历时跳过
}

// Run 执行任务
// 根目录必须是已存在的目录（允许是指向目录的符号链接），否则返回
// INVALID_ARGUMENT 且不写任何内容；单个文件失败不中断运行，只计入结果
func (e *Engine) Run(task Task) (*Result, error) {
	root, err := e.checkRoot(task.Root)
	if err != nil {
		e.out.Error("%v", err)
		return nil, err
	}
	task.Root = root

	r := &run{
		engine: e,
		task:   task,
		seen:   make(map[string]struct{}),
		result: &Result{DryRun: task.DryRun},
		log:    e.log.WithField(constants.LogFieldRoot, root),
	}

	if task.LogDeletions {
		r.audit = e.openAudit()
		if r.audit != nil {
			r.result.AuditLog = r.audit.Location()
			r.auditPath = resolvePath(r.result.AuditLog)
		}
	}

	mode := "delete"
	if task.DryRun {
		mode = "dry run"
	}
	r.record("Retention run started: %s (root: %s, patterns: %s, mode: %s)",
		task.label(), root, task.patternList(), mode)

	for _, pattern := range task.Patterns {
		r.sweep(pattern)
	}

	r.summarize()
	return r.result, nil
}

// checkRoot 校验根目录并返回解析符号链接后的绝对路径
// 根目录按字面处理，只展开开头的 ~
func (e *Engine) checkRoot(root string) (string, error) {
	if root == "" {
		return "", coreerrors.New(coreerrors.CodeInvalidArgument, "retention root is required")
	}
	expanded, err := utils.ExpandHome(root)
	if err != nil {
		return "", coreerrors.Wrap(err, coreerrors.CodeInvalidArgument, "invalid retention root").WithPath(root)
	}
	info, err := os.Stat(expanded)
	if err != nil {
		return "", coreerrors.Wrap(err, coreerrors.CodeInvalidArgument, "retention root does not exist").WithPath(expanded)
	}
	if !info.IsDir() {
		return "", coreerrors.New(coreerrors.CodeInvalidArgument, "retention root is not a directory").WithPath(expanded)
	}
	// WalkDir 不会进入作为起点的符号链接，需从真实目录开始遍历
	resolved, err := filepath.EvalSymlinks(expanded)
	if err != nil {
		return "", coreerrors.FromIO(err, expanded, "cannot resolve retention root")
	}
	return resolved, nil
}

// resolvePath 解析符号链接，失败时返回原路径
func resolvePath(path string) string {
	if path == "" {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

// openAudit 打开审计目标；创建失败仅告警，运行继续
func (e *Engine) openAudit() AuditSink {
	if e.sink != nil {
		return e.sink
	}
	sink, err := NewFileSink(e.logDir, e.now())
	if err != nil {
		e.log.WithError(err).Warn("retention: audit log unavailable, continuing without it")
		e.out.Warning("Could not create audit log: %v", err)
		return nil
	}
	return sink
}

// record 写入一条审计记录
func (r *run) record(format string, args ...interface{}) {
	if r.audit == nil {
		return
	}
	line := "[" + utils.FormatTimestamp(r.engine.now()) + "] " + fmt.Sprintf(format, args...)
	if err := r.audit.Append(line); err != nil {
		r.log.WithError(err).Warn("retention: failed to append audit line")
	}
}

// sweep 递归遍历根目录，处理与 pattern 匹配的普通文件
func (r *run) sweep(pattern string) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		r.result.Errors++
		r.log.WithField(constants.LogFieldPattern, pattern).Warnf("retention: invalid pattern: %v", err)
		r.record("ERROR: invalid pattern %q: %v", pattern, err)
		return
	}

	_ = filepath.WalkDir(r.task.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// 根目录本身已校验过，这里只会是不可读的子目录
			r.result.Errors++
			r.log.WithField(constants.LogFieldPath, path).Warnf("retention: cannot read: %v", err)
			r.record("ERROR: %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); !ok {
			return nil
		}
		if _, dup := r.seen[path]; dup {
			return nil
		}
		// 审计文件可能位于根目录下，不能删除自身
		if r.auditPath != "" && (path == r.auditPath || path == r.result.AuditLog) {
			return nil
		}
		r.seen[path] = struct{}{}
		r.process(path)
		return nil
	})
}

// process 处理单个匹配文件
func (r *run) process(path string) {
	r.result.Matched++
	r.result.Files = append(r.result.Files, path)

	if r.task.DryRun {
		r.record("WOULD DELETE: %s", path)
		return
	}

	err := os.Remove(path)
	switch {
	case err == nil:
		r.result.Deleted++
		r.record("DELETED: %s", path)
	case coreerrors.ClassifyIO(err) == coreerrors.CodePermission:
		r.result.Errors++
		r.result.PermissionErrors++
		r.log.WithField(constants.LogFieldPath, path).Warn("retention: permission denied")
		r.record("PERMISSION DENIED: %s", path)
	default:
		r.result.Errors++
		r.log.WithField(constants.LogFieldPath, path).Warnf("retention: delete failed: %v", err)
		r.record("ERROR: %s: %v", path, err)
	}
}

func (r *run) summarize() {
	res := r.result
	out := r.engine.out

	if res.DryRun {
		r.record("SUMMARY: %d file(s) would be deleted, %d error(s)", res.Matched, res.Errors)
		out.Info("%d file(s) would be deleted", res.Matched)
	} else {
		r.record("SUMMARY: %d file(s) deleted, %d error(s) (%d permission denied)",
			res.Deleted, res.Errors, res.PermissionErrors)
		out.Success("%d file(s) deleted", res.Deleted)
	}

	if res.Errors > 0 {
		out.Warning("%d error(s) during cleanup (%d permission denied)", res.Errors, res.PermissionErrors)
	}
	if res.AuditLog != "" {
		out.KeyValue("Audit log", res.AuditLog)
	}
}
