// Package journal 写入作业括号日志文件
// 包括作业前后的 START/END 块、单行时间戳记录以及文件轮转
//
// 两次调用之间不持有文件句柄，文件的打开/关闭状态只体现在内容中；
// Open 和 Rotate 返回的 Job 句柄在内存中记录状态，防止重复关闭
package journal

import (
	"time"

	"cb9-core/internal/console"
	"cb9-core/internal/constants"
	coreerrors "cb9-core/internal/core/errors"
	corelog "cb9-core/internal/core/log"
	"cb9-core/internal/utils"
)

// Journal 持有用于生成文件名的日志目录
type Journal struct {
	dir string
	now func() time.Time
	out *console.Output
	log corelog.Logger
}

// Option Journal 配置选项
type Option func(*Journal)

// WithClock 替换时间源（测试用）
func WithClock(now func() time.Time) Option {
	return func(j *Journal) {
		if now != nil {
			j.now = now
		}
	}
}

// WithOutput 设置面向用户的控制台输出（WriteLog 回显）
func WithOutput(out *console.Output) Option {
	return func(j *Journal) {
		if out != nil {
			j.out = out
		}
	}
}

// WithLogger 设置诊断日志
func WithLogger(l corelog.Logger) Option {
	return func(j *Journal) {
		if l != nil {
			j.log = l
		}
	}
}

// New 创建 Journal，自动命名的文件写入 dir
func New(dir string, opts ...Option) *Journal {
	j := &Journal{
		dir: dir,
		now: time.Now,
		out: console.NewOutput(nil),
	}
	for _, opt := range opts {
		opt(j)
	}
	j.log = corelog.OrDefault(j.log)
	return j
}

// Dir 日志目录
func (j *Journal) Dir() string {
	return j.dir
}

// NewPath 按当前时间返回 <dir>/<slug(name)>_<stamp>.log
func (j *Journal) NewPath(name string) string {
	return utils.LogFilePath(j.dir, name, j.now())
}

func (j *Journal) timestamp() string {
	return utils.FormatTimestamp(j.now())
}

// Open 追加作业的 START 块并返回句柄
// path 为空时在日志目录下自动生成文件名
func (j *Journal) Open(name, version, path string) (*Job, error) {
	now := j.now()
	if path == "" {
		if _, err := utils.EnsureFolder(j.dir); err != nil {
			return nil, err
		}
		path = utils.LogFilePath(j.dir, name, now)
	}

	if err := appendLines(path, startBlock(name, version, utils.FormatTimestamp(now))); err != nil {
		j.log.WithField(constants.LogFieldPath, path).Errorf("journal: failed to open job %s: %v", name, err)
		return nil, err
	}

	j.log.WithField(constants.LogFieldJob, name).Debugf("journal: opened %s", path)
	return &Job{journal: j, name: name, version: version, path: path}, nil
}

// CloseFile 向 path 追加 END 块，不检查之前是否写过 START 块
// 有句柄时优先使用 Job.Close
func (j *Journal) CloseFile(name, version, path string) error {
	if path == "" {
		return coreerrors.New(coreerrors.CodeMissingPath, "closing a job requires the log file path")
	}
	if err := appendLines(path, endBlock(name, version, j.timestamp())); err != nil {
		j.log.WithField(constants.LogFieldPath, path).Errorf("journal: failed to close job %s: %v", name, err)
		return err
	}
	return nil
}

// WriteLog 向 path 追加 "[ts] message" 并在控制台回显
// path 为空时写入新的 script_<stamp>.log，返回实际写入的路径
func (j *Journal) WriteLog(message, path string) (string, error) {
	now := j.now()
	if path == "" {
		if _, err := utils.EnsureFolder(j.dir); err != nil {
			return "", err
		}
		path = utils.LogFilePath(j.dir, constants.DefaultScriptName, now)
	}

	if err := appendLines(path, []string{plainLine(utils.FormatTimestamp(now), message)}); err != nil {
		j.out.Error("Could not write log: %v", err)
		return "", err
	}
	j.out.Highlight("%s", message)
	return path, nil
}
