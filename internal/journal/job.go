package journal

import (
	coreerrors "cb9-core/internal/core/errors"
)

// Job 已打开作业括号的句柄
type Job struct {
	journal *Journal
	name    string
	version string
	path    string
	closed  bool
}

// Name 作业名称
func (b *Job) Name() string { return b.name }

// Version 作业版本
func (b *Job) Version() string { return b.version }

// Path 作业写入的日志文件
func (b *Job) Path() string { return b.path }

// Closed 作业是否已被 Close 或 Rotate 结束
func (b *Job) Closed() bool { return b.closed }

// Write 向作业文件追加一行带时间戳的记录
func (b *Job) Write(message string) error {
	_, err := b.journal.WriteLog(message, b.path)
	return err
}

// Close 追加 END 块
// 重复关闭返回 INVALID_STATE，文件保持不变
func (b *Job) Close() error {
	if b.closed {
		return coreerrors.ErrJobClosed
	}
	if err := b.journal.CloseFile(b.name, b.version, b.path); err != nil {
		return err
	}
	b.closed = true
	return nil
}

// Rotate 以 LOG ROTATED 块结束当前文件，返回新建文件的句柄
func (b *Job) Rotate() (*Job, error) {
	if b.closed {
		return nil, coreerrors.ErrJobClosed
	}
	path, err := b.journal.Rotate(b.name, b.version, b.path)
	if err != nil {
		return nil, err
	}
	b.closed = true
	return &Job{journal: b.journal, name: b.name, version: b.version, path: path}, nil
}
