package retention

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"cb9-core/internal/constants"
	coreerrors "cb9-core/internal/core/errors"
	"cb9-core/internal/utils"
)

// AuditSink 接收清理运行的审计记录，每次一行
type AuditSink interface {
	Append(line string) error
	Location() string
}

// FileSink 将审计记录追加到文件，每次写入时打开
type FileSink struct {
	path string
}

// NewFileSink 在 dir 下创建新的审计文件 file_removal_<stamp>_<id>.log
// id 取 UUID 的前 8 位十六进制，同一秒内的两次运行不会共用文件
func NewFileSink(dir string, now time.Time) (*FileSink, error) {
	dir, err := utils.ExpandPath(dir)
	if err != nil {
		return nil, coreerrors.Wrap(err, coreerrors.CodeInvalidArgument, "invalid log directory")
	}
	if _, err := utils.EnsureFolder(dir); err != nil {
		return nil, err
	}

	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	name := constants.AuditLogName + "_" + utils.FormatFileStamp(now) + "_" + id + constants.LogFileExt
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, coreerrors.FromIO(err, path, "failed to create audit log")
	}
	if err := f.Close(); err != nil {
		return nil, coreerrors.FromIO(err, path, "failed to create audit log")
	}
	return &FileSink{path: path}, nil
}

// Append 追加一行
func (s *FileSink) Append(line string) error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return coreerrors.FromIO(err, s.path, "failed to open audit log")
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return coreerrors.FromIO(err, s.path, "failed to write audit log")
	}
	if err := f.Close(); err != nil {
		return coreerrors.FromIO(err, s.path, "failed to close audit log")
	}
	return nil
}

// Location 返回审计文件路径
func (s *FileSink) Location() string {
	return s.path
}

// MemorySink 内存审计（测试及嵌入使用）
type MemorySink struct {
	mu    sync.Mutex
	lines []string
}

// NewMemorySink 创建内存审计
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Append 追加一行
func (s *MemorySink) Append(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	return nil
}

// Location 内存审计没有文件路径
func (s *MemorySink) Location() string {
	return ""
}

// Lines 返回已记录行的副本
func (s *MemorySink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}
