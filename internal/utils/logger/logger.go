// Package logger 提供按级别过滤的双输出日志器（控制台 + 文件）
//
// 每次通过过滤的调用都会同步完成输出：控制台直接写入，文件则
// 打开、追加一行、关闭。日志器本身不持有任何文件句柄。
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"

	"cb9-core/internal/console"
	"cb9-core/internal/constants"
	coreerrors "cb9-core/internal/core/errors"
	"cb9-core/internal/utils"
)

// levelColors 控制台上各级别名称的颜色
var levelColors = map[Severity][]color.Attribute{
	DEBUG:    {console.Cyan},
	INFO:     {console.White},
	WARNING:  {console.Yellow},
	ERROR:    {console.Red},
	CRITICAL: {console.BrightRed, console.Bold},
}

// Logger 按级别过滤的日志器
type Logger struct {
	mu      sync.Mutex
	name    string
	level   Severity
	file    string
	console bool
	colored bool
	out     io.Writer
	now     func() time.Time
}

// Option 日志器配置项
type Option func(*Logger)

// WithFile 同时追加写入到文件
func WithFile(path string) Option {
	return func(l *Logger) {
		l.file = path
	}
}

// WithConsole 是否输出到控制台
func WithConsole(enabled bool) Option {
	return func(l *Logger) {
		l.console = enabled
	}
}

// WithColor 控制台输出是否对级别名着色
func WithColor(enabled bool) Option {
	return func(l *Logger) {
		l.colored = enabled
	}
}

// WithWriter 替换控制台输出目标（默认 stdout）
func WithWriter(w io.Writer) Option {
	return func(l *Logger) {
		if w != nil {
			l.out = w
		}
	}
}

// WithClock 替换时间来源
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// New 创建日志器
// 默认输出到 stdout；仅当 stdout 是终端时着色
func New(name string, level Severity, opts ...Option) *Logger {
	l := &Logger{
		name:    name,
		level:   level,
		console: true,
		colored: console.IsTerminal(os.Stdout),
		out:     os.Stdout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Name 日志器名称
func (l *Logger) Name() string {
	return l.name
}

// File 文件输出路径，未配置时为空
func (l *Logger) File() string {
	return l.file
}

// Level 当前过滤级别
func (l *Logger) Level() Severity {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetLevel 设置过滤级别，返回之前的级别
// 只影响之后的调用
func (l *Logger) SetLevel(level Severity) Severity {
	l.mu.Lock()
	defer l.mu.Unlock()
	prev := l.level
	l.level = level
	return prev
}

// Enabled 该级别的调用是否会被输出
func (l *Logger) Enabled(level Severity) bool {
	return level >= l.Level()
}

// Log 记录一条日志；级别低于过滤级别时什么也不做
func (l *Logger) Log(level Severity, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return nil
	}

	ts := utils.FormatTimestamp(l.now())
	label := fmt.Sprintf("%-*s", constants.LevelNameWidth, level.String())
	line := formatLine(ts, label, l.name, message)

	var firstErr error
	if l.console {
		shown := line
		if l.colored {
			attrs := colorFor(level)
			shown = formatLine(ts, console.ColorText(label, attrs[0], attrs[1:]...), l.name, message)
		}
		if _, err := io.WriteString(l.out, shown+"\n"); err != nil {
			firstErr = coreerrors.Wrap(err, coreerrors.CodeIO, "failed to write log line to console")
		}
	}
	if l.file != "" {
		if err := appendLine(l.file, line); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Debug 调试日志
func (l *Logger) Debug(message string) error {
	return l.Log(DEBUG, message)
}

// Info 信息日志
func (l *Logger) Info(message string) error {
	return l.Log(INFO, message)
}

// Warning 警告日志
func (l *Logger) Warning(message string) error {
	return l.Log(WARNING, message)
}

// Error 错误日志
func (l *Logger) Error(message string) error {
	return l.Log(ERROR, message)
}

// Critical 严重错误日志，不会退出进程
func (l *Logger) Critical(message string) error {
	return l.Log(CRITICAL, message)
}

// Debugf 格式化调试日志
func (l *Logger) Debugf(format string, args ...interface{}) error {
	return l.Log(DEBUG, fmt.Sprintf(format, args...))
}

// Infof 格式化信息日志
func (l *Logger) Infof(format string, args ...interface{}) error {
	return l.Log(INFO, fmt.Sprintf(format, args...))
}

// Warningf 格式化警告日志
func (l *Logger) Warningf(format string, args ...interface{}) error {
	return l.Log(WARNING, fmt.Sprintf(format, args...))
}

// Errorf 格式化错误日志
func (l *Logger) Errorf(format string, args ...interface{}) error {
	return l.Log(ERROR, fmt.Sprintf(format, args...))
}

// Criticalf 格式化严重错误日志
func (l *Logger) Criticalf(format string, args ...interface{}) error {
	return l.Log(CRITICAL, fmt.Sprintf(format, args...))
}

func formatLine(ts, label, name, message string) string {
	return fmt.Sprintf("[%s] [%s] [%s] %s", ts, label, name, message)
}

func colorFor(level Severity) []color.Attribute {
	if attrs, ok := levelColors[level]; ok {
		return attrs
	}
	return []color.Attribute{console.White}
}

// appendLine 打开、追加、关闭；父目录按需创建
func appendLine(path, line string) error {
	if _, err := utils.EnsureFolder(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return coreerrors.FromIO(err, path, "failed to open log file")
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return coreerrors.FromIO(err, path, "failed to append to log file")
	}
	if err := f.Close(); err != nil {
		return coreerrors.FromIO(err, path, "failed to close log file")
	}
	return nil
}
