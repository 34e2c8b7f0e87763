package utils

import (
	"path/filepath"
	"strings"
	"time"

	"cb9-core/internal/constants"
)

// FormatTimestamp 日志行内使用的秒级时间戳
func FormatTimestamp(t time.Time) string {
	return t.Format(constants.TimestampLayout)
}

// FormatFileStamp 文件名中使用的时间戳
func FormatFileStamp(t time.Time) string {
	return t.Format(constants.FileStampLayout)
}

// Slug 将名称中的空格替换为下划线，用于文件名
func Slug(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// LogFileName 生成 <slug(name)>_<YYYY-MM-DD_HH-MM-SS>.log
func LogFileName(name string, t time.Time) string {
	return Slug(name) + "_" + FormatFileStamp(t) + constants.LogFileExt
}

// LogFilePath 在 dir 下生成带时间戳的日志文件路径
func LogFilePath(dir, name string, t time.Time) string {
	return filepath.Join(dir, LogFileName(name, t))
}
