package logger

import (
	"fmt"
	"strings"
)

// Severity 日志级别，数值越大越严重
type Severity int

const (
	DEBUG Severity = iota
	INFO
	WARNING
	ERROR
	CRITICAL
)

// String 返回日志级别的字符串表示
func (s Severity) String() string {
	switch s {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case CRITICAL:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Valid 是否为已定义的级别
func (s Severity) Valid() bool {
	return s >= DEBUG && s <= CRITICAL
}

// ParseSeverity 解析级别名称（不区分大小写），兼容 warn/fatal 写法
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warning", "warn":
		return WARNING, nil
	case "error":
		return ERROR, nil
	case "critical", "fatal":
		return CRITICAL, nil
	default:
		return INFO, fmt.Errorf("unknown severity %q", name)
	}
}

// Severities 按严重程度升序返回所有级别
func Severities() []Severity {
	return []Severity{DEBUG, INFO, WARNING, ERROR, CRITICAL}
}
