// Package errors 提供统一的错误处理机制
//
// 设计原则：
// 1. 所有错误都应该可以通过 errors.Is() 和 errors.As() 进行类型检查
// 2. 错误码对应日志/保留子系统的错误分类（缺失路径、权限、通用 I/O、非法参数）
// 3. 支持错误链（error wrapping）
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode 错误码类型
type ErrorCode string

// 错误码定义
const (
	// 缺失路径：需要预先存在的文件/目录不存在，或调用方未提供路径
	CodeMissingPath ErrorCode = "MISSING_PATH"

	// 文件系统拒绝操作
	CodePermission ErrorCode = "PERMISSION_DENIED"

	// 其他读写失败
	CodeIO ErrorCode = "IO_ERROR"

	// 参数错误
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	CodeInvalidState    ErrorCode = "INVALID_STATE"
	CodeConfigError     ErrorCode = "CONFIG_ERROR"

	// 兜底
	CodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Error 统一错误类型
type Error struct {
	Code    ErrorCode // 错误码
	Message string    // 错误消息
	Path    string    // 相关文件路径（可选）
	Cause   error     // 原始错误
}

// Error 实现 error 接口
func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap 支持 errors.Unwrap
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is 支持 errors.Is 进行错误码比较
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithPath 附加相关路径
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// New 创建新错误
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf 创建格式化错误
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// FromIO 按文件系统错误的类别包装：
// 权限错误 -> CodePermission，不存在 -> CodeMissingPath，其余 -> CodeIO
func FromIO(err error, path, message string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ClassifyIO(err), message).WithPath(path)
}

// ClassifyIO 返回文件系统错误对应的错误码
func ClassifyIO(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, fs.ErrPermission):
		return CodePermission
	case errors.Is(err, fs.ErrNotExist):
		return CodeMissingPath
	default:
		return CodeIO
	}
}

// GetCode 从错误中提取错误码
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsCode 检查错误是否为指定错误码
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Is 重导出 errors.Is
var Is = errors.Is

// As 重导出 errors.As
var As = errors.As
