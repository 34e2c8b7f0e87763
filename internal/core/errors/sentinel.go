package errors

// 预定义哨兵错误（用于 errors.Is 比较）
// 这些错误用于快速类型检查，不包含详细信息
var (
	ErrMissingPath     = New(CodeMissingPath, "path is required")
	ErrPermission      = New(CodePermission, "permission denied")
	ErrIO              = New(CodeIO, "i/o error")
	ErrInvalidArgument = New(CodeInvalidArgument, "invalid argument")
	ErrInvalidState    = New(CodeInvalidState, "invalid state")
	ErrConfig          = New(CodeConfigError, "configuration error")

	// 任务括号
	ErrJobClosed = New(CodeInvalidState, "job already closed")
)
