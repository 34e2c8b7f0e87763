package constants

// 诊断日志级别常量（logrus）
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// 日志字段名常量
const (
	LogFieldError   = "error"
	LogFieldPath    = "path"
	LogFieldJob     = "job"
	LogFieldVersion = "version"
	LogFieldPattern = "pattern"
	LogFieldRoot    = "root"
	LogFieldSource  = "source"
)

// 日志格式常量
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// 日志输出常量
const (
	LogOutputStdout = "stdout"
	LogOutputStderr = "stderr"
	LogOutputFile   = "file"
)

// 时间格式
const (
	// TimestampLayout 日志行内时间戳（秒级精度）
	TimestampLayout = "2006-01-02 15:04:05"
	// FileStampLayout 文件名中的时间戳
	FileStampLayout = "2006-01-02_15-04-05"
)

// 日志文件格式
const (
	BracketSeparatorWidth = 80 // 作业括号分隔线（写入文件）
	ConsoleSeparatorWidth = 60 // 控制台标题分隔线
	LevelNameWidth        = 8  // 级别名左对齐宽度

	LogFileExt        = ".log"
	DefaultScriptName = "script"       // write_log 未指定文件时的文件名前缀
	AuditLogName      = "file_removal" // 保留任务审计文件名前缀

	MarkerLogRotated = "LOG ROTATED"
)

// 日志文件行前缀
const (
	PrefixJob         = "JOB: "
	PrefixStart       = "START: "
	PrefixEnd         = "END: "
	PrefixFileCreated = "LOG FILE CREATED: "
	PrefixScript      = "SCRIPT: "
	PrefixVersion     = "VERSION: "
)

// 默认目录（相对用户主目录）
const (
	DefaultRootDir = "~/Documents/script"
	LogDirName     = "logs"
	TempDirName    = "temp"
)

// 环境变量前缀
const EnvPrefix = "CB9"
