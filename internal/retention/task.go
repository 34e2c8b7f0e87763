package retention

import "strings"

// Task 一次清理任务
type Task struct {
	// 名称，仅用于审计记录和控制台输出
	Name string
	// 递归搜索的根目录
	Root string
	// 与文件名匹配的 shell 风格 glob
	Patterns []string
	// 演练模式：只报告将删除的文件
	DryRun bool
	// 是否写审计记录
	LogDeletions bool
}

func (t Task) label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Root
}

func (t Task) patternList() string {
	return strings.Join(t.Patterns, ", ")
}

// Result 清理运行结果
type Result struct {
	Matched          int
	Deleted          int
	Errors           int
	PermissionErrors int
	DryRun           bool
	// 按处理顺序排列的匹配路径
	Files []string
	// 审计文件路径，未写入磁盘时为空
	AuditLog string
}

// Success 运行是否无错误完成
func (r *Result) Success() bool {
	return r.Errors == 0
}
