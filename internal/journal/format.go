package journal

import (
	"strings"

	"cb9-core/internal/constants"
)

var separator = strings.Repeat("-", constants.BracketSeparatorWidth)

func jobLine(name, version string) string {
	return constants.PrefixJob + name + " " + version
}

// startBlock 作业开始标记
func startBlock(name, version, ts string) []string {
	return []string{
		separator,
		jobLine(name, version),
		constants.PrefixStart + ts,
		separator,
	}
}

// endBlock 作业结束标记，末尾留一个空行
func endBlock(name, version, ts string) []string {
	return []string{
		constants.PrefixEnd + ts,
		jobLine(name, version),
		separator,
		"",
	}
}

// rotatedEndBlock 轮转时写入旧文件的结束标记
func rotatedEndBlock(ts string) []string {
	return []string{
		constants.PrefixEnd + ts,
		constants.MarkerLogRotated,
		separator,
		"",
	}
}

// createdHeader 轮转新建文件的头部
func createdHeader(name, version, ts string) []string {
	return []string{
		separator,
		constants.PrefixFileCreated + ts,
		constants.PrefixScript + name,
		constants.PrefixVersion + version,
		separator,
	}
}

// plainLine write_log 使用的单行格式
func plainLine(ts, message string) string {
	return "[" + ts + "] " + message
}
