// Package console 提供彩色文本与面向用户的控制台输出
package console

import (
	"os"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// 常用前景色与样式（直接复用 fatih/color 的属性）
const (
	Red          = color.FgRed
	Green        = color.FgGreen
	Yellow       = color.FgYellow
	Blue         = color.FgBlue
	Magenta      = color.FgMagenta
	Cyan         = color.FgCyan
	White        = color.FgWhite
	BrightRed    = color.FgHiRed
	BrightGreen  = color.FgHiGreen
	BrightYellow = color.FgHiYellow
	BrightCyan   = color.FgHiCyan

	Bold      = color.Bold
	Dim       = color.Faint
	Italic    = color.Italic
	Underline = color.Underline
)

// enabled 全局颜色开关，默认跟随 fatih/color 的终端检测（含 NO_COLOR）
var enabled atomic.Bool

func init() {
	enabled.Store(!color.NoColor)
}

// SetEnabled 手动打开或关闭颜色输出
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Enabled 返回当前是否输出颜色
func Enabled() bool {
	return enabled.Load()
}

// ColorText 为文本加上前景色与样式
// 颜色关闭时原样返回；开启时只在两侧添加转义序列，不改变可见字符
func ColorText(text string, fg color.Attribute, styles ...color.Attribute) string {
	if !Enabled() || text == "" {
		return text
	}
	attrs := make([]color.Attribute, 0, len(styles)+1)
	attrs = append(attrs, styles...)
	attrs = append(attrs, fg)
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

// IsTerminal 判断文件是否连接到终端
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
