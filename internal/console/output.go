package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"cb9-core/internal/constants"
)

// Output 提供面向用户的控制台输出
type Output struct {
	w io.Writer
}

// NewOutput 创建输出到 w 的输出工具，w 为 nil 时输出到 stdout
func NewOutput(w io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	return &Output{w: w}
}

// Discard 返回丢弃所有输出的 Output
func Discard() *Output {
	return &Output{w: io.Discard}
}

// Writer 返回底层 writer
func (o *Output) Writer() io.Writer {
	return o.w
}

// Success 输出成功消息
func (o *Output) Success(format string, args ...interface{}) {
	o.tagged("[OK]", Green, format, args...)
}

// Error 输出错误消息
func (o *Output) Error(format string, args ...interface{}) {
	o.tagged("[ERROR]", Red, format, args...)
}

// Warning 输出警告消息
func (o *Output) Warning(format string, args ...interface{}) {
	o.tagged("[WARN]", Yellow, format, args...)
}

// Info 输出信息消息
func (o *Output) Info(format string, args ...interface{}) {
	o.tagged("[INFO]", Cyan, format, args...)
}

// Highlight 输出加粗黄色的消息（write_log 回显）
func (o *Output) Highlight(format string, args ...interface{}) {
	fmt.Fprintln(o.w, ColorText(fmt.Sprintf(format, args...), Yellow, Bold))
}

// Plain 输出普通消息（无颜色）
func (o *Output) Plain(format string, args ...interface{}) {
	fmt.Fprintf(o.w, format+"\n", args...)
}

// Banner 输出居中的标题横幅
func (o *Output) Banner(title string) {
	width := constants.ConsoleSeparatorWidth
	line := strings.Repeat("-", width)
	pad := (width - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	centered := strings.Repeat(" ", pad) + title
	fmt.Fprintln(o.w, ColorText(line, Cyan, Bold))
	fmt.Fprintln(o.w, ColorText(centered, Cyan, Bold))
	fmt.Fprintln(o.w, ColorText(line, Cyan, Bold))
}

// KeyValue 输出键值对
func (o *Output) KeyValue(key, value string) {
	fmt.Fprintf(o.w, "  %s %s\n", ColorText(fmt.Sprintf("%-20s", key+":"), White, Bold), value)
}

// Separator 输出分隔线
func (o *Output) Separator() {
	fmt.Fprintln(o.w, ColorText(strings.Repeat("-", constants.ConsoleSeparatorWidth), White, Dim))
}

func (o *Output) tagged(tag string, fg color.Attribute, format string, args ...interface{}) {
	fmt.Fprintln(o.w, ColorText(tag, fg, Bold), fmt.Sprintf(format, args...))
}
