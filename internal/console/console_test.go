package console

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func withColor(t *testing.T, on bool) {
	t.Helper()
	prev := Enabled()
	SetEnabled(on)
	t.Cleanup(func() { SetEnabled(prev) })
}

func TestColorText_Disabled(t *testing.T) {
	withColor(t, false)

	assert.Equal(t, "WARNING ", ColorText("WARNING ", Yellow, Bold))
	// 幂等：多次调用结果不变
	once := ColorText("plain", Red)
	assert.Equal(t, once, ColorText(once, Red))
}

func TestColorText_Enabled(t *testing.T) {
	withColor(t, true)

	got := ColorText("ERROR   ", Red, Bold)
	assert.NotEqual(t, "ERROR   ", got)
	assert.True(t, strings.HasPrefix(got, "\x1b["))
	assert.Equal(t, "ERROR   ", stripANSI(got))

	assert.Equal(t, "", ColorText("", Red))
}

func TestOutput(t *testing.T) {
	withColor(t, false)

	var buf bytes.Buffer
	out := NewOutput(&buf)

	out.Success("saved %s", "a.log")
	out.Error("failed: %d", 2)
	out.Warning("careful")
	out.Info("note")
	out.Highlight("Processing 100 files")
	out.Plain("plain %s", "text")
	out.KeyValue("Root", "/tmp/x")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "[OK] saved a.log", lines[0])
	assert.Equal(t, "[ERROR] failed: 2", lines[1])
	assert.Equal(t, "[WARN] careful", lines[2])
	assert.Equal(t, "[INFO] note", lines[3])
	assert.Equal(t, "Processing 100 files", lines[4])
	assert.Equal(t, "plain text", lines[5])
	assert.True(t, strings.HasPrefix(lines[6], "  Root:"))
	assert.True(t, strings.HasSuffix(lines[6], " /tmp/x"))
}

func TestOutput_Banner(t *testing.T) {
	withColor(t, false)

	var buf bytes.Buffer
	NewOutput(&buf).Banner("Cleanup")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Repeat("-", 60), lines[0])
	assert.Equal(t, "Cleanup", strings.TrimSpace(lines[1]))
	assert.Equal(t, strings.Repeat("-", 60), lines[2])
}

func TestDiscardAndDefaults(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Info("nothing") })
	assert.Equal(t, os.Stdout, NewOutput(nil).Writer())
	assert.False(t, IsTerminal(nil))
}
