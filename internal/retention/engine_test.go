package retention

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cb9-core/internal/console"
	coreerrors "cb9-core/internal/core/errors"
	corelog "cb9-core/internal/core/log"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func fixedNow() time.Time {
	return time.Date(2025, 10, 23, 14, 30, 0, 0, time.Local)
}

// buildTree 创建测试目录树：a.tmp b.tmp c.log sub/d.tmp
func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0755))
	for _, name := range []string{"a.tmp", "b.tmp", "c.log", filepath.Join("sub", "d.tmp")} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(name), 0644))
	}
	return root
}

func listTree(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	require.NoError(t, filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, _ := filepath.Rel(root, path)
			files = append(files, rel)
		}
		return nil
	}))
	sort.Strings(files)
	return files
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	all := append([]Option{
		WithClock(fixedNow),
		WithOutput(console.NewOutput(buf)),
		WithLogger(corelog.NewTestLogger(t)),
	}, opts...)
	return NewEngine(filepath.Join(t.TempDir(), "logs"), all...), buf
}

func TestRun_DeletesMatchingFiles(t *testing.T) {
	root := buildTree(t)
	sink := NewMemorySink()
	e, buf := newTestEngine(t, WithAuditSink(sink))

	res, err := e.Run(Task{Root: root, Patterns: []string{"*.tmp"}, LogDeletions: true})
	require.NoError(t, err)

	assert.True(t, res.Success())
	assert.Equal(t, 3, res.Matched)
	assert.Equal(t, 3, res.Deleted)
	assert.Equal(t, 0, res.Errors)
	assert.Equal(t, []string{"c.log"}, listTree(t, root))
	assert.DirExists(t, filepath.Join(root, "sub"))

	lines := sink.Lines()
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "Retention run started")
	deleted := 0
	for _, l := range lines {
		if strings.Contains(l, "] DELETED: ") {
			deleted++
		}
	}
	assert.Equal(t, 3, deleted)
	assert.Contains(t, lines[4], "SUMMARY: 3 file(s) deleted, 0 error(s)")
	assert.Contains(t, ansi.ReplaceAllString(buf.String(), ""), "3 file(s) deleted")
}

func TestRun_DryRunMatchesRealRun(t *testing.T) {
	root := buildTree(t)
	before := listTree(t, root)
	patterns := []string{"*.tmp", "a.*"}

	sink := NewMemorySink()
	e, buf := newTestEngine(t, WithAuditSink(sink))
	dry, err := e.Run(Task{Root: root, Patterns: patterns, DryRun: true, LogDeletions: true})
	require.NoError(t, err)

	assert.Equal(t, before, listTree(t, root))
	assert.True(t, dry.DryRun)
	assert.Equal(t, 3, dry.Matched)
	assert.Equal(t, 0, dry.Deleted)
	assert.Contains(t, ansi.ReplaceAllString(buf.String(), ""), "3 file(s) would be deleted")
	for _, l := range sink.Lines()[1:4] {
		assert.Contains(t, l, "WOULD DELETE: ")
	}

	real, err := e.Run(Task{Root: root, Patterns: patterns})
	require.NoError(t, err)
	assert.Equal(t, dry.Matched, real.Deleted)
	assert.ElementsMatch(t, dry.Files, real.Files)
}

func TestRun_NoMatchesIsSuccess(t *testing.T) {
	root := buildTree(t)
	e, _ := newTestEngine(t)

	res, err := e.Run(Task{Root: root, Patterns: []string{"*.bak"}})
	require.NoError(t, err)
	assert.True(t, res.Success())
	assert.Zero(t, res.Matched)
	assert.Len(t, listTree(t, root), 4)
}

func TestRun_RootErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	tests := []struct {
		name string
		root string
	}{
		{"empty", ""},
		{"missing", filepath.Join(t.TempDir(), "nope")},
		{"not a directory", file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logDir := filepath.Join(t.TempDir(), "logs")
			e := NewEngine(logDir, WithOutput(console.Discard()), WithLogger(corelog.NewNopLogger()))

			res, err := e.Run(Task{Root: tt.root, Patterns: []string{"*"}, LogDeletions: true})
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, coreerrors.IsCode(err, coreerrors.CodeInvalidArgument))
			assert.NoDirExists(t, logDir)
		})
	}
}

func TestRun_InvalidPatternCountsAsError(t *testing.T) {
	root := buildTree(t)
	sink := NewMemorySink()
	e, _ := newTestEngine(t, WithAuditSink(sink))

	res, err := e.Run(Task{Root: root, Patterns: []string{"[", "*.tmp"}, LogDeletions: true})
	require.NoError(t, err)
	assert.False(t, res.Success())
	assert.Equal(t, 1, res.Errors)
	assert.Equal(t, 3, res.Deleted)
	assert.Contains(t, strings.Join(sink.Lines(), "\n"), "ERROR: invalid pattern")
}

func TestRun_SkipsDirectoriesAndSymlinks(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "cache.tmp"), 0755))
	target := filepath.Join(t.TempDir(), "outside.txt")
	require.NoError(t, os.WriteFile(target, nil, 0644))
	if err := os.Symlink(target, filepath.Join(root, "link.tmp")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	e, _ := newTestEngine(t)
	res, err := e.Run(Task{Root: root, Patterns: []string{"*.tmp"}})
	require.NoError(t, err)
	assert.Zero(t, res.Matched)
	assert.DirExists(t, filepath.Join(root, "cache.tmp"))
	assert.FileExists(t, target)
}

func TestRun_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	root := buildTree(t)
	locked := filepath.Join(root, "sub")
	require.NoError(t, os.Chmod(locked, 0555))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	sink := NewMemorySink()
	e, _ := newTestEngine(t, WithAuditSink(sink))
	res, err := e.Run(Task{Root: root, Patterns: []string{"*.tmp"}, LogDeletions: true})
	require.NoError(t, err)

	assert.False(t, res.Success())
	assert.Equal(t, 2, res.Deleted)
	assert.Equal(t, 1, res.Errors)
	assert.Equal(t, 1, res.PermissionErrors)
	assert.FileExists(t, filepath.Join(locked, "d.tmp"))
	assert.Contains(t, strings.Join(sink.Lines(), "\n"), "PERMISSION DENIED: "+filepath.Join(locked, "d.tmp"))
}

func TestRun_FileAuditLog(t *testing.T) {
	root := buildTree(t)
	logDir := filepath.Join(root, "logs")
	e := NewEngine(logDir, WithClock(fixedNow), WithOutput(console.Discard()), WithLogger(corelog.NewNopLogger()))

	res, err := e.Run(Task{Name: "tmp sweep", Root: root, Patterns: []string{"*.tmp", "*.log"}, LogDeletions: true})
	require.NoError(t, err)
	require.NotEmpty(t, res.AuditLog)

	assert.Regexp(t, `file_removal_2025-10-23_14-30-00_[0-9a-f]{8}\.log$`, res.AuditLog)
	assert.FileExists(t, res.AuditLog)
	assert.Equal(t, 4, res.Deleted)

	data, err := os.ReadFile(res.AuditLog)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "[2025-10-23 14:30:00] Retention run started: tmp sweep"))
	assert.Contains(t, content, "SUMMARY: 4 file(s) deleted")
}

func TestRun_AuditLogUnavailable(t *testing.T) {
	root := buildTree(t)
	blocker := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	buf := &bytes.Buffer{}
	e := NewEngine(blocker, WithOutput(console.NewOutput(buf)), WithLogger(corelog.NewNopLogger()))
	res, err := e.Run(Task{Root: root, Patterns: []string{"*.tmp"}, LogDeletions: true})
	require.NoError(t, err)

	assert.True(t, res.Success())
	assert.Empty(t, res.AuditLog)
	assert.Equal(t, 3, res.Deleted)
	assert.Contains(t, ansi.ReplaceAllString(buf.String(), ""), "[WARN] Could not create audit log")
}

func TestRun_NoAuditWhenDisabled(t *testing.T) {
	root := buildTree(t)
	sink := NewMemorySink()
	e, _ := newTestEngine(t, WithAuditSink(sink))

	res, err := e.Run(Task{Root: root, Patterns: []string{"*.tmp"}})
	require.NoError(t, err)
	assert.Empty(t, sink.Lines())
	assert.Empty(t, res.AuditLog)
}

func TestNewFileSink_UniqueNames(t *testing.T) {
	dir := t.TempDir()
	a, err := NewFileSink(dir, fixedNow())
	require.NoError(t, err)
	b, err := NewFileSink(dir, fixedNow())
	require.NoError(t, err)
	assert.NotEqual(t, a.Location(), b.Location())

	require.NoError(t, a.Append("first"))
	require.NoError(t, a.Append("second"))
	data, err := os.ReadFile(a.Location())
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestRun_SymlinkRoot(t *testing.T) {
	target := buildTree(t)
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	e, _ := newTestEngine(t)
	res, err := e.Run(Task{Root: link, Patterns: []string{"*.tmp"}})
	require.NoError(t, err)

	assert.True(t, res.Success())
	assert.Equal(t, 3, res.Matched)
	assert.Equal(t, 3, res.Deleted)
	assert.Equal(t, []string{"c.log"}, listTree(t, target))
}

func TestRun_SymlinkRootSkipsOwnAuditLog(t *testing.T) {
	target := buildTree(t)
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	e := NewEngine(filepath.Join(link, "logs"), WithClock(fixedNow), WithOutput(console.Discard()), WithLogger(corelog.NewNopLogger()))
	res, err := e.Run(Task{Root: link, Patterns: []string{"*.log"}, LogDeletions: true})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Deleted)
	require.NotEmpty(t, res.AuditLog)
	assert.FileExists(t, res.AuditLog)
	assert.NoFileExists(t, filepath.Join(target, "c.log"))
}

func TestRun_LiteralDollarRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "cache$HOME")
	require.NoError(t, os.MkdirAll(root, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.tmp"), nil, 0644))

	e, _ := newTestEngine(t)
	res, err := e.Run(Task{Root: root, Patterns: []string{"*.tmp"}})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Deleted)
	assert.Equal(t, []string{filepath.Join(root, "a.tmp")}, res.Files)
	assert.NoFileExists(t, filepath.Join(root, "a.tmp"))
}
