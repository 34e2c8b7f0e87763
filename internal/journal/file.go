package journal

import (
	"os"
	"path/filepath"
	"strings"

	coreerrors "cb9-core/internal/core/errors"
	"cb9-core/internal/utils"
)

// appendLines 以追加方式写入若干行；每次调用独立打开、写入、关闭
func appendLines(path string, lines []string) error {
	return writeLines(path, lines, os.O_CREATE|os.O_WRONLY|os.O_APPEND)
}

// createLines 以截断方式新建文件并写入若干行
func createLines(path string, lines []string) error {
	return writeLines(path, lines, os.O_CREATE|os.O_WRONLY|os.O_TRUNC)
}

func writeLines(path string, lines []string, flag int) error {
	if _, err := utils.EnsureFolder(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return coreerrors.FromIO(err, path, "failed to open log file")
	}
	if _, err := f.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		_ = f.Close()
		return coreerrors.FromIO(err, path, "failed to write log file")
	}
	if err := f.Close(); err != nil {
		return coreerrors.FromIO(err, path, "failed to close log file")
	}
	return nil
}
