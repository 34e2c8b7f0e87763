package utils

import (
	"os"

	coreerrors "cb9-core/internal/core/errors"
)

// EnsureFolder 确保目录存在，不存在时连同父目录一起创建
// 目录已存在时不做任何修改，返回 created=false
func EnsureFolder(path string) (created bool, err error) {
	if path == "" {
		return false, coreerrors.ErrMissingPath
	}

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, coreerrors.New(coreerrors.CodeInvalidArgument, "path exists and is not a directory").WithPath(path)
	case !os.IsNotExist(err):
		return false, coreerrors.FromIO(err, path, "failed to stat directory")
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return false, coreerrors.FromIO(err, path, "failed to create directory")
	}
	return true, nil
}

// FolderExists 检查目录是否存在
func FolderExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists 检查普通文件是否存在
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
