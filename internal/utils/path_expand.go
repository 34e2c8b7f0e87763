package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath 展开路径，支持 ~、环境变量和相对路径
// 例如：~/Documents/script/logs -> /home/user/Documents/script/logs
//
//	$TMPDIR/cb9       -> /tmp/cb9
//	./logs            -> /current/dir/logs
//
// 仅用于配置/命令行中的路径模板；调用方给出的实际路径应使用 ExpandHome
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is empty")
	}
	return ExpandHome(os.ExpandEnv(path))
}

// ExpandHome 只展开开头的 ~ 并转换为绝对路径，路径中的 $ 按字面处理
func ExpandHome(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is empty")
	}

	// 展开 ~
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
	}

	// 转换为绝对路径（处理相对路径）
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to convert to absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}
