package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"cb9-core/internal/constants"
)

// DefaultRootDir 返回默认工作根目录（~/Documents/script）
func DefaultRootDir() string {
	if root, err := ExpandPath(constants.DefaultRootDir); err == nil {
		return root
	}
	return filepath.Join(os.TempDir(), "script")
}

// DefaultLogDir 返回默认日志目录
func DefaultLogDir() string {
	return filepath.Join(DefaultRootDir(), constants.LogDirName)
}

// DefaultTempDir 返回默认临时目录
func DefaultTempDir() string {
	return filepath.Join(DefaultRootDir(), constants.TempDirName)
}

// DefaultLogDirCandidates 获取默认日志目录候选列表（按优先级排序）
func DefaultLogDirCandidates() []string {
	candidates := []string{DefaultLogDir()}

	// 备选：当前工作目录
	if workDir, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(workDir, constants.LogDirName))
	}

	// 最后备选：临时目录
	candidates = append(candidates, filepath.Join(os.TempDir(), "cb9-logs"))
	return candidates
}

// ResolveLogDir 解析日志目录，返回第一个可写的候选目录
func ResolveLogDir(candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("no log directory candidates provided")
	}

	for _, candidate := range candidates {
		// 展开路径（支持 ~ 和相对路径）
		expanded, err := ExpandPath(candidate)
		if err != nil {
			continue
		}

		if canWriteToDir(expanded) {
			return expanded, nil
		}
	}

	// 所有候选都不可写，返回最后一个（至少尝试）
	last, err := ExpandPath(candidates[len(candidates)-1])
	if err != nil {
		return "", fmt.Errorf("failed to resolve any log directory: %w", err)
	}
	return last, nil
}

// canWriteToDir 检查是否可以在目录中创建文件（包括目录创建）
func canWriteToDir(dir string) bool {
	if _, err := EnsureFolder(dir); err != nil {
		return false
	}

	probe, err := os.CreateTemp(dir, ".cb9-probe-*")
	if err != nil {
		return false
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return true
}
