package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cb9-core/internal/constants"
	coreerrors "cb9-core/internal/core/errors"
	"cb9-core/internal/utils"
)

// Rotate 将日志从 oldPath 切换到新文件
//
// oldPath 非空且可访问时追加带 LOG ROTATED 的 END 块，失败仅告警。
// 新文件总是重新创建（截断同名文件）并写入创建头；若新文件名与 oldPath
// 属于同一序列（同一秒内轮转），追加序号避免覆盖旧文件。新文件写入失败时返回错误且不返回路径
func (j *Journal) Rotate(name, version, oldPath string) (string, error) {
	if oldPath != "" {
		j.closeRotated(oldPath)
	}

	if _, err := utils.EnsureFolder(j.dir); err != nil {
		j.out.Error("Could not create log directory: %v", err)
		return "", err
	}

	now := j.now()
	path := utils.LogFilePath(j.dir, name, now)
	if oldPath != "" && sameSeries(path, oldPath) {
		path = nextFreePath(path)
		j.log.WithField(constants.LogFieldPath, path).Warnf("journal: rotated within the same second as %q, using a numbered name", oldPath)
	}
	if err := createLines(path, createdHeader(name, version, utils.FormatTimestamp(now))); err != nil {
		j.log.WithField(constants.LogFieldPath, path).Errorf("journal: failed to create rotated log: %v", err)
		j.out.Error("Could not create new log file: %v", err)
		return "", err
	}

	j.log.WithFields(map[string]interface{}{
		constants.LogFieldJob:  name,
		constants.LogFieldPath: path,
	}).Debugf("journal: rotated from %q", oldPath)
	return path, nil
}

func (j *Journal) closeRotated(oldPath string) {
	logger := j.log.WithField(constants.LogFieldPath, oldPath)

	if _, err := os.Stat(oldPath); err != nil {
		logger.Warnf("journal: previous log not accessible, skipping rotation footer: %v", err)
		j.out.Warning("Previous log not found: %s", oldPath)
		return
	}

	if err := appendLines(oldPath, rotatedEndBlock(j.timestamp())); err != nil {
		if coreerrors.IsCode(err, coreerrors.CodePermission) {
			logger.Warnf("journal: no permission to close previous log: %v", err)
		} else {
			logger.Warnf("journal: failed to close previous log: %v", err)
		}
		j.out.Warning("Could not close previous log %s: %v", oldPath, err)
	}
}

// sameSeries 判断 old 是否就是 path，或是 path 已加序号的版本（path_N.ext）
func sameSeries(path, old string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absOld, err := filepath.Abs(old)
	if err != nil {
		return false
	}
	if absPath == absOld {
		return true
	}
	ext := filepath.Ext(absPath)
	stem := strings.TrimSuffix(absPath, ext) + "_"
	if !strings.HasPrefix(absOld, stem) || !strings.HasSuffix(absOld, ext) {
		return false
	}
	_, err = strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(absOld, stem), ext))
	return err == nil
}

// nextFreePath 在扩展名前追加 _2、_3 ... 直到文件不存在
func nextFreePath(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, n, ext)
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
