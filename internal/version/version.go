// Package version 提供构建版本信息
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version 版本号，构建时通过 -ldflags "-X cb9-core/internal/version.Version=1.2.3" 注入
	Version = "dev"

	// BuildTime 构建时间，通过 -ldflags 注入
	BuildTime = ""

	// GitCommit Git 提交哈希，通过 -ldflags 注入
	GitCommit = ""
)

// Info 版本详情
type Info struct {
	Version   string
	BuildTime string
	GitCommit string
	GoVersion string
	Platform  string
}

// Get 返回版本详情；未注入提交哈希时尝试从 Go 构建信息中读取
func Get() Info {
	commit := GitCommit
	if commit == "" {
		commit = vcsRevision()
	}
	return Info{
		Version:   strings.TrimPrefix(Version, "v"),
		BuildTime: BuildTime,
		GitCommit: commit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

// String 完整版本信息，例如 "v1.2.3 (built 2025-10-23) commit 0123abcd"
func (i Info) String() string {
	s := "v" + i.Version
	if i.BuildTime != "" {
		s += " (built " + i.BuildTime + ")"
	}
	if i.GitCommit != "" {
		commit := i.GitCommit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		s += " commit " + commit
	}
	return s
}

// GetVersion 获取完整版本信息
func GetVersion() string {
	return Get().String()
}

// GetShortVersion 获取简短版本号
func GetShortVersion() string {
	return "v" + strings.TrimPrefix(Version, "v")
}

// UserAgent 用于审计与诊断输出的程序标识
func UserAgent() string {
	i := Get()
	return fmt.Sprintf("cb9/%s (%s; %s)", i.Version, i.Platform, i.GoVersion)
}
