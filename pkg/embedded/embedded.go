// Package embedded 提供嵌入游戏数据的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包保存该文件系统的引用，让 config 等包可以按 "data/..." 路径读取数据。
//
// 使用前必须调用 Init() 初始化；测试可以传入 os.DirFS 或 fstest.MapFS。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// ErrNotInitialized 在 Init() 之前访问数据时返回
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

// Init 设置数据文件系统
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 统一路径格式并校验 "data/" 前缀
func normalize(p string) (string, error) {
	// embed.FS 只接受正斜杠，反斜杠在任何平台上都按分隔符处理
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	p = path.Clean(p)

	if !strings.HasPrefix(p, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", p)
	}
	return p, nil
}

// ReadFile 读取数据文件内容
// 路径必须以 "data/" 开头
func ReadFile(p string) ([]byte, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}

	name, err := normalize(p)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, name)
}

// Exists 检查文件是否存在
func Exists(p string) bool {
	if !initialized {
		return false
	}

	name, err := normalize(p)
	if err != nil {
		return false
	}
	_, err = fs.Stat(dataFS, name)
	return err == nil
}

// Glob 匹配数据文件
// 路径模式必须以 "data/" 开头
func Glob(pattern string) ([]string, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}

	name, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, name)
}
