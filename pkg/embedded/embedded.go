// Package embedded 提供嵌入数据文件的统一访问接口
//
// 数据文件通过 data 包的 //go:embed 嵌入，本包负责路径标准化，
// 并允许测试或工具用磁盘目录（fs.FS）替换默认数据源。
package embedded

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/decker502/wavewizard/data"
)

// pathPrefix 所有数据路径必须以此前缀开头
const pathPrefix = "data/"

var (
	mu     sync.RWMutex
	dataFS fs.FS = data.Files
)

// Use 替换数据源（如 os.DirFS("data")），返回恢复原数据源的函数
func Use(fsys fs.FS) (restore func()) {
	mu.Lock()
	prev := dataFS
	dataFS = fsys
	mu.Unlock()

	return func() {
		mu.Lock()
		dataFS = prev
		mu.Unlock()
	}
}

// normalize 标准化路径并去掉 "data/" 前缀
func normalize(path string) (string, error) {
	// 标准化路径分隔符为正斜杠（embed.FS 使用正斜杠）
	path = filepath.ToSlash(path)

	// 移除可能的 "./" 前缀
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, pathPrefix) {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return strings.TrimPrefix(path, pathPrefix), nil
}

func current() fs.FS {
	mu.RLock()
	defer mu.RUnlock()
	return dataFS
}

// ReadFile 读取数据文件内容
// 路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	name, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(current(), name)
}

// Exists 检查数据文件是否存在
func Exists(path string) bool {
	name, err := normalize(path)
	if err != nil {
		return false
	}
	_, err = fs.Stat(current(), name)
	return err == nil
}

// Glob 匹配数据文件，返回带 "data/" 前缀的路径
func Glob(pattern string) ([]string, error) {
	name, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	matches, err := fs.Glob(current(), name)
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		matches[i] = pathPrefix + m
	}
	return matches, nil
}
