//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在打开 gdata 之前准备 Android 存储目录
// gdata 在 Android 上把设置与进度写到 /data/data/{package}/saves，
// 但不会自己创建该目录。
func EnsureStorageDir() error {
	dir, err := androidSavesDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create saves directory %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".xs_arcade_probe")
	if err := os.WriteFile(probe, nil, 0644); err != nil {
		return fmt.Errorf("saves directory %s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}

// GetStoragePath 返回存档目录（用于调试），无法识别包名时返回空字符串
func GetStoragePath() string {
	dir, err := androidSavesDir()
	if err != nil {
		return ""
	}
	return dir
}

func androidSavesDir() (string, error) {
	pkg, err := androidPackageName()
	if err != nil {
		return "", fmt.Errorf("failed to detect Android package: %w", err)
	}
	return filepath.Join("/data/data", pkg, "saves"), nil
}

// androidPackageName 从 /proc/self/cmdline 读取进程名（即应用包名）
func androidPackageName() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}

	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	name := string(bytes.TrimSpace(data))
	if name == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return name, nil
}
