//go:build !android

package utils

// EnsureStorageDir 桌面与浏览器平台无需准备目录
// gdata 在这些平台上自行创建存储位置
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 非 Android 平台由 gdata 决定路径，返回空字符串
func GetStoragePath() string {
	return ""
}
