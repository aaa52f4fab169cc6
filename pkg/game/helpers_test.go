package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestStorage 在临时目录中打开 gdata 存储
//
// 无法打开时跳过测试（受限环境）
func openTestStorage(t *testing.T) *gdata.Manager {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)

	manager, err := gdata.Open(gdata.Config{AppName: "xs_arcade_test"})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return manager
}
