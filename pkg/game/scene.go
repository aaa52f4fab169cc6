package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 游戏场景（如小游戏的游玩画面）
// 每个场景有自己的更新与绘制逻辑
type Scene interface {
	// Update 推进场景逻辑
	// now 为本帧的墙钟时间，场景自行换算为固定步长的 tick
	Update(now time.Time) error

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口，用于在退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 游戏窗口关闭
//   - 切换到其他场景
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}
