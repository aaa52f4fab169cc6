package scenes

import (
	"fmt"

	"github.com/matheo-lm/xs-arcade/pkg/config"
	"github.com/matheo-lm/xs-arcade/pkg/game"
)

// Scene 是 game.Scene 的别名
type Scene = game.Scene

// NewSceneFactory 返回按小游戏ID创建场景的工厂
//
// 参数：
//   - gs: 全局游戏状态（设置、进度、音频）
//   - opts: 创建场景的额外选项（随机种子等）
func NewSceneFactory(gs *game.GameState, opts FruitStackerOptions) game.SceneFactory {
	return func(gameID string) (game.Scene, error) {
		switch gameID {
		case config.FruitStackerGameID:
			return NewFruitStackerScene(gs, opts)
		default:
			return nil, fmt.Errorf("no scene registered for game %q", gameID)
		}
	}
}
