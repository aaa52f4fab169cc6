package game

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于创建指定小游戏ID的场景，避免 game 包依赖 scenes 包
type SceneFactory func(gameID string) (Scene, error)

// SceneManager 控制当前活动场景
// 任意时刻只有一个场景的 Update 和 Draw 被调用
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换活动场景
//
// 旧场景实现 Saveable 时先保存
func (sm *SceneManager) SwitchTo(scene Scene) {
	if saveable, ok := sm.currentScene.(Saveable); ok && sm.currentScene != scene {
		saveable.SaveOnExit()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadGame 加载指定ID的小游戏场景
//
// 参数：
//   - gameID: 小游戏ID，如 "fruit-stacker"
func (sm *SceneManager) LoadGame(gameID string) error {
	log.Printf("[SceneManager] Loading game: %s", gameID)

	if sm.sceneFactory == nil {
		return fmt.Errorf("scene factory is not set")
	}

	scene, err := sm.sceneFactory(gameID)
	if err != nil {
		return fmt.Errorf("failed to create scene %s: %w", gameID, err)
	}
	if scene == nil {
		return fmt.Errorf("unknown game %s", gameID)
	}

	sm.SwitchTo(scene)
	log.Printf("[SceneManager] Switched to game: %s", gameID)
	return nil
}

// Update 更新当前场景，没有活动场景时什么也不做
func (sm *SceneManager) Update(now time.Time) error {
	if sm.currentScene == nil {
		return nil
	}
	return sm.currentScene.Update(now)
}

// Draw 绘制当前场景，没有活动场景时什么也不做
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// SaveOnExit 窗口关闭时保存当前场景
func (sm *SceneManager) SaveOnExit() {
	if saveable, ok := sm.currentScene.(Saveable); ok {
		if !saveable.SaveOnExit() {
			log.Printf("[SceneManager] Warning: scene failed to save on exit")
		}
	}
}
