package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/matheo-lm/xs-arcade/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// StorageAppName gdata 存储使用的应用名
const StorageAppName = "xs_arcade"

// GameState 全局游戏状态
// 单例，持有跨场景共享的存储与各个管理器
type GameState struct {
	gdataManager    *gdata.Manager // 可为 nil（存储不可用时降级为内存模式）
	settingsManager *SettingsManager
	progressManager *ProgressManager
	audioManager    *AudioManager
}

// 全局单例实例
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 延迟初始化：第一次调用时打开存储并加载设置与进度
func GetGameState() *GameState {
	if globalGameState == nil {
		globalGameState = NewGameState(openStorage())
	}
	return globalGameState
}

// NewGameState 用给定的存储创建状态（存储可为 nil，仅内存模式）
func NewGameState(manager *gdata.Manager) *GameState {
	settings, err := NewSettingsManager(manager)
	if err != nil {
		log.Printf("[GameState] Warning: settings unavailable: %v", err)
		settings = &SettingsManager{settings: DefaultSettings()}
	}

	return &GameState{
		gdataManager:    manager,
		settingsManager: settings,
		progressManager: NewProgressManager(manager),
		audioManager:    NewAudioManager(nil, settings),
	}
}

// openStorage 打开 gdata 存储，失败时返回 nil
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[GameState] Warning: storage directory unavailable: %v", err)
	}

	manager, err := gdata.Open(gdata.Config{AppName: StorageAppName})
	if err != nil {
		log.Printf("[GameState] Warning: Failed to open gdata storage: %v (progress will not persist)", err)
		return nil
	}
	return manager
}

// resetGlobalGameState 重置单例（仅测试使用）
func resetGlobalGameState() {
	globalGameState = nil
}

// GetGdataManager 返回 gdata 存储管理器，可能为 nil
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

// GetSettingsManager 返回设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// GetProgressManager 返回进度管理器
func (gs *GameState) GetProgressManager() *ProgressManager {
	return gs.progressManager
}

// GetAudioManager 返回音频管理器
func (gs *GameState) GetAudioManager() *AudioManager {
	return gs.audioManager
}

// SetAudioContext 设置音频上下文（应用创建 audio.Context 后调用）
func (gs *GameState) SetAudioContext(ctx *audio.Context) {
	gs.audioManager.SetContext(ctx)
}
