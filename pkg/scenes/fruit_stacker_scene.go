package scenes

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/matheo-lm/xs-arcade/pkg/components"
	"github.com/matheo-lm/xs-arcade/pkg/config"
	"github.com/matheo-lm/xs-arcade/pkg/game"
	"github.com/matheo-lm/xs-arcade/pkg/systems"
	"github.com/matheo-lm/xs-arcade/pkg/utils"
)

// 重新开始按钮（游戏结束覆盖层中）
const (
	playAgainWidth  = 180.0
	playAgainHeight = 44.0
	playAgainY      = 420.0
)

// volumeStep 每次按键调整的音量
const volumeStep = 0.1

// FruitStackerOptions 创建场景的可选参数
type FruitStackerOptions struct {
	// Random 随机源，为 nil 时使用时间种子
	Random systems.RandomSource
	// AgeBand 覆盖设置中的年龄段，为空时使用设置
	AgeBand config.AgeBand
}

// tierPalette 一个等级的绘制颜色
type tierPalette struct {
	highlight color.RGBA // fallbackA
	body      color.RGBA // fallbackB
}

// FruitStackerScene 合成游戏的游玩场景
//
// 职责：
//   - 把指针、触摸、键盘输入转换为 Session 命令
//   - 每帧用墙钟时间驱动固定步长调度
//   - 只读地绘制模拟状态、特效与 HUD
//   - 一局结束时记录进度
type FruitStackerScene struct {
	session  *systems.Session
	tiers    *config.TierChain
	tuning   config.PhysicsTuning
	preset   config.DifficultyPreset
	ageBand  config.AgeBand
	palettes []tierPalette

	gameState *game.GameState
	pointer   utils.PointerTracker

	// 本局结束后的结果
	lastStars int
	best      int
	endedAt   time.Time
	lastNow   time.Time
}

// NewFruitStackerScene 创建合成游戏场景
//
// 从嵌入数据加载合成链、物理参数与清单，按当前年龄段选择难度预设。
//
// 参数：
//   - gs: 全局游戏状态
//   - opts: 可选参数
//
// 返回：
//   - *FruitStackerScene: 场景实例
//   - error: 配置加载失败时返回错误
func NewFruitStackerScene(gs *game.GameState, opts FruitStackerOptions) (*FruitStackerScene, error) {
	tiers, err := config.LoadTierChain(config.DefaultTierConfigPath)
	if err != nil {
		return nil, err
	}
	tuning, err := config.LoadPhysicsTuning(config.DefaultPhysicsTuningPath)
	if err != nil {
		return nil, err
	}
	manifest, err := config.LoadGameManifest(config.DefaultManifestPath)
	if err != nil {
		return nil, err
	}

	band := opts.AgeBand
	if band == "" {
		band = gs.GetSettingsManager().GetSettings().AgeBand
	}
	preset := manifest.Preset(band)

	s := &FruitStackerScene{
		tiers:     tiers,
		tuning:    tuning,
		preset:    preset,
		ageBand:   band,
		palettes:  buildPalettes(tiers),
		gameState: gs,
	}

	session, err := systems.NewSession(systems.Options{
		Tiers:          tiers,
		Tuning:         tuning,
		DropCooldownMs: preset.DropCooldownMs,
		BoardWidth:     config.BoardWidth,
		BoardHeight:    config.BoardHeight,
		Random:         opts.Random,
		Audio:          gs.GetAudioManager(),
		Listener:       systems.ListenerFuncs{GameOver: s.onGameOver},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fruit stacker session: %w", err)
	}
	s.session = session

	profile := gs.GetProgressManager().EnsureActiveProfile()
	s.best = gs.GetProgressManager().GetGameProgress(profile, config.FruitStackerGameID).HighScore

	log.Printf("[FruitStackerScene] Ready: ageBand=%s cooldown=%.0fms goal=%d best=%d",
		band, preset.DropCooldownMs, preset.GoalScore, s.best)
	return s, nil
}

// buildPalettes 解析每个等级的绘制颜色，非法颜色回退为灰色
func buildPalettes(tiers *config.TierChain) []tierPalette {
	fallback := color.RGBA{0xb0, 0xb0, 0xb0, 0xff}
	palettes := make([]tierPalette, tiers.Len())
	for i, tier := range tiers.Tiers {
		palettes[i] = tierPalette{
			highlight: utils.MustParseHexColor(tier.FallbackA, fallback),
			body:      utils.MustParseHexColor(tier.FallbackB, fallback),
		}
	}
	return palettes
}

// Session 返回场景驱动的会话
func (s *FruitStackerScene) Session() *systems.Session {
	return s.session
}

// Update 处理输入并推进模拟
func (s *FruitStackerScene) Update(now time.Time) error {
	s.lastNow = now
	s.handlePointer(s.pointer.Update())
	for _, action := range utils.ActionsForKeys(utils.JustPressedKeys(), utils.DefaultKeyBindings) {
		s.handleAction(action)
	}
	s.session.Frame(now)
	return nil
}

// handlePointer 指针移动瞄准，按下时瞄准并投放
func (s *FruitStackerScene) handlePointer(frame utils.PointerFrame) {
	if !frame.HasPointer || !utils.InsideRect(frame.X, frame.Y, 0, 0, config.BoardWidth, config.BoardHeight) {
		return
	}

	if !s.session.Simulation().World().IsPlaying() {
		if frame.JustPressed && insidePlayAgain(frame.X, frame.Y) {
			s.restart()
		}
		return
	}

	if frame.Moved || frame.JustPressed {
		s.session.SetHorizontalTarget(float64(frame.X))
	}
	if frame.JustPressed {
		s.session.RequestDrop()
	}
}

// handleAction 处理一个键盘动作
func (s *FruitStackerScene) handleAction(action utils.Action) {
	playing := s.session.Simulation().World().IsPlaying()

	switch action {
	case utils.ActionMoveLeft:
		s.session.NudgeTarget(-s.tuning.KeyStep)
	case utils.ActionMoveRight:
		s.session.NudgeTarget(s.tuning.KeyStep)
	case utils.ActionDrop:
		if playing {
			s.session.RequestDrop()
		} else {
			s.restart()
		}
	case utils.ActionRestart:
		s.restart()
	case utils.ActionToggleMute:
		s.session.SetMuted(!s.session.Muted())
	case utils.ActionVolumeDown:
		s.adjustVolume(-volumeStep)
	case utils.ActionVolumeUp:
		s.adjustVolume(volumeStep)
	case utils.ActionStepTick:
		// 单步调试：冻结按帧推进，每次只走一个 tick
		s.session.AdvanceBy(s.tuning.TickMs())
	case utils.ActionResumeFrames:
		if s.session.Stepping() {
			s.session.ResumeFrames()
		}
	}
}

// adjustVolume 调整音效音量
func (s *FruitStackerScene) adjustVolume(delta float64) {
	volume := s.gameState.GetAudioManager().AdjustSoundVolume(delta)
	log.Printf("[FruitStackerScene] Sound volume: %.1f", volume)
}

// restart 开始新的一局
func (s *FruitStackerScene) restart() {
	s.session.Reset()
	s.lastStars = 0
	s.endedAt = time.Time{}
}

// onGameOver 一局结束：计算星级并记录进度
func (s *FruitStackerScene) onGameOver(finalScore int, outcome components.RunMode) {
	s.lastStars = config.CalculateStars(finalScore, s.preset.GoalScore)
	s.endedAt = s.lastNow

	progress := s.gameState.GetProgressManager().RecordRun(config.FruitStackerGameID, finalScore, s.lastStars)
	s.best = progress.HighScore

	log.Printf("[FruitStackerScene] Run over: outcome=%s score=%d stars=%d", outcome, finalScore, s.lastStars)
}

// SaveOnExit 退出时保存设置
func (s *FruitStackerScene) SaveOnExit() bool {
	if err := s.gameState.GetSettingsManager().Save(); err != nil {
		log.Printf("[FruitStackerScene] Warning: Failed to save settings: %v", err)
		return false
	}
	return true
}

// insidePlayAgain 判断点是否在“再玩一次”按钮内
func insidePlayAgain(x, y int) bool {
	left := (config.BoardWidth - playAgainWidth) / 2
	return utils.InsideRect(x, y, left, playAgainY, playAgainWidth, playAgainHeight)
}

// Draw 绘制场景
func (s *FruitStackerScene) Draw(screen *ebiten.Image) {
	s.drawBackground(screen)
	s.drawBodies(screen)
	s.drawLauncher(screen)
	s.drawEffects(screen)
	s.drawHUD(screen)
	if !s.session.Simulation().World().IsPlaying() {
		s.drawOverlay(screen)
	}
}
