package systems

import (
	"fmt"
	"log"

	"github.com/matheo-lm/xs-arcade/pkg/components"
	"github.com/matheo-lm/xs-arcade/pkg/config"
	"github.com/matheo-lm/xs-arcade/pkg/ecs"
)

// Options 创建 Simulation 所需的参数
type Options struct {
	Tiers          *config.TierChain
	Tuning         config.PhysicsTuning
	DropCooldownMs float64

	BoardWidth  float64
	BoardHeight float64

	// 以下协作者可以为空：Random 默认按时间取种子，Audio 默认静音实现，Listener 默认忽略事件
	Random   RandomSource
	Audio    AudioSink
	Listener Listener
}

// Simulation 合成游戏的模拟核心
//
// 单线程使用，不加锁；Step 中不做 I/O。
type Simulation struct {
	world *World

	physics   *PhysicsSystem
	collision *CollisionSystem
	effects   *EffectSystem
	drop      *DropSystem
	outcome   *OutcomeSystem
}

// NewSimulation 创建一局新的模拟
//
// 返回：
//   - *Simulation: 处于 playing 状态的模拟
//   - error: 配置不合法时返回错误
func NewSimulation(opts Options) (*Simulation, error) {
	if opts.Tiers == nil {
		return nil, fmt.Errorf("tier chain is required")
	}
	if err := opts.Tiers.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tier chain: %w", err)
	}
	if err := opts.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("invalid physics tuning: %w", err)
	}
	if opts.BoardWidth <= 0 || opts.BoardHeight <= 0 {
		return nil, fmt.Errorf("board size must be positive, got %vx%v", opts.BoardWidth, opts.BoardHeight)
	}
	if opts.DropCooldownMs < 0 {
		return nil, fmt.Errorf("drop cooldown cannot be negative, got %v", opts.DropCooldownMs)
	}

	world := newWorld(opts.Tiers, opts.Tuning, opts.BoardWidth, opts.BoardHeight)
	world.Random = opts.Random
	if world.Random == nil {
		world.Random = NewTimeSeededRandom()
	}
	world.Audio = opts.Audio
	if world.Audio == nil {
		world.Audio = &NopAudioSink{}
	}
	world.Listener = opts.Listener
	if world.Listener == nil {
		world.Listener = ListenerFuncs{}
	}

	effects := NewEffectSystem(world)
	sim := &Simulation{
		world:     world,
		physics:   NewPhysicsSystem(world),
		collision: NewCollisionSystem(world, effects),
		effects:   effects,
		drop:      NewDropSystem(world, opts.DropCooldownMs),
		outcome:   NewOutcomeSystem(world),
	}

	log.Printf("[Simulation] Created: board=%.0fx%.0f, tiers=%d, cooldown=%.0fms",
		opts.BoardWidth, opts.BoardHeight, opts.Tiers.Len(), opts.DropCooldownMs)
	return sim, nil
}

// World 返回模拟状态（渲染层只读）
func (s *Simulation) World() *World { return s.world }

// Drop 返回投放系统
func (s *Simulation) Drop() *DropSystem { return s.drop }

// Effects 返回特效系统
func (s *Simulation) Effects() *EffectSystem { return s.effects }

// Mode 当前状态
func (s *Simulation) Mode() components.RunMode { return s.world.Mode }

// Score 当前分数
func (s *Simulation) Score() int { return s.world.Score }

// Bodies 按存储顺序返回场上的水果（只读）
func (s *Simulation) Bodies() []*components.Body { return s.world.Bodies.Entities() }

// AddBody 直接在场上放置一个水果（调试与测试使用）
//
// 非法等级或非有限坐标会 panic
func (s *Simulation) AddBody(tier int, x, y, vx, vy float64) ecs.EntityID {
	return s.world.spawnBody(tier, x, y, vx, vy).ID
}

// Step 推进一个固定步长
//
// 顺序：时钟前进；非 playing 状态只推进特效。否则依次执行排队投放、
// 运动积分、碰撞求解、边界约束、清理已合成的水果、推进特效，
// 最后先判定越线再判定终极水果接触。
func (s *Simulation) Step() {
	w := s.world
	w.SimulationMs += w.Tuning.TickMs()
	w.Tick++

	if !w.IsPlaying() {
		s.effects.Update()
		return
	}

	s.drop.ConsumeQueued()
	s.physics.Integrate()
	s.collision.Resolve()
	s.physics.ApplyBounds()
	s.removeMerged()
	s.effects.Update()

	if s.outcome.HasOverflow() {
		s.endRun(components.EndReasonTopLine)
		return
	}
	if s.outcome.HasTerminalTouch() {
		s.endRun(components.EndReasonTerminalTouch)
	}
}

// removeMerged 删除本 tick 已合成的水果
func (s *Simulation) removeMerged() {
	s.world.Bodies.RemoveMarkedEntities()
}

// endRun 结束本局，只有第一次调用生效
func (s *Simulation) endRun(reason components.EndReason) {
	w := s.world
	if !w.IsPlaying() {
		return
	}

	w.EndReason = reason
	w.Mode = reason.Outcome()

	if w.Mode == components.RunModeWin {
		w.Audio.PlayCue(CueWin, w.Tiers.Terminal())
		s.effects.StartWinCelebration()
	} else {
		w.Audio.PlayCue(CueGameOver, 0)
	}

	log.Printf("[Simulation] Run ended: mode=%s, reason=%s, score=%d, tick=%d",
		w.Mode, reason, w.Score, w.Tick)
	w.Listener.OnGameOver(w.Score, w.Mode)
}

// Reset 清空场地并开始新的一局
//
// 会以分数 0 触发一次 OnScoreChange
func (s *Simulation) Reset() {
	w := s.world
	w.Bodies.Clear()
	s.effects.Clear()
	w.Score = 0
	w.Mode = components.RunModePlaying
	w.EndReason = components.EndReasonNone
	w.SimulationMs = 0
	w.Tick = 0
	s.drop.Reset()

	w.Listener.OnScoreChange(0)
	log.Printf("[Simulation] Run reset")
}
