package systems

import (
	"log"
	"time"
)

// Session 一局游戏对外的命令接口
//
// 组合了 Simulation 与 FixedStepScheduler。界面层只通过 Session 修改模拟状态，
// 渲染时通过 Simulation() 只读访问。
type Session struct {
	sim       *Simulation
	scheduler *FixedStepScheduler
}

// NewSession 创建会话
func NewSession(opts Options) (*Session, error) {
	sim, err := NewSimulation(opts)
	if err != nil {
		return nil, err
	}
	return &Session{
		sim:       sim,
		scheduler: NewFixedStepScheduler(sim, opts.Tuning.TickMs(), opts.Tuning.MaxFrameMs),
	}, nil
}

// Simulation 返回底层模拟（只读使用）
func (s *Session) Simulation() *Simulation { return s.sim }

// Scheduler 返回调度器
func (s *Session) Scheduler() *FixedStepScheduler { return s.scheduler }

// RequestDrop 请求投放水果
func (s *Session) RequestDrop() DropResult {
	return s.sim.drop.RequestDrop()
}

// SetHorizontalTarget 设置发射器水平位置（棋盘坐标）
func (s *Session) SetHorizontalTarget(x float64) {
	s.sim.drop.SetTargetX(x)
}

// NudgeTarget 水平移动发射器
func (s *Session) NudgeTarget(dx float64) {
	s.sim.drop.NudgeTarget(dx)
}

// Reset 开始新的一局
func (s *Session) Reset() {
	s.sim.Reset()
	s.scheduler.Reset()
}

// Frame 每个渲染帧调用一次，返回执行的 tick 数
func (s *Session) Frame(now time.Time) int {
	return s.scheduler.Frame(now)
}

// AdvanceBy 同步推进约 ms 毫秒（至少一个 tick）
func (s *Session) AdvanceBy(ms float64) int {
	return s.scheduler.AdvanceBy(ms)
}

// Stepping 是否处于外部步进模式（AdvanceBy 之后 Frame 不再推进）
func (s *Session) Stepping() bool {
	return s.scheduler.External()
}

// ResumeFrames 退出外部步进模式，下一帧起恢复按墙钟推进
func (s *Session) ResumeFrames() {
	s.scheduler.ReleaseExternal()
}

// SetMuted 设置静音
func (s *Session) SetMuted(muted bool) {
	s.sim.world.Audio.SetMuted(muted)
	log.Printf("[Session] Muted: %v", muted)
}

// Muted 当前是否静音
func (s *Session) Muted() bool {
	return s.sim.world.Audio.IsMuted()
}

// Snapshot 当前状态快照
func (s *Session) Snapshot() Snapshot {
	return s.sim.Snapshot()
}
