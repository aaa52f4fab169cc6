package systems

import (
	"math"
	"time"
)

// Stepper 可以按固定步长推进的对象
type Stepper interface {
	Step()
}

// FixedStepScheduler 固定步长调度器
//
// 把不规则的渲染帧间隔累积起来，按整数个 tick 推进模拟，
// 使物理结果与显示刷新率无关。
type FixedStepScheduler struct {
	stepper    Stepper
	tickMs     float64
	maxFrameMs float64

	accumulatorMs float64
	lastFrame     time.Time
	hasLastFrame  bool

	// 外部步进模式：由 AdvanceBy 驱动时暂停按帧推进
	external bool
}

// NewFixedStepScheduler 创建调度器
//
// 参数：
//   - stepper: 被推进的模拟
//   - tickMs: 每个 tick 的时长
//   - maxFrameMs: 单帧最多累积的时长，防止卡顿后一次追赶过多 tick
func NewFixedStepScheduler(stepper Stepper, tickMs, maxFrameMs float64) *FixedStepScheduler {
	return &FixedStepScheduler{
		stepper:    stepper,
		tickMs:     tickMs,
		maxFrameMs: maxFrameMs,
	}
}

// Frame 每个渲染帧调用一次，返回本帧执行的 tick 数
//
// 第一帧的间隔视为 0；间隔被限制在 [0, maxFrameMs]。
func (fs *FixedStepScheduler) Frame(now time.Time) int {
	deltaMs := 0.0
	if fs.hasLastFrame {
		deltaMs = float64(now.Sub(fs.lastFrame)) / float64(time.Millisecond)
	}
	fs.lastFrame = now
	fs.hasLastFrame = true

	deltaMs = clamp(deltaMs, 0, fs.maxFrameMs)
	if fs.external {
		return 0
	}
	return fs.Advance(deltaMs)
}

// Advance 累积 ms 毫秒并执行所有完整的 tick
func (fs *FixedStepScheduler) Advance(ms float64) int {
	fs.accumulatorMs += sanitizeMs(ms)

	steps := 0
	for fs.accumulatorMs >= fs.tickMs {
		fs.stepper.Step()
		fs.accumulatorMs -= fs.tickMs
		steps++
	}
	return steps
}

// AdvanceBy 同步推进 max(1, round(ms/tick)) 个 tick
//
// 调用后进入外部步进模式，Frame 不再推进模拟，直到 ReleaseExternal。
// 非有限值或负数按 0 处理。
func (fs *FixedStepScheduler) AdvanceBy(ms float64) int {
	fs.external = true

	steps := max(1, int(math.Round(sanitizeMs(ms)/fs.tickMs)))
	for i := 0; i < steps; i++ {
		fs.stepper.Step()
	}
	return steps
}

// External 是否处于外部步进模式
func (fs *FixedStepScheduler) External() bool { return fs.external }

// ReleaseExternal 退出外部步进模式，恢复按帧推进
func (fs *FixedStepScheduler) ReleaseExternal() {
	fs.external = false
	fs.hasLastFrame = false
}

// Reset 清空累积时间与帧时钟
func (fs *FixedStepScheduler) Reset() {
	fs.accumulatorMs = 0
	fs.hasLastFrame = false
}

func sanitizeMs(ms float64) float64 {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || ms < 0 {
		return 0
	}
	return ms
}
