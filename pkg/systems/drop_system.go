package systems

import (
	"math"
)

// noDropYet 尚未投放时的“上次投放时间”，保证开局即可投放
const noDropYet = -999_999

// DropResult RequestDrop 的结果
type DropResult int

const (
	DropResultDropped       DropResult = iota // 立即投放
	DropResultQueued                          // 冷却中，已排队
	DropResultAlreadyQueued                   // 冷却中，已有排队的投放
	DropResultRejected                        // 本局已结束
)

// String 返回结果名称
func (r DropResult) String() string {
	switch r {
	case DropResultDropped:
		return "dropped"
	case DropResultQueued:
		return "queued"
	case DropResultAlreadyQueued:
		return "already-queued"
	case DropResultRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// DropSystem 发射器与投放控制
//
// 负责下一个水果的等级、发射器水平位置、投放冷却以及至多一个排队的投放。
type DropSystem struct {
	world *World

	cooldownMs float64
	nextTier   int
	targetX    float64
	lastDropMs float64
	queued     bool
	dropCount  int
}

// NewDropSystem 创建投放系统
//
// 参数：
//   - world: 模拟状态
//   - cooldownMs: 两次投放之间的最短间隔（毫秒）
func NewDropSystem(world *World, cooldownMs float64) *DropSystem {
	ds := &DropSystem{
		world:      world,
		cooldownMs: cooldownMs,
	}
	ds.Reset()
	return ds
}

// Reset 重新抽取下一个水果并将发射器放回中央
func (ds *DropSystem) Reset() {
	ds.nextTier = ds.randomSpawnTier()
	ds.targetX = ds.world.BoardWidth / 2
	ds.SetTargetX(ds.targetX)
	ds.lastDropMs = noDropYet
	ds.queued = false
	ds.dropCount = 0
}

// randomSpawnTier 在最低的 SpawnPoolSize 个等级中均匀抽取
func (ds *DropSystem) randomSpawnTier() int {
	pool := min(ds.world.Tuning.SpawnPoolSize, ds.world.Tiers.Len())
	tier := int(math.Floor(ds.world.Random.Float64() * float64(pool)))
	return min(tier, pool-1)
}

// NextTier 下一个投放的水果等级
func (ds *DropSystem) NextTier() int { return ds.nextTier }

// TargetX 发射器当前的水平位置
func (ds *DropSystem) TargetX() float64 { return ds.targetX }

// Queued 是否有排队等待冷却结束的投放
func (ds *DropSystem) Queued() bool { return ds.queued }

// DropCount 本局已投放的水果数量
func (ds *DropSystem) DropCount() int { return ds.dropCount }

// CooldownMs 投放冷却时间
func (ds *DropSystem) CooldownMs() float64 { return ds.cooldownMs }

// SpawnRadius 发射器的有效半径（下一个水果半径加上留白）
func (ds *DropSystem) SpawnRadius() float64 {
	t := ds.world.Tuning
	return ds.world.Tiers.Radius(ds.nextTier) + t.PlayfieldPadding + t.LauncherMargin
}

// LauncherY 发射器预览的圆心高度
func (ds *DropSystem) LauncherY() float64 {
	return ds.world.Tuning.LossLineY - ds.SpawnRadius()
}

// SetTargetX 设置发射器水平位置，限制在 [R, W-R] 内
func (ds *DropSystem) SetTargetX(x float64) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return
	}
	radius := ds.SpawnRadius()
	ds.targetX = clamp(x, radius, ds.world.BoardWidth-radius)
}

// NudgeTarget 将发射器水平移动 dx 像素
func (ds *DropSystem) NudgeTarget(dx float64) {
	ds.SetTargetX(ds.targetX + dx)
}

// CooldownRemaining 距离下一次可投放的剩余时间（毫秒）
func (ds *DropSystem) CooldownRemaining() float64 {
	return math.Max(0, ds.cooldownMs-(ds.world.SimulationMs-ds.lastDropMs))
}

// CooldownRatio 冷却进度，1 表示可以投放
func (ds *DropSystem) CooldownRatio() float64 {
	if ds.cooldownMs <= 0 {
		return 1
	}
	return 1 - ds.CooldownRemaining()/ds.cooldownMs
}

// CanDrop 当前是否可以立即投放
func (ds *DropSystem) CanDrop() bool {
	return ds.world.IsPlaying() && ds.CooldownRemaining() <= 0
}

// Drop 在发射器位置生成下一个水果
//
// 返回：
//   - bool: 本局已结束或仍在冷却时返回 false
func (ds *DropSystem) Drop() bool {
	if !ds.CanDrop() {
		return false
	}

	w := ds.world
	t := w.Tuning

	tier := ds.nextTier
	radius := w.Tiers.Radius(tier)
	margin := radius + t.PlayfieldPadding + t.DropMargin
	x := clamp(ds.targetX, margin, w.BoardWidth-margin)
	y := t.LossLineY - radius - t.SpawnLift
	vx := (w.Random.Float64() - 0.5) * t.DropJitter

	w.spawnBody(tier, x, y, vx, 0)
	ds.nextTier = ds.randomSpawnTier()
	ds.lastDropMs = w.SimulationMs
	ds.dropCount++
	w.Audio.PlayCue(CueDrop, tier)
	return true
}

// RequestDrop 玩家请求投放
//
// 冷却中的第一次请求会排队并播放提示音，之后的请求不再重复排队。
func (ds *DropSystem) RequestDrop() DropResult {
	if ds.Drop() {
		ds.queued = false
		return DropResultDropped
	}

	if !ds.world.IsPlaying() {
		return DropResultRejected
	}

	if ds.queued {
		return DropResultAlreadyQueued
	}
	ds.queued = true
	ds.world.Audio.PlayCue(CueQueued, ds.nextTier)
	return DropResultQueued
}

// ConsumeQueued 冷却结束时执行排队的投放
func (ds *DropSystem) ConsumeQueued() {
	if !ds.queued {
		return
	}
	if ds.Drop() {
		ds.queued = false
	}
}
