package systems

import (
	"fmt"
	"math"

	"github.com/matheo-lm/xs-arcade/pkg/components"
	"github.com/matheo-lm/xs-arcade/pkg/config"
	"github.com/matheo-lm/xs-arcade/pkg/ecs"
)

// World 一局合成游戏的完整模拟状态
//
// 所有系统共享同一个 World；只有 Simulation.Step 及其调用的系统会修改它。
type World struct {
	Tiers  *config.TierChain
	Tuning config.PhysicsTuning

	BoardWidth  float64
	BoardHeight float64

	Bodies *ecs.EntityManager[*components.Body]
	Texts  *ecs.EntityManager[*components.FloatingText]
	Rings  *ecs.EntityManager[*components.RingEffect]
	Sparks *ecs.EntityManager[*components.SparkEffect]

	Celebration components.Celebration

	Score     int
	Mode      components.RunMode
	EndReason components.EndReason

	SimulationMs float64 // 模拟时钟，每个 tick 增加 Tuning.TickMs()
	Tick         uint64

	Random   RandomSource
	Audio    AudioSink
	Listener Listener
}

func newWorld(tiers *config.TierChain, tuning config.PhysicsTuning, width, height float64) *World {
	return &World{
		Tiers:       tiers,
		Tuning:      tuning,
		BoardWidth:  width,
		BoardHeight: height,
		Bodies:      ecs.NewEntityManager[*components.Body](),
		Texts:       ecs.NewEntityManager[*components.FloatingText](),
		Rings:       ecs.NewEntityManager[*components.RingEffect](),
		Sparks:      ecs.NewEntityManager[*components.SparkEffect](),
		Mode:        components.RunModePlaying,
	}
}

// Radius 返回水果的碰撞半径
func (w *World) Radius(b *components.Body) float64 {
	return w.Tiers.Radius(b.Tier)
}

// IsPlaying 当前是否处于进行中
func (w *World) IsPlaying() bool {
	return w.Mode == components.RunModePlaying
}

// spawnBody 创建一个新水果并追加到实体存储末尾
//
// 非法等级或非有限坐标属于编程错误，直接 panic
func (w *World) spawnBody(tier int, x, y, vx, vy float64) *components.Body {
	if !w.Tiers.Valid(tier) {
		panic(fmt.Sprintf("systems: tier index %d out of range [0, %d)", tier, w.Tiers.Len()))
	}
	for _, v := range [...]float64{x, y, vx, vy} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			panic(fmt.Sprintf("systems: non-finite body state (x=%v y=%v vx=%v vy=%v)", x, y, vx, vy))
		}
	}

	body := &components.Body{
		Tier:     tier,
		X:        x,
		Y:        y,
		VX:       vx,
		VY:       vy,
		AirDrift: (w.Random.Float64() - 0.5) * w.Tuning.AirDriftSpread,
	}
	body.ID = w.Bodies.CreateEntity(body)
	return body
}

// addScore 加分并通知监听者
func (w *World) addScore(points int) {
	w.Score += points
	w.Listener.OnScoreChange(w.Score)
}

func clamp(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, value))
}
