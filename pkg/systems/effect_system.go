package systems

import (
	"math"

	"github.com/matheo-lm/xs-arcade/pkg/components"
	"github.com/matheo-lm/xs-arcade/pkg/ecs"
)

// 特效调色板
var (
	terminalMergePalette = []string{"#ffd56a", "#ffa54b", "#fff0b1", "#ff7b40"}
	fireworkPalette      = []string{"#ffe57d", "#80e8ff", "#ff9ed1", "#9dffba", "#ffd28a"}
)

const (
	textRiseSpeed = 0.6  // 飘字每 tick 上升的像素
	textDecay     = 0.02 // 飘字每 tick 生命衰减
	ringStartSize = 6.0
	ringLineWidth = 3.0
	sparkDrag     = 0.985
	sparkLift     = 0.8 // 火花初速度额外向上的分量
)

// EffectSystem 管理飘字、圆环、火花以及胜利烟花
//
// 特效只影响画面，不参与物理。
type EffectSystem struct {
	world *World
}

// NewEffectSystem 创建特效系统
func NewEffectSystem(world *World) *EffectSystem {
	return &EffectSystem{world: world}
}

// AddText 添加飘字
func (es *EffectSystem) AddText(x, y float64, text string) {
	es.world.Texts.CreateEntity(&components.FloatingText{X: x, Y: y, Text: text, Life: 1})
}

// AddRing 添加扩散圆环
func (es *EffectSystem) AddRing(x, y float64, color string, maxRadius, growth, decay float64) {
	es.world.Rings.CreateEntity(&components.RingEffect{
		X:         x,
		Y:         y,
		Radius:    ringStartSize,
		Growth:    growth,
		MaxRadius: maxRadius,
		Life:      1,
		Decay:     decay,
		LineWidth: ringLineWidth,
		Color:     color,
	})
}

// AddSparkBurst 以 (x, y) 为中心向四周均匀喷出 count 个火花
//
// 参数：
//   - palette: 每个火花随机选取其中一种颜色
//   - speedBase: 基础速度，实际速度在 0.6~1.4 倍之间
//   - gravity, decay: 火花的重力与生命衰减
func (es *EffectSystem) AddSparkBurst(x, y float64, count int, palette []string, speedBase, gravity, decay float64) {
	rng := es.world.Random
	for i := 0; i < count; i++ {
		angle := math.Pi*2*float64(i)/float64(count) + rng.Float64()*0.6
		speed := speedBase * (0.6 + rng.Float64()*0.8)
		es.world.Sparks.CreateEntity(&components.SparkEffect{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle)*speed - sparkLift,
			Gravity: gravity,
			Drag:    sparkDrag,
			Life:    1,
			Decay:   decay,
			Size:    2 + rng.Float64()*3,
			Color:   pick(rng, palette),
		})
	}
}

// SpawnTerminalMergeCelebration 合成出终极水果时的特效
func (es *EffectSystem) SpawnTerminalMergeCelebration(x, y float64) {
	es.AddRing(x, y, "#ffd56a", 76, 2.7, 0.03)
	es.AddRing(x, y, "#ff9f4e", 104, 3.2, 0.024)
	es.AddSparkBurst(x, y, 26, terminalMergePalette, 3.8, 0.09, 0.028)
	es.AddText(x, y-12, "+PUMPKIN!")
}

// SpawnFireworkBurst 一次烟花爆发
func (es *EffectSystem) SpawnFireworkBurst(x, y float64) {
	es.AddRing(x, y, pick(es.world.Random, fireworkPalette), 92, 3.1, 0.024)
	es.AddSparkBurst(x, y, 34, fireworkPalette, 4.2, 0.065, 0.02)
}

// StartWinCelebration 开始胜利烟花并立即在场地中央爆发一次
func (es *EffectSystem) StartWinCelebration() {
	w := es.world
	w.Celebration = components.Celebration{
		Active:          true,
		RemainingMs:     w.Tuning.WinCelebrationMs,
		BurstCooldownMs: 0,
	}
	es.SpawnFireworkBurst(w.BoardWidth*0.5, w.Tuning.LossLineY+78)
}

// Clear 清除所有特效并结束庆祝
func (es *EffectSystem) Clear() {
	es.world.Texts.Clear()
	es.world.Rings.Clear()
	es.world.Sparks.Clear()
	es.world.Celebration = components.Celebration{}
}

// Update 推进所有特效一个 tick，移除生命耗尽的特效
func (es *EffectSystem) Update() {
	w := es.world

	advanceEffects(w.Texts, func(text *components.FloatingText) bool {
		text.Y -= textRiseSpeed
		text.Life -= textDecay
		return text.Life > 0
	})

	advanceEffects(w.Rings, func(ring *components.RingEffect) bool {
		ring.Radius = math.Min(ring.MaxRadius, ring.Radius+ring.Growth)
		ring.Life -= ring.Decay
		return ring.Life > 0
	})

	advanceEffects(w.Sparks, func(spark *components.SparkEffect) bool {
		spark.VX *= spark.Drag
		spark.VY = spark.VY*spark.Drag + spark.Gravity
		spark.X += spark.VX
		spark.Y += spark.VY
		spark.Life -= spark.Decay
		return spark.Life > 0
	})

	es.updateCelebration()
}

func (es *EffectSystem) updateCelebration() {
	w := es.world
	c := &w.Celebration
	if !c.Active {
		return
	}

	tickMs := w.Tuning.TickMs()
	c.RemainingMs -= tickMs
	c.BurstCooldownMs -= tickMs

	if c.RemainingMs > 0 && c.BurstCooldownMs <= 0 {
		line := w.Tuning.LossLineY
		burstX := clamp(26+w.Random.Float64()*(w.BoardWidth-52), 26, w.BoardWidth-26)
		burstY := clamp(line+36+w.Random.Float64()*170, line+32, w.BoardHeight*0.7)
		es.SpawnFireworkBurst(burstX, burstY)
		c.BurstCooldownMs = 240 + w.Random.Float64()*120
	}

	if c.RemainingMs <= 0 {
		c.Active = false
	}
}

// advanceEffects 对每个特效执行 step，step 返回 false 的特效被移除
func advanceEffects[T any](store *ecs.EntityManager[T], step func(T) bool) {
	for i := 0; i < store.Len(); i++ {
		id, item := store.At(i)
		if !step(item) {
			store.DestroyEntity(id)
		}
	}
	store.RemoveMarkedEntities()
}

func pick(rng RandomSource, palette []string) string {
	i := int(rng.Float64() * float64(len(palette)))
	if i >= len(palette) {
		i = len(palette) - 1
	}
	return palette[i]
}
