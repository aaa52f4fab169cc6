package systems

import (
	"fmt"
	"math"

	"github.com/matheo-lm/xs-arcade/pkg/components"
)

// CollisionSystem 水果之间的碰撞分离与合成
type CollisionSystem struct {
	world   *World
	effects *EffectSystem
}

// NewCollisionSystem 创建碰撞系统
//
// 参数：
//   - world: 模拟状态
//   - effects: 合成时用于生成飘字与庆祝特效
func NewCollisionSystem(world *World, effects *EffectSystem) *CollisionSystem {
	return &CollisionSystem{
		world:   world,
		effects: effects,
	}
}

// Resolve 执行 CollisionPasses 轮两两碰撞求解
//
// 每轮按存储顺序遍历所有 i<j 的水果对，跳过已合成的水果。
// 本轮合成产生的新水果追加在末尾，会参与本轮剩余的迭代。
func (cs *CollisionSystem) Resolve() {
	bodies := cs.world.Bodies

	for pass := 0; pass < cs.world.Tuning.CollisionPasses; pass++ {
		for i := 0; i < bodies.Len(); i++ {
			for j := i + 1; j < bodies.Len(); j++ {
				_, a := bodies.At(i)
				_, b := bodies.At(j)
				if a.Merged || b.Merged {
					continue
				}
				cs.resolvePair(a, b)
			}
		}
	}
}

func (cs *CollisionSystem) resolvePair(a, b *components.Body) {
	w := cs.world

	dx := b.X - a.X
	dy := b.Y - a.Y
	distance := math.Hypot(dx, dy)
	targetDistance := w.Radius(a) + w.Radius(b)

	if distance >= targetDistance {
		return
	}
	// 完全重合时取一个固定法线，避免除零
	if distance == 0 {
		dx = 0.0001
		dy = 0
		distance = 0.0001
	}

	if cs.tryMerge(a, b, distance, targetDistance) {
		return
	}

	nx := dx / distance
	ny := dy / distance
	push := (targetDistance - distance) * 0.5
	a.X -= nx * push
	a.Y -= ny * push
	b.X += nx * push
	b.Y += ny * push

	velocityAlongNormal := (b.VX-a.VX)*nx + (b.VY-a.VY)*ny
	if velocityAlongNormal > 0 {
		return
	}

	impulse := -(1 + w.Tuning.Restitution) * velocityAlongNormal * 0.5
	a.VX -= impulse * nx
	a.VY -= impulse * ny
	b.VX += impulse * nx
	b.VY += impulse * ny
}

// tryMerge 同等级且足够接近时合成为下一等级
//
// 终极等级永不合成。
func (cs *CollisionSystem) tryMerge(a, b *components.Body, distance, targetDistance float64) bool {
	w := cs.world
	t := w.Tuning

	if a.Tier != b.Tier {
		return false
	}
	if w.Tiers.IsTerminal(a.Tier) {
		return false
	}
	if distance > targetDistance*t.MergeTolerance {
		return false
	}

	a.Merged = true
	b.Merged = true
	w.Bodies.DestroyEntity(a.ID)
	w.Bodies.DestroyEntity(b.ID)

	mergedTier := a.Tier + 1
	x := (a.X + b.X) * 0.5
	y := (a.Y + b.Y) * 0.5
	vx := (a.VX + b.VX) * t.MergeVelocityScale
	vy := math.Min(a.VY, b.VY) - t.MergeUpwardKick
	w.spawnBody(mergedTier, x, y, vx, vy)

	points := w.Tiers.Points(mergedTier)
	w.addScore(points)
	cs.effects.AddText(x, y, fmt.Sprintf("+%d", points))
	w.Audio.PlayCue(CueMerge, mergedTier)

	if w.Tiers.IsTerminal(mergedTier) {
		cs.effects.SpawnTerminalMergeCelebration(x, y)
	}

	return true
}
