package systems

import (
	"math"
)

// PhysicsSystem 处理水果的运动积分与边界约束
//
// 每个 tick 对未合成的水果依次执行：增加年龄、空中漂移、重力、阻尼、
// 位置积分、边界约束，以及警戒线资格判定。
type PhysicsSystem struct {
	world *World
}

// NewPhysicsSystem 创建物理系统
func NewPhysicsSystem(world *World) *PhysicsSystem {
	return &PhysicsSystem{world: world}
}

// Integrate 推进所有水果一个 tick
func (ps *PhysicsSystem) Integrate() {
	w := ps.world
	t := w.Tuning

	for _, body := range w.Bodies.Entities() {
		if body.Merged {
			continue
		}

		body.AgeTicks++

		radius := w.Radius(body)
		floorY := w.BoardHeight - radius - t.PlayfieldPadding

		// 离地超过 3 像素或仍有明显竖直速度时视为在空中
		airborne := body.Y < floorY-3 || math.Abs(body.VY) > t.RestThreshold*1.8
		if airborne {
			body.VX += body.AirDrift
			body.AirDrift *= t.AirDriftDecay
		}

		body.VY += t.Gravity
		body.VX *= t.VelocityDamping
		body.VY *= t.VelocityDamping
		body.X += body.VX
		body.Y += body.VY

		ps.applyBounds(body.Tier, &body.X, &body.Y, &body.VX, &body.VY)

		if !body.EligibleForLoss && body.Y-radius >= t.LossLineY {
			body.EligibleForLoss = true
		}
	}
}

// ApplyBounds 将所有未合成的水果限制在场地内
func (ps *PhysicsSystem) ApplyBounds() {
	for _, body := range ps.world.Bodies.Entities() {
		if body.Merged {
			continue
		}
		ps.applyBounds(body.Tier, &body.X, &body.Y, &body.VX, &body.VY)
	}
}

// applyBounds 墙壁与地面约束
//
// 场地顶部不设边界，水果可以越过警戒线。
func (ps *PhysicsSystem) applyBounds(tier int, x, y, vx, vy *float64) {
	w := ps.world
	t := w.Tuning

	radius := w.Tiers.Radius(tier)
	left := radius + t.PlayfieldPadding
	right := w.BoardWidth - radius - t.PlayfieldPadding
	floor := w.BoardHeight - radius - t.PlayfieldPadding

	if *x < left {
		*x = left
		*vx *= -t.WallBounce
	} else if *x > right {
		*x = right
		*vx *= -t.WallBounce
	}

	if *y > floor {
		*y = floor
		*vy *= -t.FloorBounce
		if math.Abs(*vy) < t.RestThreshold {
			*vy = 0
		}
	}
}
