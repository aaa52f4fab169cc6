package systems

import "math"

// OutcomeSystem 胜负判定
type OutcomeSystem struct {
	world *World
}

// NewOutcomeSystem 创建胜负判定系统
func NewOutcomeSystem(world *World) *OutcomeSystem {
	return &OutcomeSystem{world: world}
}

// HasOverflow 是否有水果越过警戒线
//
// 只有已获得资格（顶边曾落到警戒线以下）且存活满 SpawnExemptTicks 的水果参与判定。
func (oc *OutcomeSystem) HasOverflow() bool {
	w := oc.world
	for _, body := range w.Bodies.Entities() {
		if body.Merged || !body.EligibleForLoss {
			continue
		}
		if body.AgeTicks < w.Tuning.SpawnExemptTicks {
			continue
		}
		if body.Y-w.Radius(body) < w.Tuning.LossLineY {
			return true
		}
	}
	return false
}

// HasTerminalTouch 是否有两个终极等级水果相互接触
func (oc *OutcomeSystem) HasTerminalTouch() bool {
	w := oc.world
	terminal := w.Tiers.Terminal()
	bodies := w.Bodies.Entities()

	for i, a := range bodies {
		if a.Merged || a.Tier != terminal {
			continue
		}
		for _, b := range bodies[i+1:] {
			if b.Merged || b.Tier != terminal {
				continue
			}
			targetDistance := w.Radius(a) + w.Radius(b)
			distance := math.Hypot(b.X-a.X, b.Y-a.Y)
			if distance <= targetDistance*w.Tuning.WinContactTolerance {
				return true
			}
		}
	}
	return false
}
