package systems

import "github.com/matheo-lm/xs-arcade/pkg/components"

// CoordinateSystemNote 快照中对坐标系的说明
const CoordinateSystemNote = "origin=(0,0) top-left; +x right; +y down; units are board pixels"

// Snapshot 模拟状态的只读快照（调试与自动化测试使用）
type Snapshot struct {
	CoordinateSystem string               `yaml:"coordinateSystem" json:"coordinateSystem"`
	Mode             components.RunMode   `yaml:"mode" json:"mode"`
	EndReason        components.EndReason `yaml:"endReason,omitempty" json:"endReason,omitempty"`
	Score            int                  `yaml:"score" json:"score"`
	Muted            bool                 `yaml:"muted" json:"muted"`
	NextTier         string               `yaml:"nextTier" json:"nextTier"`
	Tick             uint64               `yaml:"tick" json:"tick"`
	Drops            int                  `yaml:"drops" json:"drops"`
	Launcher         LauncherSnapshot     `yaml:"launcher" json:"launcher"`
	Overflow         OverflowSnapshot     `yaml:"overflow" json:"overflow"`
	Bodies           []BodySnapshot       `yaml:"bodies" json:"bodies"`
}

// LauncherSnapshot 发射器状态
type LauncherSnapshot struct {
	X                   float64 `yaml:"x" json:"x"`
	Y                   float64 `yaml:"y" json:"y"`
	CooldownMsRemaining float64 `yaml:"cooldownMsRemaining" json:"cooldownMsRemaining"`
	CooldownRatio       float64 `yaml:"cooldownRatio" json:"cooldownRatio"`
	QueuedDrop          bool    `yaml:"queuedDrop" json:"queuedDrop"`
}

// OverflowSnapshot 越线判定参数
type OverflowSnapshot struct {
	LineY            float64 `yaml:"lineY" json:"lineY"`
	SpawnExemptTicks int     `yaml:"spawnExemptTicks" json:"spawnExemptTicks"`
}

// BodySnapshot 单个水果的状态
type BodySnapshot struct {
	ID              uint64  `yaml:"id" json:"id"`
	Tier            string  `yaml:"tier" json:"tier"`
	TierIndex       int     `yaml:"tierIndex" json:"tierIndex"`
	X               float64 `yaml:"x" json:"x"`
	Y               float64 `yaml:"y" json:"y"`
	VX              float64 `yaml:"vx" json:"vx"`
	VY              float64 `yaml:"vy" json:"vy"`
	Drift           float64 `yaml:"drift" json:"drift"`
	AgeTicks        int     `yaml:"ageTicks" json:"ageTicks"`
	EligibleForLoss bool    `yaml:"eligibleForLoss" json:"eligibleForLoss"`
	Radius          float64 `yaml:"radius" json:"radius"`
}

// Snapshot 生成当前状态的快照
func (s *Simulation) Snapshot() Snapshot {
	w := s.world
	ds := s.drop

	bodies := make([]BodySnapshot, 0, w.Bodies.Len())
	for _, b := range w.Bodies.Entities() {
		tier := w.Tiers.Tier(b.Tier)
		bodies = append(bodies, BodySnapshot{
			ID:              uint64(b.ID),
			Tier:            tier.ID,
			TierIndex:       b.Tier,
			X:               b.X,
			Y:               b.Y,
			VX:              b.VX,
			VY:              b.VY,
			Drift:           b.AirDrift,
			AgeTicks:        b.AgeTicks,
			EligibleForLoss: b.EligibleForLoss,
			Radius:          tier.Radius,
		})
	}

	return Snapshot{
		CoordinateSystem: CoordinateSystemNote,
		Mode:             w.Mode,
		EndReason:        w.EndReason,
		Score:            w.Score,
		Muted:            w.Audio.IsMuted(),
		NextTier:         w.Tiers.Tier(ds.NextTier()).ID,
		Tick:             w.Tick,
		Drops:            ds.DropCount(),
		Launcher: LauncherSnapshot{
			X:                   ds.TargetX(),
			Y:                   ds.LauncherY(),
			CooldownMsRemaining: ds.CooldownRemaining(),
			CooldownRatio:       ds.CooldownRatio(),
			QueuedDrop:          ds.Queued(),
		},
		Overflow: OverflowSnapshot{
			LineY:            w.Tuning.LossLineY,
			SpawnExemptTicks: w.Tuning.SpawnExemptTicks,
		},
		Bodies: bodies,
	}
}
