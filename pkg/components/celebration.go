package components

// Celebration 胜利后的烟花庆祝状态
type Celebration struct {
	Active          bool
	RemainingMs     float64 // 剩余持续时间
	BurstCooldownMs float64 // 距离下一次烟花爆发的时间
}
