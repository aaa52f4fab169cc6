package components

// FloatingText 合成后飘起的分数文字
type FloatingText struct {
	X, Y float64
	Text string
	Life float64 // 1 → 0，同时作为透明度
}

// RingEffect 向外扩散的圆环
type RingEffect struct {
	X, Y      float64
	Radius    float64
	Growth    float64 // 每 tick 半径增量
	MaxRadius float64
	Life      float64
	Decay     float64 // 每 tick 生命衰减
	LineWidth float64
	Color     string // 十六进制颜色，如 "#ffd56a"
}

// SparkEffect 烟花火花粒子
type SparkEffect struct {
	X, Y    float64
	VX, VY  float64
	Gravity float64
	Drag    float64
	Life    float64
	Decay   float64
	Size    float64
	Color   string
}
