package systems

import (
	"math/rand"
	"time"
)

// RandomSource 模拟使用的随机数来源
//
// 返回 [0, 1) 区间的浮点数。注入固定种子即可复现整局游戏。
type RandomSource interface {
	Float64() float64
}

// NewSeededRandom 创建固定种子的随机数来源
func NewSeededRandom(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// NewTimeSeededRandom 创建以当前时间为种子的随机数来源
func NewTimeSeededRandom() RandomSource {
	return NewSeededRandom(time.Now().UnixNano())
}
