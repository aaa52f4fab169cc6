package components

import "github.com/matheo-lm/xs-arcade/pkg/ecs"

// Body 场上的一个水果刚体
//
// 坐标系：原点在左上角，+x 向右，+y 向下，单位为像素。
// 速度单位为“像素/tick”。
type Body struct {
	ID   ecs.EntityID // 由实体存储分配
	Tier int          // 合成链中的等级索引

	X, Y   float64 // 圆心位置
	VX, VY float64 // 速度

	AirDrift float64 // 空中时每 tick 叠加到 VX 的水平漂移，逐渐衰减

	AgeTicks        int  // 存活的 tick 数
	EligibleForLoss bool // 顶边曾完整落到警戒线以下后置为 true，不会复位
	Merged          bool // 本 tick 已参与合成，tick 结束时删除
}
