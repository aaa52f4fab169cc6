package config

import (
	"fmt"
	"math"

	"github.com/matheo-lm/xs-arcade/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultPhysicsTuningPath 物理参数配置文件的默认路径
const DefaultPhysicsTuningPath = "data/physics_tuning.yaml"

// PhysicsTuning 合成游戏的物理与规则参数
//
// 速度、加速度均以“每 tick 像素”为单位；时间以毫秒为单位。
// 这些数值来自手感调试，没有物理推导，因此全部可配置。
type PhysicsTuning struct {
	FixedFPS float64 `yaml:"fixedFPS"` // 固定步长频率

	Gravity         float64 `yaml:"gravity"`         // 每 tick 增加的竖直速度
	VelocityDamping float64 `yaml:"velocityDamping"` // 每 tick 速度衰减系数
	AirDriftDecay   float64 `yaml:"airDriftDecay"`   // 空中水平漂移衰减系数
	AirDriftSpread  float64 `yaml:"airDriftSpread"`  // 新水果初始漂移的范围（±spread/2）

	WallBounce    float64 `yaml:"wallBounce"`    // 撞墙反弹系数
	FloorBounce   float64 `yaml:"floorBounce"`   // 落地反弹系数
	RestThreshold float64 `yaml:"restThreshold"` // 低于该竖直速度视为静止

	CollisionPasses     int     `yaml:"collisionPasses"`     // 每 tick 碰撞求解轮数
	Restitution         float64 `yaml:"restitution"`         // 水果间碰撞恢复系数
	MergeTolerance      float64 `yaml:"mergeTolerance"`      // 合成判定距离 = 半径和 * 该系数
	WinContactTolerance float64 `yaml:"winContactTolerance"` // 终极等级接触判定距离系数
	MergeVelocityScale  float64 `yaml:"mergeVelocityScale"`  // 合成产物继承的水平速度比例
	MergeUpwardKick     float64 `yaml:"mergeUpwardKick"`     // 合成产物的向上弹起速度

	LossLineY        float64 `yaml:"lossLineY"`        // 警戒线Y坐标
	PlayfieldPadding float64 `yaml:"playfieldPadding"` // 场地边缘留白
	SpawnExemptTicks int     `yaml:"spawnExemptTicks"` // 新水果免于越线判定的 tick 数
	SpawnPoolSize    int     `yaml:"spawnPoolSize"`    // 随机投放的最低等级数量
	LauncherMargin   float64 `yaml:"launcherMargin"`   // 发射器额外留白
	DropMargin       float64 `yaml:"dropMargin"`       // 投放位置额外留白
	SpawnLift        float64 `yaml:"spawnLift"`        // 投放点在警戒线上方的额外高度
	DropJitter       float64 `yaml:"dropJitter"`       // 投放初速度的水平随机范围

	MaxFrameMs       float64 `yaml:"maxFrameMs"`       // 单帧最多累计的时间
	WinCelebrationMs float64 `yaml:"winCelebrationMs"` // 胜利烟花持续时间
	KeyStep          float64 `yaml:"keyStep"`          // 方向键每次移动发射器的距离
}

// DefaultPhysicsTuning 返回默认物理参数
func DefaultPhysicsTuning() PhysicsTuning {
	return PhysicsTuning{
		FixedFPS: 60,

		Gravity:         0.21,
		VelocityDamping: 0.996,
		AirDriftDecay:   0.995,
		AirDriftSpread:  0.012,

		WallBounce:    0.22,
		FloorBounce:   0.18,
		RestThreshold: 0.045,

		CollisionPasses:     3,
		Restitution:         0.18,
		MergeTolerance:      0.98,
		WinContactTolerance: 0.99,
		MergeVelocityScale:  0.35,
		MergeUpwardKick:     0.65,

		LossLineY:        98,
		PlayfieldPadding: 3,
		SpawnExemptTicks: 18,
		SpawnPoolSize:    3,
		LauncherMargin:   6,
		DropMargin:       3,
		SpawnLift:        7,
		DropJitter:       0.2,

		MaxFrameMs:       100,
		WinCelebrationMs: 3000,
		KeyStep:          26,
	}
}

// TickMs 返回一个 tick 的时长（毫秒）
func (t PhysicsTuning) TickMs() float64 {
	return 1000 / t.FixedFPS
}

// Validate 验证参数范围
func (t PhysicsTuning) Validate() error {
	if t.FixedFPS <= 0 || math.IsInf(t.FixedFPS, 0) || math.IsNaN(t.FixedFPS) {
		return fmt.Errorf("fixedFPS must be a positive number, got %v", t.FixedFPS)
	}
	if t.CollisionPasses < 2 {
		return fmt.Errorf("collisionPasses must be at least 2, got %d", t.CollisionPasses)
	}
	if t.SpawnPoolSize < 1 {
		return fmt.Errorf("spawnPoolSize must be at least 1, got %d", t.SpawnPoolSize)
	}
	if t.SpawnExemptTicks < 0 {
		return fmt.Errorf("spawnExemptTicks cannot be negative, got %d", t.SpawnExemptTicks)
	}

	unit := []struct {
		name  string
		value float64
	}{
		{"velocityDamping", t.VelocityDamping},
		{"airDriftDecay", t.AirDriftDecay},
		{"wallBounce", t.WallBounce},
		{"floorBounce", t.FloorBounce},
		{"restitution", t.Restitution},
		{"mergeTolerance", t.MergeTolerance},
		{"winContactTolerance", t.WinContactTolerance},
	}
	for _, field := range unit {
		if field.value < 0 || field.value > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %v", field.name, field.value)
		}
	}

	if t.Gravity < 0 {
		return fmt.Errorf("gravity cannot be negative, got %v", t.Gravity)
	}
	if t.LossLineY < 0 {
		return fmt.Errorf("lossLineY cannot be negative, got %v", t.LossLineY)
	}
	if t.MaxFrameMs <= 0 {
		return fmt.Errorf("maxFrameMs must be positive, got %v", t.MaxFrameMs)
	}
	return nil
}

// ParsePhysicsTuning 解析 YAML 物理参数
//
// 文件中未出现的字段保留默认值
func ParsePhysicsTuning(data []byte) (PhysicsTuning, error) {
	tuning := DefaultPhysicsTuning()
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return PhysicsTuning{}, fmt.Errorf("failed to parse physics tuning: %w", err)
	}
	if err := tuning.Validate(); err != nil {
		return PhysicsTuning{}, fmt.Errorf("invalid physics tuning: %w", err)
	}
	return tuning, nil
}

// LoadPhysicsTuning 从嵌入数据加载物理参数
//
// 参数：
//   - path: 配置文件路径（如 "data/physics_tuning.yaml"）
//
// 返回：
//   - PhysicsTuning: 合并默认值后的参数
//   - error: 读取、解析或验证失败时返回错误
func LoadPhysicsTuning(path string) (PhysicsTuning, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return PhysicsTuning{}, fmt.Errorf("failed to read physics tuning file %s: %w", path, err)
	}

	tuning, err := ParsePhysicsTuning(data)
	if err != nil {
		return PhysicsTuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return tuning, nil
}
