package config

import (
	"fmt"
	"math"

	"github.com/matheo-lm/xs-arcade/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultManifestPath Fruit Stacker 清单文件的默认路径
const DefaultManifestPath = "data/fruit_stacker.yaml"

// AgeBand 年龄段
type AgeBand string

const (
	AgeBand4to5 AgeBand = "4-5"
	AgeBand6to7 AgeBand = "6-7"
	AgeBand8    AgeBand = "8"
)

// DefaultAgeBand 未设置年龄段时使用的难度
const DefaultAgeBand = AgeBand6to7

// RequiredAgeBands 清单必须为这些年龄段提供难度预设
var RequiredAgeBands = []AgeBand{AgeBand4to5, AgeBand6to7, AgeBand8}

// DifficultyPreset 单个年龄段的难度预设
type DifficultyPreset struct {
	DropCooldownMs float64 `yaml:"dropCooldownMs"` // 两次投放之间的冷却时间
	GoalScore      int     `yaml:"goalScore"`      // 目标分数（用于计算星级）
	MaxObjectsHint int     `yaml:"maxObjectsHint"` // 场上水果数量参考值
}

// GameManifest 小游戏清单
type GameManifest struct {
	ID                string                       `yaml:"id"`
	Slug              string                       `yaml:"slug"`
	AgeBands          []AgeBand                    `yaml:"ageBands"`
	Skills            []string                     `yaml:"skills"`
	DifficultyPresets map[AgeBand]DifficultyPreset `yaml:"difficultyPresets"`
}

// Validate 验证清单完整性
func (m *GameManifest) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("id is required")
	}
	if m.Slug == "" {
		return fmt.Errorf("slug is required")
	}
	if len(m.AgeBands) == 0 {
		return fmt.Errorf("ageBands must be a non-empty list")
	}

	for _, band := range RequiredAgeBands {
		preset, ok := m.DifficultyPresets[band]
		if !ok {
			return fmt.Errorf("difficultyPresets.%s is required", band)
		}
		if preset.DropCooldownMs < 0 {
			return fmt.Errorf("difficultyPresets.%s: dropCooldownMs cannot be negative", band)
		}
		if preset.GoalScore <= 0 {
			return fmt.Errorf("difficultyPresets.%s: goalScore must be positive", band)
		}
	}
	return nil
}

// Preset 返回指定年龄段的难度预设
//
// 未知年龄段回退到 DefaultAgeBand
func (m *GameManifest) Preset(band AgeBand) DifficultyPreset {
	if preset, ok := m.DifficultyPresets[band]; ok {
		return preset
	}
	return m.DifficultyPresets[DefaultAgeBand]
}

// CalculateStars 根据得分与目标分计算星级（0~3）
//
//   - 3 星：达到目标的 140%
//   - 2 星：达到目标
//   - 1 星：达到目标的 60%
func CalculateStars(score, goalScore int) int {
	switch {
	case score >= int(math.Round(float64(goalScore)*1.4)):
		return 3
	case score >= goalScore:
		return 2
	case score >= int(math.Round(float64(goalScore)*0.6)):
		return 1
	default:
		return 0
	}
}

// ParseGameManifest 解析并验证 YAML 清单
func ParseGameManifest(data []byte) (*GameManifest, error) {
	var manifest GameManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse game manifest: %w", err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest for %s: %w", manifest.Slug, err)
	}
	return &manifest, nil
}

// LoadGameManifest 从嵌入数据加载清单
func LoadGameManifest(path string) (*GameManifest, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game manifest %s: %w", path, err)
	}
	return ParseGameManifest(data)
}
