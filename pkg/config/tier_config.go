package config

import (
	"fmt"

	"github.com/matheo-lm/xs-arcade/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultTierConfigPath 合成链配置文件的默认路径
const DefaultTierConfigPath = "data/fruit_tiers.yaml"

// Tier 合成链中的一个等级（一种水果）
//
// 等级按在列表中的顺序严格排列：两个等级 k 的水果合成为一个等级 k+1 的水果，
// 最后一个等级为终极等级，不再继续合成。
type Tier struct {
	ID          string  `yaml:"id"`          // 等级标识，如 "cherry"
	Name        string  `yaml:"name"`        // 显示名称
	Label       string  `yaml:"label"`       // 两字母缩写（无贴图时绘制在圆内）
	Radius      float64 `yaml:"radius"`      // 碰撞半径（像素）
	Points      int     `yaml:"points"`      // 合成出该等级时获得的分数
	FallbackA   string  `yaml:"fallbackA"`   // 矢量绘制高光色
	FallbackB   string  `yaml:"fallbackB"`   // 矢量绘制主色
	DrawScale   float64 `yaml:"drawScale"`   // 绘制半径相对碰撞半径的缩放
	SpriteScale float64 `yaml:"spriteScale"` // 贴图尺寸相对绘制半径的缩放
}

// RenderedDiameter 返回该等级的最终绘制直径
func (t Tier) RenderedDiameter() float64 {
	return t.Radius * t.DrawScale * t.SpriteScale * 2
}

// TierChain 完整的合成链
type TierChain struct {
	Tiers []Tier `yaml:"tiers"`
}

// Len 返回等级数量
func (c *TierChain) Len() int {
	return len(c.Tiers)
}

// Terminal 返回终极等级的索引（最后一个等级）
func (c *TierChain) Terminal() int {
	return len(c.Tiers) - 1
}

// IsTerminal 判断等级索引是否为终极等级
func (c *TierChain) IsTerminal(index int) bool {
	return index == c.Terminal()
}

// Valid 判断等级索引是否合法
func (c *TierChain) Valid(index int) bool {
	return index >= 0 && index < len(c.Tiers)
}

// Tier 返回指定索引的等级
//
// 非法索引属于调用方的编程错误，直接 panic
func (c *TierChain) Tier(index int) Tier {
	if !c.Valid(index) {
		panic(fmt.Sprintf("config: tier index %d out of range [0, %d)", index, len(c.Tiers)))
	}
	return c.Tiers[index]
}

// Radius 返回指定等级的碰撞半径
func (c *TierChain) Radius(index int) float64 {
	return c.Tier(index).Radius
}

// Points 返回指定等级的分数
func (c *TierChain) Points(index int) int {
	return c.Tier(index).Points
}

// IndexOf 根据等级ID查找索引，未找到返回 -1
func (c *TierChain) IndexOf(id string) int {
	for i, tier := range c.Tiers {
		if tier.ID == id {
			return i
		}
	}
	return -1
}

// Validate 验证合成链
//
// 规则：
//   - 至少两个等级，ID 非空且唯一
//   - 半径为正且严格递增，分数为正
//   - 绘制直径严格递增（高等级在画面上必须更大）
func (c *TierChain) Validate() error {
	if len(c.Tiers) < 2 {
		return fmt.Errorf("tier chain needs at least 2 tiers, got %d", len(c.Tiers))
	}

	seen := make(map[string]bool, len(c.Tiers))
	for i, tier := range c.Tiers {
		if tier.ID == "" {
			return fmt.Errorf("tier %d: id is required", i)
		}
		if seen[tier.ID] {
			return fmt.Errorf("tier %d: duplicate id %q", i, tier.ID)
		}
		seen[tier.ID] = true

		if tier.Radius <= 0 {
			return fmt.Errorf("tier %s: radius must be positive, got %.2f", tier.ID, tier.Radius)
		}
		if tier.Points <= 0 {
			return fmt.Errorf("tier %s: points must be positive, got %d", tier.ID, tier.Points)
		}
		if tier.DrawScale <= 0 || tier.SpriteScale <= 0 {
			return fmt.Errorf("tier %s: drawScale and spriteScale must be positive", tier.ID)
		}

		if i == 0 {
			continue
		}
		prev := c.Tiers[i-1]
		if tier.Radius <= prev.Radius {
			return fmt.Errorf("tier %s: radius %.2f must be larger than %s (%.2f)",
				tier.ID, tier.Radius, prev.ID, prev.Radius)
		}
		if tier.RenderedDiameter() <= prev.RenderedDiameter() {
			return fmt.Errorf("tier %s: rendered diameter %.2f must be larger than %s (%.2f)",
				tier.ID, tier.RenderedDiameter(), prev.ID, prev.RenderedDiameter())
		}
	}

	return nil
}

// ParseTierChain 解析并验证 YAML 格式的合成链
//
// 缺省的 drawScale / spriteScale 视为 1
func ParseTierChain(data []byte) (*TierChain, error) {
	var chain TierChain
	if err := yaml.Unmarshal(data, &chain); err != nil {
		return nil, fmt.Errorf("failed to parse tier chain: %w", err)
	}

	for i := range chain.Tiers {
		if chain.Tiers[i].DrawScale == 0 {
			chain.Tiers[i].DrawScale = 1
		}
		if chain.Tiers[i].SpriteScale == 0 {
			chain.Tiers[i].SpriteScale = 1
		}
	}

	if err := chain.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tier chain: %w", err)
	}
	return &chain, nil
}

// LoadTierChain 从嵌入数据加载合成链
//
// 参数：
//   - path: 配置文件路径（如 "data/fruit_tiers.yaml"）
//
// 返回：
//   - *TierChain: 验证通过的合成链
//   - error: 读取、解析或验证失败时返回错误
func LoadTierChain(path string) (*TierChain, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tier chain file %s: %w", path, err)
	}

	chain, err := ParseTierChain(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return chain, nil
}
