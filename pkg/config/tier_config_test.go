package config

import (
	"os"
	"strings"
	"testing"

	"github.com/matheo-lm/xs-arcade/pkg/embedded"
)

// useRepoData 让 embedded 包读取仓库根目录的真实数据文件
func useRepoData(t *testing.T) {
	t.Helper()
	embedded.Init(os.DirFS("../.."))
	t.Cleanup(func() { embedded.Init(nil) })
}

func TestLoadDefaultTierChain(t *testing.T) {
	useRepoData(t)

	chain, err := LoadTierChain(DefaultTierConfigPath)
	if err != nil {
		t.Fatalf("LoadTierChain() error: %v", err)
	}

	want := []string{"cherry", "lemon", "kiwi", "orange", "apple", "pear", "peach", "melon", "watermelon", "pumpkin"}
	if chain.Len() != len(want) {
		t.Fatalf("expected %d tiers, got %d", len(want), chain.Len())
	}
	for i, id := range want {
		if chain.Tiers[i].ID != id {
			t.Errorf("tier %d: expected %s, got %s", i, id, chain.Tiers[i].ID)
		}
	}

	// 南瓜是终极等级
	if chain.Tier(chain.Terminal()).ID != "pumpkin" {
		t.Errorf("terminal tier should be pumpkin, got %s", chain.Tier(chain.Terminal()).ID)
	}
	if !chain.IsTerminal(9) || chain.IsTerminal(8) {
		t.Error("IsTerminal should only be true for the last tier")
	}

	if chain.Radius(0) != 18 || chain.Points(1) != 20 {
		t.Errorf("unexpected cherry radius %.0f / lemon points %d", chain.Radius(0), chain.Points(1))
	}
}

func TestHighTierRenderedSizeProgression(t *testing.T) {
	useRepoData(t)

	chain, err := LoadTierChain(DefaultTierConfigPath)
	if err != nil {
		t.Fatalf("LoadTierChain() error: %v", err)
	}

	ids := []string{"peach", "melon", "watermelon", "pumpkin"}
	for i := 1; i < len(ids); i++ {
		prev := chain.Tier(chain.IndexOf(ids[i-1]))
		cur := chain.Tier(chain.IndexOf(ids[i]))
		if prev.RenderedDiameter() >= cur.RenderedDiameter() {
			t.Errorf("%s (%.2f) should render smaller than %s (%.2f)",
				prev.ID, prev.RenderedDiameter(), cur.ID, cur.RenderedDiameter())
		}
	}
}

func TestParseTierChainValidation(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		errContains string
	}{
		{
			name:        "single tier",
			yamlContent: "tiers:\n  - {id: a, radius: 10, points: 1}\n",
			errContains: "at least 2 tiers",
		},
		{
			name:        "duplicate id",
			yamlContent: "tiers:\n  - {id: a, radius: 10, points: 1}\n  - {id: a, radius: 12, points: 2}\n",
			errContains: "duplicate id",
		},
		{
			name:        "non increasing radius",
			yamlContent: "tiers:\n  - {id: a, radius: 10, points: 1}\n  - {id: b, radius: 10, points: 2}\n",
			errContains: "must be larger",
		},
		{
			name:        "negative radius",
			yamlContent: "tiers:\n  - {id: a, radius: -1, points: 1}\n  - {id: b, radius: 10, points: 2}\n",
			errContains: "radius must be positive",
		},
		{
			name:        "zero points",
			yamlContent: "tiers:\n  - {id: a, radius: 5, points: 0}\n  - {id: b, radius: 10, points: 2}\n",
			errContains: "points must be positive",
		},
		{
			name:        "shrinking rendered size",
			yamlContent: "tiers:\n  - {id: a, radius: 10, points: 1, drawScale: 2}\n  - {id: b, radius: 11, points: 2}\n",
			errContains: "rendered diameter",
		},
		{
			name:        "broken yaml",
			yamlContent: "tiers: [",
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTierChain([]byte(tt.yamlContent))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("expected error containing %q, got %v", tt.errContains, err)
			}
		})
	}
}

func TestParseTierChainDefaultsScales(t *testing.T) {
	chain, err := ParseTierChain([]byte("tiers:\n  - {id: a, radius: 10, points: 1}\n  - {id: b, radius: 12, points: 2}\n"))
	if err != nil {
		t.Fatalf("ParseTierChain() error: %v", err)
	}
	if chain.Tiers[0].DrawScale != 1 || chain.Tiers[0].SpriteScale != 1 {
		t.Errorf("missing scales should default to 1, got %v/%v", chain.Tiers[0].DrawScale, chain.Tiers[0].SpriteScale)
	}
	if chain.IndexOf("b") != 1 || chain.IndexOf("zzz") != -1 {
		t.Error("IndexOf returned unexpected index")
	}
}

func TestTierPanicsOnInvalidIndex(t *testing.T) {
	chain := &TierChain{Tiers: []Tier{{ID: "a", Radius: 1, Points: 1}}}

	defer func() {
		if recover() == nil {
			t.Error("Tier(5) should panic")
		}
	}()
	chain.Tier(5)
}
