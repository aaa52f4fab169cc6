package systems

import (
	"math"
	"os"
	"testing"

	"github.com/matheo-lm/xs-arcade/pkg/components"
	"github.com/matheo-lm/xs-arcade/pkg/config"
)

// fixedRandom 总是返回同一个值；0.5 时水果没有初始漂移与投放抖动
type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

// recordingAudio 记录所有音效
type recordingAudio struct {
	cues  []SoundCue
	tiers []int
	muted bool
}

func (a *recordingAudio) PlayCue(cue SoundCue, tier int) {
	a.cues = append(a.cues, cue)
	a.tiers = append(a.tiers, tier)
}

func (a *recordingAudio) SetMuted(muted bool) { a.muted = muted }

func (a *recordingAudio) IsMuted() bool { return a.muted }

func (a *recordingAudio) count(cue SoundCue) int {
	n := 0
	for _, c := range a.cues {
		if c == cue {
			n++
		}
	}
	return n
}

// recordingListener 记录所有事件
type recordingListener struct {
	scores   []int
	gameOver []components.RunMode
	final    []int
}

func (l *recordingListener) OnScoreChange(score int) {
	l.scores = append(l.scores, score)
}

func (l *recordingListener) OnGameOver(finalScore int, outcome components.RunMode) {
	l.final = append(l.final, finalScore)
	l.gameOver = append(l.gameOver, outcome)
}

// loadTestTiers 读取仓库中的合成链配置
func loadTestTiers(t *testing.T) *config.TierChain {
	t.Helper()
	data, err := os.ReadFile("../../data/fruit_tiers.yaml")
	if err != nil {
		t.Fatalf("failed to read tier chain: %v", err)
	}
	tiers, err := config.ParseTierChain(data)
	if err != nil {
		t.Fatalf("failed to parse tier chain: %v", err)
	}
	return tiers
}

// testHarness 测试用的模拟及其协作者
type testHarness struct {
	sim      *Simulation
	audio    *recordingAudio
	listener *recordingListener
}

// newTestSimulation 创建 480x720 的模拟，随机数固定为 0.5，冷却 520ms
func newTestSimulation(t *testing.T, modify func(*Options)) *testHarness {
	t.Helper()
	h := &testHarness{
		audio:    &recordingAudio{},
		listener: &recordingListener{},
	}
	opts := Options{
		Tiers:          loadTestTiers(t),
		Tuning:         config.DefaultPhysicsTuning(),
		DropCooldownMs: 520,
		BoardWidth:     480,
		BoardHeight:    720,
		Random:         fixedRandom(0.5),
		Audio:          h.audio,
		Listener:       h.listener,
	}
	if modify != nil {
		modify(&opts)
	}

	sim, err := NewSimulation(opts)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	h.sim = sim
	return h
}

func (h *testHarness) body(t *testing.T, i int) *components.Body {
	t.Helper()
	bodies := h.sim.Bodies()
	if i >= len(bodies) {
		t.Fatalf("expected at least %d bodies, got %d", i+1, len(bodies))
	}
	return bodies[i]
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
