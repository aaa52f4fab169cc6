package game

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/matheo-lm/xs-arcade/pkg/systems"
)

// TestCueTones 测试每种音效的合成音
func TestCueTones(t *testing.T) {
	tests := []struct {
		name      string
		cue       systems.SoundCue
		tier      int
		wantCount int
		wantFirst float64
	}{
		{"drop tier 0", systems.CueDrop, 0, 1, 210},
		{"drop tier 2", systems.CueDrop, 2, 1, 254},
		{"merge tier 3", systems.CueMerge, 3, 2, 360},
		{"merge pitch capped", systems.CueMerge, 10, 2, 440},
		{"queued", systems.CueQueued, 0, 1, 360},
		{"game over", systems.CueGameOver, 0, 3, 310},
		{"win", systems.CueWin, 0, 3, 440},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tones := CueTones(tt.cue, tt.tier)
			if len(tones) != tt.wantCount {
				t.Fatalf("len = %d, want %d", len(tones), tt.wantCount)
			}
			if tones[0].Frequency != tt.wantFirst {
				t.Errorf("first frequency = %v, want %v", tones[0].Frequency, tt.wantFirst)
			}
		})
	}
}

// TestRenderTonesLength 测试 PCM 长度覆盖最晚结束的合成音
func TestRenderTonesLength(t *testing.T) {
	const sampleRate = 48000
	pcm := renderTones(CueTones(systems.CueGameOver, 0), sampleRate)

	// 最后一个音从 0.26s 开始，持续 0.2s
	wantFrames := int(math.Ceil(0.46 * sampleRate))
	if len(pcm) != wantFrames*4 {
		t.Errorf("len(pcm) = %d, want %d", len(pcm), wantFrames*4)
	}
}

// TestRenderTonesStereoAndBounded 测试左右声道一致且样本有声
func TestRenderTonesStereoAndBounded(t *testing.T) {
	pcm := renderTones(CueTones(systems.CueMerge, 1), 44100)

	peak := 0
	for i := 0; i+3 < len(pcm); i += 4 {
		left := int16(binary.LittleEndian.Uint16(pcm[i:]))
		right := int16(binary.LittleEndian.Uint16(pcm[i+2:]))
		if left != right {
			t.Fatalf("frame %d: left %d != right %d", i/4, left, right)
		}
		peak = max(peak, int(math.Abs(float64(left))))
	}
	if peak == 0 {
		t.Error("rendered cue is silent")
	}
	if peak > math.MaxInt16 {
		t.Errorf("peak %d exceeds int16", peak)
	}
}

// TestRenderTonesEmpty 测试空输入
func TestRenderTonesEmpty(t *testing.T) {
	if pcm := renderTones(nil, 48000); pcm != nil {
		t.Errorf("renderTones(nil) = %d bytes, want nil", len(pcm))
	}
	if pcm := renderTones(CueTones(systems.CueDrop, 0), 0); pcm != nil {
		t.Error("zero sample rate should render nothing")
	}
}

// TestSlideFrequency 测试指数滑音的端点与中点
func TestSlideFrequency(t *testing.T) {
	tone := Tone{Frequency: 400, SlideTo: 100, Duration: 1}

	if got := slideFrequency(tone, 0); got != 400 {
		t.Errorf("start = %v, want 400", got)
	}
	if got := slideFrequency(tone, 0.5); math.Abs(got-200) > 1e-9 {
		t.Errorf("middle = %v, want 200 (geometric mean)", got)
	}
	if got := slideFrequency(tone, 2); math.Abs(got-100) > 1e-9 {
		t.Errorf("past end = %v, want 100", got)
	}
}

// TestAudioManagerWithoutContext 测试没有音频上下文时只记录状态
func TestAudioManagerWithoutContext(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)

	am.PlayCue(systems.CueMerge, 2) // 不应 panic
	am.SetMuted(true)

	if !am.IsMuted() {
		t.Error("IsMuted() = false after SetMuted(true)")
	}
	if !sm.GetSettings().Muted {
		t.Error("mute should be written to settings")
	}

	am.SetSoundVolume(0.3)
	if got := am.getSoundVolume(); got != 0.3 {
		t.Errorf("sound volume = %v, want 0.3", got)
	}
}

// TestAudioManagerAdjustSoundVolume 测试音量调整与边界限制
func TestAudioManagerAdjustSoundVolume(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)

	tests := []struct {
		name  string
		delta float64
		want  float64
	}{
		{name: "down", delta: -0.3, want: 0.5},
		{name: "up", delta: 0.2, want: 0.7},
		{name: "clamped high", delta: 5, want: 1},
		{name: "clamped low", delta: -5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := am.AdjustSoundVolume(tt.delta)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AdjustSoundVolume(%v) = %v, want %v", tt.delta, got, tt.want)
			}
			if stored := sm.GetSettings().SoundVolume; math.Abs(stored-tt.want) > 1e-9 {
				t.Errorf("settings volume = %v, want %v", stored, tt.want)
			}
		})
	}
}

// TestAudioManagerStartsMutedFromSettings 测试静音设置在启动时生效
func TestAudioManagerStartsMutedFromSettings(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	sm.SetMuted(true)

	if am := NewAudioManager(nil, sm); !am.IsMuted() {
		t.Error("audio manager should start muted")
	}
}
