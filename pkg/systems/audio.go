package systems

// SoundCue 模拟触发的音效类型
type SoundCue int

const (
	CueDrop     SoundCue = iota // 投放水果
	CueMerge                    // 合成
	CueQueued                   // 冷却中排队投放的提示音
	CueGameOver                 // 越线失败
	CueWin                      // 终极水果接触
)

// String 返回音效名称
func (c SoundCue) String() string {
	switch c {
	case CueDrop:
		return "drop"
	case CueMerge:
		return "merge"
	case CueQueued:
		return "queued"
	case CueGameOver:
		return "game-over"
	case CueWin:
		return "win"
	default:
		return "unknown"
	}
}

// AudioSink 接收模拟发出的音效
//
// tier 为相关水果的等级索引，对不依赖等级的音效没有意义。
// 实现不得阻塞，也不得回调模拟。
type AudioSink interface {
	PlayCue(cue SoundCue, tier int)
	SetMuted(muted bool)
	IsMuted() bool
}

// NopAudioSink 不发声的音效接收器（无界面运行与测试使用）
type NopAudioSink struct {
	muted bool
}

func (s *NopAudioSink) PlayCue(SoundCue, int) {}

func (s *NopAudioSink) SetMuted(muted bool) { s.muted = muted }

func (s *NopAudioSink) IsMuted() bool { return s.muted }
