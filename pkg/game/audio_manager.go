package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/matheo-lm/xs-arcade/pkg/systems"
)

// Waveform 振荡器波形
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveTriangle
	WaveSawtooth
)

// Tone 一个合成音
//
// 频率在 Duration 内按指数曲线从 Frequency 滑到 SlideTo
type Tone struct {
	Frequency float64  // 起始频率（Hz）
	SlideTo   float64  // 结束频率（Hz），为 0 时不滑音
	Duration  float64  // 时长（秒）
	Wave      Waveform // 波形
	Volume    float64  // 峰值增益
	When      float64  // 相对音效开始的延迟（秒）
}

const (
	masterGain    = 0.18  // 总增益
	attackSeconds = 0.012 // 起音时长
	minFrequency  = 1.0   // 滑音最低频率（指数曲线不能到 0）
)

// CueTones 返回音效对应的合成音列表
//
// 参数：
//   - cue: 音效类型
//   - tier: 相关水果等级，影响投放与合成的音高
func CueTones(cue systems.SoundCue, tier int) []Tone {
	tier = max(0, tier)
	switch cue {
	case systems.CueDrop:
		base := 210 + float64(tier)*22
		return []Tone{{Frequency: base, SlideTo: base - 42, Duration: 0.08, Wave: WaveTriangle, Volume: 0.038}}
	case systems.CueMerge:
		base := 300 + float64(min(7, tier))*20
		return []Tone{
			{Frequency: base, SlideTo: base * 1.05, Duration: 0.06, Wave: WaveTriangle, Volume: 0.042},
			{Frequency: base * 1.24, SlideTo: base * 1.24 * 1.05, Duration: 0.06, Wave: WaveTriangle, Volume: 0.035, When: 0.05},
		}
	case systems.CueGameOver:
		return []Tone{
			{Frequency: 310, SlideTo: 250, Duration: 0.12, Wave: WaveSawtooth, Volume: 0.04},
			{Frequency: 240, SlideTo: 190, Duration: 0.14, Wave: WaveSawtooth, Volume: 0.038, When: 0.12},
			{Frequency: 180, SlideTo: 140, Duration: 0.2, Wave: WaveTriangle, Volume: 0.04, When: 0.26},
		}
	case systems.CueWin:
		return []Tone{
			{Frequency: 440, SlideTo: 520, Duration: 0.12, Wave: WaveTriangle, Volume: 0.045},
			{Frequency: 560, SlideTo: 660, Duration: 0.12, Wave: WaveTriangle, Volume: 0.043, When: 0.1},
			{Frequency: 680, SlideTo: 820, Duration: 0.14, Wave: WaveSine, Volume: 0.04, When: 0.2},
		}
	default:
		// 排队提示等界面音
		return []Tone{{Frequency: 360, SlideTo: 300, Duration: 0.06, Wave: WaveSquare, Volume: 0.038}}
	}
}

// renderTones 将合成音渲染为 16 位小端立体声 PCM
//
// 返回的字节可以直接交给 audio.Context.NewPlayerFromBytes
func renderTones(tones []Tone, sampleRate int) []byte {
	if len(tones) == 0 || sampleRate <= 0 {
		return nil
	}

	total := 0.0
	for _, tone := range tones {
		total = max(total, tone.When+tone.Duration)
	}
	frames := int(math.Ceil(total * float64(sampleRate)))
	mix := make([]float64, frames)

	for _, tone := range tones {
		start := int(tone.When * float64(sampleRate))
		length := int(tone.Duration * float64(sampleRate))
		phase := 0.0
		for i := 0; i < length && start+i < frames; i++ {
			t := float64(i) / float64(sampleRate)
			freq := slideFrequency(tone, t)
			phase += freq / float64(sampleRate)
			phase -= math.Floor(phase)
			mix[start+i] += oscillate(tone.Wave, phase) * envelope(tone, t) * masterGain
		}
	}

	out := make([]byte, frames*4)
	for i, v := range mix {
		s := int16(math.Round(clampSample(v) * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(s))
	}
	return out
}

// slideFrequency 指数滑音
func slideFrequency(tone Tone, t float64) float64 {
	from := max(minFrequency, tone.Frequency)
	if tone.SlideTo <= 0 || tone.Duration <= 0 {
		return from
	}
	to := max(minFrequency, tone.SlideTo)
	progress := min(1, t/tone.Duration)
	return from * math.Pow(to/from, progress)
}

// envelope 线性起音，指数衰减到接近 0
func envelope(tone Tone, t float64) float64 {
	if t < attackSeconds {
		return tone.Volume * t / attackSeconds
	}
	decay := tone.Duration - attackSeconds
	if decay <= 0 {
		return tone.Volume
	}
	progress := min(1, (t-attackSeconds)/decay)
	return tone.Volume * math.Pow(0.0001/max(tone.Volume, 0.0001), progress)
}

func oscillate(wave Waveform, phase float64) float64 {
	switch wave {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	case WaveSawtooth:
		return 2*phase - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

func clampSample(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// AudioManager 音频管理器
//
// 职责：
//   - 把模拟发出的音效合成为 PCM 并播放
//   - 实现音量与静音控制（从 SettingsManager 读取设置）
//   - 回收播放完毕的播放器
//
// 实现 systems.AudioSink。audio.Context 为 nil 时不发声（无音频设备或测试环境）。
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager
	players         []*audio.Player
	cache           map[cueKey][]byte
	muted           bool
}

type cueKey struct {
	cue  systems.SoundCue
	tier int
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: Ebitengine 音频上下文，可为 nil
//   - sm: SettingsManager 实例（用于读取音量与静音设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
		cache:           make(map[cueKey][]byte),
	}
	if sm != nil {
		am.muted = sm.GetSettings().Muted
	}
	return am
}

// SetContext 设置音频上下文（应用启动后才创建）
func (am *AudioManager) SetContext(ctx *audio.Context) {
	am.context = ctx
}

// PlayCue 播放音效
func (am *AudioManager) PlayCue(cue systems.SoundCue, tier int) {
	am.reap()
	if am.muted || am.context == nil {
		return
	}

	key := cueKey{cue: cue, tier: tier}
	pcm, ok := am.cache[key]
	if !ok {
		pcm = renderTones(CueTones(cue, tier), am.context.SampleRate())
		am.cache[key] = pcm
	}
	if len(pcm) == 0 {
		return
	}

	player := am.context.NewPlayerFromBytes(pcm)
	player.SetVolume(am.getSoundVolume())
	player.Play()
	am.players = append(am.players, player)
}

// reap 关闭播放完毕的播放器
func (am *AudioManager) reap() {
	alive := am.players[:0]
	for _, player := range am.players {
		if player.IsPlaying() {
			alive = append(alive, player)
			continue
		}
		if err := player.Close(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to close player: %v", err)
		}
	}
	clear(am.players[len(alive):])
	am.players = alive
}

// SetMuted 设置静音，并同步到设置中持久化
func (am *AudioManager) SetMuted(muted bool) {
	am.muted = muted
	if muted {
		for _, player := range am.players {
			player.Pause()
		}
	}

	if am.settingsManager == nil {
		return
	}
	am.settingsManager.SetMuted(muted)
	if err := am.settingsManager.Save(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to save mute setting: %v", err)
	}
}

// IsMuted 是否静音
func (am *AudioManager) IsMuted() bool {
	return am.muted
}

// SetSoundVolume 设置音效音量
// 此方法会影响正在播放和后续播放的所有音效
//
// 参数：
//   - volume: 音量值 (0.0 ~ 1.0)
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	for _, player := range am.players {
		player.SetVolume(am.getSoundVolume())
	}
}

// AdjustSoundVolume 按增量调整音效音量并持久化
//
// 参数：
//   - delta: 音量增量，结果限制在 0.0 ~ 1.0
//
// 返回：
//   - float64: 调整后的音量
func (am *AudioManager) AdjustSoundVolume(delta float64) float64 {
	am.SetSoundVolume(am.getSoundVolume() + delta)
	if am.settingsManager != nil {
		if err := am.settingsManager.Save(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to save volume setting: %v", err)
		}
	}
	return am.getSoundVolume()
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}
var _ systems.AudioSink = (*AudioManager)(nil)
