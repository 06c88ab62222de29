package game

import (
	"encoding/binary"
	"log"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/fruitcut/pkg/types"
)

// AudioSampleRate 音频上下文采样率
const AudioSampleRate = 48000

// SoundID 音效标识
type SoundID string

const (
	SoundSlice SoundID = "slice"
	SoundBomb  SoundID = "bomb"
	SoundStart SoundID = "start"
	SoundOver  SoundID = "gameover"
)

// toneSpec 合成音效参数
// 频率在时长内从 StartHz 线性滑到 EndHz，振幅按指数包络衰减
type toneSpec struct {
	StartHz    float64
	EndHz      float64
	DurationMs float64
	Amplitude  float64 // 0.0 ~ 1.0
	Noise      float64 // 白噪声混合比例 0.0 ~ 1.0
	Decay      float64 // 包络衰减速度，越大衰减越快
}

var toneTable = map[SoundID]toneSpec{
	SoundSlice: {StartHz: 1400, EndHz: 500, DurationMs: 110, Amplitude: 0.5, Noise: 0.35, Decay: 5},
	SoundBomb:  {StartHz: 140, EndHz: 35, DurationMs: 480, Amplitude: 0.8, Noise: 0.6, Decay: 3},
	SoundStart: {StartHz: 520, EndHz: 880, DurationMs: 180, Amplitude: 0.4, Decay: 2},
	SoundOver:  {StartHz: 440, EndHz: 110, DurationMs: 600, Amplitude: 0.5, Decay: 1.5},
}

// synthesizeTone 生成 16 位小端立体声 PCM
// 结果可以直接交给 audio.Context.NewPlayerFromBytes
func synthesizeTone(spec toneSpec, sampleRate int) []byte {
	samples := int(float64(sampleRate) * spec.DurationMs / 1000)
	if samples <= 0 {
		return nil
	}

	// 固定种子，保证同一音效每次生成的数据一致
	noise := rand.New(rand.NewSource(int64(spec.StartHz*1000 + spec.EndHz)))

	buf := make([]byte, samples*4)
	phase := 0.0
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples)
		freq := spec.StartHz + (spec.EndHz-spec.StartHz)*t
		phase += 2 * math.Pi * freq / float64(sampleRate)

		v := math.Sin(phase)*(1-spec.Noise) + (noise.Float64()*2-1)*spec.Noise
		// 包络在末尾强制归零，避免爆音
		env := math.Exp(-spec.Decay*t) * (1 - t)
		sample := int16(v * env * spec.Amplitude * math.MaxInt16)

		binary.LittleEndian.PutUint16(buf[i*4:], uint16(sample))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(sample))
	}
	return buf
}

// AudioManager 音效管理器
// 所有音效都是启动时合成的短音，不依赖外部音频文件；
// 音量和开关从 SettingsManager 读取
type AudioManager struct {
	context         *audio.Context // 可为 nil（无音频设备或测试环境）
	settingsManager *SettingsManager
	pcm             map[SoundID][]byte
	soundPlayers    map[SoundID]*audio.Player
}

// NewAudioManager 创建音效管理器并合成全部音效
//
// 参数：
//   - context: ebiten 音频上下文，可为 nil（此时所有播放调用都返回 false）
//   - sm: 设置管理器，可为 nil（使用默认设置）
//
// 返回：
//   - *AudioManager: 音效管理器实例
func NewAudioManager(context *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		context:         context,
		settingsManager: sm,
		pcm:             make(map[SoundID][]byte, len(toneTable)),
		soundPlayers:    make(map[SoundID]*audio.Player),
	}
	for id, spec := range toneTable {
		am.pcm[id] = synthesizeTone(spec, AudioSampleRate)
	}
	log.Printf("[AudioManager] Synthesized %d sounds", len(am.pcm))
	return am
}

// PlaySound 播放音效（单次）
//
// 返回：
//   - bool: 是否实际播放
func (am *AudioManager) PlaySound(id SoundID) bool {
	if !am.soundEnabled() {
		return false
	}

	player := am.getSoundPlayer(id)
	if player == nil {
		return false
	}

	player.SetVolume(am.GetSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", id, err)
	}
	player.Play()
	return true
}

// PlayCut 按切中的类型播放音效
func (am *AudioManager) PlayCut(kind types.FruitKind) bool {
	if kind.IsBomb() {
		return am.PlaySound(SoundBomb)
	}
	return am.PlaySound(SoundSlice)
}

// SetSoundVolume 设置音效音量，并立即应用到已创建的播放器
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	for _, player := range am.soundPlayers {
		player.SetVolume(am.GetSoundVolume())
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return DefaultSettings().SoundVolume
}

func (am *AudioManager) soundEnabled() bool {
	if am.settingsManager == nil {
		return true
	}
	return am.settingsManager.GetSettings().SoundEnabled
}

// getSoundPlayer 获取或创建音效播放器
func (am *AudioManager) getSoundPlayer(id SoundID) *audio.Player {
	if player, ok := am.soundPlayers[id]; ok {
		return player
	}
	if am.context == nil {
		return nil
	}

	data, ok := am.pcm[id]
	if !ok || len(data) == 0 {
		log.Printf("[AudioManager] Warning: Sound not found: %s", id)
		return nil
	}

	player := am.context.NewPlayerFromBytes(data)
	am.soundPlayers[id] = player
	return player
}
