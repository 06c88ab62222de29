package scenes

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/fruitcut/pkg/config"
	"github.com/decker502/fruitcut/pkg/game"
	"github.com/decker502/fruitcut/pkg/input"
	"github.com/decker502/fruitcut/pkg/perception"
	"github.com/decker502/fruitcut/pkg/utils"
)

// LandmarkSource 手部关键点来源（*perception.Server 实现了该接口）
type LandmarkSource interface {
	Latest() perception.Frame
	SetCanvasSize(width, height float64)
}

// Env 所有场景共享的运行环境
type Env struct {
	Config   *config.GameConfig
	Session  *game.Session
	Settings *game.SettingsManager
	Audio    *game.AudioManager
	Scenes   *game.SceneManager
	Hands    LandmarkSource // 可为 nil（未启用手势识别）

	// Clock 返回单调递增的毫秒时间戳
	Clock func() float64

	hands         *handTracker
	width, height int
}

// NewEnv 创建场景运行环境
// hands 可为 nil；Clock 默认从创建时刻开始计时
func NewEnv(cfg *config.GameConfig, session *game.Session, settings *game.SettingsManager,
	audio *game.AudioManager, sceneManager *game.SceneManager, hands LandmarkSource) *Env {
	start := time.Now()
	return &Env{
		Config:   cfg,
		Session:  session,
		Settings: settings,
		Audio:    audio,
		Scenes:   sceneManager,
		Hands:    hands,
		Clock: func() float64 {
			return float64(time.Since(start).Microseconds()) / 1000
		},
		hands:  newHandTracker(cfg.Input.PinchThreshold),
		width:  int(cfg.Canvas.Width),
		height: int(cfg.Canvas.Height),
	}
}

// Resize 画布尺寸变化时同步给会话和关键点来源
func (e *Env) Resize(width, height int) {
	if err := e.Session.Resize(float64(width), float64(height)); err != nil {
		log.Printf("[Scenes] Resize %dx%d rejected: %v", width, height, err)
		return
	}
	e.width, e.height = width, height
	if e.Hands != nil {
		e.Hands.SetCanvasSize(float64(width), float64(height))
	}
}

// frameInput 一帧的全部输入
type frameInput struct {
	Pointer input.Pointer
	Clicked bool
	ClickX  float64
	ClickY  float64
	Frame   perception.Frame
	Pinches []input.Point
}

// poll 读取本帧输入，并按设置中的输入模式过滤
func (e *Env) poll() frameInput {
	state := utils.GetInputState(e.width, e.height)

	var frame perception.Frame
	if e.Hands != nil {
		frame = e.Hands.Latest()
	}

	fi := frameInput{
		Pointer: input.Pointer{
			X:       float64(state.X),
			Y:       float64(state.Y),
			Present: state.InBounds,
		},
		Clicked: state.JustPressed,
		ClickX:  float64(state.X),
		ClickY:  float64(state.Y),
		Frame:   frame,
	}
	fi = applyInputMode(fi, e.inputMode())
	fi.Pinches = e.hands.update(fi.Frame)
	return fi
}

// cutPoints 本帧全部切割点
func (e *Env) cutPoints(fi frameInput) []input.Point {
	return input.MergeCutPoints(fi.Pointer, fi.Frame.Landmarks, e.Config.Input.VisibilityThreshold, fi.Pinches...)
}

func (e *Env) inputMode() game.InputMode {
	if e.Settings == nil {
		return game.InputModeAuto
	}
	return e.Settings.GetSettings().InputMode
}

func (e *Env) showSkeleton() bool {
	return e.Settings == nil || e.Settings.GetSettings().ShowSkeleton
}

func (e *Env) showFPS() bool {
	return e.Settings == nil || e.Settings.GetSettings().ShowFPS
}

// applyInputMode 丢弃当前输入模式不接受的输入源
func applyInputMode(fi frameInput, mode game.InputMode) frameInput {
	if !mode.AcceptsPointer() {
		fi.Pointer = input.Pointer{}
		fi.Clicked = false
	}
	if !mode.AcceptsHand() {
		fi.Frame = perception.Frame{}
	}
	return fi
}

// handleHotkeys 处理设置热键，设置有变化时立即保存
//
//	K: 显示/隐藏手部骨架
//	P: 显示/隐藏帧率
//	I: 切换输入模式
//	M: 音效开关
func (e *Env) handleHotkeys() {
	if e.Settings == nil {
		return
	}

	changed := false
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		log.Printf("[Scenes] Skeleton overlay: %v", e.Settings.ToggleSkeleton())
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		log.Printf("[Scenes] FPS display: %v", e.Settings.ToggleFPS())
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		log.Printf("[Scenes] Input mode: %s", e.Settings.CycleInputMode())
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		enabled := !e.Settings.GetSettings().SoundEnabled
		e.Settings.SetSoundEnabled(enabled)
		log.Printf("[Scenes] Sound enabled: %v", enabled)
		changed = true
	}

	if changed {
		if err := e.Settings.Save(); err != nil {
			log.Printf("[Scenes] Warning: Failed to save settings: %v", err)
		}
	}
}

// startGame 开始新的一局并切到游戏场景
func (e *Env) startGame() {
	if err := e.Session.StartGame(e.Clock()); err != nil {
		log.Printf("[Scenes] StartGame failed: %v", err)
		return
	}
	if e.Audio != nil {
		e.Audio.PlaySound(game.SoundStart)
	}
	e.Scenes.Load(game.SceneGame)
}

// handTracker 每只手一个捏合检测器
type handTracker struct {
	threshold float64
	detectors []*input.PinchDetector
}

func newHandTracker(threshold float64) *handTracker {
	return &handTracker{threshold: threshold}
}

// update 返回本帧新触发的捏合点
// 本帧没有出现的手会被释放，重新出现时可以再次触发
func (h *handTracker) update(frame perception.Frame) []input.Point {
	for len(h.detectors) < len(frame.Tips) {
		h.detectors = append(h.detectors, input.NewPinchDetector(h.threshold))
	}

	var pinches []input.Point
	for i, d := range h.detectors {
		if i >= len(frame.Tips) {
			d.Release()
			continue
		}
		if pt, ok := d.Update(frame.Tips[i].Thumb, frame.Tips[i].Index); ok {
			pinches = append(pinches, pt)
		}
	}
	return pinches
}
