package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// InputMode 切割输入来源
type InputMode string

const (
	// InputModeAuto 鼠标/触摸与手势同时生效
	InputModeAuto InputMode = "auto"
	// InputModePointer 只使用鼠标/触摸
	InputModePointer InputMode = "pointer"
	// InputModeHand 只使用手部关键点
	InputModeHand InputMode = "hand"
)

// Valid 是否为已知的输入模式
func (m InputMode) Valid() bool {
	switch m {
	case InputModeAuto, InputModePointer, InputModeHand:
		return true
	}
	return false
}

// AcceptsPointer 是否接受鼠标/触摸切割点
func (m InputMode) AcceptsPointer() bool { return m != InputModeHand }

// AcceptsHand 是否接受手部关键点切割点
func (m InputMode) AcceptsHand() bool { return m != InputModePointer }

// GameSettings 玩家偏好设置
// 只保存偏好，不保存任何对局状态
type GameSettings struct {
	// 音频
	SoundEnabled bool    `yaml:"soundEnabled"`
	SoundVolume  float64 `yaml:"soundVolume"` // 0.0 ~ 1.0

	// 显示
	Fullscreen   bool `yaml:"fullscreen"`
	ShowSkeleton bool `yaml:"showSkeleton"` // 绘制手部骨架
	ShowFPS      bool `yaml:"showFPS"`

	// 输入
	InputMode InputMode `yaml:"inputMode"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundEnabled: true,
		SoundVolume:  0.8,
		Fullscreen:   false,
		ShowSkeleton: true,
		ShowFPS:      true,
		InputMode:    InputModeAuto,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *GameSettings
}

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建设置管理器，并尝试加载已保存的设置
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 目前总是 nil，加载失败只记录日志并回退到默认设置
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// gdataManager 为 nil 或没有保存过设置时使用默认设置。
// 缺失的字段保留默认值，未知的输入模式回退为 auto。
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	loaded.SoundVolume = clampVolume(loaded.SoundVolume)
	if !loaded.InputMode.Valid() {
		log.Printf("[SettingsManager] Unknown input mode %q, falling back to %q", loaded.InputMode, InputModeAuto)
		loaded.InputMode = InputModeAuto
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置（返回内部实例）
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetSoundEnabled 设置音效开关
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetSoundVolume 设置音效音量，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// ToggleSkeleton 切换手部骨架显示，返回新的值
func (sm *SettingsManager) ToggleSkeleton() bool {
	sm.settings.ShowSkeleton = !sm.settings.ShowSkeleton
	return sm.settings.ShowSkeleton
}

// ToggleFPS 切换帧率显示，返回新的值
func (sm *SettingsManager) ToggleFPS() bool {
	sm.settings.ShowFPS = !sm.settings.ShowFPS
	return sm.settings.ShowFPS
}

// SetInputMode 设置输入模式
//
// 参数：
//   - mode: auto / pointer / hand
//
// 返回：
//   - error: 未知模式时返回错误，设置不变
func (sm *SettingsManager) SetInputMode(mode InputMode) error {
	if !mode.Valid() {
		return fmt.Errorf("unknown input mode %q", mode)
	}
	sm.settings.InputMode = mode
	return nil
}

// CycleInputMode 按 auto → pointer → hand → auto 的顺序切换输入模式
func (sm *SettingsManager) CycleInputMode() InputMode {
	switch sm.settings.InputMode {
	case InputModeAuto:
		sm.settings.InputMode = InputModePointer
	case InputModePointer:
		sm.settings.InputMode = InputModeHand
	default:
		sm.settings.InputMode = InputModeAuto
	}
	return sm.settings.InputMode
}

func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
