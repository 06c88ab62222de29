package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/fruitcut/pkg/types"
)

// ErrInvalidConfig 配置校验失败（画布尺寸、难度参数等不合法）
var ErrInvalidConfig = errors.New("invalid game config")

// GameConfig 游戏全部可调参数
//
// 配置文件位置: data/game.yaml（嵌入二进制，可通过 --config 覆盖）
// 时间单位统一为毫秒，速度和加速度单位为 像素/tick。
type GameConfig struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Session    SessionConfig    `yaml:"session"`
	Input      InputConfig      `yaml:"input"`
	Perception PerceptionConfig `yaml:"perception"`
}

// CanvasConfig 逻辑画布尺寸（像素）
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SpawnConfig 水果工厂的发射参数
type SpawnConfig struct {
	// BottomMargin 出生点位于画布底边以下的距离
	BottomMargin float64 `yaml:"bottomMargin"`
	// HorizontalMarginRatio 左右两侧不出生的宽度比例（0.15 = 中间 70%）
	HorizontalMarginRatio float64 `yaml:"horizontalMarginRatio"`
	// LaunchSpeedMin / LaunchSpeedMax 竖直发射速度大小范围（向上）
	LaunchSpeedMin float64 `yaml:"launchSpeedMin"`
	LaunchSpeedMax float64 `yaml:"launchSpeedMax"`
	// HorizontalSpeed 水平速度范围 [-HorizontalSpeed, HorizontalSpeed]
	HorizontalSpeed float64 `yaml:"horizontalSpeed"`
	// Kinds 类型名 -> 重力/尺寸/分值
	Kinds map[string]KindConfig `yaml:"kinds"`
}

// KindConfig 单个水果类型的参数
type KindConfig struct {
	Gravity   float64 `yaml:"gravity"`
	MinRadius float64 `yaml:"minRadius"`
	MaxRadius float64 `yaml:"maxRadius"`
	Points    int     `yaml:"points"`
}

// DifficultyConfig 难度曲线参数
// 所有值在 RampDurationMs 内从基础值线性过渡到上限
type DifficultyConfig struct {
	BaseSpawnIntervalMs float64 `yaml:"baseSpawnIntervalMs"`
	MinSpawnIntervalMs  float64 `yaml:"minSpawnIntervalMs"`
	BaseBombChance      float64 `yaml:"baseBombChance"`
	MaxBombChance       float64 `yaml:"maxBombChance"`
	MaxSpeedMultiplier  float64 `yaml:"maxSpeedMultiplier"`
	BaseFruitsPerSpawn  int     `yaml:"baseFruitsPerSpawn"`
	MaxFruitsPerSpawn   int     `yaml:"maxFruitsPerSpawn"`
	RampDurationMs      float64 `yaml:"rampDurationMs"`
}

// PhysicsConfig 移动和回收参数
type PhysicsConfig struct {
	// DefaultGravity 没有 GravityComponent 的实体使用的重力
	DefaultGravity float64 `yaml:"defaultGravity"`
	// OffscreenMargin 实体 Y 超过 画布高度+该值 时被回收
	OffscreenMargin float64 `yaml:"offscreenMargin"`
}

// SessionConfig 对局参数
type SessionConfig struct {
	InitialLives int `yaml:"initialLives"`
	// DefaultPoints 未在 Kinds 中配置分值的水果得分
	DefaultPoints int `yaml:"defaultPoints"`
}

// InputConfig 切割点输入参数
type InputConfig struct {
	// VisibilityThreshold 关键点可见度大于该值才算有效切割点
	VisibilityThreshold float64 `yaml:"visibilityThreshold"`
	// PinchThreshold 拇指尖与食指尖距离小于该值（像素）视为捏合
	PinchThreshold float64 `yaml:"pinchThreshold"`
}

// PerceptionConfig 外部手部识别服务的接入参数
type PerceptionConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listenAddr"`
	Path       string `yaml:"path"`
	// MirrorX 是否水平翻转（摄像头画面默认镜像）
	MirrorX bool `yaml:"mirrorX"`
}

// DefaultGameConfig 返回内置默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Canvas: CanvasConfig{Width: 1280, Height: 920},
		Spawn: SpawnConfig{
			BottomMargin:          60,
			HorizontalMarginRatio: 0.15,
			LaunchSpeedMin:        14,
			LaunchSpeedMax:        22,
			HorizontalSpeed:       3,
			Kinds: map[string]KindConfig{
				types.FruitApple.String():      {Gravity: 0.45, MinRadius: 40, MaxRadius: 45, Points: 5},
				types.FruitOrange.String():     {Gravity: 0.4, MinRadius: 35, MaxRadius: 42, Points: 3},
				types.FruitBanana.String():     {Gravity: 0.35, MinRadius: 30, MaxRadius: 36, Points: 2},
				types.FruitWatermelon.String(): {Gravity: 0.5, MinRadius: 55, MaxRadius: 60, Points: 10},
				types.FruitBomb.String():       {Gravity: 0.4, MinRadius: 40, MaxRadius: 45, Points: 0},
			},
		},
		Difficulty: DifficultyConfig{
			BaseSpawnIntervalMs: 1000,
			MinSpawnIntervalMs:  350,
			BaseBombChance:      0.05,
			MaxBombChance:       0.3,
			MaxSpeedMultiplier:  1.6,
			BaseFruitsPerSpawn:  1,
			MaxFruitsPerSpawn:   3,
			RampDurationMs:      120_000,
		},
		Physics: PhysicsConfig{
			DefaultGravity:  0.2,
			OffscreenMargin: 100,
		},
		Session: SessionConfig{
			InitialLives:  3,
			DefaultPoints: 1,
		},
		Input: InputConfig{
			VisibilityThreshold: 0.5,
			PinchThreshold:      30,
		},
		Perception: PerceptionConfig{
			Enabled:    false,
			ListenAddr: "127.0.0.1:8765",
			Path:       "/landmarks",
			MirrorX:    true,
		},
	}
}

// LoadGameConfig 从 YAML 文件加载游戏配置
//
// 文件中未出现的字段保留默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/game.yaml"）
//
// 返回:
//   - *GameConfig: 校验通过的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return LoadGameConfigFromBytes(data)
}

// LoadGameConfigFromBytes 从 YAML 内容加载游戏配置（用于嵌入资源）
func LoadGameConfigFromBytes(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Kind 返回指定类型的参数
// 未配置的类型返回兜底值（半径 30-35，重力 0.5）
func (c *GameConfig) Kind(kind types.FruitKind) KindConfig {
	if kc, ok := c.Spawn.Kinds[kind.String()]; ok {
		return kc
	}
	return KindConfig{Gravity: 0.5, MinRadius: 30, MaxRadius: 35, Points: c.Session.DefaultPoints}
}

// Points 返回切中指定类型水果的得分
// 表中配置的分值优先，未配置的类型使用 Session.DefaultPoints
func (c *GameConfig) Points(kind types.FruitKind) int {
	if kc, ok := c.Spawn.Kinds[kind.String()]; ok {
		return kc.Points
	}
	return c.Session.DefaultPoints
}

// Validate 验证配置有效性
//
// 画布尺寸必须为正；难度参数必须单调（基础值不越过上限）；
// 概率在 [0,1] 内；每种类型的半径范围合法。
//
// 返回:
//   - error: 包装 ErrInvalidConfig 的错误，成功返回 nil
func (c *GameConfig) Validate() error {
	if err := ValidateCanvas(c.Canvas.Width, c.Canvas.Height); err != nil {
		return err
	}

	d := c.Difficulty
	if d.MinSpawnIntervalMs <= 0 {
		return invalid("difficulty.minSpawnIntervalMs must be > 0, got %.1f", d.MinSpawnIntervalMs)
	}
	if d.BaseSpawnIntervalMs < d.MinSpawnIntervalMs {
		return invalid("difficulty.baseSpawnIntervalMs(%.1f) < minSpawnIntervalMs(%.1f)",
			d.BaseSpawnIntervalMs, d.MinSpawnIntervalMs)
	}
	if d.BaseBombChance < 0 || d.MaxBombChance > 1 || d.BaseBombChance > d.MaxBombChance {
		return invalid("bomb chance range invalid: base=%.2f max=%.2f", d.BaseBombChance, d.MaxBombChance)
	}
	if d.MaxSpeedMultiplier < 1 {
		return invalid("difficulty.maxSpeedMultiplier must be >= 1, got %.2f", d.MaxSpeedMultiplier)
	}
	if d.BaseFruitsPerSpawn < 1 || d.MaxFruitsPerSpawn < d.BaseFruitsPerSpawn {
		return invalid("fruits per spawn range invalid: base=%d max=%d", d.BaseFruitsPerSpawn, d.MaxFruitsPerSpawn)
	}
	if d.RampDurationMs <= 0 {
		return invalid("difficulty.rampDurationMs must be > 0, got %.1f", d.RampDurationMs)
	}

	s := c.Spawn
	if s.HorizontalMarginRatio < 0 || s.HorizontalMarginRatio >= 0.5 {
		return invalid("spawn.horizontalMarginRatio must be in [0, 0.5), got %.2f", s.HorizontalMarginRatio)
	}
	if s.LaunchSpeedMin <= 0 || s.LaunchSpeedMin > s.LaunchSpeedMax {
		return invalid("launch speed range invalid: min=%.1f max=%.1f", s.LaunchSpeedMin, s.LaunchSpeedMax)
	}
	if s.BottomMargin < 0 {
		return invalid("spawn.bottomMargin must be >= 0, got %.1f", s.BottomMargin)
	}
	if s.HorizontalSpeed < 0 {
		return invalid("spawn.horizontalSpeed must be >= 0, got %.1f", s.HorizontalSpeed)
	}
	for name, kc := range s.Kinds {
		kind, err := types.ParseFruitKind(name)
		if err != nil {
			return fmt.Errorf("%w: spawn.kinds: %v", ErrInvalidConfig, err)
		}
		if kc.MinRadius <= 0 || kc.MinRadius > kc.MaxRadius {
			return invalid("spawn.kinds.%s radius range invalid: min=%.1f max=%.1f", name, kc.MinRadius, kc.MaxRadius)
		}
		if kc.Gravity < 0 {
			return invalid("spawn.kinds.%s gravity must be >= 0, got %.2f", name, kc.Gravity)
		}
		if !kind.IsBomb() && kc.Points <= 0 {
			return invalid("spawn.kinds.%s points must be > 0, got %d", name, kc.Points)
		}
	}

	// 出生点在 画布高度+BottomMargin，回收线必须在它下面，否则新水果直接被回收
	p := c.Physics
	if p.OffscreenMargin < s.BottomMargin {
		return invalid("physics.offscreenMargin(%.1f) < spawn.bottomMargin(%.1f)", p.OffscreenMargin, s.BottomMargin)
	}
	if p.DefaultGravity < 0 {
		return invalid("physics.defaultGravity must be >= 0, got %.2f", p.DefaultGravity)
	}

	if c.Session.InitialLives < 1 {
		return invalid("session.initialLives must be >= 1, got %d", c.Session.InitialLives)
	}
	if c.Input.VisibilityThreshold < 0 || c.Input.VisibilityThreshold > 1 {
		return invalid("input.visibilityThreshold must be in [0,1], got %.2f", c.Input.VisibilityThreshold)
	}
	if c.Input.PinchThreshold <= 0 {
		return invalid("input.pinchThreshold must be > 0, got %.1f", c.Input.PinchThreshold)
	}
	if c.Perception.Enabled && c.Perception.ListenAddr == "" {
		return invalid("perception.listenAddr cannot be empty when perception is enabled")
	}

	return nil
}

// ValidateCanvas 检查画布尺寸（宽高都必须为正）
func ValidateCanvas(width, height float64) error {
	if width <= 0 || height <= 0 {
		return invalid("canvas size must be positive, got %.0fx%.0f", width, height)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
