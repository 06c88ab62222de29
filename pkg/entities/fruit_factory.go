// Package entities 提供游戏实体的工厂函数
package entities

import (
	"math/rand"

	"github.com/decker502/fruitcut/pkg/components"
	"github.com/decker502/fruitcut/pkg/config"
	"github.com/decker502/fruitcut/pkg/ecs"
	"github.com/decker502/fruitcut/pkg/types"
)

// IDSource 实体ID分配器（*ecs.World 实现了该接口）
type IDSource interface {
	NewID() ecs.EntityID
}

// CreateOptions 创建水果的选项
type CreateOptions struct {
	// ForceKind 强制类型；FruitUnknown 表示从 Candidates 中随机
	ForceKind types.FruitKind
	// SpeedMultiplier 发射速度倍率；<= 0 视为 1
	SpeedMultiplier float64
	// Candidates 随机类型的候选集；为空时使用 types.AllKinds（含炸弹）
	Candidates []types.FruitKind
}

// FruitFactory 水果工厂
// 负责生成带随机发射参数的水果/炸弹实体，不持有任何局内状态
type FruitFactory struct {
	spawn        config.SpawnConfig
	cfg          *config.GameConfig
	rng          *rand.Rand
	ids          IDSource
	canvasWidth  float64
	canvasHeight float64
}

// NewFruitFactory 创建水果工厂
//
// 参数:
//   - cfg: 游戏配置（画布尺寸、发射参数、类型表）
//   - ids: 实体ID分配器
//   - rng: 随机数源，测试时传入固定种子
//
// 返回:
//   - *FruitFactory: 工厂实例
func NewFruitFactory(cfg *config.GameConfig, ids IDSource, rng *rand.Rand) *FruitFactory {
	return &FruitFactory{
		spawn:        cfg.Spawn,
		cfg:          cfg,
		rng:          rng,
		ids:          ids,
		canvasWidth:  cfg.Canvas.Width,
		canvasHeight: cfg.Canvas.Height,
	}
}

// SetCanvasSize 更新画布尺寸（窗口大小变化时调用）
func (f *FruitFactory) SetCanvasSize(width, height float64) {
	f.canvasWidth = width
	f.canvasHeight = height
}

// Create 创建一个新的水果或炸弹实体
//
// 算法:
//  1. X 在画布中间区域（两侧各留 HorizontalMarginRatio）均匀随机
//  2. 竖直速度在 [-LaunchSpeedMax, -LaunchSpeedMin] 内随机并乘以倍率，
//     水平速度在 [-HorizontalSpeed, HorizontalSpeed] 内随机并乘以倍率
//  3. 类型为 ForceKind，否则从候选集中均匀随机
//  4. 重力和半径范围按类型查表，半径在范围内均匀随机
//  5. Y 固定为 画布高度 + BottomMargin（从画面下方进入）
//
// 返回的实体拥有全部六个组件，且未被切割
func (f *FruitFactory) Create(opts CreateOptions) *ecs.Entity {
	horizontalMargin := f.canvasWidth * f.spawn.HorizontalMarginRatio
	spawnWidth := f.canvasWidth - horizontalMargin*2
	launchX := horizontalMargin + f.rng.Float64()*spawnWidth

	speedMultiplier := opts.SpeedMultiplier
	if speedMultiplier <= 0 {
		speedMultiplier = 1
	}
	speedRange := f.spawn.LaunchSpeedMax - f.spawn.LaunchSpeedMin
	launchSpeedY := -(f.spawn.LaunchSpeedMin + f.rng.Float64()*speedRange) * speedMultiplier
	launchSpeedX := (f.rng.Float64()*2 - 1) * f.spawn.HorizontalSpeed * speedMultiplier

	kind := opts.ForceKind
	if kind == types.FruitUnknown {
		kind = f.pickKind(opts.Candidates)
	}

	kc := f.cfg.Kind(kind)
	radius := kc.MinRadius + f.rng.Float64()*(kc.MaxRadius-kc.MinRadius)

	return &ecs.Entity{
		ID:       f.ids.NewID(),
		Position: &components.PositionComponent{X: launchX, Y: f.canvasHeight + f.spawn.BottomMargin},
		Velocity: &components.VelocityComponent{VX: launchSpeedX, VY: launchSpeedY},
		Gravity:  &components.GravityComponent{Force: kc.Gravity},
		Size:     &components.SizeComponent{Radius: radius},
		Kind:     &components.KindComponent{Value: kind},
		Cut:      &components.CutComponent{IsCut: false},
	}
}

// pickKind 从候选集中均匀随机选择类型
func (f *FruitFactory) pickKind(candidates []types.FruitKind) types.FruitKind {
	if len(candidates) == 0 {
		candidates = types.AllKinds
	}
	return candidates[f.rng.Intn(len(candidates))]
}
