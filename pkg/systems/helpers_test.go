package systems

import (
	"github.com/decker502/fruitcut/pkg/components"
	"github.com/decker502/fruitcut/pkg/ecs"
	"github.com/decker502/fruitcut/pkg/types"
)

// newTestEntity 创建测试用的完整实体
// 这是一个测试辅助函数，被多个测试文件共享使用
func newTestEntity(kind types.FruitKind, x, y, radius float64) *ecs.Entity {
	return &ecs.Entity{
		Position: &components.PositionComponent{X: x, Y: y},
		Velocity: &components.VelocityComponent{},
		Gravity:  &components.GravityComponent{Force: 0.4},
		Size:     &components.SizeComponent{Radius: radius},
		Kind:     &components.KindComponent{Value: kind},
		Cut:      &components.CutComponent{},
	}
}
