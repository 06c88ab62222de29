package systems

import "github.com/decker502/fruitcut/pkg/ecs"

// MovementSystem 移动系统
// 每 tick 先按速度积分位置，再把重力叠加到竖直速度上
type MovementSystem struct {
	defaultGravity float64
}

// NewMovementSystem 创建移动系统
//
// 参数:
//   - defaultGravity: 没有 GravityComponent 的实体使用的重力
func NewMovementSystem(defaultGravity float64) *MovementSystem {
	return &MovementSystem{defaultGravity: defaultGravity}
}

// Update 更新所有拥有 Position+Velocity 的实体
// 已切割的实体同样继续下落，最终由回收系统清理
func (s *MovementSystem) Update(w *ecs.World) {
	for _, e := range w.Query(ecs.HasPosition | ecs.HasVelocity) {
		e.Position.X += e.Velocity.VX
		e.Position.Y += e.Velocity.VY

		gravity := s.defaultGravity
		if e.Gravity != nil {
			gravity = e.Gravity.Force
		}
		e.Velocity.VY += gravity
	}
}
