package systems

import (
	"math"

	"github.com/decker502/fruitcut/pkg/ecs"
	"github.com/decker502/fruitcut/pkg/input"
	"github.com/decker502/fruitcut/pkg/types"
)

// CutEvent 一次切割事件
type CutEvent struct {
	ID    ecs.EntityID
	Kind  types.FruitKind
	Point input.Point // 命中该实体的切割点
}

// CollisionSystem 切割检测系统
//
// 对每个未被切割、拥有 Position+Size+Cut 的实体（按 World 顺序），
// 找到第一个距离中心小于半径的切割点即标记为已切割。
// 同一切割点可以同时切中多个实体；同一实体每 tick 最多产生一次事件。
type CollisionSystem struct{}

// NewCollisionSystem 创建切割检测系统
func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{}
}

// Update 执行切割检测
//
// 参数:
//   - w: 实体世界
//   - points: 本帧全部切割点（已按可见度过滤）
//
// 返回:
//   - []CutEvent: 本帧新产生的切割事件，顺序与 World 一致
func (s *CollisionSystem) Update(w *ecs.World, points []input.Point) []CutEvent {
	if len(points) == 0 {
		return nil
	}

	var events []CutEvent
	for _, e := range w.Query(ecs.HasPosition | ecs.HasSize | ecs.HasCut) {
		if e.Cut.IsCut {
			continue
		}

		for _, p := range points {
			distance := math.Hypot(p.X-e.Position.X, p.Y-e.Position.Y)
			if distance < e.Size.Radius {
				e.Cut.IsCut = true

				kind := types.FruitUnknown
				if e.Kind != nil {
					kind = e.Kind.Value
				}
				events = append(events, CutEvent{ID: e.ID, Kind: kind, Point: p})
				break
			}
		}
	}
	return events
}
