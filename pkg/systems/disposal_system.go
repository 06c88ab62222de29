package systems

import (
	"github.com/decker502/fruitcut/pkg/ecs"
	"github.com/decker502/fruitcut/pkg/types"
)

// Disposed 被回收的实体信息
type Disposed struct {
	ID     ecs.EntityID
	Kind   types.FruitKind
	WasCut bool
}

// DisposalSystem 回收系统
// 移除掉出画面底部（超过 画布高度+边距）的实体；本身不处理扣命等后果
type DisposalSystem struct {
	canvasHeight    float64
	offscreenMargin float64
}

// NewDisposalSystem 创建回收系统
//
// 参数:
//   - canvasHeight: 画布高度
//   - offscreenMargin: 画布底边以下的额外距离，保证实体完全离开画面
func NewDisposalSystem(canvasHeight, offscreenMargin float64) *DisposalSystem {
	return &DisposalSystem{
		canvasHeight:    canvasHeight,
		offscreenMargin: offscreenMargin,
	}
}

// SetCanvasHeight 更新画布高度（窗口大小变化时调用）
func (s *DisposalSystem) SetCanvasHeight(height float64) {
	s.canvasHeight = height
}

// Update 移除所有掉出画面的实体，不区分是否已切割
//
// 返回:
//   - []Disposed: 被移除的实体，顺序与 World 一致
func (s *DisposalSystem) Update(w *ecs.World) []Disposed {
	limit := s.canvasHeight + s.offscreenMargin

	removed := w.RemoveWhere(func(e *ecs.Entity) bool {
		return e.Position != nil && e.Position.Y > limit
	})
	if len(removed) == 0 {
		return nil
	}

	disposed := make([]Disposed, 0, len(removed))
	for _, e := range removed {
		d := Disposed{ID: e.ID, Kind: types.FruitUnknown}
		if e.Kind != nil {
			d.Kind = e.Kind.Value
		}
		if e.Cut != nil {
			d.WasCut = e.Cut.IsCut
		}
		disposed = append(disposed, d)
	}
	return disposed
}

// DisposeByID 显式移除指定实体（切割事件处理完毕后调用）
// 实体不存在时不做任何事
func (s *DisposalSystem) DisposeByID(w *ecs.World, id ecs.EntityID) bool {
	return w.Remove(id)
}
