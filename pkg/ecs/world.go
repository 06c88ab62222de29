package ecs

import "github.com/decker502/fruitcut/pkg/components"

// EntityID 是实体的唯一标识符
// 同一个 World 内单调递增，0 保留为无效ID，删除后不会复用
type EntityID uint64

// Mask 组件位掩码，用于描述实体拥有哪些组件
type Mask uint8

const (
	// HasPosition 拥有 PositionComponent
	HasPosition Mask = 1 << iota
	// HasVelocity 拥有 VelocityComponent
	HasVelocity
	// HasGravity 拥有 GravityComponent
	HasGravity
	// HasSize 拥有 SizeComponent
	HasSize
	// HasKind 拥有 KindComponent
	HasKind
	// HasCut 拥有 CutComponent
	HasCut
)

// AllComponents 水果工厂产出的实体应当拥有的全部组件
const AllComponents = HasPosition | HasVelocity | HasGravity | HasSize | HasKind | HasCut

// Entity 实体：ID + 固定的一组可选组件
//
// 组件集合是封闭的（字段为 nil 表示没有该组件），
// 系统通过 Mask 查询所需组件，避免运行时按名字探测。
type Entity struct {
	ID EntityID

	Position *components.PositionComponent
	Velocity *components.VelocityComponent
	Gravity  *components.GravityComponent
	Size     *components.SizeComponent
	Kind     *components.KindComponent
	Cut      *components.CutComponent
}

// Mask 返回实体当前拥有的组件位掩码
func (e *Entity) Mask() Mask {
	var m Mask
	if e.Position != nil {
		m |= HasPosition
	}
	if e.Velocity != nil {
		m |= HasVelocity
	}
	if e.Gravity != nil {
		m |= HasGravity
	}
	if e.Size != nil {
		m |= HasSize
	}
	if e.Kind != nil {
		m |= HasKind
	}
	if e.Cut != nil {
		m |= HasCut
	}
	return m
}

// Has 检查实体是否拥有 m 中的全部组件
func (e *Entity) Has(m Mask) bool {
	return e.Mask()&m == m
}

// World 管理当前局内所有存活实体
// 实体按创建顺序保存，迭代顺序即创建顺序
type World struct {
	nextID   uint64
	entities []*Entity
}

// NewWorld 创建一个空的 World 实例
func NewWorld() *World {
	return &World{
		nextID:   1, // ID从1开始,0保留为无效ID
		entities: make([]*Entity, 0, 32),
	}
}

// NewID 分配一个新的实体ID
func (w *World) NewID() EntityID {
	id := EntityID(w.nextID)
	w.nextID++
	return id
}

// Add 将实体追加到 World 末尾
// ID 为 0 的实体会自动分配ID；外部指定的ID会推进计数器，保证之后分配的ID不重复
func (w *World) Add(e *Entity) {
	if e == nil {
		return
	}
	if e.ID == 0 {
		e.ID = w.NewID()
	} else if uint64(e.ID) >= w.nextID {
		w.nextID = uint64(e.ID) + 1
	}
	w.entities = append(w.entities, e)
}

// Get 根据ID查找实体
func (w *World) Get(id EntityID) (*Entity, bool) {
	for _, e := range w.entities {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Remove 删除指定ID的实体
// 实体不存在时不做任何事，返回 false
func (w *World) Remove(id EntityID) bool {
	removed := w.RemoveWhere(func(e *Entity) bool { return e.ID == id })
	return len(removed) > 0
}

// RemoveWhere 删除所有满足条件的实体，并按原顺序返回被删除的实体
func (w *World) RemoveWhere(pred func(e *Entity) bool) []*Entity {
	var removed []*Entity
	kept := w.entities[:0]
	for _, e := range w.entities {
		if pred(e) {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	// 清掉尾部残留引用，便于 GC
	for i := len(kept); i < len(w.entities); i++ {
		w.entities[i] = nil
	}
	w.entities = kept
	return removed
}

// Query 查询拥有 mask 中全部组件的实体
// 返回新切片，顺序与 World 一致；调用方在遍历时删除实体是安全的
func (w *World) Query(mask Mask) []*Entity {
	result := make([]*Entity, 0, len(w.entities))
	for _, e := range w.entities {
		if e.Has(mask) {
			result = append(result, e)
		}
	}
	return result
}

// Entities 返回全部实体（按创建顺序的副本）
func (w *World) Entities() []*Entity {
	return w.Query(0)
}

// Len 返回存活实体数量
func (w *World) Len() int {
	return len(w.entities)
}

// Clear 删除全部实体（开始新游戏时调用）
// ID 计数器不会重置，旧ID不会被复用
func (w *World) Clear() {
	for i := range w.entities {
		w.entities[i] = nil
	}
	w.entities = w.entities[:0]
}
