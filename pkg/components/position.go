package components

// PositionComponent 实体在画布中的坐标（像素，Y 轴向下）
// 水果和炸弹以中心点为位置
type PositionComponent struct {
	X float64
	Y float64
}
