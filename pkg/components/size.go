package components

// SizeComponent 圆形实体的半径（像素）
// 同时用于渲染尺寸和切割判定
type SizeComponent struct {
	Radius float64
}
