package components

// VelocityComponent 实体的速度（每 tick 位移，像素）
// VY 为负表示向上运动
type VelocityComponent struct {
	VX float64
	VY float64
}
