package components

// GravityComponent 每 tick 叠加到 VelocityComponent.VY 上的加速度
// 不同水果的重力不同（西瓜更重，下落更快）
type GravityComponent struct {
	Force float64
}
