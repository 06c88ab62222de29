package utils

// TrailPoint 刀光轨迹上的一个点
type TrailPoint struct {
	X, Y float64
	Age  float64 // 秒
}

// Trail 刀光轨迹
// 记录指针最近经过的位置，超过 maxAge 的点被丢弃，最多保留 maxPoints 个点
type Trail struct {
	points    []TrailPoint
	maxAge    float64
	maxPoints int
}

// NewTrail 创建刀光轨迹
//
// 参数:
//   - maxAge: 点的存活时间（秒）
//   - maxPoints: 最多保留的点数
func NewTrail(maxAge float64, maxPoints int) *Trail {
	return &Trail{
		points:    make([]TrailPoint, 0, maxPoints),
		maxAge:    maxAge,
		maxPoints: maxPoints,
	}
}

// Push 追加一个位置；与上一个点重合时忽略
func (t *Trail) Push(x, y float64) {
	if n := len(t.points); n > 0 && t.points[n-1].X == x && t.points[n-1].Y == y {
		t.points[n-1].Age = 0
		return
	}
	if len(t.points) == t.maxPoints {
		copy(t.points, t.points[1:])
		t.points = t.points[:len(t.points)-1]
	}
	t.points = append(t.points, TrailPoint{X: x, Y: y})
}

// Update 推进时间并丢弃过期的点
func (t *Trail) Update(deltaTime float64) {
	kept := t.points[:0]
	for _, p := range t.points {
		p.Age += deltaTime
		if p.Age < t.maxAge {
			kept = append(kept, p)
		}
	}
	t.points = kept
}

// Clear 清空轨迹
func (t *Trail) Clear() {
	t.points = t.points[:0]
}

// Points 当前的点（从旧到新），调用方不应修改
func (t *Trail) Points() []TrailPoint {
	return t.points
}

// Alpha 点的不透明度，新点为 1，随年龄按缓出曲线降到 0
func (t *Trail) Alpha(p TrailPoint) float64 {
	if t.maxAge <= 0 {
		return 0
	}
	progress := p.Age / t.maxAge
	if progress >= 1 {
		return 0
	}
	return 1 - EaseOutQuad(progress)
}

// EaseOutQuad 二次方缓出，t ∈ [0, 1]
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// Lerp 线性插值
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
