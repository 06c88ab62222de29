// Package input 汇总各种输入源（鼠标/触摸、手部关键点、捏合手势）为切割点
package input

// Point 画布坐标系中的一个切割点
type Point struct {
	X float64
	Y float64
}

// Pointer 鼠标或触摸指针的当前位置
// Present 为 false 表示本帧没有指针（鼠标移出窗口、没有触摸）
type Pointer struct {
	X       float64
	Y       float64
	Present bool
}

// Landmark 外部识别服务给出的手部关键点（已换算为画布坐标）
type Landmark struct {
	X          float64
	Y          float64
	Visibility float64 // 置信度 [0,1]
	ID         string
}

// MergeCutPoints 合并本帧所有切割点
//
// 顺序: 指针（如果存在） → 可见度大于阈值的关键点 → 额外点（如捏合点）。
// 可见度不超过阈值的关键点视为不存在。没有任何输入时返回空切片。
//
// 参数:
//   - pointer: 鼠标/触摸指针
//   - landmarks: 手部关键点
//   - visibilityThreshold: 可见度阈值（如 0.5）
//   - extra: 其他切割点
func MergeCutPoints(pointer Pointer, landmarks []Landmark, visibilityThreshold float64, extra ...Point) []Point {
	points := make([]Point, 0, 1+len(landmarks)+len(extra))

	if pointer.Present {
		points = append(points, Point{X: pointer.X, Y: pointer.Y})
	}

	for _, lm := range landmarks {
		if lm.Visibility > visibilityThreshold {
			points = append(points, Point{X: lm.X, Y: lm.Y})
		}
	}

	points = append(points, extra...)
	return points
}
