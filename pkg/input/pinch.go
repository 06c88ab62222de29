package input

import "math"

// PinchDetector 捏合手势检测（边沿触发）
//
// 拇指尖与食指尖距离小于阈值时进入捏合状态，只在进入的那一帧报告一次捏合点；
// 松开（距离不小于阈值）后才能再次触发。
type PinchDetector struct {
	threshold float64
	pinched   bool
}

// NewPinchDetector 创建捏合检测器
//
// 参数:
//   - threshold: 判定捏合的距离阈值（画布像素）
func NewPinchDetector(threshold float64) *PinchDetector {
	return &PinchDetector{threshold: threshold}
}

// Update 用本帧的拇指尖和食指尖位置更新状态
//
// 返回:
//   - Point: 捏合点（两指尖中点）
//   - bool: 本帧是否新触发了捏合
func (d *PinchDetector) Update(thumbTip, indexTip Point) (Point, bool) {
	distance := math.Hypot(thumbTip.X-indexTip.X, thumbTip.Y-indexTip.Y)

	if distance >= d.threshold {
		d.pinched = false
		return Point{}, false
	}

	if d.pinched {
		return Point{}, false
	}

	d.pinched = true
	return Point{
		X: (thumbTip.X + indexTip.X) / 2,
		Y: (thumbTip.Y + indexTip.Y) / 2,
	}, true
}

// Release 手部丢失时调用，清除捏合状态
func (d *PinchDetector) Release() {
	d.pinched = false
}

// IsPinched 当前是否处于捏合状态
func (d *PinchDetector) IsPinched() bool {
	return d.pinched
}
