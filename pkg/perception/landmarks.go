package perception

import (
	"fmt"

	"github.com/decker502/fruitcut/pkg/input"
)

// HandLandmarkCount 每只手的关键点数量
const HandLandmarkCount = 21

// 指尖关键点索引
const (
	ThumbTip = 4
	IndexTip = 8
)

// FingerLandmarkIndices 参与切割的手指关键点（不含手腕和指根）
var FingerLandmarkIndices = []int{2, 3, 4, 6, 7, 8, 10, 11, 12, 14, 15, 16, 18, 19, 20}

// HandConnections 骨架连线（按原始关键点索引）
var HandConnections = [][2]int{
	{2, 3}, {3, 4},     // 拇指
	{6, 7}, {7, 8},     // 食指
	{10, 11}, {11, 12}, // 中指
	{14, 15}, {15, 16}, // 无名指
	{18, 19}, {19, 20}, // 小指
}

// Edge 骨架连线，Start/End 是 Frame.Landmarks 中的下标
type Edge struct {
	Start int
	End   int
	Hand  int
}

// Tips 一只手的拇指尖和食指尖（画布坐标），用于捏合检测
type Tips struct {
	Thumb input.Point
	Index input.Point
}

// Frame 换算到画布坐标后的一帧识别结果
type Frame struct {
	Seq       uint64
	Landmarks []input.Landmark
	Edges     []Edge
	Tips      []Tips // 每只手一项，与手的顺序一致
}

// Empty 本帧是否没有任何手
func (f Frame) Empty() bool {
	return len(f.Tips) == 0
}

// clone 深拷贝，保证调用方拿到的快照不会被后续帧修改
func (f Frame) clone() Frame {
	out := Frame{Seq: f.Seq}
	out.Landmarks = append([]input.Landmark(nil), f.Landmarks...)
	out.Edges = append([]Edge(nil), f.Edges...)
	out.Tips = append([]Tips(nil), f.Tips...)
	return out
}

// fingerSlot 原始索引 → FingerLandmarkIndices 中的位置
var fingerSlot = func() map[int]int {
	m := make(map[int]int, len(FingerLandmarkIndices))
	for i, idx := range FingerLandmarkIndices {
		m[idx] = i
	}
	return m
}()

// Normalize 把原始关键点换算为画布坐标
//
// 每只手只保留 15 个手指关键点：x 按 mirrorX 决定是否水平翻转（(1-x)*width），
// y 为 y*height，缺失的可见度视为 1（上报的 0 保留为 0），ID 形如 hand0_landmark8。
// 关键点不足 21 个的手会被跳过，并在返回的 error 中说明（其余手照常输出）。
//
// 参数:
//   - p: 原始识别结果
//   - width, height: 画布尺寸
//   - mirrorX: 是否水平翻转（前置摄像头画面是镜像的）
func Normalize(p HandsPayload, width, height float64, mirrorX bool) (Frame, error) {
	frame := Frame{Seq: p.Seq}
	var skipped []int

	for handIndex, hand := range p.Hands {
		if len(hand) < HandLandmarkCount {
			skipped = append(skipped, handIndex)
			continue
		}

		toCanvas := func(lm RawLandmark) input.Point {
			x := lm.X
			if mirrorX {
				x = 1 - x
			}
			return input.Point{X: x * width, Y: lm.Y * height}
		}

		offset := len(frame.Landmarks)
		for _, idx := range FingerLandmarkIndices {
			raw := hand[idx]
			pt := toCanvas(raw)
			visibility := 1.0
			if raw.Visibility != nil {
				visibility = *raw.Visibility
			}
			frame.Landmarks = append(frame.Landmarks, input.Landmark{
				X:          pt.X,
				Y:          pt.Y,
				Visibility: visibility,
				ID:         fmt.Sprintf("hand%d_landmark%d", handIndex, idx),
			})
		}

		for _, c := range HandConnections {
			frame.Edges = append(frame.Edges, Edge{
				Start: offset + fingerSlot[c[0]],
				End:   offset + fingerSlot[c[1]],
				Hand:  handIndex,
			})
		}

		frame.Tips = append(frame.Tips, Tips{
			Thumb: toCanvas(hand[ThumbTip]),
			Index: toCanvas(hand[IndexTip]),
		})
	}

	if len(skipped) > 0 {
		return frame, fmt.Errorf("hands %v have fewer than %d landmarks", skipped, HandLandmarkCount)
	}
	return frame, nil
}
