// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的输入状态
// 用于统一处理鼠标和触摸输入
type InputState struct {
	// 是否有点击/触摸事件刚刚发生
	JustPressed bool
	// 点击/触摸位置
	X, Y int
	// 是否有活动的触摸
	IsTouching bool
	// 指针是否在画布范围内（鼠标移出窗口或没有触摸时为 false）
	InBounds bool
}

// GetInputState 获取当前帧的输入状态
// 同时支持鼠标和触摸输入，优先检测触摸
//
// 参数:
//   - width, height: 画布尺寸，用于判断指针是否在画布内
func GetInputState(width, height int) InputState {
	state := InputState{}

	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		state.JustPressed = true
		state.IsTouching = true
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.InBounds = PointInBounds(state.X, state.Y, width, height)
		return state
	}

	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		state.IsTouching = true
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.InBounds = PointInBounds(state.X, state.Y, width, height)
		return state
	}

	// 移动端没有触摸就没有指针；CursorPosition 会停留在最后一次触摸的位置
	if IsMobile() {
		return state
	}

	state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	state.X, state.Y = ebiten.CursorPosition()
	state.InBounds = PointInBounds(state.X, state.Y, width, height)
	return state
}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// PointInBounds 点是否在 [0,width) x [0,height) 内
func PointInBounds(x, y, width, height int) bool {
	return x >= 0 && y >= 0 && x < width && y < height
}
