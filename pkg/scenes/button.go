package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// button 可以被点击或捏合触发的矩形按钮
type button struct {
	X, Y, W, H float64
	Label      string
}

// centeredButton 以 (cx, cy) 为中心的按钮
func centeredButton(label string, cx, cy, w, h float64) button {
	return button{X: cx - w/2, Y: cy - h/2, W: w, H: h, Label: label}
}

// Contains 点是否落在按钮内（含边界）
func (b button) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}

// Hovered 指针或任一手指是否悬停在按钮上
func (b button) Hovered(fi frameInput) bool {
	if fi.Pointer.Present && b.Contains(fi.Pointer.X, fi.Pointer.Y) {
		return true
	}
	for _, lm := range fi.Frame.Landmarks {
		if b.Contains(lm.X, lm.Y) {
			return true
		}
	}
	return false
}

// Triggered 本帧是否被点击或被捏合
func (b button) Triggered(fi frameInput) bool {
	if fi.Clicked && b.Contains(fi.ClickX, fi.ClickY) {
		return true
	}
	for _, p := range fi.Pinches {
		if b.Contains(p.X, p.Y) {
			return true
		}
	}
	return false
}

func (b button) Draw(screen *ebiten.Image, hovered bool) {
	fill := buttonColor
	if hovered {
		fill.R, fill.G = 255, 150
	}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), fill, true)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 3, buttonEdgeColor, true)

	size := float64(buttonFontSize)
	drawLargeText(screen, b.Label, b.X+b.W/2, b.Y+(b.H-size)/2, size)
}
