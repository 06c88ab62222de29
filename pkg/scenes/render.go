package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/fruitcut/pkg/game"
	"github.com/decker502/fruitcut/pkg/perception"
	"github.com/decker502/fruitcut/pkg/types"
	"github.com/decker502/fruitcut/pkg/utils"
)

// debugGlyph DebugPrint 字形的宽高（像素）
const (
	debugGlyphWidth  = 6
	debugGlyphHeight = 16
)

var (
	backgroundColor = color.RGBA{R: 42, G: 30, B: 22, A: 255}
	plankColor      = color.RGBA{R: 58, G: 42, B: 30, A: 255}
	skeletonColor   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	landmarkColor   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	overlayColor    = color.RGBA{A: 160}
	buttonColor     = color.RGBA{R: 230, G: 120, B: 40, A: 255}
	buttonEdgeColor = color.RGBA{R: 255, G: 220, B: 160, A: 255}
)

// kindStyle 每种类型的外观：果肉色 + 外皮色
type kindStyle struct {
	fill color.RGBA
	rind color.RGBA
}

var kindStyles = map[types.FruitKind]kindStyle{
	types.FruitApple:      {fill: color.RGBA{R: 220, G: 30, B: 40, A: 255}, rind: color.RGBA{R: 140, G: 10, B: 20, A: 255}},
	types.FruitOrange:     {fill: color.RGBA{R: 255, G: 150, B: 20, A: 255}, rind: color.RGBA{R: 200, G: 100, B: 0, A: 255}},
	types.FruitBanana:     {fill: color.RGBA{R: 250, G: 230, B: 70, A: 255}, rind: color.RGBA{R: 190, G: 160, B: 30, A: 255}},
	types.FruitWatermelon: {fill: color.RGBA{R: 60, G: 170, B: 60, A: 255}, rind: color.RGBA{R: 20, G: 90, B: 30, A: 255}},
	types.FruitBomb:       {fill: color.RGBA{R: 40, G: 30, B: 60, A: 255}, rind: color.RGBA{R: 120, G: 40, B: 160, A: 255}},
}

// styleFor 未知类型画成灰色
func styleFor(kind types.FruitKind) kindStyle {
	if s, ok := kindStyles[kind]; ok {
		return s
	}
	return kindStyle{fill: color.RGBA{R: 160, G: 160, B: 160, A: 255}, rind: color.RGBA{R: 90, G: 90, B: 90, A: 255}}
}

// drawBackground 木板背景
func drawBackground(screen *ebiten.Image, width, height int) {
	screen.Fill(backgroundColor)
	for y := 0; y < height; y += 120 {
		vector.DrawFilledRect(screen, 0, float32(y), float32(width), 4, plankColor, false)
	}
}

// drawEntities 按快照顺序绘制水果和炸弹
func drawEntities(screen *ebiten.Image, entities []game.EntitySnapshot) {
	for _, e := range entities {
		style := styleFor(e.Kind)
		x, y, r := float32(e.X), float32(e.Y), float32(e.Radius)

		if e.IsCut {
			style.fill.A, style.rind.A = 120, 120
		}

		vector.DrawFilledCircle(screen, x, y, r, style.rind, true)
		vector.DrawFilledCircle(screen, x, y, r*0.85, style.fill, true)

		if e.Kind.IsBomb() {
			// 引信
			vector.StrokeLine(screen, x, y-r, x+r*0.4, y-r*1.4, 3, color.RGBA{R: 200, G: 160, B: 90, A: 255}, true)
			vector.DrawFilledCircle(screen, x+r*0.4, y-r*1.4, 5, color.RGBA{R: 255, G: 80, B: 0, A: 255}, true)
		} else {
			// 高光
			vector.DrawFilledCircle(screen, x-r*0.35, y-r*0.35, r*0.18, color.RGBA{R: 255, G: 255, B: 255, A: 90}, true)
		}
	}
}

// drawSkeleton 绘制手部骨架和关键点
func drawSkeleton(screen *ebiten.Image, frame perception.Frame) {
	for _, edge := range frame.Edges {
		if edge.Start >= len(frame.Landmarks) || edge.End >= len(frame.Landmarks) {
			continue
		}
		a, b := frame.Landmarks[edge.Start], frame.Landmarks[edge.End]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, skeletonColor, true)
	}
	for _, lm := range frame.Landmarks {
		vector.DrawFilledCircle(screen, float32(lm.X), float32(lm.Y), 5, landmarkColor, true)
	}
}

// drawTrail 绘制刀光，越旧越细越透明
func drawTrail(screen *ebiten.Image, trail *utils.Trail) {
	pts := trail.Points()
	for i := 1; i < len(pts); i++ {
		alpha := trail.Alpha(pts[i])
		if alpha <= 0 {
			continue
		}
		width := float32(utils.Lerp(1, 8, alpha))
		clr := color.RGBA{R: 255, G: 255, B: 255, A: uint8(alpha * 255)}
		vector.StrokeLine(screen, float32(pts[i-1].X), float32(pts[i-1].Y), float32(pts[i].X), float32(pts[i].Y), width, clr, true)
	}
}

// drawOverlay 半透明遮罩
func drawOverlay(screen *ebiten.Image, width, height int) {
	vector.DrawFilledRect(screen, 0, 0, float32(width), float32(height), overlayColor, false)
}

// hudLines HUD 文本，每项一行
func hudLines(score, lives int, fps float64, showFPS bool, diff game.DifficultySnapshot) []string {
	lines := []string{
		fmt.Sprintf("Score: %d", score),
		fmt.Sprintf("Lives: %s", livesText(lives)),
	}
	if showFPS {
		lines = append(lines,
			fmt.Sprintf("FPS: %.0f", fps),
			fmt.Sprintf("Difficulty: %.0f%%  interval %.0fms  bomb %.0f%%  x%d",
				diff.Progress*100, diff.SpawnInterval, diff.BombChance*100, diff.FruitsPerSpawn),
		)
	}
	return lines
}

// livesText 剩余生命：数字加同样数量的星号（DebugPrint 字体只有 ASCII）
func livesText(lives int) string {
	if lives <= 0 {
		return "0"
	}
	stars := make([]byte, 0, lives*2)
	for i := 0; i < lives; i++ {
		if i > 0 {
			stars = append(stars, ' ')
		}
		stars = append(stars, '*')
	}
	return fmt.Sprintf("%d %s", lives, stars)
}

func drawHUD(screen *ebiten.Image, lines []string) {
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 12, 10+i*debugGlyphHeight)
	}
}

// drawLargeText 以 (cx, y) 为上边中点绘制标题文字
// 字体加载失败时退化为放大的调试字体
func drawLargeText(screen *ebiten.Image, msg string, cx, y float64, size float64) {
	if msg == "" {
		return
	}
	face := titleFace(size)
	if face == nil {
		drawDebugText(screen, msg, cx, y, size/debugGlyphHeight)
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, y)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, msg, face, op)
}

// debugTextCache 调试字体离屏图片缓存
var debugTextCache = map[string]*ebiten.Image{}

func drawDebugText(screen *ebiten.Image, msg string, cx, y float64, scale float64) {
	img, ok := debugTextCache[msg]
	if !ok {
		img = ebiten.NewImage(len(msg)*debugGlyphWidth, debugGlyphHeight)
		ebitenutil.DebugPrint(img, msg)
		debugTextCache[msg] = img
	}

	w := float64(img.Bounds().Dx()) * scale
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-w/2, y)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)
}

// pulse 0.0 ~ 1.0 之间的呼吸值，周期 periodMs
func pulse(nowMs, periodMs float64) float64 {
	return (math.Sin(nowMs/periodMs*2*math.Pi) + 1) / 2
}
