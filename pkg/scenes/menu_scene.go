package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MenuScene 主菜单：标题 + Start Game 按钮
// 点击或捏合按钮开始游戏，Enter/Space 也可以开始
type MenuScene struct {
	env   *Env
	start button
	input frameInput
	nowMs float64

	width, height int
}

// NewMenuScene 创建主菜单场景
func NewMenuScene(env *Env) *MenuScene {
	s := &MenuScene{env: env}
	s.Resize(env.width, env.height)
	return s
}

// Resize 重新布局按钮
func (s *MenuScene) Resize(width, height int) {
	s.env.Resize(width, height)
	s.width, s.height = width, height
	s.start = centeredButton("Start Game", float64(width)/2, float64(height)*0.6, 260, 70)
}

// OnEnter 进入菜单时会话回到 Menu 状态
func (s *MenuScene) OnEnter() {
	s.env.Session.ReturnToMenu()
}

func (s *MenuScene) Update(deltaTime float64) {
	s.env.handleHotkeys()
	s.nowMs = s.env.Clock()
	s.input = s.env.poll()

	if s.start.Triggered(s.input) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.env.startGame()
	}
}

func (s *MenuScene) Draw(screen *ebiten.Image) {
	drawBackground(screen, s.width, s.height)

	size := 72 + pulse(s.nowMs, 1600)*8
	drawLargeText(screen, "FRUIT CUT", float64(s.width)/2, float64(s.height)*0.25, size)

	s.start.Draw(screen, s.start.Hovered(s.input))

	hint := fmt.Sprintf("input: %s   K skeleton   P fps   I input mode   M sound   F11 fullscreen",
		s.env.inputMode())
	ebitenutil.DebugPrintAt(screen, hint, 12, s.height-24)

	if s.env.showSkeleton() {
		drawSkeleton(screen, s.input.Frame)
	}
}
