package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/fruitcut/pkg/game"
)

// GameOverScene 结算场景
// 画面冻结在最后一帧，显示最终分数和 Play Again 按钮
type GameOverScene struct {
	env     *Env
	restart button
	input   frameInput

	width, height int
}

// NewGameOverScene 创建结算场景
func NewGameOverScene(env *Env) *GameOverScene {
	s := &GameOverScene{env: env}
	s.Resize(env.width, env.height)
	return s
}

func (s *GameOverScene) Resize(width, height int) {
	s.env.Resize(width, height)
	s.width, s.height = width, height
	s.restart = centeredButton("Play Again", float64(width)/2, float64(height)*0.65, 260, 70)
}

func (s *GameOverScene) Update(deltaTime float64) {
	s.env.handleHotkeys()
	s.input = s.env.poll()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.env.Scenes.Load(game.SceneMenu)
		return
	}

	if s.restart.Triggered(s.input) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.env.startGame()
	}
}

func (s *GameOverScene) Draw(screen *ebiten.Image) {
	drawBackground(screen, s.width, s.height)
	drawEntities(screen, s.env.Session.Snapshot())
	drawOverlay(screen, s.width, s.height)

	cx := float64(s.width) / 2
	drawLargeText(screen, "You Lose!", cx, float64(s.height)*0.25, 72)
	drawLargeText(screen, "Your Score:", cx, float64(s.height)*0.40, 36)
	drawLargeText(screen, fmt.Sprintf("%d", s.env.Session.Score()), cx, float64(s.height)*0.46, 60)

	s.restart.Draw(screen, s.restart.Hovered(s.input))

	if s.env.showSkeleton() {
		drawSkeleton(screen, s.input.Frame)
	}
}
