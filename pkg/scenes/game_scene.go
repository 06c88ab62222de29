package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/fruitcut/pkg/game"
	"github.com/decker502/fruitcut/pkg/utils"
)

const (
	trailMaxAge    = 0.25 // 秒
	trailMaxPoints = 24
)

// GameScene 游戏进行中的场景
//
// 每帧收集切割点交给 Session 推进一个 tick，然后按快照绘制。
// 会话进入 GameOver 后切换到结算场景；Esc 回到主菜单。
type GameScene struct {
	env   *Env
	trail *utils.Trail
	input frameInput

	width, height int
}

// NewGameScene 创建游戏场景
func NewGameScene(env *Env) *GameScene {
	return &GameScene{
		env:    env,
		trail:  utils.NewTrail(trailMaxAge, trailMaxPoints),
		width:  env.width,
		height: env.height,
	}
}

func (s *GameScene) Resize(width, height int) {
	s.env.Resize(width, height)
	s.width, s.height = width, height
}

func (s *GameScene) OnEnter() {
	s.trail.Clear()
}

func (s *GameScene) Update(deltaTime float64) {
	s.env.handleHotkeys()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.env.Scenes.Load(game.SceneMenu)
		return
	}

	s.input = s.env.poll()
	if s.input.Pointer.Present {
		s.trail.Push(s.input.Pointer.X, s.input.Pointer.Y)
	}
	s.trail.Update(deltaTime)

	if err := s.env.Session.Update(s.env.Clock(), s.env.cutPoints(s.input)); err != nil {
		log.Printf("[GameScene] Update failed: %v", err)
		return
	}

	if s.env.Session.State() == game.StateGameOver {
		s.env.Scenes.Load(game.SceneGameOver)
	}
}

func (s *GameScene) Draw(screen *ebiten.Image) {
	drawBackground(screen, s.width, s.height)
	drawEntities(screen, s.env.Session.Snapshot())
	drawTrail(screen, s.trail)

	if s.env.showSkeleton() {
		drawSkeleton(screen, s.input.Frame)
	}

	drawHUD(screen, hudLines(
		s.env.Session.Score(),
		s.env.Session.Lives(),
		ebiten.ActualFPS(),
		s.env.showFPS(),
		s.env.Session.Difficulty(),
	))
}
