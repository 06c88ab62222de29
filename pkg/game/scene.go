package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneID 场景标识
type SceneID string

const (
	SceneMenu     SceneID = "menu"
	SceneGame     SceneID = "game"
	SceneGameOver SceneID = "gameover"
)

// Scene represents a game screen (menu, gameplay, game over).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，画布尺寸变化时由 SceneManager 调用
type Resizable interface {
	Resize(width, height int)
}

// Enterable 是一个可选接口，场景被切换为当前场景时调用
type Enterable interface {
	OnEnter()
}
