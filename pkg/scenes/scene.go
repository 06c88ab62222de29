// Package scenes 实现主菜单、游戏和结算三个场景
package scenes

import (
	"github.com/decker502/fruitcut/pkg/game"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// NewSceneFactory 返回按ID创建场景的工厂，所有场景共享同一个 Env
func NewSceneFactory(env *Env) game.SceneFactory {
	return func(id game.SceneID) game.Scene {
		switch id {
		case game.SceneMenu:
			return NewMenuScene(env)
		case game.SceneGame:
			return NewGameScene(env)
		case game.SceneGameOver:
			return NewGameOverScene(env)
		default:
			return nil
		}
	}
}
