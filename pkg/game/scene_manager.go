package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 按ID创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(id SceneID) Scene

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	currentID    SceneID
	sceneFactory SceneFactory
	cache        map[SceneID]Scene

	width, height int
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or Load to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		cache: make(map[SceneID]Scene),
	}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// 如果已知画布尺寸，新场景会先收到一次 Resize，然后收到 OnEnter
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	if scene == nil {
		return
	}
	if r, ok := scene.(Resizable); ok && sm.width > 0 && sm.height > 0 {
		r.Resize(sm.width, sm.height)
	}
	if e, ok := scene.(Enterable); ok {
		e.OnEnter()
	}
}

// Load 切换到指定ID的场景
// 同一个ID的场景只通过工厂创建一次，之后复用
func (sm *SceneManager) Load(id SceneID) {
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return
	}

	scene, ok := sm.cache[id]
	if !ok {
		scene = sm.sceneFactory(id)
		if scene == nil {
			log.Printf("[SceneManager] 错误: 无法创建场景: %s", id)
			return
		}
		sm.cache[id] = scene
	}

	sm.currentID = id
	sm.SwitchTo(scene)
	log.Printf("[SceneManager] 切换到场景: %s", id)
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentID 返回通过 Load 切换的当前场景ID
func (sm *SceneManager) CurrentID() SceneID {
	return sm.currentID
}

// Resize 记录画布尺寸并通知当前场景
// 尺寸没有变化时不做任何事
func (sm *SceneManager) Resize(width, height int) {
	if width == sm.width && height == sm.height {
		return
	}
	sm.width, sm.height = width, height
	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(width, height)
	}
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
