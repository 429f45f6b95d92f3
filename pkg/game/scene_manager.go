package game

import (
	"log"

	"github.com/decker502/wavewizard/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// BattleFactory 战斗场景工厂函数类型
// 用于按难度与地图创建战斗场景，避免 game 包依赖 scenes 包
type BattleFactory func(tier config.DifficultyTier, mapIndex int) Scene

// MenuFactory 菜单场景工厂函数类型
type MenuFactory func() Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene  Scene
	battleFactory BattleFactory
	menuFactory   MenuFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetBattleFactory 设置战斗场景工厂
func (sm *SceneManager) SetBattleFactory(factory BattleFactory) {
	sm.battleFactory = factory
}

// SetMenuFactory 设置菜单场景工厂
func (sm *SceneManager) SetMenuFactory(factory MenuFactory) {
	sm.menuFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene is closed if it implements Closer.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	if closer, ok := sm.currentScene.(Closer); ok {
		closer.Close()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// StartBattle 按难度与地图开始一局
func (sm *SceneManager) StartBattle(tier config.DifficultyTier, mapIndex int) {
	log.Printf("[SceneManager] Starting battle: tier=%s map=%d", tier, mapIndex)

	if sm.battleFactory == nil {
		log.Printf("[SceneManager] Error: BattleFactory not set")
		return
	}
	if scene := sm.battleFactory(tier, mapIndex); scene != nil {
		sm.SwitchTo(scene)
	}
}

// ShowMenu 返回菜单
func (sm *SceneManager) ShowMenu() {
	if sm.menuFactory == nil {
		log.Printf("[SceneManager] Error: MenuFactory not set")
		return
	}
	sm.SwitchTo(sm.menuFactory())
}

// Shutdown 关闭当前场景
func (sm *SceneManager) Shutdown() {
	if closer, ok := sm.currentScene.(Closer); ok {
		closer.Close()
	}
	sm.currentScene = nil
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
