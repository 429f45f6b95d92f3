package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (e.g., main menu, battle).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Closer 是一个可选接口，场景被替换或程序退出时调用
//
// 实现此接口的场景会在以下时机被调用 Close()：
//   - SceneManager 切换到另一个场景
//   - 游戏窗口关闭（App.Shutdown）
//
// 用于取消事件订阅、写入未保存的战绩
type Closer interface {
	Close()
}
