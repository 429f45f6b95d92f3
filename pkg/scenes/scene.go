package scenes

import (
	"github.com/decker502/wavewizard/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// 逻辑屏幕尺寸（像素），窗口缩放由 Ebitengine 处理
const (
	ScreenWidth  = 960
	ScreenHeight = 720
)
