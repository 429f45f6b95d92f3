package tui

import (
	"github.com/gdamore/tcell/v2"
)

// heldDuration 终端没有按键抬起事件，方向键在这段时间内视为按住（秒）
const heldDuration = 0.25

// Action 按键对应的操作
type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionQuit
	ActionRestart
	ActionPause
	ActionAutopilot
)

// Input 把离散的终端按键转换成持续的移动方向
type Input struct {
	dx, dy float64
	held   float64
}

// HandleKey 处理一次按键
func (in *Input) HandleKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyUp:
		return in.move(0, -1)
	case tcell.KeyDown:
		return in.move(0, 1)
	case tcell.KeyLeft:
		return in.move(-1, 0)
	case tcell.KeyRight:
		return in.move(1, 0)
	case tcell.KeyTab:
		return ActionAutopilot
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return ActionQuit
		case 'r':
			return ActionRestart
		case 'p':
			return ActionPause
		case 'w':
			return in.move(0, -1)
		case 's':
			return in.move(0, 1)
		case 'a':
			return in.move(-1, 0)
		case 'd':
			return in.move(1, 0)
		}
	}
	return ActionNone
}

func (in *Input) move(dx, dy float64) Action {
	in.dx, in.dy = dx, dy
	in.held = heldDuration
	return ActionMove
}

// Direction 推进按住计时并返回当前方向
func (in *Input) Direction(deltaTime float64) (float64, float64) {
	if in.held <= 0 {
		return 0, 0
	}
	in.held -= deltaTime
	return in.dx, in.dy
}

// Reset 松开所有方向
func (in *Input) Reset() {
	in.dx, in.dy, in.held = 0, 0, 0
}
