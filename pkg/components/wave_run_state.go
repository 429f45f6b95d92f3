package components

// WaveState 波次状态机的状态
type WaveState int

const (
	WaveStateWaitingToStart WaveState = iota
	WaveStateWaveInProgress
	WaveStatePreparationBuffer
	WaveStateBossFight
	WaveStateSuddenDeath
	WaveStateVictory
	WaveStateGameOver
)

// String 返回状态名称
func (s WaveState) String() string {
	switch s {
	case WaveStateWaitingToStart:
		return "WaitingToStart"
	case WaveStateWaveInProgress:
		return "WaveInProgress"
	case WaveStatePreparationBuffer:
		return "PreparationBuffer"
	case WaveStateBossFight:
		return "BossFight"
	case WaveStateSuddenDeath:
		return "SuddenDeath"
	case WaveStateVictory:
		return "Victory"
	case WaveStateGameOver:
		return "GameOver"
	}
	return "Unknown"
}

// IsTerminal 是否为终止状态
func (s WaveState) IsTerminal() bool {
	return s == WaveStateVictory || s == WaveStateGameOver
}

// WaveRunStateComponent 一局游戏的波次运行状态
// 挂在专用的计时实体上，只有 WaveStateSystem 修改它
//
// 时间单位：秒
type WaveRunStateComponent struct {
	// CurrentWaveNumber 本局已开始的波次数（0 表示尚未开始）
	CurrentWaveNumber int

	State WaveState

	// StateTimer 当前状态剩余时间
	// WaveInProgress: 软时限；PreparationBuffer: 休整时间
	StateTimer float64

	// GlobalTimer 全局计时剩余时间，开场旁白结束后开始递减
	GlobalTimer        float64
	GlobalTimerRunning bool
	// OvertimeStarted 全局计时是否已经因到期进入过加时
	OvertimeStarted bool

	// IntroDone 开场旁白是否结束
	IntroDone bool

	// SequenceDone 当前波次的生成序列是否已全部发出
	SequenceDone bool

	// BossFightStarted Boss 战只会进入一次
	BossFightStarted bool

	// SuddenDeathSpawnTimer 距离下一次加时混合生成的时间
	SuddenDeathSpawnTimer float64

	// Elapsed 开场结束后经过的时间
	Elapsed float64

	// Description 当前状态的说明文本（供 UI 显示）
	Description string
}
