package audio

import (
	"time"

	"github.com/decker502/wavewizard/pkg/event"
)

// Cue 提示音
type Cue int

const (
	CueNone Cue = iota
	CueWaveStart
	CueBossIncoming
	CueSuddenDeath
	CueSpellCast
	CueEnemyKilled
	CueCoin
	CueLevelUp
	CueHurt
	CueVictory
	CueGameOver
)

// String 提示音名称（日志用）
func (c Cue) String() string {
	switch c {
	case CueWaveStart:
		return "wave_start"
	case CueBossIncoming:
		return "boss_incoming"
	case CueSuddenDeath:
		return "sudden_death"
	case CueSpellCast:
		return "spell_cast"
	case CueEnemyKilled:
		return "enemy_killed"
	case CueCoin:
		return "coin"
	case CueLevelUp:
		return "level_up"
	case CueHurt:
		return "hurt"
	case CueVictory:
		return "victory"
	case CueGameOver:
		return "game_over"
	}
	return "none"
}

const ms = time.Millisecond

// cueNotes 每个提示音的音符序列
var cueNotes = map[Cue][]Note{
	CueWaveStart:    {{440, 120 * ms, WaveSquare}, {660, 160 * ms, WaveSquare}},
	CueBossIncoming: {{110, 300 * ms, WaveSquare}, {98, 300 * ms, WaveSquare}, {82, 500 * ms, WaveSquare}},
	CueSuddenDeath:  {{880, 100 * ms, WaveSquare}, {440, 100 * ms, WaveSquare}, {880, 100 * ms, WaveSquare}, {440, 100 * ms, WaveSquare}},
	CueSpellCast:    {{0, 80 * ms, WaveNoise}},
	CueEnemyKilled:  {{220, 60 * ms, WaveSine}, {165, 90 * ms, WaveSine}},
	CueCoin:         {{1320, 50 * ms, WaveSine}, {1760, 90 * ms, WaveSine}},
	CueLevelUp:      {{523, 100 * ms, WaveSine}, {659, 100 * ms, WaveSine}, {784, 100 * ms, WaveSine}, {1047, 200 * ms, WaveSine}},
	CueHurt:         {{140, 90 * ms, WaveSquare}},
	CueVictory:      {{523, 150 * ms, WaveSine}, {659, 150 * ms, WaveSine}, {784, 150 * ms, WaveSine}, {1047, 450 * ms, WaveSine}},
	CueGameOver:     {{392, 250 * ms, WaveSine}, {330, 250 * ms, WaveSine}, {262, 600 * ms, WaveSine}},
}

// CueFor 把核心通知映射为提示音
// 状态切换按目标状态区分；生命值只在下降时提示
func CueFor(e event.Event, lastHealth float64) Cue {
	switch e.Type {
	case event.StateChanged:
		data, ok := e.Data.(event.StateChangedData)
		if !ok {
			return CueNone
		}
		switch data.To {
		case "WaveInProgress":
			return CueWaveStart
		case "BossFight":
			return CueBossIncoming
		case "SuddenDeath":
			return CueSuddenDeath
		}
	case event.SpellCast:
		return CueSpellCast
	case event.EnemyKilled:
		return CueEnemyKilled
	case event.CoinCollected:
		return CueCoin
	case event.LevelUp:
		return CueLevelUp
	case event.HealthChanged:
		if data, ok := e.Data.(event.HealthChangedData); ok && data.Current < lastHealth {
			return CueHurt
		}
	case event.Victory:
		return CueVictory
	case event.GameOver:
		return CueGameOver
	}
	return CueNone
}

// Notes 返回提示音的音符序列
func (c Cue) Notes() []Note {
	return cueNotes[c]
}
