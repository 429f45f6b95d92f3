package systems

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/ecs"
	"github.com/decker502/wavewizard/pkg/event"
	"github.com/decker502/wavewizard/pkg/game"
)

// 旁白节奏（秒）
const (
	// IntroLineDelay 开场旁白每行停留时间
	IntroLineDelay = 2.0
	// RestCountdownFrom 休整阶段从几秒开始倒数提示
	RestCountdownFrom = 3
)

// WaveStateSystem 波次状态机
//
// 职责：
//   - 开场旁白结束后启动全局计时并开始第一波
//   - 波次清场或超时后进入休整，休整结束后开始下一波 / Boss 战 / 加时
//   - 全局计时首次到期进入加时，加时中再次到期判负
//   - 唯一修改 WaveRunStateComponent 的地方；胜负只能由 DeclareVictory / TriggerGameOver 触发
//
// 架构说明：
//   - 状态存放在专用实体的 WaveRunStateComponent 上
//   - 所有延迟链（旁白、生成序列、胜利演出）都经由调度器执行，重新开局时统一作废
//   - 本帧内的存活数量变化在状态判定之前完成，清场在同一帧内生效
type WaveStateSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *game.Scheduler
	dispatcher    *event.Dispatcher
	tracker       *game.PopulationTracker
	director      *SpawnDirector
	profile       config.DifficultyProfile
	suddenDeath   config.SuddenDeathBalance
	victory       config.VictoryBalance
	messages      config.Messages
	rng           *rand.Rand

	// stateEntityID 状态组件所在的实体ID
	stateEntityID ecs.EntityID

	// phaseSerial 每次状态切换递增，过期的阶段回调据此忽略
	phaseSerial int
	// sequenceSerial 每次启动或作废生成序列递增，只有当前序列能标记完成
	sequenceSerial int
	// sequence 正在进行的脚本生成序列
	sequence *game.ChainHandle

	// holding 波次耗尽但没有加时要求，停在休整阶段等待胜利判定
	holding bool

	outcomeSource string
	outcomeReady  bool

	// verbose 是否输出详细日志
	verbose bool
}

// NewWaveStateSystem 创建波次状态机
func NewWaveStateSystem(
	em *ecs.EntityManager,
	scheduler *game.Scheduler,
	dispatcher *event.Dispatcher,
	tracker *game.PopulationTracker,
	director *SpawnDirector,
	profile config.DifficultyProfile,
	balance *config.BalanceConfig,
	rng *rand.Rand,
) *WaveStateSystem {
	s := &WaveStateSystem{
		entityManager: em,
		scheduler:     scheduler,
		dispatcher:    dispatcher,
		tracker:       tracker,
		director:      director,
		profile:       profile,
		suddenDeath:   balance.SuddenDeath,
		victory:       balance.Victory,
		messages:      balance.Messages,
		rng:           rng,
	}
	s.createStateEntity()
	return s
}

// SetVerbose 设置是否输出详细日志
func (s *WaveStateSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// createStateEntity 创建状态组件实体
func (s *WaveStateSystem) createStateEntity() {
	s.stateEntityID = s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, s.stateEntityID, &components.WaveRunStateComponent{
		State:       components.WaveStateWaitingToStart,
		Description: "Waiting to start",
	})
	log.Printf("[WaveStateSystem] Created state entity (ID: %d), tier %s, waves %d..%d (%d total)",
		s.stateEntityID, s.profile.Tier, s.profile.StartWave, s.profile.EndWave, s.profile.TotalWaves)
}

// runState 获取状态组件
func (s *WaveStateSystem) runState() *components.WaveRunStateComponent {
	st, ok := ecs.GetComponent[*components.WaveRunStateComponent](s.entityManager, s.stateEntityID)
	if !ok {
		return nil
	}
	return st
}

// Reset 重新开局：实体管理器已被清空，重建状态实体
func (s *WaveStateSystem) Reset() {
	s.phaseSerial++
	s.sequenceSerial++
	s.sequence = nil
	s.holding = false
	s.outcomeSource = ""
	s.outcomeReady = false
	s.createStateEntity()
}

// Start 播放开场旁白，结束后启动全局计时并开始第一波
func (s *WaveStateSystem) Start() {
	st := s.runState()
	if st == nil || st.State != components.WaveStateWaitingToStart || st.IntroDone {
		return
	}

	steps := make([]game.ChainStep, 0, len(s.profile.IntroLines))
	for _, line := range s.profile.IntroLines {
		text := line
		steps = append(steps, game.ChainStep{
			Do:    func() { s.announce(text) },
			Delay: IntroLineDelay,
		})
	}
	s.scheduler.RunChain(steps, s.finishIntro)
}

// finishIntro 开场结束
func (s *WaveStateSystem) finishIntro() {
	st := s.runState()
	if st == nil || st.IntroDone {
		return
	}
	st.IntroDone = true
	if s.profile.TotalTimeLimit > 0 {
		st.GlobalTimer = s.profile.TotalTimeLimit
		st.GlobalTimerRunning = true
	}
	log.Printf("[WaveStateSystem] Intro finished, global timer %.0fs", st.GlobalTimer)
	s.startWave(st)
}

// Update 推进状态机
func (s *WaveStateSystem) Update(deltaTime float64) {
	st := s.runState()
	if st == nil || st.State.IsTerminal() || !st.IntroDone {
		return
	}
	st.Elapsed += deltaTime

	if st.GlobalTimerRunning {
		st.GlobalTimer -= deltaTime
		if st.GlobalTimer <= 0 {
			if st.State == components.WaveStateSuddenDeath {
				st.GlobalTimer = 0
				s.TriggerGameOver("time ran out during sudden death")
				return
			}
			st.OvertimeStarted = true
			st.GlobalTimer = s.profile.SuddenDeathDuration
			if st.GlobalTimer <= 0 {
				st.GlobalTimerRunning = false
			}
			s.enterSuddenDeath(st, "global timer expired")
			return
		}
	}

	switch st.State {
	case components.WaveStateWaveInProgress:
		s.updateWave(st, deltaTime)
	case components.WaveStatePreparationBuffer:
		s.updateBuffer(st, deltaTime)
	case components.WaveStateBossFight:
		if st.SequenceDone && s.tracker.Count() == 0 {
			s.DeclareVictory("boss defeated")
		}
	case components.WaveStateSuddenDeath:
		s.updateSuddenDeath(st, deltaTime)
	}
}

// updateWave 波次进行中：先判定清场，再推进软时限
func (s *WaveStateSystem) updateWave(st *components.WaveRunStateComponent, deltaTime float64) {
	if st.SequenceDone && s.tracker.Count() == 0 {
		log.Printf("[WaveStateSystem] Wave %d cleared with %.1fs left", s.CurrentAbsoluteWaveIndex(), st.StateTimer)
		s.enterBuffer(st, s.messages.WaveCleared)
		return
	}

	if s.profile.WaveDuration <= 0 {
		return
	}
	st.StateTimer -= deltaTime
	if st.StateTimer <= 0 {
		left := s.tracker.Count()
		log.Printf("[WaveStateSystem] Wave %d timed out with %d enemies left", s.CurrentAbsoluteWaveIndex(), left)
		if left == 0 {
			s.enterBuffer(st, s.messages.WaveCleared)
			return
		}
		s.enterBuffer(st, s.randomTaunt())
	}
}

// randomTaunt 超时提示文本
func (s *WaveStateSystem) randomTaunt() string {
	taunts := s.messages.TimeoutTaunts
	if len(taunts) == 0 {
		return "Time's up!"
	}
	return taunts[s.rng.Intn(len(taunts))]
}

// wavesExhausted 已开始的波次是否达到本档位总数
func (s *WaveStateSystem) wavesExhausted(st *components.WaveRunStateComponent) bool {
	return st.CurrentWaveNumber >= s.profile.TotalWaves
}

// enterBuffer 进入休整阶段
func (s *WaveStateSystem) enterBuffer(st *components.WaveRunStateComponent, message string) {
	st.StateTimer = s.profile.RestDuration
	s.transition(st, components.WaveStatePreparationBuffer, message)

	if s.wavesExhausted(st) {
		return
	}
	// 休整倒数旁白
	serial := s.phaseSerial
	for i := RestCountdownFrom; i >= 1; i-- {
		at := s.profile.RestDuration - float64(i)
		if at < 0 {
			continue
		}
		n := i
		s.scheduler.After(at, func() {
			if s.phaseSerial != serial {
				return
			}
			s.announce(fmt.Sprintf(s.messages.RestCountdown, n))
		})
	}
}

// updateBuffer 休整阶段
func (s *WaveStateSystem) updateBuffer(st *components.WaveRunStateComponent, deltaTime float64) {
	// 波次耗尽：强制加时的档位不等待休整
	if s.wavesExhausted(st) {
		if s.profile.SuddenDeathImmediate {
			s.enterSuddenDeath(st, "all waves exhausted")
			return
		}
		if !s.holding {
			s.holding = true
			st.Description = "Clear the remaining enemies"
			log.Printf("[WaveStateSystem] All %d waves issued, holding for victory evaluation", s.profile.TotalWaves)
		}
		return
	}

	if st.StateTimer > 0 {
		st.StateTimer = math.Max(0, st.StateTimer-deltaTime)
		if st.StateTimer > 0 {
			return
		}
	}

	next := s.profile.StartWave + st.CurrentWaveNumber
	if next == s.director.BossWave() && !st.BossFightStarted {
		s.startBossFight(st)
		return
	}
	s.startWave(st)
}

// startWave 开始下一波脚本波次
func (s *WaveStateSystem) startWave(st *components.WaveRunStateComponent) {
	st.CurrentWaveNumber++
	st.StateTimer = s.profile.WaveDuration
	wave := s.CurrentAbsoluteWaveIndex()

	s.transition(st, components.WaveStateWaveInProgress, fmt.Sprintf(s.messages.WaveStarted, wave))
	s.emitWaveChanged(st)
	s.runSequence(wave, s.director.GroupsForWave(wave))
}

// startBossFight 开始 Boss 战（只会发生一次）
func (s *WaveStateSystem) startBossFight(st *components.WaveRunStateComponent) {
	st.CurrentWaveNumber++
	st.BossFightStarted = true
	st.StateTimer = 0
	wave := s.CurrentAbsoluteWaveIndex()

	s.transition(st, components.WaveStateBossFight, s.messages.BossIncoming)
	s.emitWaveChanged(st)
	s.runSequence(wave, s.director.BossGroups())
}

// runSequence 启动生成序列，只有最新的序列能标记完成
func (s *WaveStateSystem) runSequence(wave int, groups []config.SpawnGroup) {
	st := s.runState()
	st.SequenceDone = false
	s.sequenceSerial++
	serial := s.sequenceSerial
	s.sequence = s.director.RunSequence(wave, groups, func() {
		if serial != s.sequenceSerial {
			return
		}
		if cur := s.runState(); cur != nil {
			cur.SequenceDone = true
			if s.verbose {
				log.Printf("[WaveStateSystem] Spawn sequence for wave %d finished", wave)
			}
		}
	})
}

// stopSequence 作废正在进行的脚本生成序列
// 加时和终局之后不会再有脚本敌人，序列视为已完成
func (s *WaveStateSystem) stopSequence(st *components.WaveRunStateComponent) {
	s.sequenceSerial++
	if s.sequence != nil && !st.SequenceDone {
		s.sequence.Cancel()
		log.Printf("[WaveStateSystem] Cancelled pending spawn groups of wave %d", s.CurrentAbsoluteWaveIndex())
	}
	s.sequence = nil
	st.SequenceDone = true
}

// enterSuddenDeath 进入加时：立即生成一个混合敌人，之后按间隔持续生成
func (s *WaveStateSystem) enterSuddenDeath(st *components.WaveRunStateComponent, reason string) {
	if st.State == components.WaveStateSuddenDeath {
		return
	}
	log.Printf("[WaveStateSystem] Sudden death: %s", reason)
	s.stopSequence(st)
	s.transition(st, components.WaveStateSuddenDeath, s.messages.SuddenDeath)
	s.director.SpawnMixed(s.suddenDeath.Tiers, s.suddenDeath.Weights)
	st.SuddenDeathSpawnTimer = s.suddenDeath.SpawnInterval
}

// updateSuddenDeath 加时阶段的持续生成
func (s *WaveStateSystem) updateSuddenDeath(st *components.WaveRunStateComponent, deltaTime float64) {
	if s.suddenDeath.SpawnInterval <= 0 {
		return
	}
	st.SuddenDeathSpawnTimer -= deltaTime
	for st.SuddenDeathSpawnTimer <= 0 {
		s.director.SpawnMixed(s.suddenDeath.Tiers, s.suddenDeath.Weights)
		st.SuddenDeathSpawnTimer += s.suddenDeath.SpawnInterval
	}
}

// transition 切换状态并发出通知
func (s *WaveStateSystem) transition(st *components.WaveRunStateComponent, to components.WaveState, description string) {
	from := st.State
	st.State = to
	st.Description = description
	s.phaseSerial++
	s.holding = false

	log.Printf("[WaveStateSystem] %s -> %s: %s", from, to, description)
	s.dispatcher.Emit(event.StateChanged, event.StateChangedData{
		From:        from.String(),
		To:          to.String(),
		Description: description,
	})
	if description != "" {
		s.dispatcher.Emit(event.Message, description)
	}
}

// announce 发出纯装饰的提示文本
func (s *WaveStateSystem) announce(text string) {
	if st := s.runState(); st != nil {
		st.Description = text
	}
	s.dispatcher.Emit(event.Message, text)
}

func (s *WaveStateSystem) emitWaveChanged(st *components.WaveRunStateComponent) {
	s.dispatcher.Emit(event.WaveChanged, event.WaveChangedData{
		Wave:          st.CurrentWaveNumber,
		AbsoluteIndex: s.CurrentAbsoluteWaveIndex(),
		TotalWaves:    s.profile.TotalWaves,
	})
}

// DeclareVictory 宣告胜利
// 已处于终止状态时是空操作，返回 false
func (s *WaveStateSystem) DeclareVictory(source string) bool {
	st := s.runState()
	if st == nil || st.State.IsTerminal() {
		if s.verbose {
			log.Printf("[WaveStateSystem] Victory from %q ignored, run already finished", source)
		}
		return false
	}
	st.GlobalTimerRunning = false
	s.stopSequence(st)
	s.outcomeSource = source
	s.transition(st, components.WaveStateVictory, s.messages.Victory)
	s.dispatcher.Emit(event.Victory, source)
	s.playOutcomeSequence()
	return true
}

// TriggerGameOver 宣告失败
// 已处于终止状态时是空操作，返回 false
func (s *WaveStateSystem) TriggerGameOver(reason string) bool {
	st := s.runState()
	if st == nil || st.State.IsTerminal() {
		return false
	}
	st.GlobalTimerRunning = false
	s.stopSequence(st)
	s.outcomeSource = reason
	s.transition(st, components.WaveStateGameOver, s.messages.GameOver)
	s.dispatcher.Emit(event.GameOver, reason)
	s.playOutcomeSequence()
	return true
}

// playOutcomeSequence 终局演出，结束后 OutcomeReady 返回 true
func (s *WaveStateSystem) playOutcomeSequence() {
	s.scheduler.RunChain([]game.ChainStep{{Delay: s.victory.SequenceDelay}}, func() {
		s.outcomeReady = true
		log.Printf("[WaveStateSystem] Outcome sequence finished (%s)", s.outcomeSource)
	})
}

// CurrentAbsoluteWaveIndex 玩家当前所处的绝对波次编号
// 尚未开始时返回 0
func (s *WaveStateSystem) CurrentAbsoluteWaveIndex() int {
	st := s.runState()
	if st == nil || st.CurrentWaveNumber == 0 {
		return 0
	}
	return s.profile.StartWave + st.CurrentWaveNumber - 1
}

// AllWavesIssued 本档位的全部波次是否都已发出且最后一个生成序列已完成
func (s *WaveStateSystem) AllWavesIssued() bool {
	st := s.runState()
	return st != nil && s.wavesExhausted(st) && st.SequenceDone
}

// State 当前状态
func (s *WaveStateSystem) State() components.WaveState {
	st := s.runState()
	if st == nil {
		return components.WaveStateWaitingToStart
	}
	return st.State
}

// Snapshot 返回状态组件的副本（供 UI 和工具读取）
func (s *WaveStateSystem) Snapshot() components.WaveRunStateComponent {
	st := s.runState()
	if st == nil {
		return components.WaveRunStateComponent{}
	}
	return *st
}

// IntroDone 开场是否结束
func (s *WaveStateSystem) IntroDone() bool {
	st := s.runState()
	return st != nil && st.IntroDone
}

// Profile 本局难度参数
func (s *WaveStateSystem) Profile() config.DifficultyProfile {
	return s.profile
}

// OutcomeReady 终局演出是否结束
func (s *WaveStateSystem) OutcomeReady() bool {
	return s.outcomeReady
}

// OutcomeSource 胜负的触发来源
func (s *WaveStateSystem) OutcomeSource() string {
	return s.outcomeSource
}
