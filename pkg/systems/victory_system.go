package systems

import (
	"log"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/ecs"
	"github.com/decker502/wavewizard/pkg/game"
)

// VictorySystem 胜利条件轮询
//
// 职责：
//   - 按 PollInterval 轮询波次状态、存活数量与金币
//   - 开场结束且（已有敌人生成 或 宽限期已过）后才开始判定
//   - 全部波次已发出 且 没有存活敌人 且 金币达标 时宣告胜利
//
// 架构说明：
//   - Boss 战期间由波次状态机的 BossFight -> Victory 判定负责，这里只记录诊断日志
//   - 胜利后做一次交叉校验日志，不改变结果
//   - 宣告胜利经由 WaveStateSystem.DeclareVictory，重复宣告是空操作
type VictorySystem struct {
	entityManager *ecs.EntityManager
	waves         *WaveStateSystem
	tracker       *game.PopulationTracker
	locator       *PlayerLocator
	balance       config.VictoryBalance
	coinsRequired int

	pollTimer    float64
	activeTime   float64
	active       bool
	bossDeferred bool
	crossChecked bool
}

// NewVictorySystem 创建胜利判定系统
func NewVictorySystem(
	em *ecs.EntityManager,
	waves *WaveStateSystem,
	tracker *game.PopulationTracker,
	locator *PlayerLocator,
	balance config.VictoryBalance,
	profile config.DifficultyProfile,
) *VictorySystem {
	return &VictorySystem{
		entityManager: em,
		waves:         waves,
		tracker:       tracker,
		locator:       locator,
		balance:       balance,
		coinsRequired: profile.CoinsRequired,
	}
}

// Reset 重新开局时清空轮询状态
func (s *VictorySystem) Reset() {
	s.pollTimer = 0
	s.activeTime = 0
	s.active = false
	s.bossDeferred = false
	s.crossChecked = false
}

// Update 推进轮询计时
func (s *VictorySystem) Update(deltaTime float64) {
	if !s.waves.IntroDone() {
		return
	}
	s.activeTime += deltaTime

	s.pollTimer -= deltaTime
	if s.pollTimer > 0 {
		return
	}
	s.pollTimer = s.balance.PollInterval
	s.poll()
}

// poll 执行一次判定
func (s *VictorySystem) poll() {
	state := s.waves.State()

	if state == components.WaveStateVictory {
		s.crossCheck()
		return
	}
	if state.IsTerminal() {
		return
	}

	if !s.active {
		if !s.tracker.EverSpawned() && s.activeTime < s.balance.GracePeriod {
			return
		}
		s.active = true
		log.Printf("[VictorySystem] Evaluation active after %.1fs (spawned: %v)", s.activeTime, s.tracker.EverSpawned())
	}

	if !s.conditionsMet() {
		return
	}

	if state == components.WaveStateBossFight {
		if !s.bossDeferred {
			s.bossDeferred = true
			log.Printf("[VictorySystem] Conditions met during boss fight, deferring to wave state")
		}
		return
	}

	s.waves.DeclareVictory("victory evaluator")
}

// conditionsMet 全部波次已发出、没有存活敌人、金币达标
func (s *VictorySystem) conditionsMet() bool {
	if !s.waves.AllWavesIssued() || s.tracker.Count() != 0 {
		return false
	}
	return s.coins() >= s.coinsRequired
}

// coins 玩家当前金币
func (s *VictorySystem) coins() int {
	player, ok := s.locator.Player()
	if !ok {
		return 0
	}
	prog, ok := ecs.GetComponent[*components.ProgressionComponent](s.entityManager, player)
	if !ok {
		return 0
	}
	return prog.Coins
}

// crossCheck 胜利后记录一次与本系统判定是否一致
func (s *VictorySystem) crossCheck() {
	if s.crossChecked {
		return
	}
	s.crossChecked = true
	if s.conditionsMet() {
		log.Printf("[VictorySystem] Cross-check: victory (%s) agrees with evaluator", s.waves.OutcomeSource())
		return
	}
	log.Printf("[VictorySystem] Cross-check: victory (%s) declared before evaluator conditions (issued=%v, alive=%d, coins=%d/%d)",
		s.waves.OutcomeSource(), s.waves.AllWavesIssued(), s.tracker.Count(), s.coins(), s.coinsRequired)
}

// Active 是否已进入判定阶段
func (s *VictorySystem) Active() bool {
	return s.active
}
