package systems

import (
	"log"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/ecs"
	"github.com/decker502/wavewizard/pkg/event"
)

// ProgressionSystem 玩家成长：分数、击杀、经验与金币
type ProgressionSystem struct {
	entityManager *ecs.EntityManager
	dispatcher    *event.Dispatcher
	balance       config.ProgressionBalance
}

// NewProgressionSystem 创建成长系统
func NewProgressionSystem(em *ecs.EntityManager, dispatcher *event.Dispatcher, balance config.ProgressionBalance) *ProgressionSystem {
	return &ProgressionSystem{
		entityManager: em,
		dispatcher:    dispatcher,
		balance:       balance,
	}
}

// GrantKill 记录一次击杀并发放分数与经验
func (s *ProgressionSystem) GrantKill(player ecs.EntityID, reward components.RewardComponent) {
	prog, ok := ecs.GetComponent[*components.ProgressionComponent](s.entityManager, player)
	if !ok {
		return
	}
	prog.Kills++
	prog.Score += reward.Score
	s.dispatcher.Emit(event.KillsChanged, prog.Kills)
	s.dispatcher.Emit(event.ScoreChanged, prog.Score)
	s.AddExperience(player, reward.Experience)
}

// AddExperience 增加经验，经验溢出时连续升级，等级不超过上限
// 返回本次升级的次数
func (s *ProgressionSystem) AddExperience(player ecs.EntityID, amount int) int {
	prog, ok := ecs.GetComponent[*components.ProgressionComponent](s.entityManager, player)
	if !ok || amount <= 0 {
		return 0
	}

	prog.Experience += amount
	gained := 0
	for prog.Level < s.balance.MaxLevel && prog.Experience >= prog.ExperienceToNext {
		prog.Experience -= prog.ExperienceToNext
		prog.Level++
		prog.ExperienceToNext = s.balance.ExperienceToNext(prog.Level)
		gained++
		s.applyLevelBonus(player)
		log.Printf("[ProgressionSystem] Level up! now level %d", prog.Level)
		s.dispatcher.Emit(event.LevelUp, prog.Level)
	}

	// 满级后经验停在进度条上限
	if prog.Level >= s.balance.MaxLevel && prog.Experience > prog.ExperienceToNext {
		prog.Experience = prog.ExperienceToNext
	}

	s.dispatcher.Emit(event.ExperienceChanged, event.ExperienceChangedData{
		Level:            prog.Level,
		Experience:       prog.Experience,
		ExperienceToNext: prog.ExperienceToNext,
	})
	return gained
}

// applyLevelBonus 升级奖励：最大生命值与法术伤害
func (s *ProgressionSystem) applyLevelBonus(player ecs.EntityID) {
	if health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, player); ok && !health.IsDead {
		health.MaxHealth += s.balance.LevelUpHealthBonus
		health.CurrentHealth += s.balance.LevelUpHealthBonus
		s.dispatcher.Emit(event.HealthChanged, event.HealthChangedData{
			Current: health.CurrentHealth,
			Max:     health.MaxHealth,
		})
	}
	if attack, ok := ecs.GetComponent[*components.AttackComponent](s.entityManager, player); ok {
		attack.Damage += s.balance.LevelUpDamageBonus
	}
}

// AddCoins 增加金币
func (s *ProgressionSystem) AddCoins(player ecs.EntityID, amount int) {
	prog, ok := ecs.GetComponent[*components.ProgressionComponent](s.entityManager, player)
	if !ok || amount <= 0 {
		return
	}
	prog.Coins += amount
	s.dispatcher.Emit(event.CoinsChanged, prog.Coins)
}
