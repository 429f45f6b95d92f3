package systems

import (
	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/ecs"
	"github.com/decker502/wavewizard/pkg/event"
)

// AttackSystem 攻击冷却与出手
//
// 职责：
//   - 巫师：冷却结束后自动向射程内最近的存活敌人施放法术（范围伤害）
//   - 敌人：追击中且玩家进入攻击距离时近战攻击
//   - 伤害结算全部交给 CombatSystem
type AttackSystem struct {
	entityManager *ecs.EntityManager
	combat        *CombatSystem
	locator       *PlayerLocator
	dispatcher    *event.Dispatcher
}

// NewAttackSystem 创建攻击系统
func NewAttackSystem(em *ecs.EntityManager, combat *CombatSystem, locator *PlayerLocator, dispatcher *event.Dispatcher) *AttackSystem {
	return &AttackSystem{
		entityManager: em,
		combat:        combat,
		locator:       locator,
		dispatcher:    dispatcher,
	}
}

// Update 推进冷却并结算攻击
func (s *AttackSystem) Update(deltaTime float64) {
	player, ok := s.locator.Player()
	if !ok || !isAlive(s.entityManager, player) {
		return
	}
	s.updatePlayer(player, deltaTime)
	s.updateHostiles(player, deltaTime)
}

// updatePlayer 巫师自动施法
func (s *AttackSystem) updatePlayer(player ecs.EntityID, deltaTime float64) {
	attack, ok := ecs.GetComponent[*components.AttackComponent](s.entityManager, player)
	if !ok {
		return
	}
	if attack.CooldownTimer > 0 {
		attack.CooldownTimer -= deltaTime
		if attack.CooldownTimer > 0 {
			return
		}
	}

	x, y, ok := entityPosition(s.entityManager, player)
	if !ok {
		return
	}
	target, ok := NearestLivingHostile(s.entityManager, x, y, attack.Range)
	if !ok {
		// 没有目标时保持就绪
		attack.CooldownTimer = 0
		return
	}

	attack.CooldownTimer = attack.Cooldown
	s.dispatcher.Emit(event.SpellCast, nil)
	s.combat.ApplyDamage(player, target, attack.Damage, attack.IsAreaEffect)
}

// updateHostiles 敌人近战
func (s *AttackSystem) updateHostiles(player ecs.EntityID, deltaTime float64) {
	px, py, ok := entityPosition(s.entityManager, player)
	if !ok {
		return
	}

	for _, id := range ecs.GetEntitiesWith2[*components.HostileComponent, *components.AttackComponent](s.entityManager) {
		hostile, _ := ecs.GetComponent[*components.HostileComponent](s.entityManager, id)
		attack, _ := ecs.GetComponent[*components.AttackComponent](s.entityManager, id)
		if !hostile.PursuitActive || !isAlive(s.entityManager, id) {
			continue
		}

		if attack.CooldownTimer > 0 {
			attack.CooldownTimer -= deltaTime
		}
		if attack.CooldownTimer > 0 {
			continue
		}

		x, y, ok := entityPosition(s.entityManager, id)
		if !ok || distance(x, y, px, py) > attack.Range {
			continue
		}

		attack.CooldownTimer = attack.Cooldown
		s.combat.ApplyDamage(id, player, attack.Damage, attack.IsAreaEffect)

		// 玩家可能在本次攻击中死亡
		if !isAlive(s.entityManager, player) {
			return
		}
	}
}
