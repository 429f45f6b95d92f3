package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/ecs"
	"github.com/decker502/wavewizard/pkg/entities"
	"github.com/decker502/wavewizard/pkg/event"
	"github.com/decker502/wavewizard/pkg/game"
	"github.com/decker502/wavewizard/pkg/world"
)

// coinDropRadius 掉落金币的碰撞半径，与金币实体保持一致
const coinDropRadius = 0.2

// DamageResult 单个目标的伤害结算结果
type DamageResult struct {
	Target ecs.EntityID
	Amount float64 // 实际扣除的生命值
	Killed bool    // 本次伤害是否致死
}

// CombatSystem 伤害结算
//
// 职责：
//   - 扣血并在生命值首次归零时确认死亡（每个目标在修改时检查，而不是预先快照）
//   - 范围伤害：主目标全额，半径内其余有效目标按 SecondaryMultiplier 折算
//   - 死亡副作用：停止敌人追击、发放击杀奖励、同步移出存活追踪、延迟移除尸体、掉落金币
//   - 生成时的难度倍率（只应用一次）
type CombatSystem struct {
	entityManager *ecs.EntityManager
	tracker       *game.PopulationTracker
	arena         *world.Arena
	dispatcher    *event.Dispatcher
	progression   *ProgressionSystem
	balance       config.CombatBalance
	rng           *rand.Rand

	// onPlayerDeath 玩家死亡回调（由波次状态机注册，触发 GameOver）
	onPlayerDeath func(reason string)
}

// NewCombatSystem 创建战斗系统
func NewCombatSystem(
	em *ecs.EntityManager,
	tracker *game.PopulationTracker,
	arena *world.Arena,
	dispatcher *event.Dispatcher,
	progression *ProgressionSystem,
	balance config.CombatBalance,
	rng *rand.Rand,
) *CombatSystem {
	return &CombatSystem{
		entityManager: em,
		tracker:       tracker,
		arena:         arena,
		dispatcher:    dispatcher,
		progression:   progression,
		balance:       balance,
		rng:           rng,
	}
}

// SetPlayerDeathHandler 注册玩家死亡回调
func (s *CombatSystem) SetPlayerDeathHandler(fn func(reason string)) {
	s.onPlayerDeath = fn
}

// ApplyDamage 对目标造成伤害
//
// 参数：
//   - attacker: 攻击者（可以已不存在，此时不发放奖励、倍率按 1 计算）
//   - target: 主目标
//   - baseAmount: 基础伤害，会乘以攻击者的伤害倍率
//   - isAreaEffect: 是否为范围伤害
//
// 主目标已死亡时整个调用是空操作
func (s *CombatSystem) ApplyDamage(attacker, target ecs.EntityID, baseAmount float64, isAreaEffect bool) []DamageResult {
	if !isAlive(s.entityManager, target) {
		return nil
	}

	amount := baseAmount * s.damageMultiplier(attacker)
	if amount < 0 {
		amount = 0
	}

	var results []DamageResult
	if r, ok := s.damageOne(attacker, target, amount); ok {
		results = append(results, r)
	}
	if !isAreaEffect {
		return results
	}

	px, py, ok := entityPosition(s.entityManager, target)
	if !ok {
		return results
	}
	victimFaction := s.splashFaction(attacker, target)
	secondary := amount * s.balance.SecondaryMultiplier

	splashed := FindEntitiesInRadius(s.entityManager, px, py, s.balance.AreaRadius, func(id ecs.EntityID) bool {
		return id != target && id != attacker &&
			entityFaction(s.entityManager, id) == victimFaction &&
			isAlive(s.entityManager, id)
	})
	for _, id := range splashed {
		if r, ok := s.damageOne(attacker, id, secondary); ok {
			results = append(results, r)
		}
	}
	return results
}

// damageMultiplier 攻击者的伤害倍率
func (s *CombatSystem) damageMultiplier(attacker ecs.EntityID) float64 {
	attack, ok := ecs.GetComponent[*components.AttackComponent](s.entityManager, attacker)
	if !ok {
		return 1
	}
	return attack.DamageMultiplier
}

// splashFaction 范围伤害波及的阵营：与攻击者敌对的阵营，攻击者无阵营时取主目标的阵营
func (s *CombatSystem) splashFaction(attacker, target ecs.EntityID) components.Faction {
	switch entityFaction(s.entityManager, attacker) {
	case components.FactionPlayer:
		return components.FactionHostile
	case components.FactionHostile:
		return components.FactionPlayer
	}
	return entityFaction(s.entityManager, target)
}

// damageOne 对单个目标扣血
// 死亡检查在修改时进行，已死亡的目标返回 ok=false
func (s *CombatSystem) damageOne(attacker, target ecs.EntityID, amount float64) (DamageResult, bool) {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, target)
	if !ok || health.IsDead {
		return DamageResult{}, false
	}

	before := health.CurrentHealth
	health.CurrentHealth = math.Max(0, health.CurrentHealth-amount)
	result := DamageResult{Target: target, Amount: before - health.CurrentHealth}

	if entityFaction(s.entityManager, target) == components.FactionPlayer {
		s.dispatcher.Emit(event.HealthChanged, event.HealthChangedData{
			Current: health.CurrentHealth,
			Max:     health.MaxHealth,
		})
	}

	if health.CurrentHealth <= 0 {
		health.IsDead = true
		result.Killed = true
		s.handleDeath(attacker, target)
	}
	return result, true
}

// handleDeath 死亡确认后的副作用，每个实体只会执行一次
func (s *CombatSystem) handleDeath(attacker, target ecs.EntityID) {
	switch entityFaction(s.entityManager, target) {
	case components.FactionHostile:
		s.handleHostileDeath(attacker, target)
	case components.FactionPlayer:
		log.Printf("[CombatSystem] Player %d has fallen", target)
		if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, target); ok {
			vel.VX, vel.VY = 0, 0
		}
		if s.onPlayerDeath != nil {
			s.onPlayerDeath("the wizard was slain")
		}
	}
}

func (s *CombatSystem) handleHostileDeath(attacker, target ecs.EntityID) {
	em := s.entityManager

	hostile, _ := ecs.GetComponent[*components.HostileComponent](em, target)
	if hostile != nil {
		hostile.PursuitActive = false
	}
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](em, target); ok {
		vel.VX, vel.VY = 0, 0
	}

	// 同步移出存活追踪，同一帧的清场判定即可看到
	s.tracker.Remove(target)

	// 尸体在 DeathDelay 秒后移除
	ecs.AddComponent(em, target, &components.LifetimeComponent{MaxLifetime: s.balance.DeathDelay})

	data := event.EnemyData{Entity: uint64(target)}
	if hostile != nil {
		data.TemplateID = hostile.TemplateID
		data.Tier = string(hostile.Tier)
	}
	s.dispatcher.Emit(event.EnemyKilled, data)

	reward, ok := ecs.GetComponent[*components.RewardComponent](em, target)
	if !ok {
		return
	}
	// 只有玩家的击杀才有分数与经验；金币总会掉落
	if entityFaction(em, attacker) == components.FactionPlayer {
		s.progression.GrantKill(attacker, *reward)
	}
	s.dropCoins(target, reward.Coins)
}

// dropCoins 在尸体周围散落金币，位置吸附到最近的可行走地面
func (s *CombatSystem) dropCoins(source ecs.EntityID, count int) {
	x, y, ok := entityPosition(s.entityManager, source)
	if !ok {
		return
	}
	for i := 0; i < count; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		r := s.rng.Float64() * s.balance.DropRadius
		cx, cy := x+math.Cos(angle)*r, y+math.Sin(angle)*r
		sx, sy, ok := s.arena.SnapToWalkable(cx, cy, coinDropRadius)
		if !ok {
			log.Printf("[CombatSystem] Warning: no walkable ground near (%.1f, %.1f), coin dropped", cx, cy)
			continue
		}
		entities.NewCoinEntity(s.entityManager, sx, sy, 1)
	}
}

// ApplyDifficultyScaling 按难度倍率缩放敌人的最大生命值与伤害
// 每个实体只生效一次，重复调用返回 false 且没有副作用
func (s *CombatSystem) ApplyDifficultyScaling(id ecs.EntityID, profile config.DifficultyProfile) bool {
	em := s.entityManager
	hostile, ok := ecs.GetComponent[*components.HostileComponent](em, id)
	if !ok || hostile.ScalingApplied {
		return false
	}

	if health, ok := ecs.GetComponent[*components.HealthComponent](em, id); ok {
		health.MaxHealth *= profile.EnemyHealthMultiplier
		health.CurrentHealth = health.MaxHealth
	}
	if attack, ok := ecs.GetComponent[*components.AttackComponent](em, id); ok {
		attack.DamageMultiplier *= profile.EnemyDamageMultiplier
	}
	hostile.ScalingApplied = true
	return true
}
