package entities

import (
	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/ecs"
)

// NewHostileEntity 根据模板创建敌人实体
// 难度倍率不在这里应用，由战斗系统在生成后统一应用一次
//
// 参数:
//   - manager: EntityManager 实例
//   - tier: 强度阶
//   - variant: 阶池中的下标
//   - tpl: 敌人模板
//   - x, y: 生成位置
//
// 返回: 创建的实体ID
func NewHostileEntity(manager *ecs.EntityManager, tier config.HostileTier, variant int, tpl config.EnemyTemplate, x, y float64) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	manager.AddComponent(id, &components.VelocityComponent{})
	manager.AddComponent(id, &components.CollisionComponent{Radius: tpl.Radius})
	manager.AddComponent(id, &components.FactionComponent{Faction: components.FactionHostile})
	manager.AddComponent(id, &components.HealthComponent{
		CurrentHealth: tpl.MaxHealth,
		MaxHealth:     tpl.MaxHealth,
	})
	manager.AddComponent(id, &components.AttackComponent{
		Damage:           tpl.Damage,
		DamageMultiplier: 1,
		Range:            tpl.AttackRange,
		Cooldown:         tpl.AttackCooldown,
		// 刚生成的敌人需要一个完整冷却才能出手
		CooldownTimer: tpl.AttackCooldown,
	})
	manager.AddComponent(id, &components.HostileComponent{
		Tier:          tier,
		Variant:       variant,
		TemplateID:    tpl.ID,
		Speed:         tpl.Speed,
		PursuitActive: true,
	})
	manager.AddComponent(id, &components.RewardComponent{
		Coins:      tpl.RewardCoins,
		Experience: tpl.RewardExperience,
		Score:      tpl.Score,
	})

	return id
}
