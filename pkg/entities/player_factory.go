package entities

import (
	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/ecs"
)

// NewPlayerEntity 创建巫师实体
// 参数:
//   - manager: EntityManager 实例
//   - balance: 平衡参数（玩家属性、成长曲线）
//   - x, y: 出生位置
//
// 返回: 创建的实体ID
func NewPlayerEntity(manager *ecs.EntityManager, balance *config.BalanceConfig, x, y float64) ecs.EntityID {
	p := balance.Player
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	manager.AddComponent(id, &components.VelocityComponent{})
	manager.AddComponent(id, &components.CollisionComponent{Radius: p.Radius})
	manager.AddComponent(id, &components.FactionComponent{Faction: components.FactionPlayer})
	manager.AddComponent(id, &components.HealthComponent{
		CurrentHealth: p.MaxHealth,
		MaxHealth:     p.MaxHealth,
	})

	// 自动施放火球：范围伤害
	manager.AddComponent(id, &components.AttackComponent{
		Damage:           p.SpellDamage,
		DamageMultiplier: 1,
		Range:            p.SpellRange,
		Cooldown:         p.SpellCooldown,
		IsAreaEffect:     true,
	})

	manager.AddComponent(id, &components.PlayerComponent{
		MoveSpeed:    p.MoveSpeed,
		PickupRadius: p.PickupRadius,
		MagnetRadius: p.MagnetRadius,
		MagnetSpeed:  p.MagnetSpeed,
	})
	manager.AddComponent(id, &components.ProgressionComponent{
		Level:            1,
		ExperienceToNext: balance.Progression.ExperienceToNext(1),
	})

	return id
}
