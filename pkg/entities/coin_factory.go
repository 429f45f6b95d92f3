package entities

import (
	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/ecs"
)

// coinRadius 金币碰撞半径
const coinRadius = 0.2

// NewCoinEntity 创建一枚可拾取的金币
// 返回: 创建的实体ID
func NewCoinEntity(manager *ecs.EntityManager, x, y float64, value int) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	manager.AddComponent(id, &components.VelocityComponent{})
	manager.AddComponent(id, &components.CollisionComponent{Radius: coinRadius})
	manager.AddComponent(id, &components.FactionComponent{Faction: components.FactionNeutral})
	manager.AddComponent(id, &components.CoinComponent{Value: value})

	return id
}
