package run

import (
	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/ecs"
)

// SpriteKind 渲染分类
type SpriteKind int

const (
	SpritePlayer SpriteKind = iota
	SpriteHostile
	SpriteCorpse
	SpriteCoin
)

// Sprite 宿主渲染用的实体快照
type Sprite struct {
	Kind   SpriteKind
	X, Y   float64
	Radius float64
	Tier   config.HostileTier
	// HealthRatio 当前/最大生命值，没有生命值组件时为 1
	HealthRatio float64
}

// Sprites 收集所有可见实体
// 顺序：金币、尸体、敌人、玩家（后面的覆盖前面的）
func (r *Run) Sprites() []Sprite {
	em := r.entityManager
	var coins, corpses, hostiles, players []Sprite

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.CollisionComponent](em) {
		if em.IsPendingDestroy(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
		s := Sprite{X: pos.X, Y: pos.Y, Radius: col.Radius, HealthRatio: 1}

		dead := false
		if h, ok := ecs.GetComponent[*components.HealthComponent](em, id); ok {
			dead = h.IsDead
			if h.MaxHealth > 0 {
				s.HealthRatio = h.CurrentHealth / h.MaxHealth
			}
		}

		switch {
		case ecs.HasComponent[*components.CoinComponent](em, id):
			s.Kind = SpriteCoin
			coins = append(coins, s)
		case ecs.HasComponent[*components.PlayerComponent](em, id):
			s.Kind = SpritePlayer
			players = append(players, s)
		case ecs.HasComponent[*components.HostileComponent](em, id):
			hc, _ := ecs.GetComponent[*components.HostileComponent](em, id)
			s.Tier = hc.Tier
			if dead {
				s.Kind = SpriteCorpse
				corpses = append(corpses, s)
			} else {
				s.Kind = SpriteHostile
				hostiles = append(hostiles, s)
			}
		}
	}

	out := make([]Sprite, 0, len(coins)+len(corpses)+len(hostiles)+len(players))
	out = append(out, coins...)
	out = append(out, corpses...)
	out = append(out, hostiles...)
	return append(out, players...)
}
