package systems

import (
	"math"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/ecs"
	"github.com/decker502/wavewizard/pkg/event"
)

// PickupSystem 金币吸附与拾取
//
// 职责：
//   - 进入吸附半径的金币持续飞向玩家（一旦吸附不会脱离）
//   - 进入拾取半径的金币计入玩家金币并销毁
type PickupSystem struct {
	entityManager *ecs.EntityManager
	locator       *PlayerLocator
	progression   *ProgressionSystem
	dispatcher    *event.Dispatcher
}

// NewPickupSystem 创建拾取系统
func NewPickupSystem(em *ecs.EntityManager, locator *PlayerLocator, progression *ProgressionSystem, dispatcher *event.Dispatcher) *PickupSystem {
	return &PickupSystem{
		entityManager: em,
		locator:       locator,
		progression:   progression,
		dispatcher:    dispatcher,
	}
}

// Update 吸附并拾取金币
func (s *PickupSystem) Update(deltaTime float64) {
	player, ok := s.locator.Player()
	if !ok || !isAlive(s.entityManager, player) {
		return
	}
	pc, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, player)
	if !ok {
		return
	}
	px, py, ok := entityPosition(s.entityManager, player)
	if !ok {
		return
	}

	collected := 0
	for _, id := range ecs.GetEntitiesWith2[*components.CoinComponent, *components.PositionComponent](s.entityManager) {
		if s.entityManager.IsPendingDestroy(id) {
			continue
		}
		coin, _ := ecs.GetComponent[*components.CoinComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		d := distance(pos.X, pos.Y, px, py)
		if d <= pc.PickupRadius {
			collected += coin.Value
			s.entityManager.DestroyEntity(id)
			continue
		}

		if !coin.Magnetized && d <= pc.MagnetRadius {
			coin.Magnetized = true
		}
		if !coin.Magnetized {
			continue
		}

		// 飞向玩家，单帧位移不越过玩家
		step := math.Min(pc.MagnetSpeed*deltaTime, d)
		pos.X += (px - pos.X) / d * step
		pos.Y += (py - pos.Y) / d * step
	}

	if collected > 0 {
		s.progression.AddCoins(player, collected)
		s.dispatcher.Emit(event.CoinCollected, collected)
	}
}
