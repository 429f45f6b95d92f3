package run

import (
	"math"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/ecs"
)

// 自动驾驶的距离阈值（世界单位）
const (
	autopilotFleeDistance = 3.0
	autopilotCoinRange    = 10.0
)

// Autopilot 简单的自动操作：敌人太近就后退，否则去捡最近的金币
// 用于无界面校验和演示模式，施法本身是自动的
type Autopilot struct {
	run *Run
}

// NewAutopilot 创建自动驾驶
func NewAutopilot(r *Run) *Autopilot {
	return &Autopilot{run: r}
}

// Steer 计算并写入本帧的移动方向
func (a *Autopilot) Steer() {
	em := a.run.entityManager
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, a.run.player)
	if !ok {
		return
	}

	if dx, dy, d, ok := a.nearest(pos, func(id ecs.EntityID) bool {
		h, ok := ecs.GetComponent[*components.HealthComponent](em, id)
		return ok && !h.IsDead && ecs.HasComponent[*components.HostileComponent](em, id)
	}); ok && d < autopilotFleeDistance {
		a.run.SetPlayerInput(-dx, -dy)
		return
	}

	if dx, dy, d, ok := a.nearest(pos, func(id ecs.EntityID) bool {
		return ecs.HasComponent[*components.CoinComponent](em, id)
	}); ok && d < autopilotCoinRange {
		a.run.SetPlayerInput(dx, dy)
		return
	}

	a.run.SetPlayerInput(0, 0)
}

// nearest 返回满足条件的最近实体的方向（单位向量）与距离
func (a *Autopilot) nearest(from *components.PositionComponent, match func(ecs.EntityID) bool) (dx, dy, dist float64, ok bool) {
	em := a.run.entityManager
	dist = math.Inf(1)
	for _, id := range ecs.GetEntitiesWith1[*components.PositionComponent](em) {
		if id == a.run.player || em.IsPendingDestroy(id) || !match(id) {
			continue
		}
		p, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		d := math.Hypot(p.X-from.X, p.Y-from.Y)
		if d < dist && d > 0 {
			dist = d
			dx, dy = (p.X-from.X)/d, (p.Y-from.Y)/d
			ok = true
		}
	}
	return dx, dy, dist, ok
}
