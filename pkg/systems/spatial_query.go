package systems

import (
	"math"
	"sort"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/ecs"
)

// distance 两点距离
func distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}

// entityPosition 读取实体位置
func entityPosition(em *ecs.EntityManager, id ecs.EntityID) (float64, float64, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return 0, 0, false
	}
	return pos.X, pos.Y, true
}

// entityFaction 读取实体阵营，没有阵营标签的实体视为中立
func entityFaction(em *ecs.EntityManager, id ecs.EntityID) components.Faction {
	f, ok := ecs.GetComponent[*components.FactionComponent](em, id)
	if !ok {
		return components.FactionNeutral
	}
	return f.Faction
}

// isAlive 实体是否拥有生命值且尚未死亡
func isAlive(em *ecs.EntityManager, id ecs.EntityID) bool {
	h, ok := ecs.GetComponent[*components.HealthComponent](em, id)
	return ok && !h.IsDead
}

// isLivingHostile 实体是否为存活的敌人
func isLivingHostile(em *ecs.EntityManager, id ecs.EntityID) bool {
	return entityFaction(em, id) == components.FactionHostile && isAlive(em, id)
}

// FindEntitiesInRadius 查找 (x, y) 半径 radius 内满足 predicate 的实体
// 按距离升序返回，距离相同按 ID 升序；predicate 为 nil 时不过滤
func FindEntitiesInRadius(em *ecs.EntityManager, x, y, radius float64, predicate func(id ecs.EntityID) bool) []ecs.EntityID {
	type hit struct {
		id ecs.EntityID
		d  float64
	}
	var hits []hit
	for _, id := range ecs.GetEntitiesWith1[*components.PositionComponent](em) {
		if em.IsPendingDestroy(id) {
			continue
		}
		px, py, _ := entityPosition(em, id)
		d := distance(x, y, px, py)
		if d > radius {
			continue
		}
		if predicate != nil && !predicate(id) {
			continue
		}
		hits = append(hits, hit{id: id, d: d})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].d < hits[j].d })

	result := make([]ecs.EntityID, len(hits))
	for i, h := range hits {
		result[i] = h.id
	}
	return result
}

// NearestLivingHostile 返回距离 (x, y) 最近且在 maxRange 内的存活敌人
func NearestLivingHostile(em *ecs.EntityManager, x, y, maxRange float64) (ecs.EntityID, bool) {
	found := FindEntitiesInRadius(em, x, y, maxRange, func(id ecs.EntityID) bool {
		return isLivingHostile(em, id)
	})
	if len(found) == 0 {
		return 0, false
	}
	return found[0], true
}
