package game

import (
	"log"

	"github.com/decker502/wavewizard/pkg/ecs"
)

// PopulationTracker 记录当前存活的敌人
//
// 保持插入顺序、不含重复项。
// 敌人在死亡确认时同步移除，而不是等尸体实体销毁，
// 因此同一帧内的清场判定能立即看到最新数量。
type PopulationTracker struct {
	order       []ecs.EntityID
	index       map[ecs.EntityID]int
	everSpawned bool
	totalAdded  int
}

// NewPopulationTracker 创建空的追踪器
func NewPopulationTracker() *PopulationTracker {
	return &PopulationTracker{
		index: make(map[ecs.EntityID]int),
	}
}

// Add 记录一个新生成的敌人；重复添加是空操作
func (p *PopulationTracker) Add(id ecs.EntityID) {
	if _, ok := p.index[id]; ok {
		log.Printf("[PopulationTracker] Warning: entity %d already tracked", id)
		return
	}
	p.index[id] = len(p.order)
	p.order = append(p.order, id)
	p.everSpawned = true
	p.totalAdded++
}

// Remove 移除一个敌人；未追踪的实体返回 false
func (p *PopulationTracker) Remove(id ecs.EntityID) bool {
	i, ok := p.index[id]
	if !ok {
		return false
	}
	p.order = append(p.order[:i], p.order[i+1:]...)
	delete(p.index, id)
	for j := i; j < len(p.order); j++ {
		p.index[p.order[j]] = j
	}
	return true
}

// Count 当前存活的敌人数量
func (p *PopulationTracker) Count() int {
	return len(p.order)
}

// Contains 是否正在追踪该实体
func (p *PopulationTracker) Contains(id ecs.EntityID) bool {
	_, ok := p.index[id]
	return ok
}

// Entities 按生成顺序返回存活敌人的副本
func (p *PopulationTracker) Entities() []ecs.EntityID {
	out := make([]ecs.EntityID, len(p.order))
	copy(out, p.order)
	return out
}

// EverSpawned 本局是否生成过至少一个敌人
func (p *PopulationTracker) EverSpawned() bool {
	return p.everSpawned
}

// TotalAdded 本局累计生成的敌人数
func (p *PopulationTracker) TotalAdded() int {
	return p.totalAdded
}

// Clear 重置追踪器（重新开局时调用）
func (p *PopulationTracker) Clear() {
	p.order = nil
	p.index = make(map[ecs.EntityID]int)
	p.everSpawned = false
	p.totalAdded = 0
}
