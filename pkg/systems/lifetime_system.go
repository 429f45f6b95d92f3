package systems

import (
	"log"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
// 尸体在死亡延迟结束后标记删除；存活追踪在死亡确认时已经移除，这里不再处理
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
	verbose       bool
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// SetVerbose 设置是否输出详细日志
func (s *LifetimeSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.IsExpired {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime < lifetime.MaxLifetime {
			continue
		}

		lifetime.IsExpired = true
		if s.verbose {
			log.Printf("[LifetimeSystem] Removing corpse %d (%s)", id, hostileTemplateID(s.entityManager, id))
		}
		s.entityManager.DestroyEntity(id)
	}
}
